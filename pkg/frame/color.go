package frame

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts CSS color names, #rgb, #rgba, #rrggbb, #rrggbbaa and
// decimal "c0,c1,c2,c3" tuples (a three element tuple gets an opaque alpha).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{c.R, c.G, c.B, c.A}, nil
	}
	if strings.Contains(s, ",") {
		return parseTuple(s)
	}
	if s[0] != '#' {
		return Color{}, fmt.Errorf("unsupported color format: %s", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		// expand #rgb(a) to #rrggbb(aa)
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("unsupported hex color length: %d", len(hex))
	}
	c := Color{3: 0xff}
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

func parseTuple(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != Channels {
		return Color{}, fmt.Errorf("color tuple %q: expected 3 or %d values", s, Channels)
	}
	c := Color{3: 0xff}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid channel %q: %w", p, err)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c[0], c[1], c[2], c[3])
}
