package frame

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRadius is returned when the corner squares of a radius would not
// fit the frame without overlapping.
var ErrInvalidRadius = errors.New("invalid corner radius")

// Corner is a set of frame corners, named by where they appear on screen.
type Corner uint8

// Single corners combine with | into a set.
const (
	TopLeft Corner = 1 << iota
	TopRight
	BottomLeft
	BottomRight

	// AllCorners selects every corner of the frame.
	AllCorners = TopLeft | TopRight | BottomLeft | BottomRight
)

var cornerNames = []struct {
	c     Corner
	short string
	long  string
}{
	{TopLeft, "tl", "top-left"},
	{TopRight, "tr", "top-right"},
	{BottomLeft, "bl", "bottom-left"},
	{BottomRight, "br", "bottom-right"},
}

// Has reports whether every corner of o is in c.
func (c Corner) Has(o Corner) bool { return c&o == o }

func (c Corner) String() string {
	if c == AllCorners {
		return "all"
	}
	var parts []string
	for _, n := range cornerNames {
		if c.Has(n.c) {
			parts = append(parts, n.short)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseCorners parses a comma separated list such as "tl,br", "top-left" or "all".
func ParseCorners(s string) (Corner, error) {
	var out Corner
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if f == "all" {
			out |= AllCorners
			continue
		}
		found := false
		for _, n := range cornerNames {
			if f == n.short || f == n.long {
				out |= n.c
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown corner %q", f)
		}
	}
	if out == 0 {
		return 0, fmt.Errorf("no corners in %q", s)
	}
	return out, nil
}

// RoundCorners paints every pixel of the four corner squares that lies
// outside the inscribed quarter circle of the given radius with fill. The
// image is modified in place; nothing outside the corner squares is touched.
//
// radius must satisfy 0 <= 2*radius <= min(width, height).
func RoundCorners(img MutableView, fill Color, radius int) error {
	return RoundCornersOf(img, fill, radius, AllCorners)
}

// RoundCornersOf is RoundCorners restricted to the given corners.
func RoundCornersOf(img MutableView, fill Color, radius int, corners Corner) error {
	w, h := img.Width(), img.Height()
	if radius < 0 || 2*radius > min(w, h) {
		return fmt.Errorf("%w: radius %d on a %dx%d frame", ErrInvalidRadius, radius, w, h)
	}
	if radius == 0 || corners&AllCorners == 0 {
		return nil
	}
	r2 := radius * radius

	// The circle test runs with gy growing upward, so the top band of the
	// frame is [h-radius, h). ref is the interior reference point of each
	// band: radius pixels inward from the band's outermost pixel.
	rows := [2]struct {
		from, to, ref int
		top           bool
	}{
		{h - radius, h, h - 1 - radius, true},
		{0, radius, radius, false},
	}
	cols := [2]struct {
		from, to, ref int
		left          bool
	}{
		{w - radius, w, w - 1 - radius, false},
		{0, radius, radius, true},
	}

	for _, rb := range rows {
		for _, cb := range cols {
			if !corners.Has(cornerAt(rb.top, cb.left)) {
				continue
			}
			for gy := rb.from; gy < rb.to; gy++ {
				dy := gy - rb.ref
				for x := cb.from; x < cb.to; x++ {
					dx := x - cb.ref
					if dx*dx+dy*dy >= r2 {
						// back to buffer rows, which grow downward
						paint(img, x, h-1-gy, fill)
					}
				}
			}
		}
	}
	return nil
}

func cornerAt(top, left bool) Corner {
	switch {
	case top && left:
		return TopLeft
	case top:
		return TopRight
	case left:
		return BottomLeft
	default:
		return BottomRight
	}
}

func paint(img MutableView, x, y int, c Color) {
	for ch, v := range c {
		if s := img.Sample(ch, x, y); s != nil {
			*s = v
		}
	}
}
