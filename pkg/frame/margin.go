package frame

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ErrInvalidMargin is returned when a margin would leave no interior pixels.
var ErrInvalidMargin = errors.New("invalid margin")

// Margin is the number of pixels to strip from each edge of a frame.
type Margin struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// Uniform returns a margin of n pixels on every edge.
func Uniform(n int) Margin {
	return Margin{Left: n, Top: n, Right: n, Bottom: n}
}

func (m Margin) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", m.Left, m.Top, m.Right, m.Bottom)
}

// IsZero reports whether the margin strips nothing.
func (m Margin) IsZero() bool {
	return m == Margin{}
}

// Validate checks that m leaves at least one pixel on both axes of a
// width x height frame.
func (m Margin) Validate(width, height int) error {
	if m.Left < 0 || m.Top < 0 || m.Right < 0 || m.Bottom < 0 {
		return fmt.Errorf("%w: negative component in %s", ErrInvalidMargin, m)
	}
	if m.Left+m.Right >= width {
		return fmt.Errorf("%w: left+right=%d does not fit width %d", ErrInvalidMargin, m.Left+m.Right, width)
	}
	if m.Top+m.Bottom >= height {
		return fmt.Errorf("%w: top+bottom=%d does not fit height %d", ErrInvalidMargin, m.Top+m.Bottom, height)
	}
	return nil
}

// Rect returns the interior region of a width x height frame. The result is
// only meaningful when Validate succeeds.
func (m Margin) Rect(width, height int) image.Rectangle {
	return image.Rect(m.Left, m.Top, width-m.Right, height-m.Bottom)
}

// ParseMargin accepts "n" (all edges), "v,h" (top/bottom, left/right) or
// "l,t,r,b". Components may be separated by commas or spaces.
func ParseMargin(s string) (Margin, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Margin{}, fmt.Errorf("invalid margin component %q: %w", f, err)
		}
		if v < 0 {
			return Margin{}, fmt.Errorf("%w: negative component %d", ErrInvalidMargin, v)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return Uniform(vals[0]), nil
	case 2:
		return Margin{Left: vals[1], Top: vals[0], Right: vals[1], Bottom: vals[0]}, nil
	case 4:
		return Margin{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
	default:
		return Margin{}, fmt.Errorf("margin %q: expected 1, 2 or 4 components, got %d", s, len(vals))
	}
}
