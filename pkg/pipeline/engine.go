package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/shotframe/pkg/frame"
)

// ErrUnknownCommand is returned by Apply for names missing from Commands.
var ErrUnknownCommand = errors.New("unknown command")

// DefaultFill is used by roundCorners when no fill is given.
var DefaultFill = frame.Color{0xff, 0xff, 0xff, 0xff}

// Apply runs a single command on buf. Commands marked InPlace modify buf and
// return it; the others return a new frame and leave buf untouched.
func Apply(buf *frame.Buffer, commandName string, args []string) (*frame.Buffer, error) {
	if buf == nil {
		return nil, fmt.Errorf("source frame is nil")
	}
	spec, ok := Lookup(commandName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, commandName)
	}
	if len(args) < spec.RequiredArgs() || len(args) > len(spec.Args) {
		return nil, fmt.Errorf("%s: got %d args, usage: %s", spec.Name, len(args), spec.Usage)
	}

	switch spec.Name {
	case "crop":
		m, err := frame.ParseMargin(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid margin: %w", err)
		}
		return frame.Crop(buf, m)

	case "cropRect":
		vals := make([]int, 4)
		for i, name := range []string{"width", "height", "x", "y"} {
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", name, err)
			}
			vals[i] = v
		}
		w, h, x0, y0 := vals[0], vals[1], vals[2], vals[3]
		m := frame.Margin{
			Left:   x0,
			Top:    y0,
			Right:  buf.Width() - x0 - w,
			Bottom: buf.Height() - y0 - h,
		}
		return frame.Crop(buf, m)

	case "roundCorners":
		radius, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid radius: %w", err)
		}
		fill := DefaultFill
		if len(args) >= 2 && args[1] != "" {
			if fill, err = frame.ParseColor(args[1]); err != nil {
				return nil, fmt.Errorf("invalid fill: %w", err)
			}
		}
		corners := frame.AllCorners
		if len(args) >= 3 && args[2] != "" {
			if corners, err = frame.ParseCorners(args[2]); err != nil {
				return nil, fmt.Errorf("invalid corners: %w", err)
			}
		}
		if err := frame.RoundCornersOf(buf, fill, radius, corners); err != nil {
			return nil, err
		}
		return buf, nil

	case "trim":
		fuzz := 0.0
		if len(args) >= 1 && args[0] != "" {
			v, err := ParseFuzz(args[0])
			if err != nil {
				return nil, err
			}
			fuzz = v
		}
		return frame.Trim(buf, fuzz)

	case "orient":
		o, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid orientation: %w", err)
		}
		return frame.Orient(buf, o)

	default:
		return nil, fmt.Errorf("%w: %s has no implementation", ErrUnknownCommand, spec.Name)
	}
}

// ParseFuzz accepts an absolute distance on the 0..255 scale or a percent
// of it, e.g. "12" or "5%".
func ParseFuzz(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid fuzz percent: %w", err)
		}
		return v * 255.0 / 100.0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fuzz: %w", err)
	}
	return v, nil
}
