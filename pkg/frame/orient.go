package frame

import "fmt"

// Orient returns a new buffer with src transformed according to an EXIF
// orientation value:
//
//	1 as-is        2 mirror horizontally   3 rotate 180   4 mirror vertically
//	5 transpose    6 rotate 90 CW          7 transverse   8 rotate 90 CCW
//
// Orientations 5 to 8 swap width and height.
func Orient(src View, orientation int) (*Buffer, error) {
	w, h := src.Width(), src.Height()
	var (
		out *Buffer
		at  func(x, y int) (int, int)
	)
	switch orientation {
	case 1:
		at = func(x, y int) (int, int) { return x, y }
	case 2:
		at = func(x, y int) (int, int) { return w - 1 - x, y }
	case 3:
		at = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4:
		at = func(x, y int) (int, int) { return x, h - 1 - y }
	case 5:
		at = func(x, y int) (int, int) { return y, x }
	case 6:
		at = func(x, y int) (int, int) { return h - 1 - y, x }
	case 7:
		at = func(x, y int) (int, int) { return h - 1 - y, w - 1 - x }
	case 8:
		at = func(x, y int) (int, int) { return y, w - 1 - x }
	default:
		return nil, fmt.Errorf("orientation %d is out of range 1..8", orientation)
	}
	if orientation >= 5 {
		out = New(h, w)
	} else {
		out = New(w, h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := at(x, y)
			out.SetPixel(dx, dy, src.Pixel(x, y))
		}
	}
	return out, nil
}
