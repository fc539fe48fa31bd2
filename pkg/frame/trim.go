package frame

// DetectMargin finds the uniform border around src whose color matches the
// top-left pixel within fuzz, an absolute Euclidean RGB distance on the
// 0..255 scale. Alpha is ignored. A frame that is uniform everywhere yields
// the zero margin.
func DetectMargin(src View, fuzz float64) Margin {
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 {
		return Margin{}
	}
	ref := src.Pixel(0, 0)
	fuzzSq := fuzz * fuzz

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := src.Pixel(x, y)
			dr := float64(p[0]) - float64(ref[0])
			dg := float64(p[1]) - float64(ref[1])
			db := float64(p[2]) - float64(ref[2])
			if dr*dr+dg*dg+db*db <= fuzzSq {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return Margin{}
	}
	return Margin{Left: minX, Top: minY, Right: w - 1 - maxX, Bottom: h - 1 - maxY}
}

// Trim crops the border found by DetectMargin. A uniform frame is returned
// as an unmodified copy.
func Trim(src View, fuzz float64) (*Buffer, error) {
	return Crop(src, DetectMargin(src, fuzz))
}
