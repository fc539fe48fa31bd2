package frame

// Crop returns a new buffer holding the interior of src left after removing
// m. src is not modified and the result never shares memory with it.
func Crop(src View, m Margin) (*Buffer, error) {
	w, h := src.Width(), src.Height()
	if err := m.Validate(w, h); err != nil {
		return nil, err
	}
	newW := w - m.Left - m.Right
	newH := h - m.Top - m.Bottom
	out := New(newW, newH)

	if b, ok := src.(*Buffer); ok {
		rowLen := newW * Channels
		for y := 0; y < newH; y++ {
			si := b.PixOffset(m.Left, y+m.Top)
			di := y * rowLen
			copy(out.Pix[di:di+rowLen], b.Pix[si:si+rowLen])
		}
		return out, nil
	}

	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			out.SetPixel(x, y, src.Pixel(x+m.Left, y+m.Top))
		}
	}
	return out, nil
}
