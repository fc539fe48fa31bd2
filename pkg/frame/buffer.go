package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of byte samples stored per pixel.
const Channels = 4

// ErrInvalidBuffer is returned when a pixel slice does not match the
// declared dimensions.
var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// Color holds one value per channel, in memory order. When converting to and
// from image.Image the channels are read as non-premultiplied R, G, B, A.
type Color [Channels]uint8

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{c[0], c[1], c[2], c[3]}.RGBA()
}

// View is the read side of a pixel buffer.
type View interface {
	Width() int
	Height() int
	Pixel(x, y int) Color
}

// MutableView is a View that can be written in place.
type MutableView interface {
	View
	SetPixel(x, y int, c Color)
	// Sample returns a pointer to a single channel sample, or nil when the
	// channel or the coordinate is out of range.
	Sample(channel, x, y int) *uint8
}

// Buffer is a contiguous, row-major, 4-channel pixel buffer.
// len(Pix) is always width*height*Channels.
type Buffer struct {
	Pix []uint8
	w   int
	h   int
}

var (
	_ MutableView = (*Buffer)(nil)
	_ image.Image = (*Buffer)(nil)
)

// New allocates a zeroed buffer of the given size. Negative dimensions are
// treated as zero.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{Pix: make([]uint8, width*height*Channels), w: width, h: height}
}

// NewFromPix wraps an existing pixel slice without copying it.
func NewFromPix(width, height int, pix []uint8) (*Buffer, error) {
	if width < 0 || height < 0 || len(pix) != width*height*Channels {
		return nil, fmt.Errorf("%w: %dx%d with %d samples", ErrInvalidBuffer, width, height, len(pix))
	}
	return &Buffer{Pix: pix, w: width, h: height}, nil
}

// FromImage converts any image.Image into a new Buffer with origin (0,0).
func FromImage(src image.Image) *Buffer {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := New(b.Dx(), b.Dy())
	if n, ok := src.(*image.NRGBA); ok {
		rowLen := b.Dx() * Channels
		for y := 0; y < b.Dy(); y++ {
			si := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*rowLen:(y+1)*rowLen], n.Pix[si:si+rowLen])
		}
		return out
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[idx+0] = c.R
			out.Pix[idx+1] = c.G
			out.Pix[idx+2] = c.B
			out.Pix[idx+3] = c.A
			idx += Channels
		}
	}
	return out
}

// Width returns the number of pixel columns.
func (b *Buffer) Width() int { return b.w }

// Height returns the number of pixel rows.
func (b *Buffer) Height() int { return b.h }

// PixOffset returns the index of the first sample of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.w + x) * Channels
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.w && y < b.h
}

// Pixel returns the pixel at (x, y), or the zero Color when out of range.
func (b *Buffer) Pixel(x, y int) Color {
	var c Color
	if !b.inBounds(x, y) {
		return c
	}
	i := b.PixOffset(x, y)
	copy(c[:], b.Pix[i:i+Channels])
	return c
}

// SetPixel overwrites every channel of (x, y). Out of range writes are ignored.
func (b *Buffer) SetPixel(x, y int, c Color) {
	if !b.inBounds(x, y) {
		return
	}
	i := b.PixOffset(x, y)
	copy(b.Pix[i:i+Channels], c[:])
}

// Sample returns a pointer to one channel of pixel (x, y), or nil when the
// channel or the position is out of range. Writes through it modify the
// buffer in place.
func (b *Buffer) Sample(channel, x, y int) *uint8 {
	if channel < 0 || channel >= Channels || !b.inBounds(x, y) {
		return nil
	}
	return &b.Pix[b.PixOffset(x, y)+channel]
}

// Fill paints the whole buffer with c.
func (b *Buffer) Fill(c Color) {
	for i := 0; i < len(b.Pix); i += Channels {
		copy(b.Pix[i:i+Channels], c[:])
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := New(b.w, b.h)
	copy(out.Pix, b.Pix)
	return out
}

// NRGBA returns an *image.NRGBA sharing the buffer's samples.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: b.Pix, Stride: b.w * Channels, Rect: image.Rect(0, 0, b.w, b.h)}
}

func (b *Buffer) ColorModel() color.Model { return color.NRGBAModel }

func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

func (b *Buffer) At(x, y int) color.Color {
	c := b.Pixel(x, y)
	return color.NRGBA{c[0], c[1], c[2], c[3]}
}

// Set implements draw.Image.
func (b *Buffer) Set(x, y int, c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	b.SetPixel(x, y, Color{n.R, n.G, n.B, n.A})
}
