package frame

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// gradient fills every pixel with a value derived from its coordinate so
// shifted copies are easy to verify.
func gradient(w, h int) *Buffer {
	b := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.SetPixel(x, y, Color{uint8(x), uint8(y), uint8(x ^ y), 0xff})
		}
	}
	return b
}

func TestCropOneEachSide(t *testing.T) {
	src := gradient(10, 10)
	out, err := Crop(src, Uniform(1))
	require.NoError(t, err)
	require.Equal(t, 8, out.Width())
	require.Equal(t, 8, out.Height())
	require.Equal(t, src.Pixel(1, 1), out.Pixel(0, 0))
	require.Len(t, out.Pix, 8*8*Channels)
}

func TestCropRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		w := 1 + rng.Intn(40)
		h := 1 + rng.Intn(40)
		src := gradient(w, h)
		m := Margin{
			Left: rng.Intn(w),
			Top:  rng.Intn(h),
		}
		m.Right = rng.Intn(w - m.Left)
		m.Bottom = rng.Intn(h - m.Top)

		before := src.Clone()
		out, err := Crop(src, m)
		require.NoError(t, err, "margin %s on %dx%d", m, w, h)
		require.Equal(t, w-m.Left-m.Right, out.Width())
		require.Equal(t, h-m.Top-m.Bottom, out.Height())
		for y := 0; y < out.Height(); y++ {
			for x := 0; x < out.Width(); x++ {
				require.Equal(t, src.Pixel(x+m.Left, y+m.Top), out.Pixel(x, y), "(%v,%v)", x, y)
			}
		}
		require.Equal(t, before.Pix, src.Pix, "source must not change")
	}
}

func TestCropInvalidMargin(t *testing.T) {
	src := gradient(10, 6)
	for _, m := range []Margin{
		{Left: 5, Right: 5},
		{Left: 10},
		{Top: 3, Bottom: 3},
		{Bottom: 7},
		{Left: -1},
	} {
		out, err := Crop(src, m)
		require.ErrorIs(t, err, ErrInvalidMargin, "margin %s", m)
		require.Nil(t, out)
	}
}

func TestCropDoesNotAlias(t *testing.T) {
	src := gradient(4, 4)
	out, err := Crop(src, Margin{})
	require.NoError(t, err)
	out.SetPixel(0, 0, Color{1, 2, 3, 4})
	require.NotEqual(t, out.Pixel(0, 0), src.Pixel(0, 0))
}

func TestCropGenericView(t *testing.T) {
	src := gradient(12, 7)
	m := Margin{Left: 2, Top: 1, Right: 3, Bottom: 2}
	fast, err := Crop(src, m)
	require.NoError(t, err)
	slow, err := Crop(viewOnlyView{src}, m)
	require.NoError(t, err)
	require.Equal(t, fast.Pix, slow.Pix)
}

// viewOnlyView hides the *Buffer row-copy path.
type viewOnlyView struct{ b *Buffer }

func (v viewOnlyView) Width() int           { return v.b.Width() }
func (v viewOnlyView) Height() int          { return v.b.Height() }
func (v viewOnlyView) Pixel(x, y int) Color { return v.b.Pixel(x, y) }

func TestCropMatchesSubImage(t *testing.T) {
	src := gradient(30, 20)
	m := Margin{Left: 4, Top: 2, Right: 7, Bottom: 5}
	out, err := Crop(src, m)
	require.NoError(t, err)

	sub := src.NRGBA().SubImage(m.Rect(30, 20)).(*image.NRGBA)
	b := sub.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := sub.At(x, y).(color.NRGBA)
			require.Equal(t, want, out.At(x-b.Min.X, y-b.Min.Y))
		}
	}
}
