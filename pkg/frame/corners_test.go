package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = Color{0xff, 0xff, 0xff, 0xff}
	black = Color{0, 0, 0, 0xff}
)

// mask renders painted pixels as 'X' and untouched ones as '.'.
func mask(b *Buffer, fill Color) string {
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.Pixel(x, y) == fill {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func solid(w, h int, c Color) *Buffer {
	b := New(w, h)
	b.Fill(c)
	return b
}

func TestRoundCornersScreenshot(t *testing.T) {
	img := gradient(100, 100)
	center := img.Pixel(50, 50)

	require.NoError(t, RoundCorners(img, white, 10))

	assert.Equal(t, white, img.Pixel(0, 0))
	assert.Equal(t, white, img.Pixel(99, 0))
	assert.Equal(t, white, img.Pixel(0, 99))
	assert.Equal(t, white, img.Pixel(99, 99))
	assert.Equal(t, center, img.Pixel(50, 50))
}

func TestRoundCornersMask(t *testing.T) {
	img := solid(8, 8, black)
	require.NoError(t, RoundCorners(img, white, 3))

	want := strings.Join([]string{
		"XXX..XXX",
		"X......X",
		"X......X",
		"........",
		"........",
		"X......X",
		"X......X",
		"XXX..XXX",
	}, "\n") + "\n"
	require.Equal(t, want, mask(img, white))
}

func TestRoundCornersOfPinsPhysicalCorner(t *testing.T) {
	cases := []struct {
		corners Corner
		want    []string
	}{
		{TopLeft, []string{
			"XXX.....",
			"X.......",
			"X.......",
			"........",
			"........",
			"........",
		}},
		{TopRight, []string{
			".....XXX",
			".......X",
			".......X",
			"........",
			"........",
			"........",
		}},
		{BottomLeft, []string{
			"........",
			"........",
			"........",
			"X.......",
			"X.......",
			"XXX.....",
		}},
		{BottomRight | TopLeft, []string{
			"XXX.....",
			"X.......",
			"X.......",
			".......X",
			".......X",
			".....XXX",
		}},
	}
	for _, c := range cases {
		t.Run(c.corners.String(), func(t *testing.T) {
			img := solid(8, 6, black)
			require.NoError(t, RoundCornersOf(img, white, 3, c.corners))
			require.Equal(t, strings.Join(c.want, "\n")+"\n", mask(img, white))
		})
	}
}

func TestRoundCornersCircleTest(t *testing.T) {
	const w, h, r = 40, 24, 8
	src := gradient(w, h)
	img := src.Clone()
	fill := Color{10, 20, 30, 40}
	require.NoError(t, RoundCorners(img, fill, r))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			inX, inY := true, true
			switch {
			case x < r:
				dx = r - x
			case x >= w-r:
				dx = x - (w - 1 - r)
			default:
				inX = false
			}
			switch {
			case y < r:
				dy = r - y
			case y >= h-r:
				dy = y - (h - 1 - r)
			default:
				inY = false
			}
			if inX && inY && dx*dx+dy*dy >= r*r {
				require.Equal(t, fill, img.Pixel(x, y), "(%d,%d) should be painted", x, y)
			} else {
				require.Equal(t, src.Pixel(x, y), img.Pixel(x, y), "(%d,%d) should be untouched", x, y)
			}
		}
	}
}

func TestRoundCornersRadius(t *testing.T) {
	t.Run("zero is a no-op", func(t *testing.T) {
		img := gradient(5, 5)
		before := img.Clone()
		require.NoError(t, RoundCorners(img, white, 0))
		require.Equal(t, before.Pix, img.Pix)
	})
	t.Run("half the short side", func(t *testing.T) {
		img := gradient(10, 6)
		require.NoError(t, RoundCorners(img, white, 3))
	})
	for _, r := range []int{-1, 4, 100} {
		img := gradient(10, 6)
		before := img.Clone()
		err := RoundCorners(img, white, r)
		require.ErrorIs(t, err, ErrInvalidRadius, "radius %d", r)
		require.Equal(t, before.Pix, img.Pix)
	}
}

func TestParseCorners(t *testing.T) {
	c, err := ParseCorners("tl, bottom-right")
	require.NoError(t, err)
	require.Equal(t, TopLeft|BottomRight, c)

	c, err = ParseCorners("all")
	require.NoError(t, err)
	require.Equal(t, AllCorners, c)
	require.Equal(t, "all", c.String())

	_, err = ParseCorners("middle")
	require.Error(t, err)
	_, err = ParseCorners("")
	require.Error(t, err)
}
