package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrient(t *testing.T) {
	// 3x2 source:
	//   a b c
	//   d e f
	src := gradient(3, 2)
	a, c, d, f := src.Pixel(0, 0), src.Pixel(2, 0), src.Pixel(0, 1), src.Pixel(2, 1)

	for _, tc := range []struct {
		orientation int
		w, h        int
		topLeft     Color
		bottomRight Color
	}{
		{1, 3, 2, a, f},
		{2, 3, 2, c, d},
		{3, 3, 2, f, a},
		{4, 3, 2, d, c},
		{5, 2, 3, a, f},
		{6, 2, 3, d, c},
		{7, 2, 3, f, a},
		{8, 2, 3, c, d},
	} {
		out, err := Orient(src, tc.orientation)
		require.NoError(t, err, "orientation %d", tc.orientation)
		require.Equal(t, tc.w, out.Width(), "orientation %d", tc.orientation)
		require.Equal(t, tc.h, out.Height(), "orientation %d", tc.orientation)
		require.Equal(t, tc.topLeft, out.Pixel(0, 0), "orientation %d", tc.orientation)
		require.Equal(t, tc.bottomRight, out.Pixel(tc.w-1, tc.h-1), "orientation %d", tc.orientation)
	}
}

func TestOrientRoundTrip(t *testing.T) {
	src := gradient(7, 4)
	cw, err := Orient(src, 6)
	require.NoError(t, err)
	back, err := Orient(cw, 8)
	require.NoError(t, err)
	require.Equal(t, src.Pix, back.Pix)
}

func TestOrientInvalid(t *testing.T) {
	for _, o := range []int{0, 9, -1} {
		_, err := Orient(gradient(2, 2), o)
		require.Error(t, err)
	}
}
