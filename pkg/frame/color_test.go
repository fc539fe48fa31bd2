package frame

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"white", Color{255, 255, 255, 255}},
		{"Red", Color{255, 0, 0, 255}},
		{"#0f08", Color{0x00, 0xff, 0x00, 0x88}},
		{"#abc", Color{0xaa, 0xbb, 0xcc, 0xff}},
		{"#102030", Color{0x10, 0x20, 0x30, 0xff}},
		{"#10203040", Color{0x10, 0x20, 0x30, 0x40}},
		{"1, 2, 3", Color{1, 2, 3, 255}},
		{"1,2,3,4", Color{1, 2, 3, 4}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}

	for _, in := range []string{"", "#", "#12345", "#zzzzzz", "nocolor", "1,2", "1,2,300"} {
		_, err := ParseColor(in)
		require.Error(t, err, in)
	}
}

func TestColorModel(t *testing.T) {
	c := Color{10, 20, 30, 255}
	require.Equal(t, color.NRGBA{10, 20, 30, 255}, color.NRGBAModel.Convert(c))
	require.Equal(t, "#0a141eff", c.String())
}
