package codec

import (
	"bytes"
	"encoding/binary"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/shotframe/pkg/frame"
)

// exifPayload builds an APP1 payload holding only an IFD0 Orientation tag.
func exifPayload(order binary.ByteOrder, orientation uint16) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("Exif\x00\x00")
	if order == binary.LittleEndian {
		buf.WriteString("II")
	} else {
		buf.WriteString("MM")
	}
	_ = binary.Write(buf, order, uint16(0x2A))
	_ = binary.Write(buf, order, uint32(8))
	_ = binary.Write(buf, order, uint16(1))
	_ = binary.Write(buf, order, uint16(tagOrientation))
	_ = binary.Write(buf, order, uint16(3))
	_ = binary.Write(buf, order, uint32(1))
	_ = binary.Write(buf, order, orientation)
	_ = binary.Write(buf, order, uint16(0))
	_ = binary.Write(buf, order, uint32(0))
	return buf.Bytes()
}

// jpegWithExif encodes img and splices an APP1 segment right after SOI.
func jpegWithExif(t *testing.T, img *frame.Buffer, payload []byte) []byte {
	var enc bytes.Buffer
	require.NoError(t, jpeg.Encode(&enc, img, &jpeg.Options{Quality: 100}))
	raw := enc.Bytes()

	var out bytes.Buffer
	out.Write(raw[:2])
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(raw[2:])
	return out.Bytes()
}

func TestJPEGOrientation(t *testing.T) {
	src := frame.New(4, 2)
	src.Fill(frame.Color{128, 128, 128, 0xff})
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		data := jpegWithExif(t, src, exifPayload(order, 6))
		o, err := JPEGOrientation(data)
		require.NoError(t, err)
		require.Equal(t, 6, o)
	}

	var plain bytes.Buffer
	require.NoError(t, jpeg.Encode(&plain, src, nil))
	_, err := JPEGOrientation(plain.Bytes())
	require.Error(t, err)

	_, err = JPEGOrientation([]byte("\x89PNG\r\n\x1a\n"))
	require.Error(t, err)

	_, err = JPEGOrientation(jpegWithExif(t, src, exifPayload(binary.LittleEndian, 0)))
	require.Error(t, err)
}

func TestJPEGOrientationFillBytesAndStandaloneMarkers(t *testing.T) {
	src := frame.New(4, 2)
	src.Fill(frame.Color{128, 128, 128, 0xff})
	data := jpegWithExif(t, src, exifPayload(binary.LittleEndian, 6))

	// TEM, RST0 and two fill bytes between SOI and the APP1 marker
	var padded bytes.Buffer
	padded.Write(data[:2])
	padded.Write([]byte{0xFF, 0x01, 0xFF, 0xD0, 0xFF, 0xFF})
	padded.Write(data[2:])

	o, err := JPEGOrientation(padded.Bytes())
	require.NoError(t, err)
	require.Equal(t, 6, o)

	_, err = JPEGOrientation([]byte{0xFF, 0xD8, 0xFF, 0xFF, 0xFF})
	require.ErrorIs(t, err, errNoOrientation)
}

func TestLoadAppliesOrientation(t *testing.T) {
	// left half dark, right half bright, so a 90 degree turn is visible
	src := frame.New(16, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(20)
			if x >= 8 {
				v = 230
			}
			src.SetPixel(x, y, frame.Color{v, v, v, 0xff})
		}
	}
	p := filepath.Join(t.TempDir(), "rotated.jpg")
	require.NoError(t, os.WriteFile(p, jpegWithExif(t, src, exifPayload(binary.BigEndian, 6)), 0o644))

	got, format, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 8, got.Width())
	require.Equal(t, 16, got.Height())
	// rotated clockwise: the dark left half ends up on top
	require.Less(t, got.Pixel(4, 2)[0], uint8(80))
	require.Greater(t, got.Pixel(4, 13)[0], uint8(180))
}
