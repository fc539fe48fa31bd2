// Package codec loads and saves screenshot frames. It is the only place in
// shotframe that knows about file formats.
package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/shotframe/pkg/frame"
)

// DecodeError is returned when a frame cannot be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned when a frame cannot be encoded or written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("encode: %v", e.Err)
	}
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// JPEGQuality is used for every JPEG written by Save and Encode.
const JPEGQuality = 92

// Sniff reports the format of the data by its magic bytes, or "" when unknown.
func Sniff(b []byte) string {
	switch {
	case len(b) >= 3 && bytes.Equal(b[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(b) >= 6 && (bytes.Equal(b[:6], []byte("GIF87a")) || bytes.Equal(b[:6], []byte("GIF89a"))):
		return "gif"
	case len(b) >= 2 && string(b[:2]) == "BM":
		return "bmp"
	case len(b) >= 4 && (string(b[:4]) == "II*\x00" || string(b[:4]) == "MM\x00*"):
		return "tiff"
	case len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return "webp"
	}
	return ""
}

// Decode reads a frame from r and returns it with the detected format.
// JPEG frames are turned upright according to their EXIF orientation.
func Decode(r io.Reader) (*frame.Buffer, string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	buf, format, err := decode(b)
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	return buf, format, nil
}

// Load reads and decodes the frame stored at path, like Decode.
func Load(path string) (*frame.Buffer, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	buf, format, err := decode(b)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	return buf, format, nil
}

func decode(b []byte) (*frame.Buffer, string, error) {
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		if sniffed := Sniff(b); sniffed != "" {
			err = fmt.Errorf("%s data: %w", sniffed, err)
		}
		return nil, "", err
	}
	buf := frame.FromImage(img)
	if format != "jpeg" {
		return buf, format, nil
	}
	if o, oerr := JPEGOrientation(b); oerr == nil && o != 1 {
		oriented, err := frame.Orient(buf, o)
		if err != nil {
			return nil, "", err
		}
		buf = oriented
	}
	return buf, format, nil
}

// FormatFromPath maps a file extension to an output format. Unknown
// extensions map to png.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "png"
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	if err := encode(w, img, format); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg", "jpg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff", "tif":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Save writes img to path using the format implied by its extension.
func Save(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &EncodeError{Path: path, Err: cerr}
		}
	}()
	w := bufio.NewWriter(f)
	if err := encode(w, img, FormatFromPath(path)); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

// Info returns a short description of a frame.
func Info(img image.Image, format string) string {
	if img == nil {
		return "no image"
	}
	if format == "" {
		format = "unknown"
	}
	b := img.Bounds()
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d", strings.ToUpper(format), b.Dx(), b.Dy())
}
