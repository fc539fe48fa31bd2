package codec

import (
	"encoding/binary"
	"errors"
)

const tagOrientation = 0x0112

var errNoOrientation = errors.New("no exif orientation")

// JPEGOrientation returns the EXIF orientation (1..8) stored in the IFD0 of
// a JPEG's APP1 segment.
func JPEGOrientation(data []byte) (int, error) {
	tiff, err := exifTIFF(data)
	if err != nil {
		return 0, err
	}
	if len(tiff) < 8 {
		return 0, errors.New("tiff header truncated")
	}
	var order binary.ByteOrder
	switch string(tiff[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return 0, errors.New("unknown tiff byte order")
	}
	if order.Uint16(tiff[2:4]) != 0x2A {
		return 0, errors.New("invalid tiff magic")
	}

	ifd := int(order.Uint32(tiff[4:8]))
	if ifd < 8 || ifd+2 > len(tiff) {
		return 0, errors.New("ifd0 out of range")
	}
	n := int(order.Uint16(tiff[ifd : ifd+2]))
	for i := 0; i < n; i++ {
		e := ifd + 2 + i*12
		if e+12 > len(tiff) {
			break
		}
		if order.Uint16(tiff[e:e+2]) != tagOrientation {
			continue
		}
		// SHORT, count 1: the value sits in the first two bytes of the field
		if order.Uint16(tiff[e+2:e+4]) != 3 {
			return 0, errors.New("orientation is not a SHORT")
		}
		o := int(order.Uint16(tiff[e+8 : e+10]))
		if o < 1 || o > 8 {
			return 0, errNoOrientation
		}
		return o, nil
	}
	return 0, errNoOrientation
}

// exifTIFF walks the JPEG markers up to the first scan and returns the TIFF
// block of the Exif APP1 segment.
func exifTIFF(data []byte) ([]byte, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, errors.New("not a jpeg")
	}
	i := 2
	for i+2 <= len(data) {
		if data[i] != 0xFF {
			return nil, errors.New("corrupt marker")
		}
		// any number of 0xFF fill bytes may precede a marker
		for i+1 < len(data) && data[i+1] == 0xFF {
			i++
		}
		if i+1 >= len(data) {
			break
		}
		marker := data[i+1]
		switch {
		case marker == 0xDA || marker == 0xD9:
			return nil, errNoOrientation
		case marker == 0x01 || marker == 0xD8 || (marker >= 0xD0 && marker <= 0xD7):
			// TEM, SOI and RSTn carry no length
			i += 2
			continue
		}
		if i+4 > len(data) {
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if segLen < 2 || i+2+segLen > len(data) {
			return nil, errors.New("segment out of range")
		}
		payload := data[i+4 : i+2+segLen]
		if marker == 0xE1 && len(payload) >= 6 && string(payload[:6]) == "Exif\x00\x00" {
			return payload[6:], nil
		}
		i += 2 + segLen
	}
	return nil, errNoOrientation
}
