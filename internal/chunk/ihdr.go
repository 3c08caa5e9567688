package chunk

import (
	"encoding/binary"
	"fmt"
	"math"

	"basicpng.adpollak.net/internal/pngerr"
)

type ColorType uint8

// Color type, as per the PNG spec.
const (
	Grayscale      ColorType = 0
	RGB            ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	RGBA           ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "Greyscale"
	case RGB:
		return "Truecolor"
	case Indexed:
		return "Indexed-color"
	case GrayscaleAlpha:
		return "Greyscale with alpha"
	case RGBA:
		return "Truecolor with alpha"
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

// Channels is the number of samples per pixel, or 0 for an unknown type.
func (c ColorType) Channels() int {
	switch c {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

// allowedDepths lists the bit depths PNG permits per color type.
var allowedDepths = map[ColorType][]uint8{
	Grayscale:      {1, 2, 4, 8, 16},
	RGB:            {8, 16},
	Indexed:        {1, 2, 4, 8},
	GrayscaleAlpha: {8, 16},
	RGBA:           {8, 16},
}

type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

func (h IHDR) Channels() int {
	return h.ColorType.Channels()
}

func (h IHDR) Indexed() bool {
	return h.ColorType == Indexed
}

// RowBytes is the packed length of one scanline, without its filter byte.
func (h IHDR) RowBytes() int {
	bits := int64(h.Width) * int64(h.Channels()) * int64(h.BitDepth)
	return int((bits + 7) / 8)
}

// ParseIHDR interprets the 13-byte IHDR payload and rejects anything the
// decoder cannot reconstruct.
func ParseIHDR(data []byte) (IHDR, error) {
	if len(data) != 13 {
		return IHDR{}, pngerr.FormatError(fmt.Sprintf("bad IHDR length: %d", len(data)))
	}
	ihdr := IHDR{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         ColorType(data[9]),
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}

	if ihdr.CompressionMethod != 0 {
		return IHDR{}, pngerr.UnsupportedFeatureError(fmt.Sprintf("compression method %d", ihdr.CompressionMethod))
	}
	if ihdr.FilterMethod != 0 {
		return IHDR{}, pngerr.UnsupportedFeatureError(fmt.Sprintf("filter method %d", ihdr.FilterMethod))
	}
	switch ihdr.InterlaceMethod {
	case 0:
	case 1:
		return IHDR{}, pngerr.UnsupportedFeatureError("Adam7 interlacing")
	default:
		return IHDR{}, pngerr.UnsupportedFeatureError(fmt.Sprintf("interlace method %d", ihdr.InterlaceMethod))
	}

	depths, ok := allowedDepths[ihdr.ColorType]
	if !ok {
		return IHDR{}, pngerr.FormatError(fmt.Sprintf("invalid color type %d", uint8(ihdr.ColorType)))
	}
	if !containsDepth(depths, ihdr.BitDepth) {
		return IHDR{}, pngerr.UnsupportedFeatureError(fmt.Sprintf("bit depth %d, color type %d", ihdr.BitDepth, uint8(ihdr.ColorType)))
	}

	if ihdr.Width == 0 || ihdr.Height == 0 {
		return IHDR{}, pngerr.FormatError("non-positive dimension")
	}
	if ihdr.Width > math.MaxInt32 || ihdr.Height > math.MaxInt32 {
		return IHDR{}, pngerr.FormatError("dimension exceeds 2^31-1")
	}
	// Every scanline carries its filter byte, so the inflated stream is
	// Height * (RowBytes + 1) long; that has to fit in an int.
	if int64(ihdr.RowBytes())+1 > math.MaxInt/int64(ihdr.Height) {
		return IHDR{}, pngerr.UnsupportedFeatureError("dimension overflow")
	}
	return ihdr, nil
}

func containsDepth(depths []uint8, depth uint8) bool {
	for _, d := range depths {
		if d == depth {
			return true
		}
	}
	return false
}
