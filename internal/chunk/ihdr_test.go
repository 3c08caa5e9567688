package chunk

import (
	"testing"

	"basicpng.adpollak.net/internal/pngerr"
	"basicpng.adpollak.net/internal/pngtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(width, height uint32, depth, colorType, compression, filter, interlace uint8) []byte {
	data := pngtest.IHDR(width, height, depth, colorType).Data
	data[10], data[11], data[12] = compression, filter, interlace
	return data
}

func TestParseIHDR(t *testing.T) {
	t.Run("fields in order", func(t *testing.T) {
		ihdr, err := ParseIHDR(header(0x01020304, 7, 16, 6, 0, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, IHDR{
			Width:     0x01020304,
			Height:    7,
			BitDepth:  16,
			ColorType: RGBA,
		}, ihdr)
		assert.Equal(t, 4, ihdr.Channels())
		assert.False(t, ihdr.Indexed())
	})

	errorCases := []struct {
		name string
		data []byte
		want error
	}{
		{"short payload", header(1, 1, 8, 0, 0, 0, 0)[:12], pngerr.FormatError("bad IHDR length: 12")},
		{"compression", header(1, 1, 8, 0, 1, 0, 0), pngerr.UnsupportedFeatureError("compression method 1")},
		{"filter method", header(1, 1, 8, 0, 0, 2, 0), pngerr.UnsupportedFeatureError("filter method 2")},
		{"adam7", header(1, 1, 8, 0, 0, 0, 1), pngerr.UnsupportedFeatureError("Adam7 interlacing")},
		{"unknown interlace", header(1, 1, 8, 0, 0, 0, 9), pngerr.UnsupportedFeatureError("interlace method 9")},
		{"color type 1", header(1, 1, 8, 1, 0, 0, 0), pngerr.FormatError("invalid color type 1")},
		{"color type 5", header(1, 1, 8, 5, 0, 0, 0), pngerr.FormatError("invalid color type 5")},
		{"rgb 4-bit", header(1, 1, 4, 2, 0, 0, 0), pngerr.UnsupportedFeatureError("bit depth 4, color type 2")},
		{"indexed 16-bit", header(1, 1, 16, 3, 0, 0, 0), pngerr.UnsupportedFeatureError("bit depth 16, color type 3")},
		{"depth 3", header(1, 1, 3, 0, 0, 0, 0), pngerr.UnsupportedFeatureError("bit depth 3, color type 0")},
		{"zero width", header(0, 1, 8, 0, 0, 0, 0), pngerr.FormatError("non-positive dimension")},
		{"zero height", header(1, 0, 8, 0, 0, 0, 0), pngerr.FormatError("non-positive dimension")},
		{"huge width", header(0x80000000, 1, 8, 0, 0, 0, 0), pngerr.FormatError("dimension exceeds 2^31-1")},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIHDR(tc.data)
			assert.Equal(t, tc.want, err)
		})
	}
}

func TestRowBytes(t *testing.T) {
	cases := []struct {
		ihdr IHDR
		want int
	}{
		{IHDR{Width: 2, BitDepth: 8, ColorType: RGB}, 6},
		{IHDR{Width: 3, BitDepth: 16, ColorType: GrayscaleAlpha}, 12},
		{IHDR{Width: 9, BitDepth: 1, ColorType: Grayscale}, 2},
		{IHDR{Width: 3, BitDepth: 2, ColorType: Indexed}, 1},
		{IHDR{Width: 3, BitDepth: 4, ColorType: Indexed}, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.ihdr.RowBytes(), "%+v", tc.ihdr)
	}
}

func TestColorType(t *testing.T) {
	assert.Equal(t, []int{1, 3, 1, 2, 4}, []int{
		Grayscale.Channels(), RGB.Channels(), Indexed.Channels(), GrayscaleAlpha.Channels(), RGBA.Channels(),
	})
	assert.Equal(t, 0, ColorType(5).Channels())
	assert.Equal(t, "Indexed-color", Indexed.String())
	assert.Equal(t, "ColorType(7)", ColorType(7).String())
}

func TestParsePLTE(t *testing.T) {
	t.Run("entries by position", func(t *testing.T) {
		p, ok := ParsePLTE([]byte{1, 2, 3, 4, 5, 6})
		require.True(t, ok)
		assert.Equal(t, Palette{{1, 2, 3}, {4, 5, 6}}, p)
	})
	t.Run("largest accepted", func(t *testing.T) {
		p, ok := ParsePLTE(make([]byte, 3*MaxPaletteEntries))
		require.True(t, ok)
		assert.Len(t, p, MaxPaletteEntries)
	})
	for name, data := range map[string][]byte{
		"empty":          nil,
		"not multiple":   {1, 2, 3, 4},
		"too many":       make([]byte, 3*(MaxPaletteEntries+1)),
		"single partial": {1, 2},
	} {
		t.Run(name, func(t *testing.T) {
			p, ok := ParsePLTE(data)
			assert.False(t, ok)
			assert.Nil(t, p)
		})
	}
}
