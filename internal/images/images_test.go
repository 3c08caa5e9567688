package images

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"basicpng.adpollak.net/internal/chunk"
	"basicpng.adpollak.net/internal/pngerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad(t *testing.T) {
	assert.Equal(t, color.NRGBA{200, 200, 200, 255}, Pad([]byte{200}))
	assert.Equal(t, color.NRGBA{100, 100, 100, 50}, Pad([]byte{100, 50}))
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, Pad([]byte{10, 20, 30}))
	assert.Equal(t, color.NRGBA{10, 20, 30, 40}, Pad([]byte{10, 20, 30, 40}))
}

func TestGet(t *testing.T) {
	t.Run("grayscale alpha", func(t *testing.T) {
		img, err := CreateImage([]byte{
			1, 2, 3, 4,
			5, 6, 7, 8,
		}, chunk.IHDR{Width: 2, Height: 2, BitDepth: 8, ColorType: chunk.GrayscaleAlpha}, nil)
		require.NoError(t, err)

		c, err := img.Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{7, 7, 7, 8}, c)
		c, err = img.Get(0, 1)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{5, 5, 5, 6}, c)
	})
	t.Run("indexed", func(t *testing.T) {
		palette := chunk.Palette{{255, 0, 0}, {0, 0, 255}}
		img, err := CreateImage([]byte{1, 0, 2}, chunk.IHDR{Width: 3, Height: 1, BitDepth: 2, ColorType: chunk.Indexed}, palette)
		require.NoError(t, err)

		c, err := img.Get(0, 0)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{0, 0, 255, 255}, c)
		c, err = img.Get(1, 0)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, c)

		_, err = img.Get(2, 0)
		assert.Equal(t, pngerr.PaletteIndexError{Index: 2, Size: 2}, err)
		assert.Equal(t, color.NRGBA{}, img.At(2, 0))
	})
	t.Run("out of range", func(t *testing.T) {
		img, err := CreateImage([]byte{9}, chunk.IHDR{Width: 1, Height: 1, BitDepth: 8, ColorType: chunk.Grayscale}, nil)
		require.NoError(t, err)
		for _, pt := range []image.Point{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
			_, err := img.Get(pt.X, pt.Y)
			assert.Equal(t, pngerr.RangeError{X: pt.X, Y: pt.Y, Width: 1, Height: 1}, err)
		}
	})
}

func TestCreateImageErrors(t *testing.T) {
	_, err := CreateImage([]byte{0}, chunk.IHDR{Width: 1, Height: 1, BitDepth: 8, ColorType: chunk.Indexed}, nil)
	assert.Equal(t, pngerr.MissingPaletteError{}, err)

	_, err = CreateImage([]byte{0, 0}, chunk.IHDR{Width: 1, Height: 1, BitDepth: 8, ColorType: chunk.RGB}, nil)
	var formatErr pngerr.FormatError
	assert.ErrorAs(t, err, &formatErr)

	_, err = CreateImage(nil, chunk.IHDR{Width: 1, Height: 1, BitDepth: 8, ColorType: 5}, nil)
	assert.ErrorAs(t, err, &formatErr)
}

func TestImageInterface(t *testing.T) {
	img, err := CreateImage([]byte{
		10, 20, 30, 40, 50, 60,
	}, chunk.IHDR{Width: 2, Height: 1, BitDepth: 8, ColorType: chunk.RGB}, nil)
	require.NoError(t, err)

	var _ image.Image = img
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, color.NRGBAModel, img.ColorModel())
	assert.Equal(t, color.NRGBA{40, 50, 60, 255}, img.At(1, 0))

	nrgba := img.NRGBA()
	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 255}, nrgba.Pix)
}

func TestConcurrentGet(t *testing.T) {
	pix := make([]byte, 16*16)
	for i := range pix {
		pix[i] = byte(i)
	}
	img, err := CreateImage(pix, chunk.IHDR{Width: 16, Height: 16, BitDepth: 8, ColorType: chunk.Grayscale}, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := 0; y < 16; y++ {
				for x := 0; x < 16; x++ {
					c, err := img.Get(x, y)
					if assert.NoError(t, err) {
						assert.Equal(t, byte(y*16+x), c.R)
					}
				}
			}
		}()
	}
	wg.Wait()
}
