package images

import (
	"fmt"
	"image"
	"image/color"

	"basicpng.adpollak.net/internal/chunk"
	"basicpng.adpollak.net/internal/pngerr"
)

// Image is a reconstructed pixel buffer plus what is needed to read RGBA8
// values back out of it. It is never modified after CreateImage returns, so
// concurrent reads are safe.
type Image struct {
	Width, Height int
	Channels      int
	Indexed       bool
	Palette       chunk.Palette

	// Pix holds Channels samples per pixel, row-major, 8 bits each.
	Pix []byte
}

// CreateImage takes the reconstructed samples and the IHDR they were decoded
// with and wraps them for pixel access.
func CreateImage(pixels []byte, ihdr chunk.IHDR, palette chunk.Palette) (*Image, error) {
	img := &Image{
		Width:    int(ihdr.Width),
		Height:   int(ihdr.Height),
		Channels: ihdr.Channels(),
		Indexed:  ihdr.Indexed(),
		Palette:  palette,
		Pix:      pixels,
	}
	if img.Channels == 0 {
		return nil, pngerr.FormatError(fmt.Sprintf("invalid color type %d", uint8(ihdr.ColorType)))
	}
	if img.Indexed && len(palette) == 0 {
		return nil, pngerr.MissingPaletteError{}
	}
	if want := img.Width * img.Height * img.Channels; len(pixels) != want {
		return nil, pngerr.FormatError(fmt.Sprintf("pixel buffer has %d bytes, want %d", len(pixels), want))
	}
	return img, nil
}

// Get resolves the pixel at (x, y) to straight RGBA8, looking indexed
// samples up in the palette.
func (p *Image) Get(x, y int) (color.NRGBA, error) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return color.NRGBA{}, pngerr.RangeError{X: x, Y: y, Width: p.Width, Height: p.Height}
	}
	// Remember, our pixels are stored IN-MEMORY as a 1D ARRAY of samples.
	offset := (y*p.Width + x) * p.Channels
	sample := p.Pix[offset : offset+p.Channels]

	if p.Indexed {
		index := sample[0]
		if int(index) >= len(p.Palette) {
			return color.NRGBA{}, pngerr.PaletteIndexError{Index: index, Size: len(p.Palette)}
		}
		entry := p.Palette[index]
		sample = entry[:]
	}
	return Pad(sample), nil
}

// Pad widens 1 to 4 samples to RGBA: grey is copied into R, G and B, and a
// missing alpha is opaque.
func Pad(sample []byte) color.NRGBA {
	switch len(sample) {
	case 1:
		return color.NRGBA{R: sample[0], G: sample[0], B: sample[0], A: 0xff}
	case 2:
		return color.NRGBA{R: sample[0], G: sample[0], B: sample[0], A: sample[1]}
	case 3:
		return color.NRGBA{R: sample[0], G: sample[1], B: sample[2], A: 0xff}
	case 4:
		return color.NRGBA{R: sample[0], G: sample[1], B: sample[2], A: sample[3]}
	}
	return color.NRGBA{}
}

func (p *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

func (p *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements image.Image. Pixels Get cannot resolve come back as
// transparent black.
func (p *Image) At(x, y int) color.Color {
	c, err := p.Get(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return c
}

// NRGBA copies the image into a standard library NRGBA image.
func (p *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(p.Bounds())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c, _ := p.Get(x, y)
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
