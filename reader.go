// Package png decodes non-interlaced PNG images with IHDR, PLTE, IDAT and
// IEND chunks into RGBA8 pixels.
//
// Every color type and bit depth PNG allows is accepted. 16-bit samples
// are rounded to 8 bits, sub-byte grey samples are stretched to 0..255, and
// palette indices are resolved on access. Ancillary chunks (transparency,
// gamma, text...) and chunk CRCs are ignored.
package png

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"basicpng.adpollak.net/internal/chunk"
	"basicpng.adpollak.net/internal/compression"
	"basicpng.adpollak.net/internal/config"
	"basicpng.adpollak.net/internal/images"
	"basicpng.adpollak.net/internal/logging"
	"basicpng.adpollak.net/internal/oops"
	"basicpng.adpollak.net/internal/pngerr"
	"basicpng.adpollak.net/internal/scanline"
	"github.com/rs/zerolog"
)

type (
	// A FormatError reports that the input is not a valid PNG.
	FormatError = pngerr.FormatError
	// An UnsupportedFeatureError reports that the input uses a valid but
	// unimplemented PNG feature.
	UnsupportedFeatureError = pngerr.UnsupportedFeatureError
	// MissingPaletteError reports an indexed-color image without a PLTE chunk.
	MissingPaletteError = pngerr.MissingPaletteError
	RangeError          = pngerr.RangeError
	PaletteIndexError   = pngerr.PaletteIndexError

	// Header is the parsed IHDR chunk.
	Header = chunk.IHDR
	// An Inflater decompresses the concatenated IDAT payloads.
	Inflater = compression.Inflater
)

// A Decoder is a fully decoded image. Its methods only read, so a Decoder
// may be shared between goroutines.
type Decoder struct {
	header Header
	img    *images.Image
}

func (d *Decoder) Width() int     { return d.img.Width }
func (d *Decoder) Height() int    { return d.img.Height }
func (d *Decoder) Header() Header { return d.header }

// Get returns the pixel at (x, y) as straight RGBA8. Coordinates outside
// the image yield a RangeError.
func (d *Decoder) Get(x, y int) (color.NRGBA, error) {
	return d.img.Get(x, y)
}

// Image exposes the decoded pixels through the standard image interface.
func (d *Decoder) Image() image.Image {
	return d.img
}

// NRGBA returns a copy of the pixels as a standard library NRGBA image.
func (d *Decoder) NRGBA() *image.NRGBA {
	return d.img.NRGBA()
}

type Option func(*decoder)

// WithInflater replaces the zlib implementation used for the IDAT stream.
func WithInflater(inflater Inflater) Option {
	return func(d *decoder) {
		d.inflater = inflater
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(d *decoder) {
		d.logger = logger
	}
}

// Decode reads a whole PNG datastream from r.
func Decode(r io.Reader, opts ...Option) (*Decoder, error) {
	return DecodeContext(context.Background(), r, opts...)
}

// DecodeContext is Decode with cancellation. ctx is checked before every
// read from r and once more before the pixel data is inflated; the
// inflate and reconstruct pass itself is not interrupted.
func DecodeContext(ctx context.Context, r io.Reader, opts ...Option) (*Decoder, error) {
	d := newDecoder(ctx, r, opts)
	if err := d.r.ReadSignature(); err != nil {
		return nil, oops.New(err, "failed to read PNG signature")
	}
	if err := d.readChunks(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, oops.New(err, "decode cancelled before inflating image data")
	}
	return d.finish()
}

// DecodeConfig reads chunks only until the IHDR has been seen and reports
// the image dimensions.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := newDecoder(context.Background(), r, nil)
	if err := d.r.ReadSignature(); err != nil {
		return image.Config{}, oops.New(err, "failed to read PNG signature")
	}
	for !d.seenIHDR {
		c, err := d.r.Next()
		if err == io.EOF {
			return image.Config{}, FormatError("missing IHDR")
		}
		if err != nil {
			return image.Config{}, oops.New(err, "failed to read chunk")
		}
		if c.Type == chunk.ChunkIEND {
			return image.Config{}, FormatError("missing IHDR")
		}
		if c.Type == chunk.ChunkIHDR {
			if _, err := d.handleIHDR(c); err != nil {
				return image.Config{}, err
			}
		}
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(d.header.Width),
		Height:     int(d.header.Height),
	}, nil
}

// decoder is the state of one decode pass.
type decoder struct {
	r        *chunk.Reader
	logger   zerolog.Logger
	inflater Inflater

	header   Header
	seenIHDR bool
	palette  chunk.Palette
	idat     bytes.Buffer
	nChunks  int
}

func newDecoder(ctx context.Context, r io.Reader, opts []Option) *decoder {
	d := &decoder{
		r:      chunk.NewReader(&contextReader{ctx: ctx, r: r}),
		logger: *logging.GlobalLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type step int

const (
	stepContinue step = iota
	stepEnd
)

type chunkHandler func(d *decoder, c *chunk.Chunk) (step, error)

// chunkHandlers is the complete set of chunks the decoder acts on.
var chunkHandlers = map[chunk.ChunkType]chunkHandler{
	chunk.ChunkIHDR: (*decoder).handleIHDR,
	chunk.ChunkPLTE: (*decoder).handlePLTE,
	chunk.ChunkIDAT: (*decoder).handleIDAT,
	chunk.ChunkIEND: (*decoder).handleIEND,
}

// readChunks dispatches chunks until IEND or until the stream runs out in
// front of a length field. Both are a normal end.
func (d *decoder) readChunks() error {
	for {
		c, err := d.r.Next()
		if err == io.EOF {
			d.logger.Debug().Int("chunks", d.nChunks).Msg("stream ended without IEND")
			return nil
		}
		if err != nil {
			return oops.New(err, "failed to read chunk %d", d.nChunks)
		}
		d.nChunks++

		handler, ok := chunkHandlers[c.Type]
		if !ok {
			d.logger.Debug().
				Str("type", c.Type.String()).
				Uint32("length", c.Length).
				Bool("critical", c.Type.IsCritical()).
				Msg("skipping chunk")
			continue
		}
		next, err := handler(d, c)
		if err != nil {
			return err
		}
		if next == stepEnd {
			return nil
		}
	}
}

func (d *decoder) handleIHDR(c *chunk.Chunk) (step, error) {
	ihdr, err := chunk.ParseIHDR(c.Data)
	if err != nil {
		return stepEnd, err
	}
	d.header = ihdr
	d.seenIHDR = true
	d.logger.Debug().
		Uint32("width", ihdr.Width).
		Uint32("height", ihdr.Height).
		Uint8("bitDepth", ihdr.BitDepth).
		Stringer("colorType", ihdr.ColorType).
		Msg("parsed IHDR")
	return stepContinue, nil
}

func (d *decoder) handlePLTE(c *chunk.Chunk) (step, error) {
	palette, ok := chunk.ParsePLTE(c.Data)
	if !ok {
		d.logger.Debug().Uint32("length", c.Length).Msg("ignoring unusable PLTE")
		return stepContinue, nil
	}
	d.palette = palette
	return stepContinue, nil
}

func (d *decoder) handleIDAT(c *chunk.Chunk) (step, error) {
	d.idat.Write(c.Data)
	return stepContinue, nil
}

func (d *decoder) handleIEND(c *chunk.Chunk) (step, error) {
	return stepEnd, nil
}

// finish inflates the collected IDAT payloads and rebuilds the pixels. It
// runs once per decode, after the chunk loop.
func (d *decoder) finish() (*Decoder, error) {
	if !d.seenIHDR {
		return nil, FormatError("missing IHDR")
	}
	if d.header.Indexed() && len(d.palette) == 0 {
		return nil, MissingPaletteError{}
	}

	format := scanline.Format{
		Width:    int(d.header.Width),
		Channels: d.header.Channels(),
		Depth:    d.header.BitDepth,
		Indexed:  d.header.Indexed(),
	}
	height := int(d.header.Height)
	want := format.StreamSize(height)

	raw, err := d.inflate(int64(want))
	if err != nil {
		return nil, err
	}
	pix, err := scanline.Reconstruct(raw, format, height)
	if err != nil {
		return nil, err
	}
	img, err := images.CreateImage(pix, d.header, d.palette)
	if err != nil {
		return nil, err
	}

	d.logger.Debug().
		Int("width", img.Width).
		Int("height", img.Height).
		Int("compressed", d.idat.Len()).
		Int("inflated", len(raw)).
		Msg("decoded image")
	return &Decoder{header: d.header, img: img}, nil
}

// inflate runs the configured Inflater, or a zlib one capped just above the
// size the header promises.
func (d *decoder) inflate(want int64) ([]byte, error) {
	if d.inflater != nil {
		raw, err := d.inflater.Inflate(d.idat.Bytes())
		if err != nil {
			return nil, oops.New(err, "failed to inflate image data")
		}
		return raw, nil
	}

	limit := want + 1
	if ceiling := config.Config.MaxInflatedBytes; ceiling > 0 && ceiling < limit {
		if ceiling < want {
			return nil, UnsupportedFeatureError(fmt.Sprintf("image data of %d bytes exceeds inflate limit %d", want, ceiling))
		}
		limit = ceiling
	}
	raw, err := compression.Zlib{MaxSize: limit}.Inflate(d.idat.Bytes())
	if errors.Is(err, compression.ErrTooLarge) {
		return nil, FormatError("too much pixel data")
	}
	if err != nil {
		return nil, oops.New(err, "failed to inflate image data")
	}
	return raw, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
