package scanline

import (
	"fmt"

	"basicpng.adpollak.net/internal/pngerr"
)

// Format describes how the samples of a scanline are laid out.
type Format struct {
	Width    int
	Channels int
	Depth    uint8
	Indexed  bool
}

// RowBytes is the packed length of one row, excluding the filter byte.
func (f Format) RowBytes() int {
	return (f.Width*f.Channels*int(f.Depth) + 7) / 8
}

// Samples is the unpacked length of one row: one byte per channel per pixel.
func (f Format) Samples() int {
	return f.Width * f.Channels
}

// StreamSize is how many inflated bytes height rows take, filter bytes
// included.
func (f Format) StreamSize(height int) int {
	return height * (1 + f.RowBytes())
}

// Reconstructor carries the only state shared between rows: the previous
// reconstructed row. It holds exactly two row buffers and swaps them after
// each row.
type Reconstructor struct {
	format  Format
	pr, cr  []byte
	scratch []byte
	y       int
}

func NewReconstructor(f Format) *Reconstructor {
	return &Reconstructor{
		format: f,
		// The previous row of row 0 is all zeroes, sized exactly like a row.
		pr:      make([]byte, f.Samples()),
		cr:      make([]byte, f.Samples()),
		scratch: make([]byte, 0, f.RowBytes()*8),
	}
}

// Row reconstructs the next scanline. line is the raw scanline including
// its leading filter byte. The returned slice is reused by the following
// call, so callers must copy it out before calling Row again.
func (r *Reconstructor) Row(line []byte) ([]byte, error) {
	if len(line) != 1+r.format.RowBytes() {
		return nil, pngerr.FormatError(fmt.Sprintf("row %d has %d bytes, want %d", r.y, len(line), 1+r.format.RowBytes()))
	}

	r.scratch = Unpack(r.scratch, line[1:], r.format.Depth, r.format.Indexed)
	if len(r.scratch) < len(r.cr) {
		return nil, pngerr.FormatError(fmt.Sprintf("row %d unpacks to %d samples, want %d", r.y, len(r.scratch), len(r.cr)))
	}
	// Padding bits at the end of a packed row are dropped here.
	copy(r.cr, r.scratch)

	if err := ReconstructRow(line[0], r.cr, r.pr, r.format.Channels); err != nil {
		return nil, err
	}

	row := r.cr
	// The current row for y is the previous row for y+1.
	r.pr, r.cr = r.cr, r.pr
	r.y++
	return row, nil
}

// Reconstruct turns a whole inflated stream of height rows into the pixel
// buffer: Samples() bytes per row, row-major.
func Reconstruct(data []byte, f Format, height int) ([]byte, error) {
	want := f.StreamSize(height)
	switch {
	case len(data) < want:
		return nil, pngerr.FormatError("not enough pixel data")
	case len(data) > want:
		return nil, pngerr.FormatError("too much pixel data")
	}

	stride := 1 + f.RowBytes()
	samples := f.Samples()
	pix := make([]byte, samples*height)
	r := NewReconstructor(f)
	for y := 0; y < height; y++ {
		row, err := r.Row(data[y*stride : (y+1)*stride])
		if err != nil {
			return nil, err
		}
		copy(pix[y*samples:], row)
	}
	return pix, nil
}
