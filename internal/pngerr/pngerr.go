// Package pngerr holds the error values every stage of the decoder reports.
package pngerr

import "fmt"

// A FormatError reports that the input is not a valid PNG.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// An UnsupportedFeatureError reports that the input uses a valid but
// unimplemented PNG feature.
type UnsupportedFeatureError string

func (e UnsupportedFeatureError) Error() string { return "png: unsupported feature: " + string(e) }

// MissingPaletteError reports an indexed-color image that finished parsing
// without a usable PLTE chunk.
type MissingPaletteError struct{}

func (MissingPaletteError) Error() string {
	return "png: indexed color image has no PLTE chunk"
}

// A RangeError reports pixel coordinates outside the image.
type RangeError struct {
	X, Y          int
	Width, Height int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("png: pixel (%d, %d) outside %dx%d image", e.X, e.Y, e.Width, e.Height)
}

// A PaletteIndexError reports an indexed sample with no palette entry.
type PaletteIndexError struct {
	Index uint8
	Size  int
}

func (e PaletteIndexError) Error() string {
	return fmt.Sprintf("png: palette index %d out of range for %d entries", e.Index, e.Size)
}
