// Package compression provides the inflate step the decoder hands the
// concatenated IDAT payloads to.
package compression

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrTooLarge is returned when inflating would produce more than the
// configured limit.
var ErrTooLarge = errors.New("inflated data exceeds limit")

// An Inflater turns a complete zlib stream into its decompressed bytes.
type Inflater interface {
	Inflate(compressed []byte) ([]byte, error)
}

// InflaterFunc adapts a plain function to the Inflater interface.
type InflaterFunc func(compressed []byte) ([]byte, error)

func (f InflaterFunc) Inflate(compressed []byte) ([]byte, error) {
	return f(compressed)
}

// Zlib inflates zlib-wrapped DEFLATE streams with the default window and no
// preset dictionary.
type Zlib struct {
	// MaxSize caps the output length. Zero or negative means unlimited.
	MaxSize int64
}

func (z Zlib) Inflate(compressed []byte) ([]byte, error) {
	return InflateData(compressed, z.MaxSize)
}

// InflateData decompresses compressedData, failing with ErrTooLarge once
// more than maxSize bytes come out (when maxSize > 0).
func InflateData(compressedData []byte, maxSize int64) ([]byte, error) {
	zlibReader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, err
	}
	defer zlibReader.Close()

	var src io.Reader = zlibReader
	if maxSize > 0 {
		src = io.LimitReader(zlibReader, maxSize+1)
	}

	var decompressedData bytes.Buffer
	n, err := io.Copy(&decompressedData, src)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && n > maxSize {
		return nil, ErrTooLarge
	}
	return decompressedData.Bytes(), nil
}
