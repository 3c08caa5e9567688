// Package pngtest assembles PNG datastreams byte by byte for tests, so a
// fixture can carry exactly the chunks, filters and defects a case needs.
package pngtest

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zlib"
	"github.com/snksoft/crc"
)

const Signature = "\x89PNG\r\n\x1a\n"

// Chunk is one record to emit. A nil CRC means "compute the right one".
type Chunk struct {
	Type string
	Data []byte
	CRC  *uint32
}

// Encode writes length, type, data and CRC.
func (c Chunk) Encode() []byte {
	var buf bytes.Buffer
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(c.Data)))
	buf.Write(tmp[:])
	buf.WriteString(c.Type)
	buf.Write(c.Data)

	sum := uint32(crc.CalculateCRC(crc.CRC32, append([]byte(c.Type), c.Data...)))
	if c.CRC != nil {
		sum = *c.CRC
	}
	binary.BigEndian.PutUint32(tmp[:], sum)
	buf.Write(tmp[:])
	return buf.Bytes()
}

// Build prepends the signature to the encoded chunks.
func Build(chunks ...Chunk) []byte {
	out := []byte(Signature)
	for _, c := range chunks {
		out = append(out, c.Encode()...)
	}
	return out
}

func IHDR(width, height uint32, depth, colorType uint8) Chunk {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = depth
	data[9] = colorType
	return Chunk{Type: "IHDR", Data: data}
}

// PLTE flattens RGB triples into a palette chunk.
func PLTE(entries ...[3]uint8) Chunk {
	data := make([]byte, 0, 3*len(entries))
	for _, e := range entries {
		data = append(data, e[:]...)
	}
	return Chunk{Type: "PLTE", Data: data}
}

func IDAT(data []byte) Chunk {
	return Chunk{Type: "IDAT", Data: data}
}

func IEND() Chunk {
	return Chunk{Type: "IEND"}
}

// Deflate zlib-compresses raw with default settings.
func Deflate(raw []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Scanlines joins rows that already start with their filter byte.
func Scanlines(rows ...[]byte) []byte {
	var raw []byte
	for _, row := range rows {
		raw = append(raw, row...)
	}
	return raw
}

// Image is the common fixture: IHDR, an optional palette, the deflated
// scanlines split over idatParts IDAT chunks, and IEND.
func Image(header Chunk, palette *Chunk, raw []byte, idatParts int) []byte {
	compressed := Deflate(raw)
	chunks := []Chunk{header}
	if palette != nil {
		chunks = append(chunks, *palette)
	}
	if idatParts < 1 {
		idatParts = 1
	}
	size := (len(compressed) + idatParts - 1) / idatParts
	for start := 0; start < len(compressed); start += size {
		end := start + size
		if end > len(compressed) {
			end = len(compressed)
		}
		chunks = append(chunks, IDAT(compressed[start:end]))
	}
	chunks = append(chunks, IEND())
	return Build(chunks...)
}
