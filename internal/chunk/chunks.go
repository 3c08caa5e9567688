package chunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"basicpng.adpollak.net/internal/pngerr"
	"github.com/snksoft/crc"
)

// Signature is the 8-byte magic every PNG datastream starts with.
// 137 80 78 71 13 10 26 10
const Signature = "\x89\x50\x4E\x47\x0D\x0A\x1A\x0A"

// Chunk defines the chunk layout as specified by PNG datastream structure.
type Chunk struct {
	Length uint32    // A four-byte unsigned integer giving the number of bytes in the chunk's data field.
	Type   ChunkType // A sequence of four bytes defining the chunk type.
	Data   []byte    // The data bytes of the relevant chunk type; can be zero length.
	Crc    uint32    // The CRC stored in the datastream, over chunk type and data but NOT length.
}

// VerifyCRC recomputes the CRC-32 over type and data and compares it with
// the stored one. The decoder never calls this.
func (c *Chunk) VerifyCRC() bool {
	precedingBytes := append([]byte(c.Type.slug), c.Data...)
	return uint32(crc.CalculateCRC(crc.CRC32, precedingBytes)) == c.Crc
}

// Reader splits a PNG datastream into chunks.
type Reader struct {
	r   io.Reader
	tmp [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadSignature consumes the 8-byte PNG signature.
func (r *Reader) ReadSignature() error {
	_, err := io.ReadFull(r.r, r.tmp[:len(Signature)])
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return pngerr.FormatError("not a PNG file")
	case err != nil:
		return err
	case !bytes.Equal(r.tmp[:len(Signature)], []byte(Signature)):
		return pngerr.FormatError(fmt.Sprintf("not a PNG file: signature %x", r.tmp[:len(Signature)]))
	}
	return nil
}

// Next reads one chunk record. It returns io.EOF when fewer than four bytes
// remain for the length field, which is how an untidy stream without IEND
// ends. The stored CRC is read but not checked.
func (r *Reader) Next() (*Chunk, error) {
	// Below is visually what a chunk in the PNG datastream looks like.
	//  +------------+ +------------+ +------------+ +-------+
	//  |   LENGTH   | | CHUNK TYPE | | CHUNK DATA | |  CRC  |
	//  +------------+ +------------+ +------------+ +-------+
	if _, err := io.ReadFull(r.r, r.tmp[:4]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	length := binary.BigEndian.Uint32(r.tmp[:4])
	if length > 0x7fffffff {
		return nil, pngerr.FormatError(fmt.Sprintf("bad chunk length: %d", length))
	}

	if _, err := io.ReadFull(r.r, r.tmp[:4]); err != nil {
		return nil, truncated(err)
	}
	chunkType := typeOf(r.tmp[:4])

	// LimitReader keeps a lying length field from allocating gigabytes up front.
	data, err := io.ReadAll(io.LimitReader(r.r, int64(length)))
	if err != nil {
		return nil, err
	}
	if len(data) != int(length) {
		return nil, truncated(io.ErrUnexpectedEOF)
	}

	if _, err := io.ReadFull(r.r, r.tmp[:4]); err != nil {
		return nil, truncated(err)
	}

	return &Chunk{
		Length: length,
		Type:   chunkType,
		Data:   data,
		Crc:    binary.BigEndian.Uint32(r.tmp[:4]),
	}, nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return pngerr.FormatError("truncated chunk")
	}
	return err
}
