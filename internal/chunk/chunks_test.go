package chunk

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"basicpng.adpollak.net/internal/pngerr"
	"basicpng.adpollak.net/internal/pngtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSignature(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte(Signature)))
		assert.NoError(t, r.ReadSignature())
	})
	for i := 0; i < len(Signature); i++ {
		sig := []byte(Signature)
		sig[i] ^= 0x20
		r := NewReader(bytes.NewReader(append(sig, pngtest.IEND().Encode()...)))
		var formatErr pngerr.FormatError
		assert.True(t, errors.As(r.ReadSignature(), &formatErr), "byte %d altered", i)
	}
	t.Run("short", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte(Signature[:5])))
		var formatErr pngerr.FormatError
		assert.True(t, errors.As(r.ReadSignature(), &formatErr))
	})
}

func TestNext(t *testing.T) {
	t.Run("reads records in order", func(t *testing.T) {
		stream := append(pngtest.IHDR(2, 3, 8, 2).Encode(), pngtest.Chunk{Type: "tEXt", Data: []byte("hi")}.Encode()...)
		stream = append(stream, pngtest.IEND().Encode()...)
		r := NewReader(bytes.NewReader(stream))

		c, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, ChunkIHDR, c.Type)
		assert.Equal(t, uint32(13), c.Length)
		assert.Len(t, c.Data, 13)
		assert.True(t, c.VerifyCRC())

		c, err = r.Next()
		require.NoError(t, err)
		assert.Equal(t, ChunktEXt, c.Type)
		assert.Equal(t, []byte("hi"), c.Data)

		c, err = r.Next()
		require.NoError(t, err)
		assert.Equal(t, ChunkIEND, c.Type)
		assert.Empty(t, c.Data)

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})
	t.Run("private chunk keeps its name", func(t *testing.T) {
		r := NewReader(bytes.NewReader(pngtest.Chunk{Type: "prVt", Data: []byte{1}}.Encode()))
		c, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "prVt", c.Type.String())
		assert.False(t, c.Type.IsCritical())
		assert.True(t, c.Type.IsPrivate())
	})
	t.Run("partial length field is a clean end", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0, 0}))
		_, err := r.Next()
		assert.Equal(t, io.EOF, err)
	})
	t.Run("truncated payload", func(t *testing.T) {
		full := pngtest.Chunk{Type: "IDAT", Data: []byte{1, 2, 3, 4, 5}}.Encode()
		r := NewReader(bytes.NewReader(full[:10]))
		_, err := r.Next()
		assert.Equal(t, pngerr.FormatError("truncated chunk"), err)
	})
	t.Run("missing crc", func(t *testing.T) {
		full := pngtest.IEND().Encode()
		r := NewReader(bytes.NewReader(full[:9]))
		_, err := r.Next()
		assert.Equal(t, pngerr.FormatError("truncated chunk"), err)
	})
	t.Run("bad length", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0x80, 0, 0, 0, 'I', 'D', 'A', 'T'}))
		_, err := r.Next()
		var formatErr pngerr.FormatError
		assert.True(t, errors.As(err, &formatErr))
	})
	t.Run("crc is read but not enforced", func(t *testing.T) {
		bogus := uint32(0xdeadbeef)
		r := NewReader(bytes.NewReader(pngtest.Chunk{Type: "IEND", CRC: &bogus}.Encode()))
		c, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, bogus, c.Crc)
		assert.False(t, c.VerifyCRC())
	})
}

func TestChunkType(t *testing.T) {
	ct, err := FromString("PLTE")
	require.NoError(t, err)
	assert.Equal(t, ChunkPLTE, ct)
	assert.True(t, ct.IsCritical())

	ct, err = FromString("gAMA")
	require.NoError(t, err)
	assert.False(t, ct.IsCritical())

	ct, err = FromString("abcd")
	assert.Error(t, err)
	assert.Equal(t, Unknown, ct)
}
