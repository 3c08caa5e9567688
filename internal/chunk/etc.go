package chunk

import "errors"

type ChunkType struct {
	slug string
}

func (c ChunkType) String() string {
	return c.slug
}

// IsCritical reports whether the ancillary bit (bit 5 of the first byte) is
// clear.
func (c ChunkType) IsCritical() bool {
	return len(c.slug) == 4 && c.slug[0] >= 'A' && c.slug[0] <= 'Z'
}

// IsPrivate reports whether the chunk type is application specific.
func (c ChunkType) IsPrivate() bool {
	return len(c.slug) == 4 && c.slug[1] >= 'a' && c.slug[1] <= 'z'
}

// typeOf keeps whatever four bytes were in the stream, known or not.
func typeOf(b []byte) ChunkType {
	return ChunkType{string(b)}
}

// FromString looks s up among the chunk types registered by the PNG
// specification.
func FromString(s string) (ChunkType, error) {
	for _, t := range knownTypes {
		if t.slug == s {
			return t, nil
		}
	}
	return Unknown, errors.New("unknown chunk type")
}

var (
	Unknown = ChunkType{""}

	// NOTE: Critical chunks
	ChunkIHDR = ChunkType{"IHDR"}
	ChunkPLTE = ChunkType{"PLTE"}
	ChunkIDAT = ChunkType{"IDAT"}
	ChunkIEND = ChunkType{"IEND"}

	// NOTE:  Ancillary chunks
	ChunkcHRM = ChunkType{"cHRM"}
	ChunkgAMA = ChunkType{"gAMA"}
	ChunkiCCP = ChunkType{"iCCP"}
	ChunksBIT = ChunkType{"sBIT"}
	ChunksRGB = ChunkType{"sRGB"}
	ChunkbKGD = ChunkType{"bKGD"}
	ChunkhIST = ChunkType{"hIST"}
	ChunktRNS = ChunkType{"tRNS"}
	ChunkpHYs = ChunkType{"pHYs"}
	ChunksPLT = ChunkType{"sPLT"}
	ChunktIME = ChunkType{"tIME"}
	ChunkiTXt = ChunkType{"iTXt"}
	ChunktEXt = ChunkType{"tEXt"}
	ChunkzTXt = ChunkType{"zTXt"}
)

var knownTypes = []ChunkType{
	ChunkIHDR, ChunkPLTE, ChunkIDAT, ChunkIEND,
	ChunkcHRM, ChunkgAMA, ChunkiCCP, ChunksBIT, ChunksRGB, ChunkbKGD, ChunkhIST,
	ChunktRNS, ChunkpHYs, ChunksPLT, ChunktIME, ChunkiTXt, ChunktEXt, ChunkzTXt,
}
