package config

import "github.com/rs/zerolog"

type DecoderConfig struct {
	LogLevel zerolog.Level

	// MaxInflatedBytes bounds how much the default inflater will produce
	// from the concatenated IDAT stream. Zero means no bound.
	MaxInflatedBytes int64
}
