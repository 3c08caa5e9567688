package config

import (
	"os"

	"github.com/rs/zerolog"
)

const LogLevelEnv = "BASICPNG_LOG_LEVEL"

var Config = DecoderConfig{
	LogLevel:         zerolog.InfoLevel,
	MaxInflatedBytes: 1 << 30,
}

func init() {
	if level, ok := os.LookupEnv(LogLevelEnv); ok {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			Config.LogLevel = parsed
		}
	}
}
