package main

import (
	"os"

	"basicpng.adpollak.net/internal/config"
	"basicpng.adpollak.net/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

var DecoderCommand = &cobra.Command{
	Use:          "decoder",
	Short:        "Decode basic PNG files into RGBA8 pixels",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("log-level") {
			return nil
		}
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.SetLevel(level)
		return nil
	},
}

func init() {
	DecoderCommand.PersistentFlags().StringVar(&logLevel, "log-level", config.Config.LogLevel.String(), "log level (trace, debug, info, warn, error)")
}

func main() {
	defer logging.LogPanics(nil)
	if err := DecoderCommand.Execute(); err != nil {
		logging.Error().Err(err).Msg("decoder failed")
		os.Exit(1)
	}
}
