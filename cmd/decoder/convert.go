package main

import (
	"os"

	"basicpng.adpollak.net/internal/logging"
	"basicpng.adpollak.net/internal/oops"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
)

func init() {
	convertCommand := &cobra.Command{
		Use:   "convert FILE OUT.bmp",
		Short: "Decode a PNG and write its RGBA pixels as a BMP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := decodeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out, err := os.Create(args[1])
			if err != nil {
				return oops.New(err, "failed to create %s", args[1])
			}
			if err := bmp.Encode(out, d.NRGBA()); err != nil {
				out.Close()
				return oops.New(err, "failed to encode %s", args[1])
			}
			if err := out.Close(); err != nil {
				return oops.New(err, "failed to write %s", args[1])
			}

			logging.Info().
				Str("from", args[0]).
				Str("to", args[1]).
				Int("width", d.Width()).
				Int("height", d.Height()).
				Msg("Converted image")
			return nil
		},
	}
	DecoderCommand.AddCommand(convertCommand)
}
