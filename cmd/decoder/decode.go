package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	png "basicpng.adpollak.net"
	"basicpng.adpollak.net/internal/logging"
	"basicpng.adpollak.net/internal/oops"
	"github.com/spf13/cobra"
)

func init() {
	infoCommand := &cobra.Command{
		Use:   "info FILE",
		Short: "Print the dimensions and encoding of a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := decodeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			h := d.Header()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d-bit %s\n", args[0], d.Width(), d.Height(), h.BitDepth, h.ColorType)
			return nil
		},
	}

	pixelCommand := &cobra.Command{
		Use:   "pixel FILE X Y",
		Short: "Print the RGBA value of one pixel",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return oops.New(err, "bad x coordinate %q", args[1])
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return oops.New(err, "bad y coordinate %q", args[2])
			}

			d, err := decodeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c, err := d.Get(x, y)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d %d %d\n", c.R, c.G, c.B, c.A)
			return nil
		},
	}

	DecoderCommand.AddCommand(infoCommand, pixelCommand)
}

// decodeFile opens a PNG from disk and decodes it completely.
func decodeFile(ctx context.Context, path string) (*png.Decoder, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, oops.New(err, "failed to open %s", path)
	}
	defer file.Close()

	logging.Debug().Str("file", path).Msg("decoding")
	return png.DecodeContext(ctx, file)
}
