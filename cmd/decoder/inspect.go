package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"basicpng.adpollak.net/internal/chunk"
	"basicpng.adpollak.net/internal/oops"
	"github.com/spf13/cobra"
)

func init() {
	inspectCommand := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the chunks of a PNG and whether their CRCs match",
		Long: "List the chunks of a PNG and whether their CRCs match. The decoder " +
			"itself never checks CRCs; this is for diagnosing damaged files.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return oops.New(err, "failed to open %s", args[0])
			}
			defer file.Close()
			return inspect(cmd.OutOrStdout(), file)
		},
	}
	DecoderCommand.AddCommand(inspectCommand)
}

func inspect(out io.Writer, r io.Reader) error {
	cr := chunk.NewReader(r)
	if err := cr.ReadSignature(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tLENGTH\tCRITICAL\tCRC")
	for {
		c, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tw.Flush()
			return err
		}

		status := "ok"
		if !c.VerifyCRC() {
			status = fmt.Sprintf("MISMATCH (stored %08x)", c.Crc)
		}
		fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", c.Type, c.Length, c.Type.IsCritical(), status)
		if c.Type == chunk.ChunkIEND {
			break
		}
	}
	return tw.Flush()
}
