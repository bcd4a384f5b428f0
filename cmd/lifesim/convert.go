package main

import (
	"fmt"

	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/spf13/cobra"
)

var convertTo string

func newConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert [in] [out]",
		Short: "re-encode a pattern file",
		Long: "convert reads a pattern in any supported format and writes it in another.\n" +
			"Formats are taken from the file extensions unless --format (input) or --to (output) is given.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := pattern.Load(args[0], pattern.ParseFormat(format))
			if err != nil {
				return err
			}
			to := pattern.ParseFormat(convertTo)
			if convertTo != "" && to == pattern.FormatUnknown {
				return fmt.Errorf("%w: %s (want one of %v)", pattern.ErrUnsupportedFormat, convertTo, pattern.Names())
			}
			written, err := pattern.Save(args[1], g, to)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s (%dx%d, %d alive)\n", args[0], written, g.Rows(), g.Cols(), g.Population())
			return nil
		},
	}
	convertCmd.Flags().StringVar(&convertTo, "to", "", "output format")
	return convertCmd
}
