package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"graphdraw/export"
)

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List export formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			descriptions := export.GetFormatDescriptions()

			var rows [][]string
			for _, f := range export.GetAvailableFormats() {
				rows = append(rows, []string{string(f), descriptions[f]})
			}

			fmt.Fprintln(w, brand.Sprint("Export formats"))
			table(w, []string{"FORMAT", "DESCRIPTION"}, rows)
		},
	}
}
