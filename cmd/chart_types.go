package cmd

import (
	"fmt"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/charts"
	"github.com/spf13/cobra"
)

var chartTypesCmd = &cobra.Command{
	Use:   "chart-types <file> <x> [y]",
	Short: "List the chart types available for one or two columns",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, in, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		x, y := args[1], ""
		if len(args) == 3 {
			y = args[2]
		}
		cls := analysis.Classify(t, analysisOptions(in))
		req, err := charts.NewRequest(cls, 0, x, y)
		if err != nil {
			return err
		}
		allowed, err := req.Allowed()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, c := range req.Columns() {
			fmt.Fprintf(out, "%s: %s\n", c, req.Kinds()[i])
		}
		fmt.Fprintln(out, "Available charts:")
		for _, ct := range allowed {
			fmt.Fprintf(out, "  %-16s %s\n", ct, ct.Title())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartTypesCmd)
	addInputFlags(chartTypesCmd)
}
