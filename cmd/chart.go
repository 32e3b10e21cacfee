package cmd

import (
	"fmt"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/charts"
	"github.com/spf13/cobra"
)

var (
	chType      string
	chOutputDir string
)

var chartCmd = &cobra.Command{
	Use:   "chart <file> <x> [y]",
	Short: "Render one chart for one or two columns as SVG",
	Long: `Render one chart for one column, or for two columns with <x> on the horizontal axis.
Run 'eda chart-types <file> <x> [y]' to list the chart types available for the selection.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := charts.ParseChartType(chType)
		if err != nil {
			return err
		}
		t, in, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		x, y := args[1], ""
		if len(args) == 3 {
			y = args[2]
		}
		cls := analysis.Classify(t, analysisOptions(in))
		req, err := charts.NewRequest(cls, typ, x, y)
		if err != nil {
			return err
		}
		fig, err := newRenderer(in).Render(t, req)
		if err != nil {
			return err
		}
		dir := settings().OutputDir
		if cmd.Flags().Changed("output-dir") {
			dir = chOutputDir
		}
		path, err := fig.Save(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", fig.Title, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chType, "type", "t", "", "chart type (see 'eda chart-types')")
	chartCmd.Flags().StringVarP(&chOutputDir, "output-dir", "o", "", "directory for the SVG file (default from config)")
	_ = chartCmd.MarkFlagRequired("type")
	addInputFlags(chartCmd)
}
