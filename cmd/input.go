package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/eda-cli/internal/config"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
	"github.com/spf13/cobra"
)

// Input flags shared by every command that reads a table. Unset flags fall back to config.
var (
	inDelimiter  string
	inDecimal    string
	inThousands  string
	inSheetName  string
	inSheetIndex int
	inNAValues   string
)

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&inDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (default by extension)")
	c.Flags().StringVar(&inDecimal, "decimal", "", "decimal separator for numbers: '.'|','")
	c.Flags().StringVar(&inThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
	c.Flags().StringVar(&inSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	c.Flags().IntVar(&inSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	c.Flags().StringVar(&inNAValues, "na", "", "comma-separated cell values treated as missing (replaces the defaults)")
}

// input resolves load and number options from flags, then config.
type input struct {
	load   dataset.LoadOptions
	number analysis.NumberFormat
}

func resolveInput(cmd *cobra.Command) (input, error) {
	c := settings()
	pick := func(flag, flagVal, cfgVal string) string {
		if cmd.Flags().Changed(flag) {
			return flagVal
		}
		return cfgVal
	}
	var in input
	var err error
	if in.load.Delimiter, err = cfgpkg.Rune(pick("delimiter", inDelimiter, c.Delimiter)); err != nil {
		return in, fmt.Errorf("--delimiter: %w", err)
	}
	if in.number.DecimalSeparator, err = separator(pick("decimal", inDecimal, c.Decimal)); err != nil {
		return in, fmt.Errorf("--decimal: %w", err)
	}
	if in.number.ThousandsSeparator, err = separator(pick("thousands", inThousands, c.Thousands)); err != nil {
		return in, fmt.Errorf("--thousands: %w", err)
	}
	if in.number.DecimalSeparator != 0 && in.number.DecimalSeparator == in.number.ThousandsSeparator {
		return in, fmt.Errorf("decimal and thousands separators must differ")
	}
	in.load.SheetName = pick("sheet-name", inSheetName, c.SheetName)
	in.load.SheetIndex = c.SheetIndex
	if cmd.Flags().Changed("sheet-index") {
		in.load.SheetIndex = inSheetIndex
	}
	if in.load.SheetIndex < 1 {
		return in, fmt.Errorf("--sheet-index is 1-based, got %d", in.load.SheetIndex)
	}
	in.load.NAValues = c.NAValues
	if cmd.Flags().Changed("na") {
		in.load.NAValues = nil
		for _, s := range strings.Split(inNAValues, ",") {
			in.load.NAValues = append(in.load.NAValues, strings.TrimSpace(s))
		}
	}
	return in, nil
}

// separator accepts the names the config and flags use for number separators.
func separator(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "comma":
		return ',', nil
	case "dot":
		return '.', nil
	case "space":
		return ' ', nil
	}
	r, err := cfgpkg.Rune(s)
	if err != nil {
		return 0, err
	}
	switch r {
	case 0, ',', '.', ' ', '\'', '_':
		return r, nil
	}
	return 0, fmt.Errorf("unsupported separator %q (use '.', ',', 'space')", s)
}

// loadTable reads path with the resolved input options.
func loadTable(cmd *cobra.Command, path string) (*dataset.Table, input, error) {
	in, err := resolveInput(cmd)
	if err != nil {
		return nil, in, err
	}
	t, err := dataset.Load(path, in.load)
	if err != nil {
		return nil, in, err
	}
	slog.Debug("table loaded", "name", t.Name(), "rows", t.Rows(), "columns", len(t.Columns()))
	return t, in, nil
}

func analysisOptions(in input) analysis.Options {
	return analysis.Options{Number: in.number, Logger: slog.Default()}
}

func newRenderer(in input) *charts.Renderer {
	c := settings()
	return charts.NewRenderer(charts.RenderOptions{
		Width:     c.ChartWidth,
		Height:    c.ChartHeight,
		KDEPoints: c.KDEPoints,
		GridSize:  c.Density2DGrid,
		Number:    in.number,
		Logger:    slog.Default(),
	})
}

// report runs the analysis and appends the per-column chart menu.
func report(t *dataset.Table, in input) *analysis.Report {
	rep := analysis.Analyze(t, analysisOptions(in))
	rep.Sections = append(rep.Sections, analysis.Section{
		Title: "Chart types",
		Lines: charts.Menu(rep.Classification, t.Columns()),
	})
	return rep
}
