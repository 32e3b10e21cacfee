package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var anaFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Classify the columns of a CSV/TSV/XLSX file and summarize them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := reportFormat(cmd)
		if err != nil {
			return err
		}
		t, in, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), report(t, in), format)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "report format: markdown|json (default from config)")
	addInputFlags(analyzeCmd)
}

func reportFormat(cmd *cobra.Command) (string, error) {
	f := settings().ReportFormat
	if cmd.Flags().Changed("format") {
		f = strings.ToLower(strings.TrimSpace(anaFormat))
	}
	switch f {
	case "markdown", "md":
		return "markdown", nil
	case "json":
		return "json", nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use markdown|json)", f)
}

func writeReport(w io.Writer, rep *analysis.Report, format string) error {
	if format == "json" {
		b, err := rep.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	_, err := fmt.Fprintln(w, rep.Markdown())
	return err
}
