package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abQuiet           bool
	abContinueOnError bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files (globs allowed) with progress",
	Long: `Analyze multiple CSV/TSV/XLSX files. Markdown reports are printed one after another;
with --format json the reports are printed as a single JSON array.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		format, err := reportFormat(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		var failed []error
		// JSON reports are collected into one array
		var reports []*analysis.Report
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			t, in, err := loadTable(cmd, path)
			if err != nil {
				if !abContinueOnError {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Skipping %s: %v\n", path, err)
				failed = append(failed, err)
				continue
			}
			rep := report(t, in)
			if format == "json" {
				reports = append(reports, rep)
				continue
			}
			if err := writeReport(out, rep, format); err != nil {
				return err
			}
		}
		if format == "json" {
			if reports == nil {
				reports = []*analysis.Report{}
			}
			b, err := utils.PrettyJSON(reports)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed: %w", len(failed), total, errors.Join(failed...))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "report format: markdown|json (default from config)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress output")
	analyzeBatchCmd.Flags().BoolVar(&abContinueOnError, "continue-on-error", false, "report unreadable files and keep going")
	addInputFlags(analyzeBatchCmd)
}
