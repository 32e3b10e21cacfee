package cmd

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/eda-cli/internal/explore"
	"github.com/spf13/cobra"
)

var exOutputDir string

var exploreCmd = &cobra.Command{
	Use:   "explore <file>",
	Short: "Print the summary, then pick variables and charts from interactive menus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, in, err := loadTable(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		rep := report(t, in)
		fmt.Fprintln(out, rep.Markdown())

		dir := settings().OutputDir
		if cmd.Flags().Changed("output-dir") {
			dir = exOutputDir
		}
		s := &explore.Session{
			Table:          t,
			Classification: rep.Classification,
			Renderer:       newRenderer(in),
			OutputDir:      dir,
			Prompt:         explore.NewPrompter(cmd.InOrStdin(), out),
			Out:            out,
			Logger:         slog.Default(),
		}
		written, err := s.Run()
		if len(written) > 0 {
			fmt.Fprintf(out, "✓ Wrote %d chart(s) to %s\n", len(written), dir)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().StringVarP(&exOutputDir, "output-dir", "o", "", "directory for SVG files (default from config)")
	addInputFlags(exploreCmd)
}
