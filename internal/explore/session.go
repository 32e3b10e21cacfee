package explore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/charts"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

// maxVariables is the number of columns a chart can combine.
const maxVariables = 2

// Session walks a user through choosing variables and chart types for a loaded table,
// writing one SVG file per rendered chart.
type Session struct {
	Table          *dataset.Table
	Classification analysis.Classification
	Renderer       *charts.Renderer
	OutputDir      string
	Prompt         *Prompter
	Out            io.Writer
	Logger         *slog.Logger

	written []string
}

// Run drives the menu loop until the user declines to continue or input ends. It returns
// the paths of the files written. End of input is not an error.
func (s *Session) Run() ([]string, error) {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	err := s.loop()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.Out)
		err = nil
	}
	if err == nil {
		fmt.Fprintln(s.Out, "Goodbye.")
	}
	return s.written, err
}

func (s *Session) loop() error {
	ok, err := s.Prompt.Confirm("Do you want to generate charts?")
	if err != nil || !ok {
		return err
	}
	for {
		req, err := s.selectVariables()
		if err != nil {
			return err
		}
		for {
			if err := s.chartFor(req); err != nil {
				return err
			}
			again, err := s.Prompt.Confirm("Generate another chart for this selection?")
			if err != nil {
				return err
			}
			if !again {
				break
			}
		}
		again, err := s.Prompt.Confirm("Select other variables?")
		if err != nil || !again {
			return err
		}
	}
}

func (s *Session) label(col string) string {
	k, _ := s.Classification.KindOf(col)
	return fmt.Sprintf("%s (%s)", col, k)
}

// selectVariables asks for one or two columns and, for two, which goes on the X axis.
func (s *Session) selectVariables() (charts.Request, error) {
	var chosen []string
	for len(chosen) < maxVariables {
		var remaining, labels []string
		for _, c := range s.Table.Columns() {
			if !slices.Contains(chosen, c) {
				remaining = append(remaining, c)
				labels = append(labels, s.label(c))
			}
		}
		if len(remaining) == 0 {
			break
		}
		i, err := s.Prompt.Choose("Select a variable:", labels)
		if err != nil {
			return charts.Request{}, err
		}
		chosen = append(chosen, remaining[i])
		if len(chosen) == maxVariables || len(remaining) == 1 {
			break
		}
		more, err := s.Prompt.Confirm("Select another variable?")
		if err != nil {
			return charts.Request{}, err
		}
		if !more {
			break
		}
	}
	x, y := chosen[0], ""
	if len(chosen) == 2 {
		i, err := s.Prompt.Choose("Which variable goes on the X axis?", []string{s.label(chosen[0]), s.label(chosen[1])})
		if err != nil {
			return charts.Request{}, err
		}
		x, y = chosen[i], chosen[1-i]
	}
	return charts.NewRequest(s.Classification, 0, x, y)
}

// chartFor offers the chart types legal for req's columns and renders the one picked.
func (s *Session) chartFor(req charts.Request) error {
	allowed, err := req.Allowed()
	if err != nil {
		return err
	}
	titles := make([]string, len(allowed))
	for i, t := range allowed {
		titles[i] = t.Title()
	}
	for {
		i, err := s.Prompt.Choose("Select a chart type:", titles)
		if err != nil {
			return err
		}
		req.Type = allowed[i]
		fig, err := s.Renderer.Render(s.Table, req)
		var sel *charts.SelectionError
		switch {
		case errors.As(err, &sel):
			fmt.Fprintf(s.Out, "⚠ %v\n", err)
			continue
		case errors.Is(err, charts.ErrNoData):
			fmt.Fprintf(s.Out, "⚠ %v\n", err)
			return nil
		case err != nil:
			return err
		}
		path, err := fig.Save(s.OutputDir)
		if err != nil {
			return err
		}
		s.written = append(s.written, path)
		s.Logger.Debug("chart saved", "path", path, "type", fig.Type.String())
		fmt.Fprintf(s.Out, "✓ %s saved to %s\n", fig.Title, path)
		return nil
	}
}
