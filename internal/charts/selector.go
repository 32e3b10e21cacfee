package charts

import (
	"fmt"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

// Available returns the chart types legal for a single column of kind k, in menu order.
func Available(k analysis.Kind) ([]ChartType, error) {
	switch k {
	case analysis.Categorical:
		return []ChartType{Bar, Pie, Pareto}, nil
	case analysis.Continuous:
		return []ChartType{Histogram, Density, BoxPlot}, nil
	case analysis.Discrete:
		return []ChartType{Bar, Histogram, Pareto, BoxPlot}, nil
	}
	return nil, &InvariantError{Detail: fmt.Sprintf("no single-variable charts for %v", k)}
}

// AvailablePair returns the chart types legal for two columns. The first matching rule
// wins; the result does not depend on argument order.
func AvailablePair(k1, k2 analysis.Kind) ([]ChartType, error) {
	if !k1.Valid() || !k2.Valid() {
		return nil, &InvariantError{Detail: fmt.Sprintf("no two-variable charts for %v and %v", k1, k2)}
	}
	cat1, cat2 := k1 == analysis.Categorical, k2 == analysis.Categorical
	switch {
	case cat1 && cat2:
		return []ChartType{Contingency}, nil
	case k1 == analysis.Continuous && k2 == analysis.Continuous:
		return []ChartType{Scatter, Density2D}, nil
	case cat1 != cat2:
		return []ChartType{GroupedBoxPlot, Violin}, nil
	case k1 == analysis.Discrete && k2 == analysis.Discrete:
		return []ChartType{Scatter}, nil
	case k1.Numeric() && k2.Numeric():
		// one continuous, one discrete
		return []ChartType{Scatter}, nil
	}
	return nil, &InvariantError{Detail: fmt.Sprintf("unmatched kinds %v and %v", k1, k2)}
}

// Request selects one or two columns and a chart type. X is the column on the horizontal
// axis; Y is empty for single-variable charts.
type Request struct {
	Type  ChartType
	X     string
	Y     string
	XKind analysis.Kind
	YKind analysis.Kind
}

// NewRequest builds a request, looking the columns' kinds up in cls. Unknown columns are
// reported as *SelectionError.
func NewRequest(cls analysis.Classification, typ ChartType, x string, y string) (Request, error) {
	req := Request{Type: typ, X: x, Y: y}
	k, ok := cls.KindOf(x)
	if !ok {
		return req, &SelectionError{Type: typ, Columns: req.Columns(), Err: fmt.Errorf("column %q: %w", x, dataset.ErrUnknownColumn)}
	}
	req.XKind = k
	if y != "" {
		k, ok := cls.KindOf(y)
		if !ok {
			return req, &SelectionError{Type: typ, Columns: req.Columns(), Err: fmt.Errorf("column %q: %w", y, dataset.ErrUnknownColumn)}
		}
		req.YKind = k
	}
	return req, nil
}

// Paired reports whether the request involves two columns.
func (r Request) Paired() bool { return r.Y != "" }

// Columns returns the selected column names, X first.
func (r Request) Columns() []string {
	if r.Paired() {
		return []string{r.X, r.Y}
	}
	return []string{r.X}
}

// Kinds returns the kinds of the selected columns, X first.
func (r Request) Kinds() []analysis.Kind {
	if r.Paired() {
		return []analysis.Kind{r.XKind, r.YKind}
	}
	return []analysis.Kind{r.XKind}
}

// Allowed returns the legal chart types for the request's columns.
func (r Request) Allowed() ([]ChartType, error) {
	if r.Paired() {
		return AvailablePair(r.XKind, r.YKind)
	}
	return Available(r.XKind)
}

// Validate checks that the request's chart type is legal for its kinds.
func (r Request) Validate() error {
	if r.Paired() && r.X == r.Y {
		return &SelectionError{Type: r.Type, Columns: r.Columns(), Err: fmt.Errorf("the two variables must differ")}
	}
	allowed, err := r.Allowed()
	if err != nil {
		return err
	}
	for _, t := range allowed {
		if t == r.Type {
			return nil
		}
	}
	return &SelectionError{Type: r.Type, Columns: r.Columns(), Kinds: r.Kinds(), Allowed: allowed}
}

// Menu describes the chart types available for each column, for reports.
func Menu(cls analysis.Classification, columns []string) []string {
	lines := make([]string, 0, len(columns))
	for _, c := range columns {
		k, ok := cls.KindOf(c)
		if !ok {
			continue
		}
		ts, err := Available(k)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", c, k, typeList(ts)))
	}
	return lines
}
