package charts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
)

// ErrNoData indicates the selected columns have no values usable by the chart.
var ErrNoData = errors.New("no usable values for chart")

// SelectionError reports a chart request the user can fix by choosing again: a chart type
// outside the legal set for the columns' kinds, or a column that does not exist.
type SelectionError struct {
	Type    ChartType
	Columns []string
	Kinds   []analysis.Kind
	Allowed []ChartType
	Err     error
}

func (e *SelectionError) Error() string {
	if e == nil {
		return "invalid selection"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid selection %s: %v", strings.Join(e.Columns, ", "), e.Err)
	}
	kinds := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		kinds[i] = k.String()
	}
	return fmt.Sprintf("chart type %s is not available for %s (%s); choose one of: %s",
		e.Type, strings.Join(e.Columns, ", "), strings.Join(kinds, ", "), typeList(e.Allowed))
}

func (e *SelectionError) Unwrap() error { return e.Err }

// InvariantError signals a state the selection rules cannot produce, such as an invalid
// kind or a chart type without a renderer. It indicates a bug, not a user mistake.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "internal invariant violated: " + e.Detail
}
