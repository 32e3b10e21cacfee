package analysis

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/KaramelBytes/eda-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// NullCount is the missing-value tally of one column.
type NullCount struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`
}

// Nulls counts missing cells per column, in column order. Columns without missing cells
// are omitted. Only the table's own missing markers count; text that merely fails numeric
// coercion is not missing here.
func Nulls(t *dataset.Table) []NullCount {
	rows := t.Rows()
	var out []NullCount
	if rows == 0 {
		return out
	}
	for _, name := range t.Columns() {
		col, err := t.Column(name)
		if err != nil {
			continue
		}
		n := 0
		for _, m := range col.Missing {
			if m {
				n++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, NullCount{Column: name, Count: n, Fraction: float64(n) / float64(rows)})
	}
	return out
}

// Stats holds the descriptive statistics of one numeric column. All four values are nil
// when the column has no numeric values left after dropping missing ones; StdDev is also
// nil when fewer than two values remain.
type Stats struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	Mode   *float64 `json:"mode"`
	StdDev *float64 `json:"std_dev"`
}

// MarshalJSON writes non-finite statistics as the strings "+Inf", "-Inf" and "NaN",
// which encoding/json cannot represent as numbers.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count  int `json:"count"`
		Mean   any `json:"mean"`
		Median any `json:"median"`
		Mode   any `json:"mode"`
		StdDev any `json:"std_dev"`
	}{s.Count, jsonValue(s.Mean), jsonValue(s.Median), jsonValue(s.Mode), jsonValue(s.StdDev)})
}

func jsonValue(v *float64) any {
	switch {
	case v == nil:
		return nil
	case math.IsInf(*v, 0) || math.IsNaN(*v):
		return strconv.FormatFloat(*v, 'g', -1, 64)
	}
	return *v
}

// Empty reports whether the column had no usable values.
func (s Stats) Empty() bool { return s.Count == 0 }

// Summary maps numeric column names to their statistics and remembers their order.
type Summary struct {
	Columns []string         `json:"columns"`
	ByName  map[string]Stats `json:"by_name"`
}

// Get returns the statistics for col.
func (s Summary) Get(col string) (Stats, bool) {
	st, ok := s.ByName[col]
	return st, ok
}

// Statistics computes mean, median, mode and sample standard deviation for each listed
// column. Every column is coerced independently from a fresh copy; columns missing from
// the table are skipped.
func Statistics(t *dataset.Table, numeric []string, opt Options) Summary {
	out := Summary{ByName: make(map[string]Stats, len(numeric))}
	log := opt.logger()
	for _, name := range numeric {
		vals, err := NumericValues(t, name, opt.Number)
		if err != nil {
			log.Debug("skipping statistics", "column", name, "err", err)
			continue
		}
		out.Columns = append(out.Columns, name)
		out.ByName[name] = describe(vals)
	}
	return out
}

func describe(vals []float64) Stats {
	st := Stats{Count: len(vals)}
	if len(vals) == 0 {
		return st
	}
	if mean, err := stats.Mean(vals); err == nil {
		st.Mean = &mean
	}
	if median, err := stats.Median(vals); err == nil {
		st.Median = &median
	}
	if mode, ok := firstMode(vals); ok {
		st.Mode = &mode
	}
	if len(vals) > 1 {
		if sd, err := stats.StandardDeviationSample(vals); err == nil && !math.IsNaN(sd) {
			st.StdDev = &sd
		}
	}
	return st
}

// firstMode returns the smallest of the most frequent values. stats.Mode reports modes in
// ascending order but returns none when every value is equally frequent; then all values
// are modes and the smallest is the answer.
func firstMode(vals []float64) (float64, bool) {
	modes, err := stats.Mode(vals)
	if err != nil {
		return 0, false
	}
	if len(modes) > 0 {
		return modes[0], true
	}
	lo, err := stats.Min(vals)
	if err != nil {
		return 0, false
	}
	return lo, true
}
