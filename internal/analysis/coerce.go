package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

// NumberFormat describes how numeric text is written. The zero value parses plain
// Go/C float syntax ("3", "-1.5", "2e3") and nothing else.
type NumberFormat struct {
	// DecimalSeparator, when set to ',', accepts "0,5" style decimals.
	DecimalSeparator rune
	// ThousandsSeparator is stripped before parsing when set (',', '.', or ' ').
	ThousandsSeparator rune
}

// ParseNumber converts s to a float64. ok is false when s is not a number in the
// given format; the caller treats such values as missing.
func ParseNumber(s string, nf NumberFormat) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	if nf.ThousandsSeparator != 0 || nf.DecimalSeparator != 0 {
		raw = strings.ReplaceAll(raw, "\u00A0", " ")
		if nf.ThousandsSeparator != 0 && nf.ThousandsSeparator != nf.DecimalSeparator {
			raw = strings.ReplaceAll(raw, string(nf.ThousandsSeparator), "")
		}
		if nf.DecimalSeparator != 0 && nf.DecimalSeparator != '.' {
			raw = strings.ReplaceAll(raw, string(nf.DecimalSeparator), ".")
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// numericColumn is the coerced view of a column: values that parsed, in row order.
type numericColumn struct {
	values []float64
	ok     []bool
}

func (n numericColumn) present() []float64 {
	out := make([]float64, 0, len(n.values))
	for i, v := range n.values {
		if n.ok[i] {
			out = append(out, v)
		}
	}
	return out
}

// coerce converts a detached column copy. Missing cells and unparsable text both become
// missing; they are never an error for the column as a whole.
func coerce(col dataset.Column, nf NumberFormat) numericColumn {
	n := numericColumn{values: make([]float64, len(col.Values)), ok: make([]bool, len(col.Values))}
	for i, v := range col.Values {
		if col.Missing[i] {
			continue
		}
		if f, ok := ParseNumber(v, nf); ok {
			n.values[i] = f
			n.ok[i] = true
		}
	}
	return n
}

// NumericValues reads a column from t and returns its non-missing numeric values.
func NumericValues(t *dataset.Table, name string, nf NumberFormat) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return coerce(col, nf).present(), nil
}

func isInteger(x float64) bool {
	return !math.IsInf(x, 0) && x == math.Trunc(x)
}

// allIntegers is vacuously true for an empty slice.
func allIntegers(xs []float64) bool {
	for _, x := range xs {
		if !isInteger(x) {
			return false
		}
	}
	return true
}
