package charts

import (
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

// freq is one category and its number of occurrences.
type freq struct {
	Label string
	Count int
}

// frequencies counts the non-missing values of a column. Numeric kinds are counted by
// parsed value so "3" and "3.0" collapse. The result is ordered by descending count,
// ties in order of first appearance.
func frequencies(t *dataset.Table, name string, kind analysis.Kind, nf analysis.NumberFormat) ([]freq, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	var out []freq
	for i, raw := range col.Values {
		if col.Missing[i] {
			continue
		}
		label := raw
		if kind.Numeric() {
			f, ok := analysis.ParseNumber(raw, nf)
			if !ok {
				continue
			}
			label = strconv.FormatFloat(f, 'g', -1, 64)
		}
		if j, ok := index[label]; ok {
			out[j].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, freq{Label: label, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// cumulativePercent returns the running share of the total, in percent. The last
// element is exactly 100 when counts is non-empty.
func cumulativePercent(counts []freq) []float64 {
	total := 0
	for _, f := range counts {
		total += f.Count
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	run := 0
	for i, f := range counts {
		run += f.Count
		out[i] = 100 * float64(run) / float64(total)
	}
	out[len(out)-1] = 100
	return out
}

// pairs returns the rows where both columns hold a number.
func pairs(t *dataset.Table, x, y string, nf analysis.NumberFormat) (xs, ys []float64, err error) {
	cx, err := t.Column(x)
	if err != nil {
		return nil, nil, err
	}
	cy, err := t.Column(y)
	if err != nil {
		return nil, nil, err
	}
	for i := range cx.Values {
		if cx.Missing[i] || cy.Missing[i] {
			continue
		}
		fx, okx := analysis.ParseNumber(cx.Values[i], nf)
		fy, oky := analysis.ParseNumber(cy.Values[i], nf)
		if !okx || !oky || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
			continue
		}
		xs = append(xs, fx)
		ys = append(ys, fy)
	}
	return xs, ys, nil
}

// group is the numeric values observed for one category.
type group struct {
	Label  string
	Values []float64
}

// groups splits the numeric column by the categories of cat, in order of first
// appearance. Rows missing either value are skipped.
func groups(t *dataset.Table, cat, num string, nf analysis.NumberFormat) ([]group, error) {
	cc, err := t.Column(cat)
	if err != nil {
		return nil, err
	}
	cn, err := t.Column(num)
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	var out []group
	for i := range cc.Values {
		if cc.Missing[i] || cn.Missing[i] {
			continue
		}
		v, ok := analysis.ParseNumber(cn.Values[i], nf)
		if !ok || math.IsInf(v, 0) {
			continue
		}
		label := cc.Values[i]
		j, seen := index[label]
		if !seen {
			j = len(out)
			index[label] = j
			out = append(out, group{Label: label})
		}
		out[j].Values = append(out[j].Values, v)
	}
	return out, nil
}

// crosstab counts co-occurrences of two categorical columns. Labels are sorted.
// counts[i][j] is the number of rows with y == rows[i] and x == cols[j].
func crosstab(t *dataset.Table, x, y string) (cols, rows []string, counts [][]int, err error) {
	cx, err := t.Column(x)
	if err != nil {
		return nil, nil, nil, err
	}
	cy, err := t.Column(y)
	if err != nil {
		return nil, nil, nil, err
	}
	type key struct{ x, y string }
	cells := map[key]int{}
	xs, ys := map[string]bool{}, map[string]bool{}
	for i := range cx.Values {
		if cx.Missing[i] || cy.Missing[i] {
			continue
		}
		k := key{cx.Values[i], cy.Values[i]}
		cells[k]++
		xs[k.x] = true
		ys[k.y] = true
	}
	cols, rows = sortedLabels(xs), sortedLabels(ys)
	counts = make([][]int, len(rows))
	for i, ry := range rows {
		counts[i] = make([]int, len(cols))
		for j, cx := range cols {
			counts[i][j] = cells[key{cx, ry}]
		}
	}
	return cols, rows, counts, nil
}

// sortedLabels orders numerically when every label is a number, lexically otherwise.
func sortedLabels(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	numeric := true
	for s := range set {
		out = append(out, s)
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			numeric = false
		}
	}
	if numeric {
		sort.Slice(out, func(i, j int) bool {
			a, _ := strconv.ParseFloat(out[i], 64)
			b, _ := strconv.ParseFloat(out[j], 64)
			if a == b {
				return out[i] < out[j]
			}
			return a < b
		})
		return out
	}
	sort.Strings(out)
	return out
}

func finite(xs []float64) []float64 {
	out := xs[:0:0]
	for _, x := range xs {
		if !math.IsInf(x, 0) && !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
