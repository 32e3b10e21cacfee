package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

func fixture(t *testing.T) (*dataset.Table, analysis.Classification) {
	t.Helper()
	cols := []string{"city", "flag", "income", "height", "age"}
	data := [][]string{
		{"Lima", "Quito", "Lima", "Cusco", "Quito", "Lima", "Bogota", "Lima", "Quito", "Cusco", "Lima", "Bogota"},
		{"yes", "no", "yes", "yes", "no", "no", "yes", "no", "yes", "yes", "no", "yes"},
		{"1200.5", "980.25", "1500.75", "2100.1", "1750.3", "1320.9", "990.4", "1610.2", "1880.6", "1405.5", "1150.8", "2020.45"},
		{"1.62", "1.75", "1.58", "1.80", "1.69", "1.71", "1.66", "1.77", "1.60", "1.73", "1.68", "1.82"},
		{"21", "35", "40", "28", "52", "33", "45", "29", "38", "41", "26", "30"},
	}
	records := [][]string{cols}
	for r := range data[0] {
		row := make([]string, len(cols))
		for c := range cols {
			row[c] = data[c][r]
		}
		records = append(records, row)
	}
	tab, err := dataset.FromRecords("people.csv", records, nil)
	require.NoError(t, err)
	cls := analysis.Classify(tab, analysis.Options{})
	require.Equal(t, []string{"city", "flag"}, cls.Categorical)
	require.Equal(t, []string{"income", "height"}, cls.Continuous)
	require.Equal(t, []string{"age"}, cls.Discrete)
	return tab, cls
}

func TestAvailable(t *testing.T) {
	cases := map[analysis.Kind][]ChartType{
		analysis.Categorical: {Bar, Pie, Pareto},
		analysis.Continuous:  {Histogram, Density, BoxPlot},
		analysis.Discrete:    {Bar, Histogram, Pareto, BoxPlot},
	}
	for k, want := range cases {
		got, err := Available(k)
		require.NoError(t, err)
		assert.Equal(t, want, got, k.String())
	}

	_, err := Available(analysis.Kind(0))
	var inv *InvariantError
	assert.True(t, errors.As(err, &inv))
}

func TestAvailablePair(t *testing.T) {
	cases := []struct {
		a, b analysis.Kind
		want []ChartType
	}{
		{analysis.Categorical, analysis.Categorical, []ChartType{Contingency}},
		{analysis.Continuous, analysis.Continuous, []ChartType{Scatter, Density2D}},
		{analysis.Categorical, analysis.Continuous, []ChartType{GroupedBoxPlot, Violin}},
		{analysis.Categorical, analysis.Discrete, []ChartType{GroupedBoxPlot, Violin}},
		{analysis.Discrete, analysis.Discrete, []ChartType{Scatter}},
		{analysis.Continuous, analysis.Discrete, []ChartType{Scatter}},
	}
	for _, tc := range cases {
		got, err := AvailablePair(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%v x %v", tc.a, tc.b)

		swapped, err := AvailablePair(tc.b, tc.a)
		require.NoError(t, err)
		assert.Equal(t, got, swapped, "order of %v x %v", tc.a, tc.b)
	}

	_, err := AvailablePair(analysis.Categorical, analysis.Kind(9))
	var inv *InvariantError
	assert.True(t, errors.As(err, &inv))
}

func TestValidateRejectsIllegalType(t *testing.T) {
	_, cls := fixture(t)
	req, err := NewRequest(cls, Contingency, "income", "")
	require.NoError(t, err)

	err = req.Validate()
	var sel *SelectionError
	require.True(t, errors.As(err, &sel), "got %v", err)
	assert.Equal(t, []ChartType{Histogram, Density, BoxPlot}, sel.Allowed)
	assert.Contains(t, err.Error(), "histogram, density, boxplot")

	req, err = NewRequest(cls, Scatter, "income", "income")
	require.NoError(t, err)
	assert.True(t, errors.As(req.Validate(), &sel))
}

func TestNewRequestUnknownColumn(t *testing.T) {
	_, cls := fixture(t)
	_, err := NewRequest(cls, Bar, "nope", "")
	var sel *SelectionError
	require.True(t, errors.As(err, &sel))
	assert.True(t, errors.Is(err, dataset.ErrUnknownColumn))

	_, err = NewRequest(cls, Scatter, "income", "nope")
	assert.True(t, errors.Is(err, dataset.ErrUnknownColumn))
}

func TestParseChartType(t *testing.T) {
	for _, c := range AllTypes {
		got, err := ParseChartType(strings.ToUpper(c.String()))
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.NotEmpty(t, c.Title())
	}
	got, err := ParseChartType("grouped_boxplot")
	require.NoError(t, err)
	assert.Equal(t, GroupedBoxPlot, got)

	_, err = ParseChartType("sunburst")
	assert.Error(t, err)
	assert.False(t, ChartType(0).Valid())
}

func TestFrequenciesOrder(t *testing.T) {
	tab, err := dataset.FromRecords("f", [][]string{{"c"}, {"b"}, {"a"}, {"b"}, {"c2"}, {"a"}, {"d"}, {""}}, nil)
	require.NoError(t, err)
	got, err := frequencies(tab, "c", analysis.Categorical, analysis.NumberFormat{})
	require.NoError(t, err)
	assert.Equal(t, []freq{{"b", 2}, {"a", 2}, {"c2", 1}, {"d", 1}}, got)

	cum := cumulativePercent(got)
	assert.InDelta(t, 100.0/3, cum[0], 1e-9)
	assert.Equal(t, 100.0, cum[len(cum)-1])
}

func TestFrequenciesNumericCollapse(t *testing.T) {
	tab, err := dataset.FromRecords("f", [][]string{{"n"}, {"3"}, {"3.0"}, {"4"}, {"x"}}, nil)
	require.NoError(t, err)
	got, err := frequencies(tab, "n", analysis.Discrete, analysis.NumberFormat{})
	require.NoError(t, err)
	assert.Equal(t, []freq{{"3", 2}, {"4", 1}}, got)
}

func TestHistogramBins(t *testing.T) {
	xs := []float64{5, 1, 2, 2, 3, 9, 10, 4, 7, 7, 6}
	edges, counts := histogram(xs, 10)
	require.Len(t, edges, 11)
	require.Len(t, counts, 10)
	total := 0.0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, float64(len(xs)), total)
	assert.Equal(t, 1.0, edges[0])
	assert.Equal(t, 10.0, edges[10])
	assert.Equal(t, 1.0, counts[9], "maximum falls in the last bin")

	edges, counts = histogram([]float64{4, 4, 4}, 10)
	assert.Less(t, edges[0], 4.0)
	assert.Greater(t, edges[10], 4.0)
	total = 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 3.0, total)
}

func TestSummarizeBox(t *testing.T) {
	b, err := summarizeBox([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})
	require.NoError(t, err)
	assert.Equal(t, 5.5, b.Median)
	assert.Equal(t, []float64{100}, b.Outliers)
	assert.Equal(t, 1.0, b.Low)
	assert.Equal(t, 9.0, b.High)

	b, err = summarizeBox([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, b.Q1)
	assert.Equal(t, 7.0, b.Q3)

	_, err = summarizeBox(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestKDEIntegratesToOne(t *testing.T) {
	grid, dens, ok := kde([]float64{1, 2, 2.5, 3, 4, 6}, 400)
	require.True(t, ok)
	area := 0.0
	for i := 1; i < len(grid); i++ {
		area += (grid[i] - grid[i-1]) * (dens[i] + dens[i-1]) / 2
	}
	assert.InDelta(t, 1.0, area, 0.01)

	_, _, ok = kde([]float64{3, 3, 3}, 50)
	assert.False(t, ok)
}

func TestRenderEveryType(t *testing.T) {
	tab, cls := fixture(t)
	r := NewRenderer(RenderOptions{Width: 640, Height: 400, GridSize: 12})
	cases := []struct {
		typ  ChartType
		x, y string
	}{
		{Bar, "city", ""},
		{Bar, "age", ""},
		{Pie, "flag", ""},
		{Pareto, "city", ""},
		{Histogram, "income", ""},
		{Histogram, "age", ""},
		{Density, "height", ""},
		{BoxPlot, "income", ""},
		{Contingency, "city", "flag"},
		{Scatter, "income", "height"},
		{Scatter, "age", "income"},
		{Density2D, "income", "height"},
		{GroupedBoxPlot, "city", "income"},
		{GroupedBoxPlot, "age", "flag"},
		{Violin, "flag", "age"},
		{Violin, "income", "city"},
	}
	covered := map[ChartType]bool{}
	for _, tc := range cases {
		name := tc.typ.String() + "/" + tc.x + "," + tc.y
		t.Run(name, func(t *testing.T) {
			req, err := NewRequest(cls, tc.typ, tc.x, tc.y)
			require.NoError(t, err)
			fig, err := r.Render(tab, req)
			require.NoError(t, err)
			assert.Contains(t, string(fig.Data), "<svg")
			assert.Equal(t, "svg", fig.Format)
			assert.Equal(t, tc.typ, fig.Type)
			assert.Contains(t, fig.Title, tc.x)
			assert.True(t, strings.HasSuffix(fig.FileName(), "_"+tc.typ.String()+"_"+fig.ID[:8]+".svg"), fig.FileName())
		})
		covered[tc.typ] = true
	}
	for _, c := range AllTypes {
		assert.True(t, covered[c], "no render case for %s", c)
	}
}

func TestPieLabelsCarryPercentages(t *testing.T) {
	tab, err := dataset.FromRecords("letters.csv", [][]string{{"c"}, {"a"}, {"a"}, {"a"}, {"b"}}, nil)
	require.NoError(t, err)
	cls := analysis.Classify(tab, analysis.Options{})
	req, err := NewRequest(cls, Pie, "c", "")
	require.NoError(t, err)
	fig, err := NewRenderer(RenderOptions{}).Render(tab, req)
	require.NoError(t, err)
	assert.Contains(t, string(fig.Data), "a (75.0%)")
	assert.Contains(t, string(fig.Data), "b (25.0%)")
}

func TestContingencyLabelsEveryCell(t *testing.T) {
	records := [][]string{{"code", "flag"}}
	for i := 0; i < 30; i++ {
		flag := "no"
		if i%2 == 0 {
			flag = "yes"
		}
		records = append(records, []string{fmt.Sprintf("c%02d", i), flag})
	}
	tab, err := dataset.FromRecords("codes.csv", records, nil)
	require.NoError(t, err)
	cls := analysis.Classify(tab, analysis.Options{})
	req, err := NewRequest(cls, Contingency, "code", "flag")
	require.NoError(t, err)

	// far too small for 60 cells at the requested size
	fig, err := NewRenderer(RenderOptions{Width: 300, Height: 200}).Render(tab, req)
	require.NoError(t, err)
	svg := string(fig.Data)
	assert.Equal(t, 30, strings.Count(svg, ">1</text>"))
	assert.Equal(t, 30, strings.Count(svg, ">0</text>"))
}

func TestContingencyRejectsContinuousColumn(t *testing.T) {
	tab, cls := fixture(t)
	req, err := NewRequest(cls, Contingency, "city", "income")
	require.NoError(t, err)

	var sel *SelectionError
	require.True(t, errors.As(req.Validate(), &sel))
	assert.Equal(t, []ChartType{GroupedBoxPlot, Violin}, sel.Allowed)
	assert.Equal(t, []analysis.Kind{analysis.Categorical, analysis.Continuous}, sel.Kinds)

	fig, err := NewRenderer(RenderOptions{}).Render(tab, req)
	assert.Nil(t, fig)
	require.True(t, errors.As(err, &sel), "got %v", err)
}

func TestRenderRejectsInvalidRequests(t *testing.T) {
	tab, cls := fixture(t)
	r := NewRenderer(RenderOptions{})

	req, err := NewRequest(cls, Pie, "income", "")
	require.NoError(t, err)
	_, err = r.Render(tab, req)
	var sel *SelectionError
	assert.True(t, errors.As(err, &sel))

	_, err = r.Render(tab, Request{Type: Histogram, X: "ghost", XKind: analysis.Continuous})
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)

	// kinds carried by the request disagree with the data
	_, err = r.Render(tab, Request{Type: Histogram, X: "city", XKind: analysis.Continuous})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFigureSave(t *testing.T) {
	tab, cls := fixture(t)
	r := NewRenderer(RenderOptions{Width: 500, Height: 300})
	r.newID = func() string { return "0123456789abcdef" }
	req, err := NewRequest(cls, Scatter, "income", "height")
	require.NoError(t, err)
	fig, err := r.Render(tab, req)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	p, err := fig.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "income-height_scatter_01234567.svg"), p)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, fig.Data, data)
}

func TestMenu(t *testing.T) {
	_, cls := fixture(t)
	lines := Menu(cls, []string{"city", "age", "ghost"})
	assert.Equal(t, []string{
		"- city (categorical): bar, pie, pareto",
		"- age (discrete): bar, histogram, pareto, boxplot",
	}, lines)
}
