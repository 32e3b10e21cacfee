package charts

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

var (
	seriesColor = drawing.ColorFromHex("1f77b4")
	accentColor = drawing.ColorFromHex("d62728")
)

type svgRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderSVG(c svgRenderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}}
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// headroom returns a y-axis maximum above v that is never zero.
func headroom(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func (r *Renderer) bar(t *dataset.Table, req Request, title string) ([]byte, error) {
	counts, err := frequencies(t, req.X, req.XKind, r.opt.Number)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, len(counts))
	top := 0
	for i, f := range counts {
		bars[i] = chart.Value{Value: float64(f.Count), Label: f.Label, Style: chart.Style{FillColor: seriesColor, StrokeColor: seriesColor}}
		if f.Count > top {
			top = f.Count
		}
	}
	barWidth := (r.opt.Width - 160) * 3 / (4 * len(bars))
	barWidth = min(max(barWidth, 6), 80)
	spacing := max(barWidth/3, 2)
	width := max(r.opt.Width, len(bars)*(barWidth+spacing)+160)
	graph := chart.BarChart{
		Title:      title,
		Background: background(),
		Width:      width,
		Height:     r.opt.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(float64(top))},
		},
		Bars: bars,
	}
	return renderSVG(graph)
}

func (r *Renderer) pie(t *dataset.Table, req Request, title string) ([]byte, error) {
	counts, err := frequencies(t, req.X, req.XKind, r.opt.Number)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ErrNoData
	}
	total := 0
	for _, f := range counts {
		total += f.Count
	}
	values := make([]chart.Value, len(counts))
	for i, f := range counts {
		pct := 100 * float64(f.Count) / float64(total)
		values[i] = chart.Value{Value: float64(f.Count), Label: fmt.Sprintf("%s (%.1f%%)", f.Label, pct)}
	}
	graph := chart.PieChart{
		Title:      title,
		Background: background(),
		Width:      r.opt.Height,
		Height:     r.opt.Height,
		Values:     values,
	}
	return renderSVG(graph)
}

func (r *Renderer) pareto(t *dataset.Table, req Request, title string) ([]byte, error) {
	counts, err := frequencies(t, req.X, req.XKind, r.opt.Number)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ErrNoData
	}
	n := len(counts)
	xs := make([]float64, n)
	ys := make([]float64, n)
	// bounding ticks keep half a band of margin on both sides
	ticks := []chart.Tick{{Value: -0.5}}
	for i, f := range counts {
		xs[i] = float64(i)
		ys[i] = float64(f.Count)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: f.Label})
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) - 0.5})
	graph := chart.Chart{
		Title:      title,
		Background: background(),
		Width:      r.opt.Width,
		Height:     r.opt.Height,
		XAxis: chart.XAxis{
			Name:  req.X,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(floats.Max(ys))},
		},
		YAxisSecondary: chart.YAxis{
			Name:           "cumulative %",
			Range:          &chart.ContinuousRange{Min: 0, Max: 105},
			ValueFormatter: chart.IntValueFormatter,
		},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name:        "count",
				Style:       chart.Style{FillColor: seriesColor.WithAlpha(200), StrokeColor: seriesColor, StrokeWidth: 1},
				InnerSeries: chart.ContinuousSeries{XValues: xs, YValues: ys},
			},
			chart.ContinuousSeries{
				Name:    "cumulative %",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: cumulativePercent(counts),
				Style:   chart.Style{StrokeColor: accentColor, StrokeWidth: 2, DotColor: accentColor, DotWidth: 4},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderSVG(graph)
}

func (r *Renderer) histogram(t *dataset.Table, req Request, title string) ([]byte, error) {
	vals, err := analysis.NumericValues(t, req.X, r.opt.Number)
	if err != nil {
		return nil, err
	}
	vals = finite(vals)
	if len(vals) == 0 {
		return nil, ErrNoData
	}
	edges, counts := histogram(vals, r.opt.Bins)
	centers := make([]float64, len(counts))
	for i := range counts {
		centers[i] = (edges[i] + edges[i+1]) / 2
	}
	ticks := make([]chart.Tick, len(edges))
	for i, e := range edges {
		ticks[i] = chart.Tick{Value: e, Label: tickLabel(e)}
	}
	graph := chart.Chart{
		Title:      title,
		Background: background(),
		Width:      r.opt.Width,
		Height:     r.opt.Height,
		XAxis: chart.XAxis{
			Name:  req.X,
			Range: &chart.ContinuousRange{Min: edges[0], Max: edges[len(edges)-1]},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(floats.Max(counts))},
		},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name:        req.X,
				Style:       chart.Style{FillColor: seriesColor.WithAlpha(200), StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
				InnerSeries: chart.ContinuousSeries{XValues: centers, YValues: counts},
			},
		},
	}
	return renderSVG(graph)
}

func (r *Renderer) density(t *dataset.Table, req Request, title string) ([]byte, error) {
	vals, err := analysis.NumericValues(t, req.X, r.opt.Number)
	if err != nil {
		return nil, err
	}
	vals = finite(vals)
	grid, dens, ok := kde(vals, r.opt.KDEPoints)
	if !ok {
		return nil, ErrNoData
	}
	graph := chart.Chart{
		Title:      title,
		Background: background(),
		Width:      r.opt.Width,
		Height:     r.opt.Height,
		XAxis: chart.XAxis{
			Name:  req.X,
			Range: &chart.ContinuousRange{Min: grid[0], Max: grid[len(grid)-1]},
		},
		YAxis: chart.YAxis{
			Name:  "density",
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(floats.Max(dens))},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    req.X,
				XValues: grid,
				YValues: dens,
				Style:   chart.Style{StrokeColor: seriesColor, StrokeWidth: 2, FillColor: seriesColor.WithAlpha(60)},
			},
		},
	}
	return renderSVG(graph)
}

func (r *Renderer) scatter(t *dataset.Table, req Request, title string) ([]byte, error) {
	xs, ys, err := pairs(t, req.X, req.Y, r.opt.Number)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, ErrNoData
	}
	xlo, xhi := bounds(xs)
	xlo, xhi = pad(xlo, xhi, 0.05)
	ylo, yhi := bounds(ys)
	ylo, yhi = pad(ylo, yhi, 0.05)
	graph := chart.Chart{
		Title:      title,
		Background: background(),
		Width:      r.opt.Width,
		Height:     r.opt.Height,
		XAxis: chart.XAxis{
			Name:  req.X,
			Range: &chart.ContinuousRange{Min: xlo, Max: xhi},
		},
		YAxis: chart.YAxis{
			Name:  req.Y,
			Range: &chart.ContinuousRange{Min: ylo, Max: yhi},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    req.Y,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: seriesColor.WithAlpha(170)},
			},
		},
	}
	return renderSVG(graph)
}
