package charts

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

// placer maps a value and an offset across the category axis to canvas pixels.
type placer struct {
	f        *frame
	s        scale.Linear
	pos      int
	vertical bool
}

func (p placer) at(v float64, off int) (int, int) {
	if p.vertical {
		return p.pos + off, p.f.py(p.s, v)
	}
	return p.f.px(p.s, v), p.pos + off
}

func (p placer) line(v1 float64, off1 int, v2 float64, off2 int, style string) {
	x1, y1 := p.at(v1, off1)
	x2, y2 := p.at(v2, off2)
	p.f.c.Line(x1, y1, x2, y2, style)
}

func (p placer) box(b boxStats, thick int) {
	half := thick / 2
	x1, y1 := p.at(b.Q1, -half)
	x2, y2 := p.at(b.Q3, half)
	p.f.c.Rect(min(x1, x2), min(y1, y2), max(abs(x2-x1), 1), max(abs(y2-y1), 1), boxStyle)
	p.line(b.Low, 0, b.Q1, 0, lineStyle)
	p.line(b.Q3, 0, b.High, 0, lineStyle)
	p.line(b.Low, -half/2, b.Low, half/2, lineStyle)
	p.line(b.High, -half/2, b.High, half/2, lineStyle)
	p.line(b.Median, -half, b.Median, half, medStyle)
	for _, o := range b.Outliers {
		x, y := p.at(o, 0)
		p.f.c.Circle(x, y, 3, dotStyle)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (r *Renderer) boxPlot(t *dataset.Table, req Request, title string) ([]byte, error) {
	vals, err := analysis.NumericValues(t, req.X, r.opt.Number)
	if err != nil {
		return nil, err
	}
	vals = finite(vals)
	b, err := summarizeBox(vals)
	if err != nil {
		return nil, err
	}
	f := newFrame(r.opt.Width, r.opt.Height, title)
	s := linear(pad(floats.Min(vals), floats.Max(vals), 0.05))
	f.xAxis(s, req.X)
	mid := (f.y0() + f.y1()) / 2
	thick := min((f.y0()-f.y1())*2/5, 140)
	placer{f: f, s: s, pos: mid}.box(b, thick)
	return f.finish(), nil
}

// groupedLayout draws the value axis and category bands shared by grouped box plots and
// violins, and returns a placer factory for band i.
func (r *Renderer) groupedLayout(title, cat, num string, gs []group, vertical bool, lo, hi float64) (*frame, func(i int) (placer, int)) {
	f := newFrame(r.opt.Width, r.opt.Height, title)
	s := linear(pad(lo, hi, 0.05))
	labels := make([]string, len(gs))
	for i, g := range gs {
		labels[i] = g.Label
	}
	if vertical {
		f.yAxis(s, num)
		f.xBands(labels, cat)
	} else {
		f.xAxis(s, num)
		f.yBands(labels, cat)
	}
	return f, func(i int) (placer, int) {
		var pos, w int
		if vertical {
			pos, w = band(f.x0(), f.x1()-f.x0(), i, len(gs))
		} else {
			pos, w = band(f.y1(), f.y0()-f.y1(), i, len(gs))
		}
		return placer{f: f, s: s, pos: pos, vertical: vertical}, min(w*3/5, 140)
	}
}

func (r *Renderer) groupedBoxPlot(t *dataset.Table, req Request, title string) ([]byte, error) {
	cat, num, vertical := splitGroup(req)
	gs, err := groups(t, cat, num, r.opt.Number)
	if err != nil {
		return nil, err
	}
	if len(gs) == 0 {
		return nil, ErrNoData
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	boxes := make([]boxStats, len(gs))
	for i, g := range gs {
		if boxes[i], err = summarizeBox(g.Values); err != nil {
			return nil, err
		}
		lo = math.Min(lo, floats.Min(g.Values))
		hi = math.Max(hi, floats.Max(g.Values))
	}
	f, place := r.groupedLayout(title, cat, num, gs, vertical, lo, hi)
	for i := range gs {
		p, thick := place(i)
		p.box(boxes[i], thick)
	}
	return f.finish(), nil
}

func (r *Renderer) violin(t *dataset.Table, req Request, title string) ([]byte, error) {
	cat, num, vertical := splitGroup(req)
	gs, err := groups(t, cat, num, r.opt.Number)
	if err != nil {
		return nil, err
	}
	if len(gs) == 0 {
		return nil, ErrNoData
	}
	type shape struct {
		grid, dens []float64
		ok         bool
		box        boxStats
	}
	shapes := make([]shape, len(gs))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, g := range gs {
		sh := &shapes[i]
		sh.grid, sh.dens, sh.ok = kde(g.Values, r.opt.KDEPoints)
		if sh.box, err = summarizeBox(g.Values); err != nil {
			return nil, err
		}
		lo = math.Min(lo, floats.Min(g.Values))
		hi = math.Max(hi, floats.Max(g.Values))
		if sh.ok {
			lo = math.Min(lo, sh.grid[0])
			hi = math.Max(hi, sh.grid[len(sh.grid)-1])
		}
	}
	f, place := r.groupedLayout(title, cat, num, gs, vertical, lo, hi)
	for i, sh := range shapes {
		p, thick := place(i)
		half := float64(thick) / 2
		if sh.ok {
			peak := floats.Max(sh.dens)
			n := len(sh.grid)
			xs := make([]int, 0, 2*n)
			ys := make([]int, 0, 2*n)
			for j := 0; j < n; j++ {
				x, y := p.at(sh.grid[j], int(math.Round(sh.dens[j]/peak*half)))
				xs, ys = append(xs, x), append(ys, y)
			}
			for j := n - 1; j >= 0; j-- {
				x, y := p.at(sh.grid[j], -int(math.Round(sh.dens[j]/peak*half)))
				xs, ys = append(xs, x), append(ys, y)
			}
			f.c.Polygon(xs, ys, boxStyle)
		} else {
			p.line(sh.box.Median, -int(half), sh.box.Median, int(half), lineStyle)
		}
		p.line(sh.box.Q1, 0, sh.box.Q3, 0, "stroke:#222;stroke-width:4")
		x, y := p.at(sh.box.Median, 0)
		f.c.Circle(x, y, 3, "fill:white;stroke:#222")
	}
	return f.finish(), nil
}
