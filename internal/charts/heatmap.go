package charts

import (
	"fmt"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

func (r *Renderer) contingency(t *dataset.Table, req Request, title string) ([]byte, error) {
	cols, rows, counts, err := crosstab(t, req.X, req.Y)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 || len(rows) == 0 {
		return nil, ErrNoData
	}
	peak := 0
	for _, row := range counts {
		for _, c := range row {
			peak = max(peak, c)
		}
	}
	// widen the canvas until every cell can hold its count
	width := max(r.opt.Width, 150+len(cols)*minCellWidth)
	height := max(r.opt.Height, 130+len(rows)*minCellHeight)
	f := newFrame(width, height, title)
	w := float64(f.x1()-f.x0()) / float64(len(cols))
	h := float64(f.y0()-f.y1()) / float64(len(rows))
	for i := range rows {
		for j := range cols {
			x := f.x0() + int(float64(j)*w)
			y := f.y1() + int(float64(i)*h)
			frac := float64(counts[i][j]) / float64(peak)
			f.c.Rect(x, y, int(w)+1, int(h)+1, heat(frac)+";stroke:white;stroke-width:1")
			label := strconv.Itoa(counts[i][j])
			size := countFontSize(label, w, h)
			f.c.Text(x+int(w/2), y+int(h/2)+size/3, label,
				fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:middle;%s", size, textOn(frac)))
		}
	}
	f.xBands(cols, req.X)
	f.yBands(rows, req.Y)
	return f.finish(), nil
}

const (
	minCellWidth  = 28
	minCellHeight = 16
)

// countFontSize fits label inside a w by h cell, between 6 and 12 pixels.
func countFontSize(label string, w, h float64) int {
	size := min(12, int(h*0.75), int(w/(0.62*float64(len(label))+0.4)))
	return max(size, 6)
}

func (r *Renderer) density2D(t *dataset.Table, req Request, title string) ([]byte, error) {
	xs, ys, err := pairs(t, req.X, req.Y, r.opt.Number)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, ErrNoData
	}
	xlo, xhi := bounds(xs)
	xlo, xhi = pad(xlo, xhi, 0.1)
	ylo, yhi := bounds(ys)
	ylo, yhi = pad(ylo, yhi, 0.1)
	n := r.opt.GridSize
	gx, gy, z := density2D(xs, ys, n, xlo, xhi, ylo, yhi)
	peak := 0.0
	for _, row := range z {
		peak = max(peak, floats.Max(row))
	}

	f := newFrame(r.opt.Width, r.opt.Height, title)
	sx := scale.Linear{Min: xlo, Max: xhi}
	sy := scale.Linear{Min: ylo, Max: yhi}
	dx, dy := (xhi-xlo)/float64(n-1), (yhi-ylo)/float64(n-1)
	for i := range gy {
		top := min(f.py(sy, gy[i]+dy/2), f.y0())
		bottom := max(f.py(sy, gy[i]-dy/2), f.y1())
		top, bottom = max(top, f.y1()), min(bottom, f.y0())
		for j := range gx {
			left := max(f.px(sx, gx[j]-dx/2), f.x0())
			right := min(f.px(sx, gx[j]+dx/2), f.x1())
			frac := 0.0
			if peak > 0 {
				frac = z[i][j] / peak
			}
			f.c.Rect(left, top, max(right-left, 1)+1, max(bottom-top, 1)+1, heat(frac))
		}
	}
	for i := range xs {
		f.c.Circle(f.px(sx, xs[i]), f.py(sy, ys[i]), 2, "fill:#d62728;fill-opacity:0.5")
	}
	f.xAxis(sx, req.X)
	f.yAxis(sy, req.Y)
	return f.finish(), nil
}
