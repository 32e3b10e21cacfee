package charts

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-moremath/scale"
)

const (
	fontStyle  = "font-family:sans-serif;font-size:12px;fill:#333"
	titleStyle = "font-family:sans-serif;font-size:18px;text-anchor:middle;fill:#222"
	axisStyle  = "stroke:#555;stroke-width:1"
	gridStyle  = "stroke:#e5e5e5;stroke-width:1"
	boxStyle   = "fill:#1f77b4;fill-opacity:0.55;stroke:#1f4e79;stroke-width:1.5"
	lineStyle  = "stroke:#1f4e79;stroke-width:1.5"
	medStyle   = "stroke:#d62728;stroke-width:2"
	dotStyle   = "fill:none;stroke:#1f4e79;stroke-width:1"
)

var tickOptions = scale.TickOptions{Max: 8}

// frame is an SVG canvas with a rectangular plot area inside fixed margins.
type frame struct {
	buf    bytes.Buffer
	c      *svg.SVG
	width  int
	height int
	left   int
	right  int
	top    int
	bottom int
}

func newFrame(width, height int, title string) *frame {
	f := &frame{width: width, height: height, left: 110, right: 40, top: 60, bottom: 70}
	f.c = svg.New(&f.buf)
	f.c.Start(width, height)
	f.c.Rect(0, 0, width, height, "fill:white")
	f.c.Text(width/2, 32, title, titleStyle)
	return f
}

func (f *frame) finish() []byte {
	f.c.End()
	return f.buf.Bytes()
}

// plot area edges in pixels
func (f *frame) x0() int { return f.left }
func (f *frame) x1() int { return f.width - f.right }
func (f *frame) y0() int { return f.height - f.bottom }
func (f *frame) y1() int { return f.top }

func (f *frame) px(s scale.Linear, v float64) int {
	return f.x0() + int(math.Round(s.Map(v)*float64(f.x1()-f.x0())))
}

func (f *frame) py(s scale.Linear, v float64) int {
	return f.y0() - int(math.Round(s.Map(v)*float64(f.y0()-f.y1())))
}

// band returns the center pixel and width of band i of n along an axis of length span.
func band(start, span, i, n int) (center, width int) {
	w := float64(span) / float64(n)
	return start + int(math.Round((float64(i)+0.5)*w)), int(w)
}

// linear builds a nice scale covering [lo, hi].
func linear(lo, hi float64) scale.Linear {
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	s := scale.Linear{Min: lo, Max: hi}
	s.Nice(tickOptions)
	return s
}

func ticks(s scale.Linear) []float64 {
	major, _ := s.Ticks(tickOptions)
	out := major[:0:0]
	for _, v := range major {
		if v >= s.Min && v <= s.Max {
			out = append(out, v)
		}
	}
	return out
}

func (f *frame) xAxis(s scale.Linear, label string) {
	for _, v := range ticks(s) {
		x := f.px(s, v)
		f.c.Line(x, f.y1(), x, f.y0(), gridStyle)
		f.c.Line(x, f.y0(), x, f.y0()+5, axisStyle)
		f.c.Text(x, f.y0()+20, tickLabel(v), fontStyle+";text-anchor:middle")
	}
	f.c.Line(f.x0(), f.y0(), f.x1(), f.y0(), axisStyle)
	f.xLabel(label)
}

func (f *frame) yAxis(s scale.Linear, label string) {
	for _, v := range ticks(s) {
		y := f.py(s, v)
		f.c.Line(f.x0(), y, f.x1(), y, gridStyle)
		f.c.Line(f.x0()-5, y, f.x0(), y, axisStyle)
		f.c.Text(f.x0()-8, y+4, tickLabel(v), fontStyle+";text-anchor:end")
	}
	f.c.Line(f.x0(), f.y0(), f.x0(), f.y1(), axisStyle)
	f.yLabel(label)
}

// xBands labels n categorical bands along the horizontal axis.
func (f *frame) xBands(labels []string, label string) {
	for i, l := range labels {
		x, _ := band(f.x0(), f.x1()-f.x0(), i, len(labels))
		f.c.Text(x, f.y0()+20, l, fontStyle+";text-anchor:middle")
	}
	f.c.Line(f.x0(), f.y0(), f.x1(), f.y0(), axisStyle)
	f.xLabel(label)
}

// yBands labels n categorical bands along the vertical axis, first band at the top.
func (f *frame) yBands(labels []string, label string) {
	for i, l := range labels {
		y, _ := band(f.y1(), f.y0()-f.y1(), i, len(labels))
		f.c.Text(f.x0()-8, y+4, l, fontStyle+";text-anchor:end")
	}
	f.c.Line(f.x0(), f.y0(), f.x0(), f.y1(), axisStyle)
	f.yLabel(label)
}

func (f *frame) xLabel(label string) {
	f.c.Text((f.x0()+f.x1())/2, f.height-20, label, fontStyle+";font-size:14px;text-anchor:middle")
}

func (f *frame) yLabel(label string) {
	f.c.TranslateRotate(22, (f.y0()+f.y1())/2, -90)
	f.c.Text(0, 0, label, fontStyle+";font-size:14px;text-anchor:middle")
	f.c.Gend()
}

// heat maps frac in [0, 1] to a white-to-blue fill.
func heat(frac float64) string {
	frac = math.Max(0, math.Min(1, frac))
	lerp := func(a, b int) int { return a + int(math.Round(frac*float64(b-a))) }
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", lerp(247, 8), lerp(251, 48), lerp(255, 107))
}

// textOn picks a readable label colour for a heat cell.
func textOn(frac float64) string {
	if frac > 0.55 {
		return "fill:white"
	}
	return "fill:#222"
}
