package charts

import (
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// bounds returns the extent of xs, widened to a unit interval around a single value.
func bounds(xs []float64) (lo, hi float64) {
	lo, hi = floats.Min(xs), floats.Max(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}

// pad widens [lo, hi] by frac of its width on both sides.
func pad(lo, hi, frac float64) (float64, float64) {
	d := (hi - lo) * frac
	return lo - d, hi + d
}

// histogram splits xs into n equal-width bins spanning its extent. edges has n+1
// elements; the last bin includes the maximum.
func histogram(xs []float64, n int) (edges, counts []float64) {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	lo, hi := bounds(sorted)
	edges = floats.Span(make([]float64, n+1), lo, hi)
	dividers := append([]float64(nil), edges...)
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts = stat.Histogram(nil, dividers, sorted, nil)
	return edges, counts
}

// bandwidth is Scott's rule, or 0 when the sample has no spread.
func bandwidth(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	bw := mstats.BandwidthScott(mstats.Sample{Xs: xs})
	if math.IsNaN(bw) || math.IsInf(bw, 0) || bw <= 0 {
		return 0
	}
	return bw
}

// kde estimates the density of xs with a Gaussian kernel, evaluated at points positions
// spanning the sample widened by three bandwidths.
func kde(xs []float64, points int) (grid, density []float64, ok bool) {
	bw := bandwidth(xs)
	if bw == 0 {
		return nil, nil, false
	}
	sample := mstats.Sample{Xs: xs}
	k := mstats.KDE{Sample: sample, Kernel: mstats.GaussianKernel, Bandwidth: bw}
	lo, hi := sample.Bounds()
	grid = vec.Linspace(lo-3*bw, hi+3*bw, points)
	density = vec.Map(k.PDF, grid)
	return grid, density, true
}

// density2D evaluates a product Gaussian kernel estimate on an n by n grid over the given
// ranges. z[i][j] is the density at (gx[j], gy[i]).
func density2D(xs, ys []float64, n int, xlo, xhi, ylo, yhi float64) (gx, gy []float64, z [][]float64) {
	hx, hy := bandwidth(xs), bandwidth(ys)
	if hx == 0 {
		hx = (xhi - xlo) / 10
	}
	if hy == 0 {
		hy = (yhi - ylo) / 10
	}
	gx = vec.Linspace(xlo, xhi, n)
	gy = vec.Linspace(ylo, yhi, n)
	kx := kernelMatrix(gx, xs, hx)
	ky := kernelMatrix(gy, ys, hy)
	z = make([][]float64, n)
	inv := 1 / float64(len(xs))
	for i := range gy {
		z[i] = make([]float64, n)
		for j := range gx {
			z[i][j] = floats.Dot(kx[j], ky[i]) * inv
		}
	}
	return gx, gy, z
}

// kernelMatrix returns m[g][i] = phi((grid[g]-xs[i])/h)/h.
func kernelMatrix(grid, xs []float64, h float64) [][]float64 {
	m := make([][]float64, len(grid))
	for g, at := range grid {
		row := make([]float64, len(xs))
		for i, x := range xs {
			row[i] = mstats.StdNormal.PDF((at-x)/h) / h
		}
		m[g] = row
	}
	return m
}

// boxStats summarizes a sample for a box plot. Whiskers reach the most extreme values
// within 1.5 IQR of the quartiles.
type boxStats struct {
	Q1, Median, Q3 float64
	Low, High      float64
	Outliers       []float64
}

func summarizeBox(xs []float64) (boxStats, error) {
	var b boxStats
	if len(xs) == 0 {
		return b, ErrNoData
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		v := sorted[0]
		return boxStats{Q1: v, Median: v, Q3: v, Low: v, High: v}, nil
	}
	q, err := stats.Quartile(sorted)
	if err != nil {
		return b, err
	}
	b.Q1, b.Median, b.Q3 = q.Q1, q.Q2, q.Q3
	iqr := b.Q3 - b.Q1
	loFence, hiFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.Low, b.High = b.Q1, b.Q3
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.Low = math.Min(b.Low, v)
		b.High = math.Max(b.High, v)
	}
	return b, nil
}
