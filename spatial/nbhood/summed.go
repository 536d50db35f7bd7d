package nbhood

import (
	"math"

	"github.com/cwbudde/algo-spatial/internal/workers"
	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// SummedArea holds 2-D prefix sums of the valid values of a grid and of the
// number of valid cells. Both tables have a leading zero row and column, so
// entry (r, c) covers cells [0, r) x [0, c). Values are stored relative to
// the smallest valid value, so a constant region sums to exactly zero.
type SummedArea struct {
	rows, cols int
	stride     int
	offset     float64
	lo, hi     float64
	sum        []float64
	count      []float64
}

// NewSummedArea builds the tables for g restricted to the valid cells of m.
// Missing values are treated as invalid. Row prefix sums run on up to
// workerLimit goroutines; the column accumulation starts after all of them
// have finished.
func NewSummedArea(g *grid.Grid, m *grid.Mask, workerLimit int) *SummedArea {
	sa := &SummedArea{
		rows:   g.Rows,
		cols:   g.Cols,
		stride: g.Cols + 1,
	}
	sa.lo, sa.hi = validRange(g, m)
	if sa.lo <= sa.hi && !math.IsInf(sa.lo, 0) {
		sa.offset = sa.lo
	}

	size := (g.Rows + 1) * sa.stride
	sa.sum = make([]float64, size)
	sa.count = make([]float64, size)

	_ = workers.ForEach(g.Rows, workerLimit, func(lo, hi int) error {
		vals := make([]float64, g.Cols)
		wts := make([]float64, g.Cols)
		for i := lo; i < hi; i++ {
			row := g.Row(i)
			for j, v := range row {
				if m.ValidAt(i*g.Cols+j) && !grid.IsMissing(v) {
					vals[j], wts[j] = v-sa.offset, 1
				} else {
					vals[j], wts[j] = 0, 0
				}
			}
			floats.CumSum(sa.sumRow(i + 1)[1:], vals)
			floats.CumSum(sa.countRow(i + 1)[1:], wts)
		}
		return nil
	})

	for r := 2; r <= g.Rows; r++ {
		vecmath.AddBlockInPlace(sa.sumRow(r), sa.sumRow(r-1))
		vecmath.AddBlockInPlace(sa.countRow(r), sa.countRow(r-1))
	}

	return sa
}

func (sa *SummedArea) sumRow(r int) []float64   { return sa.sum[r*sa.stride : (r+1)*sa.stride] }
func (sa *SummedArea) countRow(r int) []float64 { return sa.count[r*sa.stride : (r+1)*sa.stride] }

// Window returns the sum of valid values and the number of valid cells in
// rows [i0, i1] and columns [j0, j1] (inclusive). Bounds are clipped to
// the grid.
func (sa *SummedArea) Window(i0, i1, j0, j1 int) (sum, count float64) {
	rel, count := sa.window(i0, i1, j0, j1)
	return rel + sa.offset*count, count
}

// Mean returns the mean of the valid values in the window, clamped to the
// range of the valid values of the grid, and the number of valid cells.
// An empty window has mean grid.Missing.
func (sa *SummedArea) Mean(i0, i1, j0, j1 int) (mean, count float64) {
	rel, count := sa.window(i0, i1, j0, j1)
	if count <= 0 {
		return grid.Missing, 0
	}
	return clamp(sa.offset+rel/count, sa.lo, sa.hi), count
}

// window returns the offset-relative sum and the valid count.
func (sa *SummedArea) window(i0, i1, j0, j1 int) (sum, count float64) {
	i0, j0 = max(i0, 0), max(j0, 0)
	i1, j1 = min(i1, sa.rows-1), min(j1, sa.cols-1)
	if i0 > i1 || j0 > j1 {
		return 0, 0
	}

	a := i0*sa.stride + j0
	b := i0*sa.stride + j1 + 1
	c := (i1+1)*sa.stride + j0
	d := (i1+1)*sa.stride + j1 + 1

	sum = sa.sum[d] - sa.sum[b] - sa.sum[c] + sa.sum[a]
	count = sa.count[d] - sa.count[b] - sa.count[c] + sa.count[a]

	return sum, count
}

// validRange returns the smallest and largest valid value of g. It returns
// (+Inf, -Inf) when no cell is valid.
func validRange(g *grid.Grid, m *grid.Mask) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for k, v := range g.Data {
		if m.ValidAt(k) && !grid.IsMissing(v) {
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
