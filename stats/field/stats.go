// Package field computes summary statistics of gridded fields. Missing cells
// are skipped.
package field

import (
	"math"

	"github.com/cwbudde/algo-spatial/spatial/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds statistics over the non-missing cells of a grid.
type Stats struct {
	Cells    int
	Valid    int
	Missing  int
	Mean     float64
	Variance float64 // population variance
	StdDev   float64
	Min      float64
	MinAt    int // row-major index, -1 when there are no valid cells
	Max      float64
	MaxAt    int
	Range    float64 // max - min

	// Roughness is the mean squared difference between horizontally and
	// vertically adjacent valid cells. Smoothing lowers it.
	Roughness float64
}

func emptyStats(cells int) Stats {
	return Stats{
		Cells:   cells,
		Missing: cells,
		Mean:    math.NaN(),
		Min:     math.NaN(),
		MinAt:   -1,
		Max:     math.NaN(),
		MaxAt:   -1,
		Range:   math.NaN(),
	}
}

// Calculate computes all statistics of g.
func Calculate(g *grid.Grid) Stats {
	values, index := validValues(g)
	if len(values) == 0 {
		return emptyStats(len(g.Data))
	}

	mean, variance := stat.PopMeanVariance(values, nil)
	lo, hi := floats.MinIdx(values), floats.MaxIdx(values)

	return Stats{
		Cells:     len(g.Data),
		Valid:     len(values),
		Missing:   len(g.Data) - len(values),
		Mean:      mean,
		Variance:  variance,
		StdDev:    math.Sqrt(variance),
		Min:       values[lo],
		MinAt:     index[lo],
		Max:       values[hi],
		MaxAt:     index[hi],
		Range:     values[hi] - values[lo],
		Roughness: Roughness(g),
	}
}

// Mean returns the mean of the valid cells, or NaN when there are none.
func Mean(g *grid.Grid) float64 {
	values, _ := validValues(g)
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Roughness returns the mean squared difference between adjacent valid
// cells, or 0 when no two valid cells touch.
func Roughness(g *grid.Grid) float64 {
	diffs := make([]float64, 0, 2*len(g.Data))
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			v := g.At(i, j)
			if grid.IsMissing(v) {
				continue
			}
			if j+1 < g.Cols {
				if r := g.At(i, j+1); !grid.IsMissing(r) {
					diffs = append(diffs, r-v)
				}
			}
			if i+1 < g.Rows {
				if d := g.At(i+1, j); !grid.IsMissing(d) {
					diffs = append(diffs, d-v)
				}
			}
		}
	}
	if len(diffs) == 0 {
		return 0
	}
	return floats.Dot(diffs, diffs) / float64(len(diffs))
}

// validValues returns the non-missing values of g and their row-major
// indices.
func validValues(g *grid.Grid) ([]float64, []int) {
	values := make([]float64, 0, len(g.Data))
	index := make([]int, 0, len(g.Data))
	for k, v := range g.Data {
		if grid.IsMissing(v) {
			continue
		}
		values = append(values, v)
		index = append(index, k)
	}
	return values, index
}
