package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// RequireGridNearlyEqual fails t unless got and want have the same shape,
// agree within eps (absolute) and are missing in the same cells.
func RequireGridNearlyEqual(t *testing.T, got, want *grid.Grid, eps float64) {
	t.Helper()
	if got.Rows != want.Rows || got.Cols != want.Cols {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", got.Rows, got.Cols, want.Rows, want.Cols)
	}
	if diff := cmp.Diff(want.Data, got.Data, cmpopts.EquateApprox(0, eps), cmpopts.EquateNaNs()); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

// RequireFinite fails t if any cell selected by valid is NaN or Inf.
// A nil mask selects every cell.
func RequireFinite(t *testing.T, g *grid.Grid, valid *grid.Mask) {
	t.Helper()
	for k, v := range g.Data {
		if !valid.ValidAt(k) {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("cell %d (%d,%d): non-finite value %v", k, k/g.Cols, k%g.Cols, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference between cells that are
// present in both grids. It fails on shape mismatch or when exactly one of a
// pair is missing.
func MaxAbsDiff(a, b *grid.Grid) (float64, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return 0, fmt.Errorf("shape mismatch: %dx%d vs %dx%d", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	maxDiff := 0.0
	for k := range a.Data {
		am, bm := grid.IsMissing(a.Data[k]), grid.IsMissing(b.Data[k])
		if am != bm {
			return 0, fmt.Errorf("cell %d missing in only one grid", k)
		}
		if am {
			continue
		}
		if d := math.Abs(a.Data[k] - b.Data[k]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
