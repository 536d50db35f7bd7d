package ncio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/stretchr/testify/require"
)

func sampleField(t *testing.T) *Field {
	t.Helper()
	g, err := grid.FromRows([][]float64{
		{0, 0.25, 0.5},
		{0.75, grid.Missing, 1},
	}, 2000, 1500)
	require.NoError(t, err)

	return &Field{Name: "probability_of_rain", Units: "1", Grid: g}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.nc")
	in := sampleField(t)

	require.NoError(t, WriteFile(path, in))

	out, err := ReadFile(path, "probability_of_rain")
	require.NoError(t, err)

	require.Equal(t, "probability_of_rain", out.Name)
	require.Equal(t, "1", out.Units)
	require.Equal(t, DefaultFillValue, out.FillValue)
	require.Equal(t, 2, out.Grid.Rows)
	require.Equal(t, 3, out.Grid.Cols)
	require.InDelta(t, 2000.0, out.Grid.DX, 0)
	require.InDelta(t, 1500.0, out.Grid.DY, 0)

	for k, want := range in.Grid.Data {
		got := out.Grid.Data[k]
		if grid.IsMissing(want) {
			require.True(t, grid.IsMissing(got), "cell %d should be missing", k)
			require.False(t, out.Mask.Valid[k])
			continue
		}
		require.InDelta(t, want, got, 0, "cell %d", k)
		require.True(t, out.Mask.Valid[k])
	}
}

func TestWriteAppliesMask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masked.nc")
	in := sampleField(t)
	in.FillValue = -1
	in.Mask = grid.NewMask(2, 3)
	in.Mask.Valid[0] = false

	require.NoError(t, WriteFile(path, in))

	out, err := ReadFile(path, "")
	require.NoError(t, err)
	require.Equal(t, float32(-1), out.FillValue)
	require.True(t, grid.IsMissing(out.Grid.Data[0]))
	require.True(t, grid.IsMissing(out.Grid.Data[4]))
	require.Equal(t, 4, out.Mask.CountValid())
}

func TestNaNFillValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.nc")
	in := sampleField(t)
	in.FillValue = float32(math.NaN())

	require.NoError(t, WriteFile(path, in))

	out, err := ReadFile(path, "")
	require.NoError(t, err)
	require.True(t, grid.IsMissing(out.Grid.Data[4]))
	require.Equal(t, 5, out.Mask.CountValid())
}

func TestReadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.nc")
	require.NoError(t, WriteFile(path, sampleField(t)))

	_, err := ReadFile(path, "temperature")
	require.ErrorIs(t, err, ErrNoVariable)

	_, err = ReadFile(filepath.Join(t.TempDir(), "absent.nc"), "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteRejectsMismatchedMask(t *testing.T) {
	in := sampleField(t)
	in.Mask = grid.NewMask(3, 2)

	err := WriteFile(filepath.Join(t.TempDir(), "bad.nc"), in)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}
