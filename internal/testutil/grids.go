package testutil

import (
	"math/rand"

	"github.com/cwbudde/algo-spatial/spatial/grid"
)

// Uniform returns a rows x cols grid with every cell set to value.
func Uniform(rows, cols int, spacing, value float64) *grid.Grid {
	g, err := grid.Filled(rows, cols, spacing, spacing, value)
	if err != nil {
		panic(err)
	}
	return g
}

// Ramp returns a grid whose cell (i, j) holds i*cols + j.
func Ramp(rows, cols int, spacing float64) *grid.Grid {
	g := Uniform(rows, cols, spacing, 0)
	for k := range g.Data {
		g.Data[k] = float64(k)
	}
	return g
}

// DeterministicNoise returns a grid of uniform values in [0, 1) drawn from a
// fixed seed.
func DeterministicNoise(seed int64, rows, cols int, spacing float64) *grid.Grid {
	g := Uniform(rows, cols, spacing, 0)
	rng := rand.New(rand.NewSource(seed))
	for k := range g.Data {
		g.Data[k] = rng.Float64()
	}
	return g
}

// Impulse returns a zero grid with a single 1 at (i, j).
func Impulse(rows, cols int, spacing float64, i, j int) *grid.Grid {
	g := Uniform(rows, cols, spacing, 0)
	if i >= 0 && i < rows && j >= 0 && j < cols {
		g.Set(i, j, 1)
	}
	return g
}

// RandomMask returns a mask with each cell invalid with probability frac.
func RandomMask(seed int64, rows, cols int, frac float64) *grid.Mask {
	m := grid.NewMask(rows, cols)
	rng := rand.New(rand.NewSource(seed))
	for k := range m.Valid {
		m.Valid[k] = rng.Float64() >= frac
	}
	return m
}

// MaskWithHoles returns an all-valid mask with the listed (i, j) cells invalid.
func MaskWithHoles(rows, cols int, holes ...[2]int) *grid.Mask {
	m := grid.NewMask(rows, cols)
	for _, h := range holes {
		m.Valid[h[0]*cols+h[1]] = false
	}
	return m
}
