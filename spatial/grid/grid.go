package grid

import (
	"fmt"
	"math"
)

// Missing marks an invalid cell in a Grid.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Grid is a row-major 2-D field on a regular grid.
type Grid struct {
	Rows, Cols int
	DX, DY     float64 // cell spacing in metres along columns (x) and rows (y)
	Data       []float64
}

// New returns a zero-filled grid.
func New(rows, cols int, dx, dy float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmpty, rows, cols)
	}
	if err := validateSpacing(dx, dy); err != nil {
		return nil, err
	}

	return &Grid{Rows: rows, Cols: cols, DX: dx, DY: dy, Data: make([]float64, rows*cols)}, nil
}

// FromRows builds a grid from a slice of equally long rows. The input is copied.
func FromRows(rows [][]float64, dx, dy float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	g, err := New(len(rows), len(rows[0]), dx, dy)
	if err != nil {
		return nil, err
	}

	for i, r := range rows {
		if len(r) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShapeMismatch, i, len(r), g.Cols)
		}
		copy(g.Row(i), r)
	}

	return g, nil
}

// Filled returns a grid with every cell set to v.
func Filled(rows, cols int, dx, dy, v float64) (*Grid, error) {
	g, err := New(rows, cols, dx, dy)
	if err != nil {
		return nil, err
	}
	for i := range g.Data {
		g.Data[i] = v
	}
	return g, nil
}

// Validate checks shape and spacing.
func (g *Grid) Validate() error {
	if g == nil {
		return ErrEmpty
	}
	if err := validateShape(g.Rows, g.Cols, len(g.Data)); err != nil {
		return err
	}
	return validateSpacing(g.DX, g.DY)
}

// Len returns the number of cells.
func (g *Grid) Len() int { return g.Rows * g.Cols }

// Index returns the row-major offset of (i, j).
func (g *Grid) Index(i, j int) int { return i*g.Cols + j }

// At returns the value at row i, column j.
func (g *Grid) At(i, j int) float64 { return g.Data[i*g.Cols+j] }

// Set stores v at row i, column j.
func (g *Grid) Set(i, j int, v float64) { g.Data[i*g.Cols+j] = v }

// Row returns row i as a sub-slice of Data.
func (g *Grid) Row(i int) []float64 { return g.Data[i*g.Cols : (i+1)*g.Cols] }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := *g
	out.Data = append([]float64(nil), g.Data...)
	return &out
}

// Like returns a zero-filled grid with the same shape and spacing.
func (g *Grid) Like() *Grid {
	out := *g
	out.Data = make([]float64, len(g.Data))
	return &out
}

// SameShape reports whether g and o have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.Rows == o.Rows && g.Cols == o.Cols
}

// Transpose returns g with rows and columns swapped. DX and DY swap with them.
func Transpose(g *Grid) *Grid {
	out := &Grid{Rows: g.Cols, Cols: g.Rows, DX: g.DY, DY: g.DX, Data: make([]float64, len(g.Data))}
	for i := 0; i < g.Rows; i++ {
		row := g.Row(i)
		for j, v := range row {
			out.Data[j*out.Cols+i] = v
		}
	}
	return out
}

// Pad returns g surrounded by a halo of width cells on every side. Halo cells
// replicate the nearest edge cell.
func Pad(g *Grid, width int) *Grid {
	if width <= 0 {
		return g.Clone()
	}

	out := &Grid{
		Rows: g.Rows + 2*width,
		Cols: g.Cols + 2*width,
		DX:   g.DX,
		DY:   g.DY,
	}
	out.Data = make([]float64, out.Rows*out.Cols)

	for i := 0; i < out.Rows; i++ {
		src := g.Row(clampIndex(i-width, g.Rows))
		dst := out.Row(i)
		for j := range dst {
			dst[j] = src[clampIndex(j-width, g.Cols)]
		}
	}

	return out
}

// Crop removes a halo of width cells from every side, inverting Pad.
func Crop(g *Grid, width int) *Grid {
	if width <= 0 {
		return g.Clone()
	}

	out := &Grid{Rows: g.Rows - 2*width, Cols: g.Cols - 2*width, DX: g.DX, DY: g.DY}
	out.Data = make([]float64, out.Rows*out.Cols)
	for i := 0; i < out.Rows; i++ {
		copy(out.Row(i), g.Row(i + width)[width:width+out.Cols])
	}

	return out
}

// HasNonFinite reports whether any cell selected by valid is NaN or ±Inf,
// or any cell at all is ±Inf. A nil valid function selects every cell.
func (g *Grid) HasNonFinite(valid func(k int) bool) (int, bool) {
	for k, v := range g.Data {
		if math.IsInf(v, 0) {
			return k, true
		}
		if math.IsNaN(v) && (valid == nil || valid(k)) {
			return k, true
		}
	}
	return -1, false
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
