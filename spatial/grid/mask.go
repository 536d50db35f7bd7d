package grid

import "fmt"

// Mask marks usable cells of a Grid. A nil *Mask treats every cell as valid.
type Mask struct {
	Rows, Cols int
	Valid      []bool
}

// NewMask returns a mask with every cell valid.
func NewMask(rows, cols int) *Mask {
	m := &Mask{Rows: rows, Cols: cols, Valid: make([]bool, rows*cols)}
	for i := range m.Valid {
		m.Valid[i] = true
	}
	return m
}

// MaskFromRows builds a mask from equally long rows. The input is copied.
func MaskFromRows(rows [][]bool) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	m := &Mask{Rows: len(rows), Cols: len(rows[0])}
	m.Valid = make([]bool, 0, m.Rows*m.Cols)
	for i, r := range rows {
		if len(r) != m.Cols {
			return nil, fmt.Errorf("%w: mask row %d has %d cells, want %d", ErrShapeMismatch, i, len(r), m.Cols)
		}
		m.Valid = append(m.Valid, r...)
	}

	return m, nil
}

// MaskFromGrid marks every non-missing cell of g as valid.
func MaskFromGrid(g *Grid) *Mask {
	m := &Mask{Rows: g.Rows, Cols: g.Cols, Valid: make([]bool, len(g.Data))}
	for k, v := range g.Data {
		m.Valid[k] = !IsMissing(v)
	}
	return m
}

// IsValid reports whether cell (i, j) is usable.
func (m *Mask) IsValid(i, j int) bool {
	if m == nil {
		return true
	}
	return m.Valid[i*m.Cols+j]
}

// ValidAt reports whether the row-major cell k is usable.
func (m *Mask) ValidAt(k int) bool {
	if m == nil {
		return true
	}
	return m.Valid[k]
}

// IsValid is the package-level form of (*Mask).IsValid for optional masks.
func IsValid(m *Mask, i, j int) bool {
	return m.IsValid(i, j)
}

// CheckShape returns ErrShapeMismatch when m is present and does not match g.
func (m *Mask) CheckShape(g *Grid) error {
	if m == nil {
		return nil
	}
	if m.Rows != g.Rows || m.Cols != g.Cols || len(m.Valid) != len(g.Data) {
		return fmt.Errorf("%w: mask %dx%d, grid %dx%d", ErrShapeMismatch, m.Rows, m.Cols, g.Rows, g.Cols)
	}
	return nil
}

// CountValid returns the number of valid cells.
func (m *Mask) CountValid() int {
	n := 0
	for _, v := range m.Valid {
		if v {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. A nil mask clones to nil.
func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}
	out := *m
	out.Valid = append([]bool(nil), m.Valid...)
	return &out
}

// Weights returns 1 for valid cells and 0 otherwise, row-major.
func (m *Mask) Weights() []float64 {
	w := make([]float64, len(m.Valid))
	for k, ok := range m.Valid {
		if ok {
			w[k] = 1
		}
	}
	return w
}

// TransposeMask returns m with rows and columns swapped. nil stays nil.
func TransposeMask(m *Mask) *Mask {
	if m == nil {
		return nil
	}
	out := &Mask{Rows: m.Cols, Cols: m.Rows, Valid: make([]bool, len(m.Valid))}
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Valid[j*out.Cols+i] = m.Valid[i*m.Cols+j]
		}
	}
	return out
}

// PadMask pads m like Pad pads a grid, replicating edge validity.
func PadMask(m *Mask, width int) *Mask {
	if m == nil {
		return nil
	}
	if width <= 0 {
		return m.Clone()
	}

	out := &Mask{Rows: m.Rows + 2*width, Cols: m.Cols + 2*width}
	out.Valid = make([]bool, out.Rows*out.Cols)
	for i := 0; i < out.Rows; i++ {
		si := clampIndex(i-width, m.Rows)
		for j := 0; j < out.Cols; j++ {
			out.Valid[i*out.Cols+j] = m.Valid[si*m.Cols+clampIndex(j-width, m.Cols)]
		}
	}
	return out
}

// ApplyMask returns a copy of g with every invalid cell set to Missing.
func ApplyMask(g *Grid, m *Mask) (*Grid, error) {
	if err := m.CheckShape(g); err != nil {
		return nil, err
	}

	out := g.Clone()
	if m == nil {
		return out, nil
	}
	for k, ok := range m.Valid {
		if !ok {
			out.Data[k] = Missing
		}
	}
	return out, nil
}
