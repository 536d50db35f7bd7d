// Package ncio reads and writes a single 2-D field as a NetCDF classic file.
//
// The variable is stored as float32 with dimensions (y, x). Missing cells
// are written as the variable's _FillValue attribute. Grid spacing in
// metres is kept in the global attributes dx and dy.
package ncio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ctessum/cdf"
	"github.com/cwbudde/algo-spatial/spatial/grid"
)

// DefaultFillValue marks missing cells when a Field does not set one.
const DefaultFillValue float32 = -9999

var (
	ErrNoVariable        = errors.New("ncio: variable not found")
	ErrAmbiguous         = errors.New("ncio: several 2-D variables, name one")
	ErrNotTwoDimensional = errors.New("ncio: variable is not two-dimensional")
	ErrMissingSpacing    = errors.New("ncio: missing dx/dy global attributes")
)

// Field is one named variable with its validity mask.
type Field struct {
	Name      string
	Units     string
	FillValue float32 // 0 selects DefaultFillValue on write
	Grid      *grid.Grid
	Mask      *grid.Mask // derived from missing cells on read; may be nil on write
}

// ReadFile opens path and reads variable. An empty variable selects the only
// 2-D variable in the file.
func ReadFile(path, variable string) (*Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncio: %w", err)
	}
	defer f.Close()

	return Read(f, variable)
}

// Read reads variable from an open NetCDF file.
func Read(r cdf.ReaderWriterAt, variable string) (*Field, error) {
	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("ncio: open: %w", err)
	}

	name, err := pickVariable(f.Header, variable)
	if err != nil {
		return nil, err
	}

	dims := f.Header.Lengths(name)
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: %s has %d dimensions", ErrNotTwoDimensional, name, len(dims))
	}

	dx, okX := firstFloat(f.Header.GetAttribute("", "dx"))
	dy, okY := firstFloat(f.Header.GetAttribute("", "dy"))
	if !okX || !okY {
		return nil, ErrMissingSpacing
	}

	g, err := grid.New(dims[0], dims[1], dx, dy)
	if err != nil {
		return nil, fmt.Errorf("ncio: %s: %w", name, err)
	}

	fill := DefaultFillValue
	if v, ok := firstFloat(f.Header.GetAttribute(name, "_FillValue")); ok {
		fill = float32(v)
	}

	buf := make([]float32, g.Len())
	if _, err := f.Reader(name, nil, nil).Read(buf); err != nil {
		return nil, fmt.Errorf("ncio: reading %s: %w", name, err)
	}
	for k, v := range buf {
		if isFill(v, fill) {
			g.Data[k] = grid.Missing
			continue
		}
		g.Data[k] = float64(v)
	}

	units, _ := f.Header.GetAttribute(name, "units").(string)

	return &Field{
		Name:      name,
		Units:     units,
		FillValue: fill,
		Grid:      g,
		Mask:      grid.MaskFromGrid(g),
	}, nil
}

// WriteFile creates path and writes fld to it.
func WriteFile(path string, fld *Field) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ncio: %w", err)
	}

	if err := Write(f, fld); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("ncio: %w", err)
	}
	return nil
}

// Write writes fld to w. Cells that are missing in the grid or invalid in
// the mask are stored as the fill value.
func Write(w *os.File, fld *Field) error {
	g := fld.Grid
	if err := g.Validate(); err != nil {
		return fmt.Errorf("ncio: %w", err)
	}
	if err := fld.Mask.CheckShape(g); err != nil {
		return fmt.Errorf("ncio: %w", err)
	}

	fill := fld.FillValue
	if fill == 0 {
		fill = DefaultFillValue
	}

	dims := []string{"y", "x"}
	h := cdf.NewHeader(dims, []int{g.Rows, g.Cols})
	h.AddAttribute("", "dx", []float64{g.DX})
	h.AddAttribute("", "dy", []float64{g.DY})
	h.AddVariable(fld.Name, dims, []float32{0})
	h.AddAttribute(fld.Name, "_FillValue", []float32{fill})
	if fld.Units != "" {
		h.AddAttribute(fld.Name, "units", fld.Units)
	}
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("ncio: create: %w", err)
	}

	data := make([]float32, g.Len())
	for k, v := range g.Data {
		if grid.IsMissing(v) || !fld.Mask.ValidAt(k) {
			data[k] = fill
			continue
		}
		data[k] = float32(v)
	}

	end := f.Header.Lengths(fld.Name)
	start := make([]int, len(end))
	if _, err := f.Writer(fld.Name, start, end).Write(data); err != nil {
		return fmt.Errorf("ncio: writing %s: %w", fld.Name, err)
	}

	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("ncio: %w", err)
	}
	return nil
}

func pickVariable(h *cdf.Header, variable string) (string, error) {
	var candidates []string
	for _, v := range h.Variables() {
		if variable != "" {
			if v == variable {
				return v, nil
			}
			continue
		}
		if len(h.Lengths(v)) == 2 {
			candidates = append(candidates, v)
		}
	}

	switch {
	case variable != "":
		return "", fmt.Errorf("%w: %q", ErrNoVariable, variable)
	case len(candidates) == 0:
		return "", ErrNoVariable
	case len(candidates) > 1:
		return "", fmt.Errorf("%w: %v", ErrAmbiguous, candidates)
	}
	return candidates[0], nil
}

// firstFloat extracts the first element of a numeric attribute.
func firstFloat(attr interface{}) (float64, bool) {
	switch v := attr.(type) {
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []int32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	}
	return 0, false
}

func isFill(v, fill float32) bool {
	if math.IsNaN(float64(fill)) {
		return math.IsNaN(float64(v))
	}
	return v == fill || math.IsNaN(float64(v))
}
