package grid

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by grid construction and validation.
var (
	ErrEmpty          = errors.New("grid: empty grid")
	ErrShapeMismatch  = errors.New("grid: shape mismatch")
	ErrInvalidSpacing = errors.New("grid: spacing must be > 0 and finite")
)

func validateShape(rows, cols, n int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmpty, rows, cols)
	}
	if rows*cols != n {
		return fmt.Errorf("%w: %dx%d needs %d cells, got %d", ErrShapeMismatch, rows, cols, rows*cols, n)
	}
	return nil
}

func validateSpacing(dx, dy float64) error {
	if !(dx > 0) || math.IsInf(dx, 0) {
		return fmt.Errorf("%w: dx=%v", ErrInvalidSpacing, dx)
	}
	if !(dy > 0) || math.IsInf(dy, 0) {
		return fmt.Errorf("%w: dy=%v", ErrInvalidSpacing, dy)
	}
	return nil
}
