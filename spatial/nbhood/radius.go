package nbhood

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by radius conversion and processor construction.
var (
	ErrInvalidRadius  = errors.New("nbhood: radius must be >= 0 and finite")
	ErrInvalidSpacing = errors.New("nbhood: grid spacing must be > 0 and finite")
	ErrInvalidShape   = errors.New("nbhood: unknown kernel shape")
	ErrInvalidOutput  = errors.New("nbhood: unknown output kind")
	ErrInvalidWorkers = errors.New("nbhood: workers must be >= 0")
)

const maxCellRadius = 1 << 24

// CellRadius converts a physical radius to a whole number of cells.
// A radius of exactly 0 gives 0; any positive radius gives at least 1.
func CellRadius(radius, spacing float64) (int, error) {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSpacing, spacing)
	}
	if err := validateRadius(radius); err != nil {
		return 0, err
	}
	if radius == 0 {
		return 0, nil
	}

	cells := math.Round(radius / spacing)
	if cells < 1 {
		return 1, nil
	}
	if cells > maxCellRadius {
		return 0, fmt.Errorf("%w: %v m is %v cells", ErrInvalidRadius, radius, cells)
	}

	return int(cells), nil
}

// Radii converts radius to cell radii along x (columns, spacing dx) and
// y (rows, spacing dy).
func Radii(radius, dx, dy float64) (rx, ry int, err error) {
	if rx, err = CellRadius(radius, dx); err != nil {
		return 0, 0, err
	}
	if ry, err = CellRadius(radius, dy); err != nil {
		return 0, 0, err
	}
	return rx, ry, nil
}

func validateRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return nil
}
