package recursive

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Errors returned by filter construction.
var (
	ErrInvalidAlpha      = errors.New("recursive: alpha must be in the open interval (0, 1)")
	ErrInvalidIterations = errors.New("recursive: iterations must be >= 1")
	ErrInvalidEdgeWidth  = errors.New("recursive: edge width must be >= 0")
	ErrInvalidStrategy   = errors.New("recursive: unknown mask strategy")
	ErrInvalidWorkers    = errors.New("recursive: workers must be >= 0")
	ErrInvalidAxis       = errors.New("recursive: unknown axis")
)

const (
	defaultAlpha      = 0.5
	defaultIterations = 1

	// Filtered weights at or below this are treated as empty.
	minNormalisedWeight = 1e-12
)

// MaskStrategy selects how invalid cells take part in the recurrence.
type MaskStrategy int

const (
	StrategyFillNeighbourhood MaskStrategy = iota
	StrategyHoldState
	StrategyNormalised
)

func (s MaskStrategy) String() string {
	switch s {
	case StrategyFillNeighbourhood:
		return "fill"
	case StrategyHoldState:
		return "hold"
	case StrategyNormalised:
		return "normalised"
	default:
		return fmt.Sprintf("MaskStrategy(%d)", int(s))
	}
}

// ParseMaskStrategy maps "fill", "hold" or "normalised" to a MaskStrategy.
func ParseMaskStrategy(name string) (MaskStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fill", "":
		return StrategyFillNeighbourhood, nil
	case "hold":
		return StrategyHoldState, nil
	case "normalised", "normalized":
		return StrategyNormalised, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
	}
}

func (s MaskStrategy) valid() bool {
	return s >= StrategyFillNeighbourhood && s <= StrategyNormalised
}

// Axis selects the direction of a single pass.
type Axis int

const (
	AxisX Axis = iota // along rows
	AxisY             // along columns
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	alphaX     float64
	alphaY     float64
	iterations int
	strategy   MaskStrategy
	edgeWidth  int
	workers    int
}

func defaultConfig() config {
	return config{
		alphaX:     defaultAlpha,
		alphaY:     defaultAlpha,
		iterations: defaultIterations,
		strategy:   StrategyFillNeighbourhood,
	}
}

// WithAlphaX sets the coefficient used along rows.
func WithAlphaX(alpha float64) Option {
	return func(cfg *config) error {
		if err := ValidateAlpha(alpha); err != nil {
			return fmt.Errorf("%w (alpha_x)", err)
		}
		cfg.alphaX = alpha
		return nil
	}
}

// WithAlphaY sets the coefficient used along columns.
func WithAlphaY(alpha float64) Option {
	return func(cfg *config) error {
		if err := ValidateAlpha(alpha); err != nil {
			return fmt.Errorf("%w (alpha_y)", err)
		}
		cfg.alphaY = alpha
		return nil
	}
}

// WithIterations sets the number of forward/backward applications per axis.
func WithIterations(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidIterations, n)
		}
		cfg.iterations = n
		return nil
	}
}

// WithMaskStrategy selects the handling of invalid cells.
func WithMaskStrategy(s MaskStrategy) Option {
	return func(cfg *config) error {
		if !s.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidStrategy, int(s))
		}
		cfg.strategy = s
		return nil
	}
}

// WithEdgeWidth pads the field by n replicated edge cells before filtering.
// The halo is cropped from the result.
func WithEdgeWidth(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidEdgeWidth, n)
		}
		cfg.edgeWidth = n
		return nil
	}
}

// WithWorkers bounds the number of goroutines. 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidWorkers, n)
		}
		cfg.workers = n
		return nil
	}
}

// ValidateAlpha returns ErrInvalidAlpha unless 0 < alpha < 1.
func ValidateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return fmt.Errorf("%w: %v", ErrInvalidAlpha, alpha)
	}
	return nil
}
