package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/spatial/nbhood"
	"github.com/cwbudde/algo-spatial/spatial/recursive"
)

// Config holds every pipeline parameter.
type Config struct {
	Radius float64 // metres

	ApplyRecursiveFilter bool
	AlphaX               float64
	AlphaY               float64
	Iterations           int
	ReMask               bool

	Shape        nbhood.Shape
	Output       nbhood.Output
	Weighted     bool
	MaskStrategy recursive.MaskStrategy
	EdgeWidth    int
	Workers      int // 0 uses GOMAXPROCS
}

// DefaultConfig returns a square-window mean with the recursive filter
// disabled. Radius must still be set.
func DefaultConfig() Config {
	return Config{
		AlphaX:       0.5,
		AlphaY:       0.5,
		Iterations:   1,
		Shape:        nbhood.ShapeSquare,
		Output:       nbhood.OutputFraction,
		MaskStrategy: recursive.StrategyFillNeighbourhood,
	}
}

// Validate reports the first invalid parameter wrapped in ErrConfiguration.
// Recursive filter parameters are only checked when the filter is enabled.
func (c Config) Validate() error {
	_, _, err := c.build()
	return err
}

// fillMasked reports whether the averager must supply values at invalid
// cells for the recursive filter.
func (c Config) fillMasked() bool {
	return c.ApplyRecursiveFilter && c.MaskStrategy == recursive.StrategyFillNeighbourhood
}

func (c Config) build() (*nbhood.Processor, *recursive.Filter, error) {
	avg, err := nbhood.New(c.Radius,
		nbhood.WithShape(c.Shape),
		nbhood.WithOutput(c.Output),
		nbhood.WithWeighted(c.Weighted),
		nbhood.WithFillMasked(c.fillMasked()),
		nbhood.WithWorkers(c.Workers),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if !c.ApplyRecursiveFilter {
		return avg, nil, nil
	}

	filter, err := recursive.New(
		recursive.WithAlphaX(c.AlphaX),
		recursive.WithAlphaY(c.AlphaY),
		recursive.WithIterations(c.Iterations),
		recursive.WithMaskStrategy(c.MaskStrategy),
		recursive.WithEdgeWidth(c.EdgeWidth),
		recursive.WithWorkers(c.Workers),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return avg, filter, nil
}
