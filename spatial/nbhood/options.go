package nbhood

import (
	"fmt"
	"strings"
)

// Shape selects the neighbourhood kernel.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircular
)

// String returns the configuration name of s.
func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeCircular:
		return "circular"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps "square" or "circular" to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "square", "":
		return ShapeSquare, nil
	case "circular":
		return ShapeCircular, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidShape, name)
	}
}

func (s Shape) valid() bool { return s == ShapeSquare || s == ShapeCircular }

// Output selects whether a window produces the mean or the sum of its valid
// values.
type Output int

const (
	OutputFraction Output = iota
	OutputSum
)

// String returns the configuration name of o.
func (o Output) String() string {
	switch o {
	case OutputFraction:
		return "fraction"
	case OutputSum:
		return "sum"
	default:
		return fmt.Sprintf("Output(%d)", int(o))
	}
}

// ParseOutput maps "fraction" or "sum" to an Output.
func ParseOutput(name string) (Output, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fraction", "mean", "":
		return OutputFraction, nil
	case "sum":
		return OutputSum, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOutput, name)
	}
}

func (o Output) valid() bool { return o == OutputFraction || o == OutputSum }

// Option configures a Processor.
type Option func(*config) error

type config struct {
	shape      Shape
	output     Output
	fillMasked bool
	weighted   bool
	workers    int
}

func defaultConfig() config {
	return config{shape: ShapeSquare, output: OutputFraction}
}

// WithShape selects the kernel shape.
func WithShape(s Shape) Option {
	return func(cfg *config) error {
		if !s.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidShape, int(s))
		}
		cfg.shape = s
		return nil
	}
}

// WithOutput selects mean or sum output.
func WithOutput(o Output) Option {
	return func(cfg *config) error {
		if !o.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidOutput, int(o))
		}
		cfg.output = o
		return nil
	}
}

// WithFillMasked reports window values at invalid cells that have valid
// neighbours instead of marking them missing.
func WithFillMasked(enabled bool) Option {
	return func(cfg *config) error {
		cfg.fillMasked = enabled
		return nil
	}
}

// WithWeighted tapers the circular kernel linearly towards its rim.
// It has no effect on the square kernel.
func WithWeighted(enabled bool) Option {
	return func(cfg *config) error {
		cfg.weighted = enabled
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
