package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/cwbudde/algo-spatial/spatial/nbhood"
	"github.com/cwbudde/algo-spatial/spatial/recursive"
)

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithObserver registers fn to receive the output of every stage.
func WithObserver(fn Observer) Option {
	return func(p *Pipeline) error {
		p.observer = fn
		return nil
	}
}

// Pipeline runs the smoothing stages for a validated Config. It is safe for
// concurrent use when the observer is.
type Pipeline struct {
	cfg      Config
	avg      *nbhood.Processor
	filter   *recursive.Filter
	observer Observer
}

// New validates cfg and returns a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	avg, filter, err := cfg.build()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg, avg: avg, filter: filter}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	return p, nil
}

// Run builds a Pipeline for cfg and processes g once.
func Run(cfg Config, g *grid.Grid, m *grid.Mask) (*grid.Grid, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Process(g, m)
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Process smooths g and returns a new grid of the same shape. m may be nil.
// Cells that are invalid in m, or missing in g, count as invalid. Without
// the recursive filter or with ReMask set, invalid cells are grid.Missing
// in the result. Every valid cell of the result is finite.
func (p *Pipeline) Process(g *grid.Grid, m *grid.Mask) (*grid.Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := m.CheckShape(g); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if _, _, err := nbhood.Radii(p.cfg.Radius, g.DX, g.DY); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	valid := effectiveMask(g, m)

	field, err := grid.ApplyMask(g, valid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := p.check(StageStart, field, valid); err != nil {
		return nil, err
	}

	if field, err = p.avg.Process(field, valid); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}
	if err := p.check(StageNeighbourhoodAveraged, field, valid); err != nil {
		return nil, err
	}

	if p.filter != nil {
		if field, err = p.filter.Process(field, valid); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrComputation, err)
		}
		if err := p.check(StageRecursiveFiltered, field, valid); err != nil {
			return nil, err
		}
	}

	if p.cfg.ReMask {
		if field, err = grid.ApplyMask(field, valid); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrComputation, err)
		}
		p.observe(StageReMasked, field)
	}

	p.observe(StageDone, field)
	return field, nil
}

// check fails when a stage produced ±Inf anywhere or NaN at a valid cell.
func (p *Pipeline) check(stage Stage, g *grid.Grid, valid *grid.Mask) error {
	if k, bad := g.HasNonFinite(valid.ValidAt); bad {
		return fmt.Errorf("%w: %s: non-finite value %v at cell (%d,%d)",
			ErrComputation, stage, g.Data[k], k/g.Cols, k%g.Cols)
	}
	p.observe(stage, g)
	return nil
}

func (p *Pipeline) observe(stage Stage, g *grid.Grid) {
	if p.observer != nil {
		p.observer(stage, g)
	}
}

// effectiveMask combines m with the missing cells of g. It returns m itself
// when g has no missing values.
func effectiveMask(g *grid.Grid, m *grid.Mask) *grid.Mask {
	var out *grid.Mask
	for k, v := range g.Data {
		if !grid.IsMissing(v) || !m.ValidAt(k) {
			continue
		}
		if out == nil {
			if m == nil {
				out = grid.NewMask(g.Rows, g.Cols)
			} else {
				out = m.Clone()
			}
		}
		out.Valid[k] = false
	}
	if out == nil {
		return m
	}
	return out
}
