package recursive

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/internal/workers"
	"github.com/cwbudde/algo-spatial/spatial/grid"
)

// Filter applies the recursive filter with a fixed configuration.
// It holds no per-call state and is safe for concurrent use.
type Filter struct {
	cfg config
}

// New returns a Filter. Without options both alphas are 0.5, one iteration
// is run and StrategyFillNeighbourhood is used.
func New(opts ...Option) (*Filter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Filter{cfg: cfg}, nil
}

// AlphaX returns the smoothing coefficient along x.
func (f *Filter) AlphaX() float64 { return f.cfg.alphaX }

// AlphaY returns the smoothing coefficient along y.
func (f *Filter) AlphaY() float64 { return f.cfg.alphaY }

// Iterations returns the number of x-then-y iterations.
func (f *Filter) Iterations() int { return f.cfg.iterations }

// Strategy returns how invalid cells take part in the recurrence.
func (f *Filter) Strategy() MaskStrategy { return f.cfg.strategy }

// EdgeWidth returns the halo width in cells.
func (f *Filter) EdgeWidth() int { return f.cfg.edgeWidth }

// Process runs the configured number of iterations, each filtering along x
// and then along y. g is not modified; m may be nil.
func (f *Filter) Process(g *grid.Grid, m *grid.Mask) (*grid.Grid, error) {
	return f.apply(g, m, func(work *grid.Grid, anchor []bool) {
		for range f.cfg.iterations {
			f.pass(work, anchor, AxisX)
			f.pass(work, anchor, AxisY)
		}
	})
}

// ProcessAxis runs a single forward and backward pass along one axis.
func (f *Filter) ProcessAxis(g *grid.Grid, m *grid.Mask, axis Axis) (*grid.Grid, error) {
	if axis != AxisX && axis != AxisY {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAxis, int(axis))
	}
	return f.apply(g, m, func(work *grid.Grid, anchor []bool) {
		f.pass(work, anchor, axis)
	})
}

// apply validates the input, adds the edge halo and runs filter on a working
// copy according to the mask strategy.
func (f *Filter) apply(g *grid.Grid, m *grid.Mask, filter func(*grid.Grid, []bool)) (*grid.Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("recursive: %w", err)
	}
	if err := m.CheckShape(g); err != nil {
		return nil, fmt.Errorf("recursive: %w", err)
	}

	width := f.cfg.edgeWidth
	work := grid.Pad(g, width)
	pm := grid.PadMask(m, width)

	if f.cfg.strategy == StrategyNormalised {
		work = normalised(work, pm, filter)
	} else {
		filter(work, f.anchors(work, pm))
	}

	if width == 0 {
		return work, nil
	}
	return grid.Crop(work, width), nil
}

// anchors marks the cells feeding the recurrence. It returns nil when every
// cell qualifies.
func (f *Filter) anchors(g *grid.Grid, m *grid.Mask) []bool {
	anchor := make([]bool, len(g.Data))
	all := true
	for k, v := range g.Data {
		ok := !grid.IsMissing(v)
		if f.cfg.strategy == StrategyHoldState {
			ok = ok && m.ValidAt(k)
		}
		anchor[k] = ok
		all = all && ok
	}
	if all {
		return nil
	}
	return anchor
}

// normalised filters the zero-filled values and the validity weights with the
// same sequence of passes and returns their ratio.
func normalised(g *grid.Grid, m *grid.Mask, filter func(*grid.Grid, []bool)) *grid.Grid {
	weights := g.Like()
	for k, v := range g.Data {
		if m.ValidAt(k) && !grid.IsMissing(v) {
			weights.Data[k] = 1
		} else {
			g.Data[k] = 0
		}
	}

	filter(g, nil)
	filter(weights, nil)

	for k, w := range weights.Data {
		if w <= minNormalisedWeight {
			g.Data[k] = grid.Missing
			continue
		}
		g.Data[k] /= w
	}
	return g
}

// pass filters every lane of g along axis in place. Lanes are independent
// and run on the worker pool; pass returns once all of them are done.
func (f *Filter) pass(g *grid.Grid, anchor []bool, axis Axis) {
	if axis == AxisY {
		alpha := f.cfg.alphaY
		workers.Each(blocks(g.Cols), f.cfg.workers, func(b int) {
			lo := b * columnBlock
			columnPass(g, anchor, alpha, lo, min(lo+columnBlock, g.Cols))
		})
		return
	}

	alpha := f.cfg.alphaX
	workers.Each(g.Rows, f.cfg.workers, func(i int) {
		row := g.Row(i)
		var a []bool
		if anchor != nil {
			a = anchor[i*g.Cols : (i+1)*g.Cols]
		}
		Forward(row, row, a, alpha)
		Backward(row, row, a, alpha)
	})
}
