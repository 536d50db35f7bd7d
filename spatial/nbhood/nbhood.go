package nbhood

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/internal/workers"
	"github.com/cwbudde/algo-spatial/spatial/grid"
)

// Processor computes neighbourhood values for a fixed physical radius.
// It holds no per-call state and is safe for concurrent use.
type Processor struct {
	radius float64
	cfg    config
}

// New returns a Processor for radius metres.
func New(radius float64, opts ...Option) (*Processor, error) {
	if err := validateRadius(radius); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Processor{radius: radius, cfg: cfg}, nil
}

// Radius returns the configured radius in metres.
func (p *Processor) Radius() float64 { return p.radius }

// Shape returns the configured kernel shape.
func (p *Processor) Shape() Shape { return p.cfg.shape }

// Process returns a new grid holding the neighbourhood value of every cell.
// g is not modified. m may be nil.
func (p *Processor) Process(g *grid.Grid, m *grid.Mask) (*grid.Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("nbhood: %w", err)
	}
	if err := m.CheckShape(g); err != nil {
		return nil, fmt.Errorf("nbhood: %w", err)
	}

	rx, ry, err := Radii(p.radius, g.DX, g.DY)
	if err != nil {
		return nil, err
	}

	switch p.cfg.shape {
	case ShapeCircular:
		return p.circular(g, m, rx, ry)
	default:
		return p.square(g, m, rx, ry), nil
	}
}

func (p *Processor) square(g *grid.Grid, m *grid.Mask, rx, ry int) *grid.Grid {
	sa := NewSummedArea(g, m, p.cfg.workers)
	out := g.Like()

	workers.Each(g.Rows, p.cfg.workers, func(i int) {
		row := out.Row(i)
		for j := range row {
			switch {
			case !p.keep(g, m, i*g.Cols+j):
				row[j] = grid.Missing
			case p.cfg.output == OutputSum:
				sum, count := sa.Window(i-ry, i+ry, j-rx, j+rx)
				row[j] = p.finish(sum, count, true, 0, 0)
			default:
				row[j], _ = sa.Mean(i-ry, i+ry, j-rx, j+rx)
			}
		}
	})

	return out
}

// keep reports whether cell k receives a value when its window is non-empty.
func (p *Processor) keep(g *grid.Grid, m *grid.Mask, k int) bool {
	if p.cfg.fillMasked {
		return true
	}
	return m.ValidAt(k) && !grid.IsMissing(g.Data[k])
}

// finish turns a window total into the output value. Means are clamped to
// [lo, hi], the range of the valid inputs.
func (p *Processor) finish(sum, count float64, keep bool, lo, hi float64) float64 {
	if count <= 0 || !keep {
		return grid.Missing
	}
	if p.cfg.output == OutputSum {
		return sum
	}
	return clamp(sum/count, lo, hi)
}
