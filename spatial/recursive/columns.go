package recursive

import (
	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/cwbudde/algo-vecmath"
)

// columnBlock is the number of adjacent columns filtered together as one
// row vector.
const columnBlock = 256

func blocks(cols int) int {
	return (cols + columnBlock - 1) / columnBlock
}

// columnPass runs Forward and then Backward down every column in [lo, hi).
// The columns advance together one row at a time, so each step is a vector
// operation over a row segment.
func columnPass(g *grid.Grid, anchor []bool, alpha float64, lo, hi int) {
	c := &columnState{
		g:      g,
		anchor: anchor,
		lo:     lo,
		hi:     hi,
		state:  make([]float64, hi-lo),
		in:     make([]float64, hi-lo),
		diff:   make([]float64, hi-lo),
		seeded: make([]bool, hi-lo),
	}

	c.sweep(alpha, 0, g.Rows, 1)
	c.sweep(alpha, g.Rows-1, -1, -1)
}

type columnState struct {
	g      *grid.Grid
	anchor []bool
	lo, hi int

	state  []float64
	in     []float64
	diff   []float64
	seeded []bool
}

func (c *columnState) isAnchor(i, j int) bool {
	return c.anchor == nil || c.anchor[i*c.g.Cols+j]
}

// sweep visits rows from start towards stop (exclusive) in steps of step.
func (c *columnState) sweep(alpha float64, start, stop, step int) {
	// Seed each column with its first anchor in sweep order.
	pending := len(c.state)
	for x := range c.seeded {
		c.seeded[x] = false
		c.state[x] = 0
	}
	for i := start; i != stop && pending > 0; i += step {
		row := c.g.Row(i)
		for x := range c.state {
			if !c.seeded[x] && c.isAnchor(i, c.lo+x) {
				c.state[x] = row[c.lo+x]
				c.seeded[x] = true
				pending--
			}
		}
	}

	for i := start; i != stop; i += step {
		row := c.g.Row(i)[c.lo:c.hi]

		// Non-anchors contribute the state itself, so their difference is 0.
		for x, v := range row {
			if c.isAnchor(i, c.lo+x) {
				c.in[x] = v
			} else {
				c.in[x] = c.state[x]
			}
		}

		// state += alpha * (in - state)
		vecmath.ScaleBlock(c.diff, c.state, -1)
		vecmath.AddBlockInPlace(c.diff, c.in)
		vecmath.ScaleBlockInPlace(c.diff, alpha)
		vecmath.AddBlockInPlace(c.state, c.diff)

		if pending == 0 {
			copy(row, c.state)
			continue
		}
		for x := range row {
			if c.seeded[x] {
				row[x] = c.state[x]
			}
		}
	}
}
