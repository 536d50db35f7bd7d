package nbhood

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-spatial/spatial/grid"
)

// Kernel holds the weights of a circular neighbourhood, (2*RY+1) rows by
// (2*RX+1) columns, centred on (RY, RX).
type Kernel struct {
	RX, RY  int
	Weights []float64
}

// At returns the weight at offset (di, dj) from the centre.
func (k Kernel) At(di, dj int) float64 {
	return k.Weights[(di+k.RY)*(2*k.RX+1)+dj+k.RX]
}

// CircularKernel returns the disc kernel for cell radii rx and ry. Cells whose
// centre lies within the ellipse (dj/rx)^2 + (di/ry)^2 <= 1 get weight 1, or
// a linear taper 1 - d*R/(R+1) when weighted is set (R = max(rx, ry)).
func CircularKernel(rx, ry int, weighted bool) Kernel {
	k := Kernel{RX: rx, RY: ry, Weights: make([]float64, (2*rx+1)*(2*ry+1))}
	taper := float64(max(rx, ry))
	taper /= taper + 1

	for di := -ry; di <= ry; di++ {
		for dj := -rx; dj <= rx; dj++ {
			x, y := normOffset(dj, rx), normOffset(di, ry)
			q := x*x + y*y
			if q > 1+1e-12 {
				continue
			}
			w := 1.0
			if weighted {
				w = 1 - kernelSqrt(q)*taper
			}
			k.Weights[(di+ry)*(2*rx+1)+dj+rx] = w
		}
	}

	return k
}

func normOffset(d, r int) float64 {
	if r == 0 {
		return 0
	}
	return float64(d) / float64(r)
}

// minPositive returns the smallest non-zero kernel weight.
func (k Kernel) minPositive() float64 {
	m := math.Inf(1)
	for _, w := range k.Weights {
		if w > 0 && w < m {
			m = w
		}
	}
	return m
}

// circular evaluates the kernel as a normalised convolution. The valid values
// go into the real part and the validity weights into the imaginary part, so
// one complex FFT pass yields both the weighted sum and the weight total.
func (p *Processor) circular(g *grid.Grid, m *grid.Mask, rx, ry int) (*grid.Grid, error) {
	k := CircularKernel(rx, ry, p.cfg.weighted)

	pr := nextPowerOf2(g.Rows + ry)
	pc := nextPowerOf2(g.Cols + rx)

	rowPlan, err := algofft.NewPlan64(pc)
	if err != nil {
		return nil, fmt.Errorf("nbhood: failed to create FFT plan: %w", err)
	}
	colPlan := rowPlan
	if pr != pc {
		if colPlan, err = algofft.NewPlan64(pr); err != nil {
			return nil, fmt.Errorf("nbhood: failed to create FFT plan: %w", err)
		}
	}

	field := make([]complex128, pr*pc)
	for i := 0; i < g.Rows; i++ {
		for j, v := range g.Row(i) {
			if m.ValidAt(i*g.Cols+j) && !grid.IsMissing(v) {
				field[i*pc+j] = complex(v, 1)
			}
		}
	}

	kern := make([]complex128, pr*pc)
	for di := -ry; di <= ry; di++ {
		for dj := -rx; dj <= rx; dj++ {
			if w := k.At(di, dj); w != 0 {
				kern[((di+pr)%pr)*pc+(dj+pc)%pc] = complex(w, 0)
			}
		}
	}

	if err := fft2(field, pr, pc, rowPlan, colPlan, false); err != nil {
		return nil, err
	}
	if err := fft2(kern, pr, pc, rowPlan, colPlan, false); err != nil {
		return nil, err
	}
	for i := range field {
		field[i] *= kern[i]
	}
	if err := fft2(field, pr, pc, rowPlan, colPlan, true); err != nil {
		return nil, err
	}

	sums := make([]float64, g.Len())
	counts := make([]float64, g.Len())
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			c := field[i*pc+j]
			sums[i*g.Cols+j] = real(c)
			counts[i*g.Cols+j] = imag(c)
		}
	}

	// Weight totals are sums of kernel weights; anything below half the
	// smallest weight is round-off from an empty window.
	threshold := 0.5 * k.minPositive()
	lo, hi := validRange(g, m)

	out := g.Like()
	for idx := range out.Data {
		count := counts[idx]
		if count < threshold {
			count = 0
		}
		out.Data[idx] = p.finish(sums[idx], count, p.keep(g, m, idx), lo, hi)
	}

	return out, nil
}

// fft2 transforms a pr x pc row-major buffer in place, rows first.
func fft2(buf []complex128, pr, pc int, rowPlan, colPlan *algofft.Plan[complex128], inverse bool) error {
	step := func(plan *algofft.Plan[complex128], x []complex128) error {
		if inverse {
			return plan.Inverse(x, x)
		}
		return plan.Forward(x, x)
	}

	for i := 0; i < pr; i++ {
		if err := step(rowPlan, buf[i*pc:(i+1)*pc]); err != nil {
			return fmt.Errorf("nbhood: row FFT failed: %w", err)
		}
	}

	col := make([]complex128, pr)
	for j := 0; j < pc; j++ {
		for i := 0; i < pr; i++ {
			col[i] = buf[i*pc+j]
		}
		if err := step(colPlan, col); err != nil {
			return fmt.Errorf("nbhood: column FFT failed: %w", err)
		}
		for i := 0; i < pr; i++ {
			buf[i*pc+j] = col[i]
		}
	}

	return nil
}

func nextPowerOf2(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}
