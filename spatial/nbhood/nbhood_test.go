package nbhood

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spatial/internal/testutil"
	"github.com/cwbudde/algo-spatial/spatial/grid"
)

func TestCellRadius(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		spacing float64
		want    int
		wantErr error
	}{
		{name: "zero", radius: 0, spacing: 2000, want: 0},
		{name: "exact", radius: 4000, spacing: 2000, want: 2},
		{name: "round down", radius: 2900, spacing: 2000, want: 1},
		{name: "round up", radius: 3100, spacing: 2000, want: 2},
		{name: "sub cell", radius: 10, spacing: 2000, want: 1},
		{name: "negative", radius: -1, spacing: 2000, wantErr: ErrInvalidRadius},
		{name: "nan", radius: math.NaN(), spacing: 2000, wantErr: ErrInvalidRadius},
		{name: "inf", radius: math.Inf(1), spacing: 2000, wantErr: ErrInvalidRadius},
		{name: "zero spacing", radius: 10, spacing: 0, wantErr: ErrInvalidSpacing},
		{name: "huge", radius: 1e300, spacing: 1, wantErr: ErrInvalidRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CellRadius(tt.radius, tt.spacing)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CellRadius() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CellRadius() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("CellRadius() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRadiiAnisotropic(t *testing.T) {
	rx, ry, err := Radii(6000, 2000, 1000)
	if err != nil {
		t.Fatalf("Radii() error = %v", err)
	}
	if rx != 3 || ry != 6 {
		t.Fatalf("Radii() = (%d, %d), want (3, 6)", rx, ry)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(-5); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("New(-5) error = %v, want ErrInvalidRadius", err)
	}
	if _, err := New(5, WithShape(Shape(9))); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("invalid shape error = %v", err)
	}
	if _, err := New(5, WithOutput(Output(9))); !errors.Is(err, ErrInvalidOutput) {
		t.Fatalf("invalid output error = %v", err)
	}
	if _, err := New(5, WithWorkers(-1)); !errors.Is(err, ErrInvalidWorkers) {
		t.Fatalf("invalid workers error = %v", err)
	}
}

func TestUniformFieldStaysUniform(t *testing.T) {
	for _, shape := range []Shape{ShapeSquare, ShapeCircular} {
		t.Run(shape.String(), func(t *testing.T) {
			g := testutil.Uniform(5, 5, 2000, 1.0)
			p, err := New(2000, WithShape(shape))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			out, err := p.Process(g, nil)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			testutil.RequireGridNearlyEqual(t, out, g, 1e-12)
		})
	}
}

func TestUniformFieldIsExact(t *testing.T) {
	g := testutil.Uniform(120, 150, 1000, 0.3)
	m := testutil.RandomMask(4, 120, 150, 0.2)

	for _, shape := range []Shape{ShapeSquare, ShapeCircular} {
		t.Run(shape.String(), func(t *testing.T) {
			p, err := New(5000, WithShape(shape))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			out, err := p.Process(g, m)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			for k, v := range out.Data {
				if !m.ValidAt(k) {
					continue
				}
				if v != 0.3 {
					t.Fatalf("cell %d = %v, want exactly 0.3", k, v)
				}
			}
		})
	}
}

func TestMeansStayWithinInputRange(t *testing.T) {
	g := testutil.DeterministicNoise(9, 200, 200, 1000)
	for i := 0; i < g.Rows; i++ {
		row := g.Row(i)
		for j := g.Cols / 2; j < g.Cols; j++ {
			row[j] = 0
		}
	}

	for _, shape := range []Shape{ShapeSquare, ShapeCircular} {
		t.Run(shape.String(), func(t *testing.T) {
			p, err := New(3000, WithShape(shape))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			out, err := p.Process(g, nil)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			for k, v := range out.Data {
				if v < 0 || v > 1 {
					t.Fatalf("cell (%d,%d) = %v, outside [0, 1]", k/out.Cols, k%out.Cols, v)
				}
			}
		})
	}
}

func TestSummedAreaWindowSum(t *testing.T) {
	g := testutil.Ramp(4, 5, 1)
	sa := NewSummedArea(g, nil, 1)

	sum, count := sa.Window(1, 2, 1, 3)
	if count != 6 {
		t.Fatalf("Window() count = %v, want 6", count)
	}
	// Ramp value at (i, j) is i*cols + j.
	if want := 6.0 + 7 + 8 + 11 + 12 + 13; math.Abs(sum-want) > 1e-12 {
		t.Fatalf("Window() sum = %v, want %v", sum, want)
	}

	if mean, count := sa.Mean(10, 12, 0, 1); count != 0 || !grid.IsMissing(mean) {
		t.Fatalf("Mean() outside the grid = (%v, %v), want (missing, 0)", mean, count)
	}
}

func TestSquareMaskedCentre(t *testing.T) {
	g := testutil.Ramp(5, 5, 2000)
	m := testutil.MaskWithHoles(5, 5, [2]int{2, 2})

	p, err := New(2000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := p.Process(g, m)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if !grid.IsMissing(out.At(2, 2)) {
		t.Fatalf("masked centre = %v, want missing", out.At(2, 2))
	}

	// (1,1): 3x3 window over rows 0..2, cols 0..2 without (2,2).
	want := (0.0 + 1 + 2 + 5 + 6 + 7 + 10 + 11) / 8
	if got := out.At(1, 1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("out(1,1) = %v, want %v", got, want)
	}

	// (0,0): corner window rows 0..1, cols 0..1.
	if got := out.At(0, 0); math.Abs(got-3) > 1e-12 {
		t.Fatalf("out(0,0) = %v, want 3", got)
	}

	if g.At(2, 2) != 12 {
		t.Fatal("Process mutated its input")
	}
}

func TestRadiusZeroIsIdentity(t *testing.T) {
	g := testutil.DeterministicNoise(3, 6, 7, 1000)
	m := testutil.RandomMask(3, 6, 7, 0.3)

	p, err := New(0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := p.Process(g, m)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want, _ := grid.ApplyMask(g, m)
	testutil.RequireGridNearlyEqual(t, out, want, 1e-12)
}

func TestSquareMatchesNaiveWindow(t *testing.T) {
	g := testutil.DeterministicNoise(11, 17, 23, 1500)
	m := testutil.RandomMask(12, 17, 23, 0.4)

	for _, radius := range []float64{1500, 4500, 9000, 60000} {
		p, err := New(radius, WithWorkers(3))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		out, err := p.Process(g, m)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}

		r, _ := CellRadius(radius, 1500)
		want := naiveSquare(g, m, r, r)
		testutil.RequireGridNearlyEqual(t, out, want, 1e-9)
	}
}

func TestSquareEmptyWindowIsMissing(t *testing.T) {
	g := testutil.Uniform(1, 7, 1000, 0.5)
	m := testutil.MaskWithHoles(1, 7, [2]int{0, 3}, [2]int{0, 4}, [2]int{0, 5}, [2]int{0, 6})

	p, _ := New(1000, WithFillMasked(true))
	out, err := p.Process(g, m)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if out.At(0, 3) != 0.5 {
		t.Fatalf("filled cell (0,3) = %v, want 0.5", out.At(0, 3))
	}
	if !grid.IsMissing(out.At(0, 5)) || !grid.IsMissing(out.At(0, 6)) {
		t.Fatalf("cells with no valid neighbours must be missing: %v", out.Data)
	}
}

func TestSumOutput(t *testing.T) {
	g := testutil.Uniform(4, 4, 1, 1)
	p, _ := New(1, WithOutput(OutputSum))
	out, err := p.Process(g, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if out.At(0, 0) != 4 || out.At(1, 1) != 9 || out.At(0, 1) != 6 {
		t.Fatalf("unexpected window sums: %v", out.Data)
	}
}

func TestShapeMismatch(t *testing.T) {
	p, _ := New(1)
	_, err := p.Process(testutil.Uniform(3, 3, 1, 0), grid.NewMask(3, 4))
	if !errors.Is(err, grid.ErrShapeMismatch) {
		t.Fatalf("Process() error = %v, want ErrShapeMismatch", err)
	}
}

func TestWorkerCountDoesNotChangeResult(t *testing.T) {
	g := testutil.DeterministicNoise(5, 40, 31, 1000)
	m := testutil.RandomMask(6, 40, 31, 0.2)

	ref, _ := New(3000, WithWorkers(1))
	want, err := ref.Process(g, m)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for _, n := range []int{2, 5, 64} {
		p, _ := New(3000, WithWorkers(n))
		got, err := p.Process(g, m)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		testutil.RequireGridNearlyEqual(t, got, want, 0)
	}
}

func TestCircularMatchesDirect(t *testing.T) {
	g := testutil.DeterministicNoise(21, 13, 19, 1000)
	m := testutil.RandomMask(22, 13, 19, 0.3)

	for _, weighted := range []bool{false, true} {
		p, _ := New(3000, WithShape(ShapeCircular), WithWeighted(weighted))
		out, err := p.Process(g, m)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}

		want := naiveKernel(g, m, CircularKernel(3, 3, weighted))
		testutil.RequireGridNearlyEqual(t, out, want, 1e-9)
	}
}

func TestCircularKernelShape(t *testing.T) {
	k := CircularKernel(2, 2, false)
	if k.At(0, 0) != 1 || k.At(2, 0) != 1 || k.At(0, -2) != 1 {
		t.Fatal("axis cells inside the disc must have weight 1")
	}
	if k.At(2, 2) != 0 || k.At(-2, 2) != 0 {
		t.Fatal("corner cells outside the disc must have weight 0")
	}

	w := CircularKernel(2, 2, true)
	if w.At(0, 0) != 1 || !(w.At(0, 2) > 0 && w.At(0, 2) < w.At(0, 1)) {
		t.Fatalf("weighted kernel must taper from the centre: %v", w.Weights)
	}
}

func naiveSquare(g *grid.Grid, m *grid.Mask, rx, ry int) *grid.Grid {
	out := g.Like()
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if !m.IsValid(i, j) {
				out.Set(i, j, grid.Missing)
				continue
			}
			sum, n := 0.0, 0
			for a := max(0, i-ry); a <= min(g.Rows-1, i+ry); a++ {
				for b := max(0, j-rx); b <= min(g.Cols-1, j+rx); b++ {
					if m.IsValid(a, b) {
						sum += g.At(a, b)
						n++
					}
				}
			}
			out.Set(i, j, sum/float64(n))
		}
	}
	return out
}

func naiveKernel(g *grid.Grid, m *grid.Mask, k Kernel) *grid.Grid {
	out := g.Like()
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if !m.IsValid(i, j) {
				out.Set(i, j, grid.Missing)
				continue
			}
			sum, wsum := 0.0, 0.0
			for di := -k.RY; di <= k.RY; di++ {
				for dj := -k.RX; dj <= k.RX; dj++ {
					a, b := i+di, j+dj
					if a < 0 || a >= g.Rows || b < 0 || b >= g.Cols || !m.IsValid(a, b) {
						continue
					}
					w := k.At(di, dj)
					sum += w * g.At(a, b)
					wsum += w
				}
			}
			out.Set(i, j, sum/wsum)
		}
	}
	return out
}
