package nbhood

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-spatial/internal/testutil"
)

func BenchmarkSquare(b *testing.B) {
	g := testutil.DeterministicNoise(1, 512, 512, 2000)
	m := testutil.RandomMask(2, 512, 512, 0.1)

	for _, radius := range []float64{2000, 20000, 200000} {
		b.Run(fmt.Sprintf("r=%.0f", radius), func(b *testing.B) {
			p, err := New(radius)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(g.Data) * 8))
			for b.Loop() {
				if _, err := p.Process(g, m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCircular(b *testing.B) {
	g := testutil.DeterministicNoise(1, 256, 256, 2000)
	p, err := New(20000, WithShape(ShapeCircular))
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(g.Data) * 8))
	for b.Loop() {
		if _, err := p.Process(g, nil); err != nil {
			b.Fatal(err)
		}
	}
}
