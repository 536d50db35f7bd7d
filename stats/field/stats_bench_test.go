package field

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-spatial/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{64, 256, 1024} {
		g := testutil.DeterministicNoise(1, n, n, 1000)
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(g.Data) * 8))

			for b.Loop() {
				Calculate(g)
			}
		})
	}
}
