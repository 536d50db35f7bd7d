//go:build !fastmath

package nbhood

import "math"

func kernelSqrt(x float64) float64 {
	return math.Sqrt(x)
}
