//go:build fastmath

package nbhood

import "github.com/meko-christian/algo-approx"

// kernelSqrt trades a little accuracy in the weighted taper for speed on
// large kernels.
func kernelSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
