package filter

import (
	"math"

	"github.com/gogpu/orrery/internal/cache"
)

// GaussianKernel generates a 1D Gaussian kernel with the given half-width.
// The kernel has 2*radius+1 taps, uses sigma = radius/2 so the window covers
// two standard deviations on each side, and is normalized so all taps sum
// to 1.0.
//
// For radius <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	sigma := float64(radius) / 2
	size := radius*2 + 1
	kernel := make([]float32, size)

	// The 1/(σ√2π) factor is dropped; normalization below replaces it.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := 0; i < size; i++ {
		x := float64(i - radius)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	invSum := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= invSum
	}

	return kernel
}

// kernels caches computed Gaussian kernels keyed by radius.
var kernels = cache.New[int, []float32](16)

// CachedGaussianKernel returns a cached Gaussian kernel for the radius.
// The returned slice is shared and must not be modified.
func CachedGaussianKernel(radius int) []float32 {
	return kernels.GetOrCreate(radius, func() []float32 { return GaussianKernel(radius) })
}
