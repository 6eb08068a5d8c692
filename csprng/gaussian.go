package csprng

import (
	"math"
)

// GaussianSampler samples from Discrete Gaussian Distribution
// with varying center and large standard deviation.
// It rounds a continuous Gaussian drawn by the Box-Muller transform,
// which is accurate enough for the mask distributions used here
// (sigma on the order of thousands); small-sigma noise should use a
// table-based sampler instead.
type GaussianSampler struct {
	baseSampler Source

	cached    bool
	cachedVal float64
}

// NewGaussianSampler creates a new GaussianSampler over src.
func NewGaussianSampler(src Source) *GaussianSampler {
	return &GaussianSampler{
		baseSampler: src,
	}
}

// normFloat64 samples from the standard normal distribution.
func (s *GaussianSampler) normFloat64() float64 {
	if s.cached {
		s.cached = false
		return s.cachedVal
	}

	// uniform in (0, 1], so the logarithm below is finite
	u1 := (float64(s.baseSampler.Sample()>>11) + 1) / (1 << 53)
	u2 := float64(s.baseSampler.Sample()>>11) / (1 << 53)

	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2

	s.cached = true
	s.cachedVal = r * math.Sin(theta)

	return r * math.Cos(theta)
}

// Sample samples from Discrete Gaussian Distribution with given center and stdDev.
func (s *GaussianSampler) Sample(center, stdDev float64) int64 {
	return int64(math.Round(center + stdDev*s.normFloat64()))
}
