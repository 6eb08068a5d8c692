package csprng_test

import (
	"math"
	"testing"

	"github.com/sp301415/ring-zk/csprng"
	"github.com/stretchr/testify/assert"
)

func TestUniformSampler(t *testing.T) {
	seed := []byte("reproducible-test-seed")

	t.Run("Deterministic", func(t *testing.T) {
		s0 := csprng.NewUniformSamplerWithSeed(seed)
		s1 := csprng.NewUniformSamplerWithSeed(seed)

		for i := 0; i < 1024; i++ {
			assert.Equal(t, s0.Sample(), s1.Sample())
		}
	})

	t.Run("SeedSensitive", func(t *testing.T) {
		s0 := csprng.NewUniformSamplerWithSeed(seed)
		s1 := csprng.NewUniformSamplerWithSeed([]byte("another-test-seed"))

		equal := true
		for i := 0; i < 16; i++ {
			equal = equal && s0.Sample() == s1.Sample()
		}
		assert.False(t, equal)
	})

	t.Run("SampleN", func(t *testing.T) {
		s := csprng.NewUniformSamplerWithSeed(seed)

		for _, bound := range []uint64{1, 2, 3, 256, 1 << 40} {
			for i := 0; i < 256; i++ {
				assert.Less(t, s.SampleN(bound), bound)
			}
		}
	})

	t.Run("Read", func(t *testing.T) {
		s := csprng.NewUniformSamplerWithSeed(seed)

		buf := make([]byte, 64)
		n, err := s.Read(buf)
		assert.NoError(t, err)
		assert.Equal(t, len(buf), n)
	})
}

func TestStreamSampler(t *testing.T) {
	t.Run("SampleN", func(t *testing.T) {
		s := csprng.NewStreamSampler()

		for _, bound := range []uint64{1, 5, 1 << 20} {
			for i := 0; i < 256; i++ {
				assert.Less(t, s.SampleN(bound), bound)
			}
		}
	})

	t.Run("Distinct", func(t *testing.T) {
		s0 := csprng.NewStreamSampler()
		s1 := csprng.NewStreamSampler()

		equal := true
		for i := 0; i < 16; i++ {
			equal = equal && s0.Sample() == s1.Sample()
		}
		assert.False(t, equal)
	})
}

func TestGaussianSampler(t *testing.T) {
	s := csprng.NewGaussianSampler(csprng.NewUniformSamplerWithSeed([]byte("gaussian-test-seed")))

	const (
		samples = 1 << 16
		stdDev  = 1000.0
	)

	t.Run("Moments", func(t *testing.T) {
		sum, sumSq := 0.0, 0.0
		for i := 0; i < samples; i++ {
			x := float64(s.Sample(0, stdDev))
			sum += x
			sumSq += x * x
		}

		mean := sum / samples
		variance := sumSq/samples - mean*mean

		// 4-sigma windows of the empirical moments
		assert.InDelta(t, 0, mean, 4*stdDev/math.Sqrt(samples))
		assert.InDelta(t, stdDev, math.Sqrt(variance), 0.05*stdDev)
	})

	t.Run("Center", func(t *testing.T) {
		const center = 1 << 20

		sum := 0.0
		for i := 0; i < samples; i++ {
			sum += float64(s.Sample(center, stdDev))
		}

		assert.InDelta(t, center, sum/samples, 4*stdDev/math.Sqrt(samples))
	})
}
