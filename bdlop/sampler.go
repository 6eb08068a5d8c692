package bdlop

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/sp301415/ring-zk/csprng"
	"github.com/tuneinsight/lattigo/v6/ring"
)

// Sampler samples ring elements from the distributions used by the
// commitment scheme, driven by an explicit randomness source.
// Sampled polynomials are returned in the NTT and Montgomery domain.
//
// Sampler is not safe for concurrent use; use one per session.
type Sampler struct {
	Parameters Parameters
	Source     csprng.Source

	gaussian *csprng.GaussianSampler
	support  *bitset.BitSet
}

// NewSampler creates a new Sampler over src.
func NewSampler(params Parameters, src csprng.Source) *Sampler {
	return &Sampler{
		Parameters: params,
		Source:     src,

		gaussian: csprng.NewGaussianSampler(src),
		support:  bitset.New(uint(params.ringDegree)),
	}
}

// SamplePoly samples a polynomial uniformly from the ring.
func (s *Sampler) SamplePoly() ring.Poly {
	pOut := s.Parameters.ringQ.NewPoly()
	s.SamplePolyAssign(pOut)
	return pOut
}

// SamplePolyAssign samples a polynomial uniformly from the ring and assigns it to pOut.
func (s *Sampler) SamplePolyAssign(pOut ring.Poly) {
	for i := 0; i <= pOut.Level(); i++ {
		for j := 0; j < pOut.N(); j++ {
			pOut.Coeffs[i][j] = s.Source.SampleN(s.Parameters.ringQ.ModuliChain()[i])
		}
	}
}

// SampleWithinAssign samples a polynomial with coefficients uniform in
// [-bound, bound] and assigns it to pOut.
func (s *Sampler) SampleWithinAssign(bound int64, pOut ring.Poly) {
	for i := 0; i < s.Parameters.ringQ.N(); i++ {
		c := int64(s.Source.SampleN(uint64(2*bound+1))) - bound
		s.setCoeff(c, i, pOut)
	}

	s.Parameters.ringQ.NTT(pOut, pOut)
	s.Parameters.ringQ.MForm(pOut, pOut)
}

// SampleGaussianAssign samples a polynomial from the Discrete Gaussian
// Distribution with given stdDev and assigns it to pOut.
func (s *Sampler) SampleGaussianAssign(stdDev float64, pOut ring.Poly) {
	for i := 0; i < s.Parameters.ringQ.N(); i++ {
		s.setCoeff(s.gaussian.Sample(0, stdDev), i, pOut)
	}

	s.Parameters.ringQ.NTT(pOut, pOut)
	s.Parameters.ringQ.MForm(pOut, pOut)
}

// SampleChallenge samples a challenge polynomial uniformly from the
// challenge space C = {c in R_q | normInf(c) = 1, norm1(c) = kappa}:
// exactly Kappa coefficients are +1 or -1, the rest are zero.
func (s *Sampler) SampleChallenge() Challenge {
	chOut := Challenge{D: s.Parameters.ringQ.NewPoly()}
	s.SampleChallengeAssign(chOut)
	return chOut
}

// SampleChallengeAssign samples a challenge polynomial uniformly from
// the challenge space and assigns it to chOut.
func (s *Sampler) SampleChallengeAssign(chOut Challenge) {
	chOut.D.Zero()
	s.support.ClearAll()

	degree := uint64(s.Parameters.ringDegree)
	for c := 0; c < s.Parameters.kappa; {
		pos := uint(s.Source.SampleN(degree))
		if s.support.Test(pos) {
			continue
		}
		s.support.Set(pos)

		if s.Source.SampleN(2) == 0 {
			s.setCoeff(1, int(pos), chOut.D)
		} else {
			s.setCoeff(-1, int(pos), chOut.D)
		}
		c++
	}

	s.Parameters.ringQ.NTT(chOut.D, chOut.D)
	s.Parameters.ringQ.MForm(chOut.D, chOut.D)
}

// SampleChallengeDifference samples a nonzero difference f = d - d' of
// two challenge space elements. Such differences are the relaxation
// factors of relaxed openings: a response proves knowledge of an
// opening up to a factor from this set.
func (s *Sampler) SampleChallengeDifference() ring.Poly {
	d0 := s.SampleChallenge()
	d1 := s.SampleChallenge()
	for d0.D.Equal(&d1.D) {
		s.SampleChallengeAssign(d1)
	}

	fOut := s.Parameters.ringQ.NewPoly()
	s.Parameters.ringQ.Sub(d0.D, d1.D, fOut)
	return fOut
}

// setCoeff writes the centered coefficient c at position i of pOut,
// for every level of the modulus chain.
func (s *Sampler) setCoeff(c int64, i int, pOut ring.Poly) {
	if c >= 0 {
		for j := 0; j <= s.Parameters.ringQ.Level(); j++ {
			pOut.Coeffs[j][i] = uint64(c)
		}
	} else {
		for j := 0; j <= s.Parameters.ringQ.Level(); j++ {
			pOut.Coeffs[j][i] = uint64(c + int64(s.Parameters.ringQ.SubRings[j].Modulus))
		}
	}
}
