package bdlop

import (
	"github.com/sp301415/ring-zk/csprng"
	"github.com/tuneinsight/lattigo/v6/ring"
)

// CommitmentKey is the public CRS of the commitment scheme.
// It is generated once per parameter set and shared read-only by all
// provers and verifiers.
type CommitmentKey struct {
	// A1 has dimension Rows x Width, with structure [I_n | A1'] where
	// A1' is uniform. Defined in equation (5) of the paper.
	A1 [][]ring.Poly
	// A2 has dimension MsgDim x Width, with structure [0 | I_l | A2']
	// where A2' is uniform. Defined in equation (6) of the paper.
	A2 [][]ring.Poly
}

// GenCommitmentKey generates a new CommitmentKey from src.
func GenCommitmentKey(params Parameters, src csprng.Source) CommitmentKey {
	s := NewSampler(params, src)
	one := ringOne(params)

	A1 := make([][]ring.Poly, params.rows)
	for i := 0; i < params.rows; i++ {
		A1[i] = make([]ring.Poly, params.width)
		for j := 0; j < params.width; j++ {
			A1[i][j] = params.ringQ.NewPoly()
			switch {
			case j == i:
				A1[i][j].Copy(one)
			case j >= params.rows:
				s.SamplePolyAssign(A1[i][j])
			}
		}
	}

	A2 := make([][]ring.Poly, params.msgDim)
	for i := 0; i < params.msgDim; i++ {
		A2[i] = make([]ring.Poly, params.width)
		for j := 0; j < params.width; j++ {
			A2[i][j] = params.ringQ.NewPoly()
			switch {
			case j == params.rows+i:
				A2[i][j].Copy(one)
			case j >= params.rows+params.msgDim:
				s.SamplePolyAssign(A2[i][j])
			}
		}
	}

	return CommitmentKey{
		A1: A1,
		A2: A2,
	}
}

// ringOne returns the multiplicative identity of R_q in the NTT and
// Montgomery domain.
func ringOne(params Parameters) ring.Poly {
	p := params.ringQ.NewPoly()
	for j := 0; j <= params.ringQ.Level(); j++ {
		p.Coeffs[j][0] = 1
	}

	params.ringQ.NTT(p, p)
	params.ringQ.MForm(p, p)

	return p
}
