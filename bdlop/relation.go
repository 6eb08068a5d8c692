package bdlop

import (
	"github.com/tuneinsight/lattigo/v6/ring"
)

// mulMatVecAssign computes vOut = M * v over the ring.
func mulMatVecAssign(ringQ *ring.Ring, M [][]ring.Poly, v []ring.Poly, vOut []ring.Poly) {
	for i := range M {
		ringQ.MulCoeffsMontgomery(M[i][0], v[0], vOut[i])
		for j := 1; j < len(v); j++ {
			ringQ.MulCoeffsMontgomeryThenAdd(M[i][j], v[j], vOut[i])
		}
	}
}

// newPolyVec creates a vector of dim zero ring elements.
func newPolyVec(params Parameters, dim int) []ring.Poly {
	v := make([]ring.Poly, dim)
	for i := 0; i < dim; i++ {
		v[i] = params.ringQ.NewPoly()
	}
	return v
}

// polyVecEqual checks if two ring element vectors are equal.
func polyVecEqual(a, b []ring.Poly) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}

	return true
}

// relationEngine implements the Sigma-protocol algebra shared by the
// three proof kinds. The linear proof runs it with a single term; the
// sum proof with n terms.
type relationEngine struct {
	params Parameters
	key    CommitmentKey

	commiter *Commiter
	norms    *normChecker
}

// newRelationEngine creates a new relationEngine.
func newRelationEngine(params Parameters, key CommitmentKey) *relationEngine {
	return &relationEngine{
		params: params,
		key:    key,

		commiter: NewCommiter(params, key),
		norms:    newNormChecker(params),
	}
}

// shallowCopy creates a copy of relationEngine that is thread-safe.
func (e *relationEngine) shallowCopy() *relationEngine {
	return newRelationEngine(e.params, e.key)
}

// sampleMask samples a fresh mask vector y <- N^k_sigma.
// A mask is used in exactly one response attempt; a rejection sampling
// restart always samples a new one.
func (e *relationEngine) sampleMask(s *Sampler) []ring.Poly {
	y := newPolyVec(e.params, e.params.width)
	for i := range y {
		s.SampleGaussianAssign(e.params.sigma, y[i])
	}
	return y
}

// maskValue computes t = A1 * y.
func (e *relationEngine) maskValue(y []ring.Poly) []ring.Poly {
	t := newPolyVec(e.params, e.params.rows)
	mulMatVecAssign(e.params.ringQ, e.key.A1, y, t)
	return t
}

// aggregateMaskValue computes u = g_0*(A2*v_0) + g_1*(A2*v_1) + ... - A2*vp.
func (e *relationEngine) aggregateMaskValue(gs []Scalar, vs [][]ring.Poly, vp []ring.Poly) []ring.Poly {
	ringQ := e.params.ringQ

	u := newPolyVec(e.params, e.params.msgDim)
	tmp := newPolyVec(e.params, e.params.msgDim)
	for i := range gs {
		mulMatVecAssign(ringQ, e.key.A2, vs[i], tmp)
		for row := range u {
			ringQ.MulCoeffsMontgomeryThenAdd(gs[i].Value, tmp[row], u[row])
		}
	}

	mulMatVecAssign(ringQ, e.key.A2, vp, tmp)
	for row := range u {
		ringQ.Sub(u[row], tmp[row], u[row])
	}

	return u
}

// response computes z = y + d*r.
func (e *relationEngine) response(y, r []ring.Poly, d ring.Poly) []ring.Poly {
	z := newPolyVec(e.params, e.params.width)
	for i := range z {
		z[i].Copy(y[i])
		e.params.ringQ.MulCoeffsMontgomeryThenAdd(d, r[i], z[i])
	}
	return z
}

// withinVerifyBound checks the response norm bound. It is both the
// prover's rejection sampling condition and the verifier's first check.
func (e *relationEngine) withinVerifyBound(z []ring.Poly) bool {
	return e.norms.vecWithinBound(z, e.params.verifyBound)
}

// openingEqHolds checks A1*z == t + d*c1.
func (e *relationEngine) openingEqHolds(z, t, c1 []ring.Poly, d ring.Poly) bool {
	lhs := e.maskValue(z)

	rhs := newPolyVec(e.params, e.params.rows)
	for i := range rhs {
		rhs[i].Copy(t[i])
		e.params.ringQ.MulCoeffsMontgomeryThenAdd(d, c1[i], rhs[i])
	}

	return polyVecEqual(lhs, rhs)
}

// relationEqHolds checks the aggregate relation equation
//
//	g_0*(A2*z_0) + ... - A2*zp == d*(g_0*c2_0 + ... - c2p) + u.
func (e *relationEngine) relationEqHolds(gs []Scalar, zs [][]ring.Poly, zp []ring.Poly, c2s [][]ring.Poly, c2p, u []ring.Poly, d ring.Poly) bool {
	ringQ := e.params.ringQ

	lhs := e.aggregateMaskValue(gs, zs, zp)

	comSum := newPolyVec(e.params, e.params.msgDim)
	for i := range gs {
		for row := range comSum {
			ringQ.MulCoeffsMontgomeryThenAdd(gs[i].Value, c2s[i][row], comSum[row])
		}
	}

	rhs := newPolyVec(e.params, e.params.msgDim)
	for row := range rhs {
		ringQ.Sub(comSum[row], c2p[row], comSum[row])
		ringQ.MulCoeffsMontgomery(d, comSum[row], rhs[row])
		ringQ.Add(rhs[row], u[row], rhs[row])
	}

	return polyVecEqual(lhs, rhs)
}
