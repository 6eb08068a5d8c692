package bdlop

import (
	"github.com/tuneinsight/lattigo/v6/ring"
)

// Commiter commits messages under a fixed CommitmentKey.
// Not safe for concurrent use; create one per session.
type Commiter struct {
	Parameters Parameters
	Key        CommitmentKey

	norms  *normChecker
	buffer commiterBuffer
}

type commiterBuffer struct {
	lhs     ring.Poly
	rhs     ring.Poly
	msgPart ring.Poly
}

func newCommiterBuffer(params Parameters) commiterBuffer {
	return commiterBuffer{
		lhs:     params.ringQ.NewPoly(),
		rhs:     params.ringQ.NewPoly(),
		msgPart: params.ringQ.NewPoly(),
	}
}

// NewCommiter creates a new Commiter.
func NewCommiter(params Parameters, key CommitmentKey) *Commiter {
	return &Commiter{
		Parameters: params,
		Key:        key,

		norms:  newNormChecker(params),
		buffer: newCommiterBuffer(params),
	}
}

// ShallowCopy creates a copy of Commiter that is thread-safe.
func (c *Commiter) ShallowCopy() *Commiter {
	return &Commiter{
		Parameters: c.Parameters,
		Key:        c.Key,

		norms:  newNormChecker(c.Parameters),
		buffer: newCommiterBuffer(c.Parameters),
	}
}

// SampleRandomness samples fresh commitment randomness: Width ring
// elements with coefficients in [-RandBound, RandBound], re-sampled
// until every entry satisfies CommitBound so the resulting opening
// always verifies.
func (c *Commiter) SampleRandomness(s *Sampler) []ring.Poly {
	rand := make([]ring.Poly, c.Parameters.width)
	for i := 0; i < c.Parameters.width; i++ {
		rand[i] = c.Parameters.ringQ.NewPoly()
	}

	for {
		for i := 0; i < c.Parameters.width; i++ {
			s.SampleWithinAssign(c.Parameters.randBound, rand[i])
		}
		if c.norms.vecWithinBound(rand, c.Parameters.commitBound) {
			return rand
		}
	}
}

// Commit commits msg using randomness rand.
// The commitment is deterministic given its inputs:
// c1 = A1*r and c2 = A2*r + x, equation (7) of the paper.
// Panics on shape mismatch, which is a caller contract violation.
func (c *Commiter) Commit(msg Message, rand []ring.Poly) Commitment {
	comOut := NewCommitment(c.Parameters)
	c.CommitAssign(msg, rand, comOut)
	return comOut
}

// CommitAssign commits msg using randomness rand and writes it to comOut.
func (c *Commiter) CommitAssign(msg Message, rand []ring.Poly, comOut Commitment) {
	if len(msg.Value) != c.Parameters.msgDim || len(rand) != c.Parameters.width {
		panic("bdlop: commit input shape mismatch")
	}

	c1, c2 := comOut.Split(c.Parameters)
	mulMatVecAssign(c.Parameters.ringQ, c.Key.A1, rand, c1)
	mulMatVecAssign(c.Parameters.ringQ, c.Key.A2, rand, c2)
	for i := 0; i < c.Parameters.msgDim; i++ {
		c.Parameters.ringQ.Add(c2[i], msg.Value[i], c2[i])
	}
}

// VerifyOpening checks that open is a valid opening of com:
// every randomness entry satisfies CommitBound and the commitment
// equation recomputes, scaled by the relaxation factor when present.
func (c *Commiter) VerifyOpening(com Commitment, open Opening) bool {
	if !c.norms.vecWithinBound(open.Rand, c.Parameters.commitBound) {
		return false
	}

	recomputed := c.Commit(open.Message, open.Rand)

	if !open.HasFactor {
		return recomputed.Equals(com)
	}

	// f*c = A*r + f*[0 x], the relaxed opening relation of the paper.
	ringQ := c.Parameters.ringQ
	for i := 0; i < c.Parameters.rows+c.Parameters.msgDim; i++ {
		ringQ.MulCoeffsMontgomery(open.Factor, com.Value[i], c.buffer.lhs)

		c.buffer.rhs.Copy(recomputed.Value[i])
		if i >= c.Parameters.rows {
			// replace x by f*x in the recomputed right-hand side
			ringQ.MulCoeffsMontgomery(open.Factor, open.Message.Value[i-c.Parameters.rows], c.buffer.msgPart)
			ringQ.Sub(c.buffer.rhs, open.Message.Value[i-c.Parameters.rows], c.buffer.rhs)
			ringQ.Add(c.buffer.rhs, c.buffer.msgPart, c.buffer.rhs)
		}

		if !c.buffer.lhs.Equal(&c.buffer.rhs) {
			return false
		}
	}

	return true
}
