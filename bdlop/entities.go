package bdlop

import (
	"github.com/tuneinsight/lattigo/v6/ring"
)

// Message is a committed value: a vector of MsgDim ring elements with
// centered coefficients bounded by MsgBound, in the NTT and Montgomery
// domain. Build one with Parameters.PrepareValue; immutable thereafter.
type Message struct {
	// Value has length MsgDim.
	Value []ring.Poly
}

// NewMessage creates a new zero Message.
func NewMessage(params Parameters) Message {
	value := make([]ring.Poly, params.msgDim)
	for i := 0; i < params.msgDim; i++ {
		value[i] = params.ringQ.NewPoly()
	}

	return Message{
		Value: value,
	}
}

// Scalar is a public relation multiplier: a single ring element with
// centered coefficients bounded by MsgBound, in the NTT and Montgomery
// domain. Build one with Parameters.PrepareScalar.
type Scalar struct {
	Value ring.Poly
}

// NewScalar creates a new zero Scalar.
func NewScalar(params Parameters) Scalar {
	return Scalar{
		Value: params.ringQ.NewPoly(),
	}
}

// Commitment is a commitment to a Message.
type Commitment struct {
	// Value has length Rows + MsgDim. The first Rows entries are the
	// binding part c1, the rest the message part c2.
	Value []ring.Poly
}

// NewCommitment creates a new Commitment.
func NewCommitment(params Parameters) Commitment {
	value := make([]ring.Poly, params.rows+params.msgDim)
	for i := 0; i < params.rows+params.msgDim; i++ {
		value[i] = params.ringQ.NewPoly()
	}

	return Commitment{
		Value: value,
	}
}

// Split splits the commitment into its binding part c1 (Rows entries)
// and message part c2 (MsgDim entries). The returned slices share
// backing polynomials with c.
func (c Commitment) Split(params Parameters) (c1, c2 []ring.Poly) {
	return c.Value[:params.rows], c.Value[params.rows:]
}

// Equals checks if two Commitments are equal.
func (c Commitment) Equals(other Commitment) bool {
	if len(c.Value) != len(other.Value) {
		return false
	}

	for i := 0; i < len(c.Value); i++ {
		if !c.Value[i].Equal(&other.Value[i]) {
			return false
		}
	}

	return true
}

// Opening is the opening of a Commitment, known only to the prover.
type Opening struct {
	// Message is the committed value.
	Message Message
	// Rand is the commitment randomness, of length Width.
	Rand []ring.Poly
	// Factor is an optional relaxation factor from the challenge space
	// difference set. A zero-value Factor (HasFactor false) opens the
	// commitment exactly.
	Factor ring.Poly
	// HasFactor reports whether Factor is set.
	HasFactor bool
}

// Challenge is a challenge sampled uniformly from the challenge space
// C = {c in R_q | normInf(c) = 1, norm1(c) = kappa}.
type Challenge struct {
	D ring.Poly
}

// NewChallenge creates a new zero Challenge.
func NewChallenge(params Parameters) Challenge {
	return Challenge{
		D: params.ringQ.NewPoly(),
	}
}
