package bdlop

import (
	"github.com/tuneinsight/lattigo/v6/ring"
)

// LinearProofProver proves that two committed values x and x' satisfy
// the linear relation x' = g*x for a public scalar polynomial g,
// section 4.5 of the paper.
//
// The prover commits to both values itself; the verifier learns the
// commitments and the scalar from the first message.
type LinearProofProver struct {
	Parameters Parameters

	engine *relationEngine
}

// NewLinearProofProver creates a new LinearProofProver.
func NewLinearProofProver(params Parameters, key CommitmentKey) *LinearProofProver {
	return &LinearProofProver{
		Parameters: params,

		engine: newRelationEngine(params, key),
	}
}

// ShallowCopy creates a copy of LinearProofProver that is thread-safe.
func (p *LinearProofProver) ShallowCopy() *LinearProofProver {
	return &LinearProofProver{
		Parameters: p.Parameters,

		engine: p.engine.shallowCopy(),
	}
}

// Commit commits to msg and to g*msg, and emits the first protocol
// message. The returned context is consumed by exactly one
// CreateResponse call.
func (p *LinearProofProver) Commit(s *Sampler, g Scalar, msg Message) (*LinearProofResponseContext, LinearProofCommitment) {
	params := p.Parameters
	ringQ := params.ringQ

	msgP := NewMessage(params)
	for i := 0; i < params.msgDim; i++ {
		ringQ.MulCoeffsMontgomery(g.Value, msg.Value[i], msgP.Value[i])
	}

	rand := p.engine.commiter.SampleRandomness(s)
	randP := p.engine.commiter.SampleRandomness(s)
	c := p.engine.commiter.Commit(msg, rand)
	cp := p.engine.commiter.Commit(msgP, randP)

	y := p.engine.sampleMask(s)
	yp := p.engine.sampleMask(s)
	t := p.engine.maskValue(y)
	tp := p.engine.maskValue(yp)
	u := p.engine.aggregateMaskValue([]Scalar{g}, [][]ring.Poly{y}, yp)

	ctx := &LinearProofResponseContext{
		Opening:  Opening{Message: msg, Rand: rand},
		OpeningP: Opening{Message: msgP, Rand: randP},

		y:  y,
		yp: yp,
	}

	com := LinearProofCommitment{
		C:  c,
		Cp: cp,
		G:  g,
		T:  t,
		Tp: tp,
		U:  u,
	}

	return ctx, com
}

// CreateResponse computes the responses z = y + d*r and z' = y' + d*r'.
// The returned bool is false when rejection sampling aborts on either
// response; the session is then void and must restart from Commit.
// Both responses are computed before the bound checks so that an abort
// does not reveal which one overflowed.
func (p *LinearProofProver) CreateResponse(ctx *LinearProofResponseContext, ch Challenge) (LinearProofResponse, bool) {
	ctx.consume()

	z := p.engine.response(ctx.y, ctx.Opening.Rand, ch.D)
	zp := p.engine.response(ctx.yp, ctx.OpeningP.Rand, ch.D)

	ok := p.engine.withinVerifyBound(z)
	ok = p.engine.withinVerifyBound(zp) && ok
	if !ok {
		return LinearProofResponse{}, false
	}

	return LinearProofResponse{Z: z, Zp: zp}, true
}

// LinearProofVerifier verifies a linear relation proof.
type LinearProofVerifier struct {
	Parameters Parameters

	engine *relationEngine
}

// NewLinearProofVerifier creates a new LinearProofVerifier.
func NewLinearProofVerifier(params Parameters, key CommitmentKey) *LinearProofVerifier {
	return &LinearProofVerifier{
		Parameters: params,

		engine: newRelationEngine(params, key),
	}
}

// ShallowCopy creates a copy of LinearProofVerifier that is thread-safe.
func (v *LinearProofVerifier) ShallowCopy() *LinearProofVerifier {
	return &LinearProofVerifier{
		Parameters: v.Parameters,

		engine: v.engine.shallowCopy(),
	}
}

// GenerateChallenge samples a challenge for the received commitment.
// The returned context is consumed by exactly one Verify call.
func (v *LinearProofVerifier) GenerateChallenge(s *Sampler, com LinearProofCommitment) (*LinearProofVerificationContext, Challenge) {
	ch := s.SampleChallenge()

	c1, c2 := com.C.Split(v.Parameters)
	c1p, c2p := com.Cp.Split(v.Parameters)

	ctx := &LinearProofVerificationContext{
		c1:  c1,
		c2:  c2,
		c1p: c1p,
		c2p: c2p,
		g:   com.G,
		t:   com.T,
		tp:  com.Tp,
		u:   com.U,
		d:   ch.D,
	}

	return ctx, ch
}

// Verify checks the responses against the context:
// both z and z' satisfy VerifyBound, both opening equations
// A1*z == t + d*c1 and A1*z' == t' + d*c1' hold, and
// g*(A2*z) - A2*z' == d*(g*c2 - c2') + u.
// All checks run regardless of earlier failures.
func (v *LinearProofVerifier) Verify(resp LinearProofResponse, ctx *LinearProofVerificationContext) bool {
	ctx.consume()

	ok := v.engine.withinVerifyBound(resp.Z)
	ok = v.engine.withinVerifyBound(resp.Zp) && ok
	ok = v.engine.openingEqHolds(resp.Z, ctx.t, ctx.c1, ctx.d) && ok
	ok = v.engine.openingEqHolds(resp.Zp, ctx.tp, ctx.c1p, ctx.d) && ok

	gs := []Scalar{ctx.g}
	zs := [][]ring.Poly{resp.Z}
	c2s := [][]ring.Poly{ctx.c2}
	ok = v.engine.relationEqHolds(gs, zs, resp.Zp, c2s, ctx.c2p, ctx.u, ctx.d) && ok

	return ok
}

// LinearProofCommitment is the first message of the linear proof.
type LinearProofCommitment struct {
	// C is the commitment to the value x.
	C Commitment
	// Cp is the commitment to the value g*x.
	Cp Commitment
	// G is the public scalar of the relation.
	G Scalar
	// T has length Rows.
	T []ring.Poly
	// Tp has length Rows.
	Tp []ring.Poly
	// U has length MsgDim.
	U []ring.Poly
}

// NewLinearProofCommitment creates a new zero LinearProofCommitment.
func NewLinearProofCommitment(params Parameters) LinearProofCommitment {
	return LinearProofCommitment{
		C:  NewCommitment(params),
		Cp: NewCommitment(params),
		G:  NewScalar(params),
		T:  newPolyVec(params, params.rows),
		Tp: newPolyVec(params, params.rows),
		U:  newPolyVec(params, params.msgDim),
	}
}

// LinearProofResponse is the last message of the linear proof.
type LinearProofResponse struct {
	// Z has length Width.
	Z []ring.Poly
	// Zp has length Width.
	Zp []ring.Poly
}

// NewLinearProofResponse creates a new zero LinearProofResponse.
func NewLinearProofResponse(params Parameters) LinearProofResponse {
	return LinearProofResponse{
		Z:  newPolyVec(params, params.width),
		Zp: newPolyVec(params, params.width),
	}
}

// LinearProofResponseContext is the prover's ephemeral per-session
// state. It is consumed by exactly one CreateResponse call; reuse
// panics.
type LinearProofResponseContext struct {
	// Opening is the opening of the commitment to x.
	Opening Opening
	// OpeningP is the opening of the commitment to g*x.
	OpeningP Opening

	y    []ring.Poly
	yp   []ring.Poly
	used bool
}

func (ctx *LinearProofResponseContext) consume() {
	if ctx.used {
		panic("bdlop: response context already consumed")
	}
	ctx.used = true
}

// LinearProofVerificationContext is the verifier's ephemeral
// per-session state. It is consumed by exactly one Verify call; reuse
// panics.
type LinearProofVerificationContext struct {
	c1  []ring.Poly
	c2  []ring.Poly
	c1p []ring.Poly
	c2p []ring.Poly
	g   Scalar
	t   []ring.Poly
	tp  []ring.Poly
	u   []ring.Poly
	d   ring.Poly

	used bool
}

func (ctx *LinearProofVerificationContext) consume() {
	if ctx.used {
		panic("bdlop: verification context already consumed")
	}
	ctx.used = true
}
