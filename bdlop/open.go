package bdlop

import (
	"github.com/tuneinsight/lattigo/v6/ring"
)

// OpenProofProver proves knowledge of an opening of a commitment,
// section 4.4 of the paper.
//
// The proof is a four-step interactive protocol:
//
//	ctx, com := prover.Commit(s, msg)
//	vctx, ch := verifier.GenerateChallenge(s, com)
//	resp, ok := prover.CreateResponse(ctx, ch) // !ok: restart from Commit
//	accept := verifier.Verify(resp, vctx)
//
// The steps are strictly sequential and each context is consumed
// exactly once.
type OpenProofProver struct {
	Parameters Parameters

	engine *relationEngine
}

// NewOpenProofProver creates a new OpenProofProver.
func NewOpenProofProver(params Parameters, key CommitmentKey) *OpenProofProver {
	return &OpenProofProver{
		Parameters: params,

		engine: newRelationEngine(params, key),
	}
}

// ShallowCopy creates a copy of OpenProofProver that is thread-safe.
func (p *OpenProofProver) ShallowCopy() *OpenProofProver {
	return &OpenProofProver{
		Parameters: p.Parameters,

		engine: p.engine.shallowCopy(),
	}
}

// Commit commits to msg and emits the first protocol message.
// The returned context holds the opening and the fresh mask; it is
// consumed by exactly one CreateResponse call.
func (p *OpenProofProver) Commit(s *Sampler, msg Message) (*OpenProofResponseContext, OpenProofCommitment) {
	rand := p.engine.commiter.SampleRandomness(s)
	c := p.engine.commiter.Commit(msg, rand)

	y := p.engine.sampleMask(s)
	t := p.engine.maskValue(y)

	ctx := &OpenProofResponseContext{
		Opening: Opening{Message: msg, Rand: rand},
		y:       y,
	}

	return ctx, OpenProofCommitment{C: c, T: t}
}

// CreateResponse computes the response z = y + d*r.
// The returned bool is false when rejection sampling aborts: no
// response exists and the caller must restart the session from Commit,
// which mints a fresh mask. An abort is an expected outcome, not an
// error.
func (p *OpenProofProver) CreateResponse(ctx *OpenProofResponseContext, ch Challenge) (OpenProofResponse, bool) {
	ctx.consume()

	z := p.engine.response(ctx.y, ctx.Opening.Rand, ch.D)
	if !p.engine.withinVerifyBound(z) {
		return OpenProofResponse{}, false
	}

	return OpenProofResponse{Z: z}, true
}

// OpenProofVerifier verifies knowledge of an opening of a commitment.
type OpenProofVerifier struct {
	Parameters Parameters

	engine *relationEngine
}

// NewOpenProofVerifier creates a new OpenProofVerifier.
func NewOpenProofVerifier(params Parameters, key CommitmentKey) *OpenProofVerifier {
	return &OpenProofVerifier{
		Parameters: params,

		engine: newRelationEngine(params, key),
	}
}

// ShallowCopy creates a copy of OpenProofVerifier that is thread-safe.
func (v *OpenProofVerifier) ShallowCopy() *OpenProofVerifier {
	return &OpenProofVerifier{
		Parameters: v.Parameters,

		engine: v.engine.shallowCopy(),
	}
}

// GenerateChallenge samples a challenge for the received commitment.
// The returned context is consumed by exactly one Verify call.
func (v *OpenProofVerifier) GenerateChallenge(s *Sampler, com OpenProofCommitment) (*OpenProofVerificationContext, Challenge) {
	ch := s.SampleChallenge()
	c1, _ := com.C.Split(v.Parameters)

	ctx := &OpenProofVerificationContext{
		c1: c1,
		t:  com.T,
		d:  ch.D,
	}

	return ctx, ch
}

// Verify checks the response against the context:
// z satisfies VerifyBound and A1*z == t + d*c1.
// All checks run regardless of earlier failures, so a rejection does
// not reveal which check failed.
func (v *OpenProofVerifier) Verify(resp OpenProofResponse, ctx *OpenProofVerificationContext) bool {
	ctx.consume()

	ok := v.engine.withinVerifyBound(resp.Z)
	ok = v.engine.openingEqHolds(resp.Z, ctx.t, ctx.c1, ctx.d) && ok

	return ok
}

// OpenProofCommitment is the first message of the opening proof:
// the commitment and its mask value t = A1*y.
type OpenProofCommitment struct {
	// C is the commitment to the value.
	C Commitment
	// T has length Rows.
	T []ring.Poly
}

// NewOpenProofCommitment creates a new zero OpenProofCommitment.
func NewOpenProofCommitment(params Parameters) OpenProofCommitment {
	return OpenProofCommitment{
		C: NewCommitment(params),
		T: newPolyVec(params, params.rows),
	}
}

// OpenProofResponse is the last message of the opening proof.
type OpenProofResponse struct {
	// Z has length Width.
	Z []ring.Poly
}

// NewOpenProofResponse creates a new zero OpenProofResponse.
func NewOpenProofResponse(params Parameters) OpenProofResponse {
	return OpenProofResponse{
		Z: newPolyVec(params, params.width),
	}
}

// OpenProofResponseContext is the prover's ephemeral per-session state:
// the opening and the mask. It is consumed by exactly one
// CreateResponse call; reuse panics, since responding twice with one
// mask leaks the secret randomness.
type OpenProofResponseContext struct {
	// Opening is the opening of the commitment sent to the verifier.
	Opening Opening

	y    []ring.Poly
	used bool
}

func (ctx *OpenProofResponseContext) consume() {
	if ctx.used {
		panic("bdlop: response context already consumed")
	}
	ctx.used = true
}

// OpenProofVerificationContext is the verifier's ephemeral per-session
// state. It is consumed by exactly one Verify call; reuse panics.
type OpenProofVerificationContext struct {
	c1 []ring.Poly
	t  []ring.Poly
	d  ring.Poly

	used bool
}

func (ctx *OpenProofVerificationContext) consume() {
	if ctx.used {
		panic("bdlop: verification context already consumed")
	}
	ctx.used = true
}
