package bdlop

import (
	"github.com/tuneinsight/lattigo/v6/ring"
)

// SumProofProver proves that committed values x_0, ..., x_{n-1} and x'
// satisfy the weighted sum relation x' = g_0*x_0 + ... + g_{n-1}*x_{n-1}
// for public scalar polynomials g_i. It generalizes [LinearProofProver]
// to any number of terms.
type SumProofProver struct {
	Parameters Parameters

	engine *relationEngine
}

// NewSumProofProver creates a new SumProofProver.
func NewSumProofProver(params Parameters, key CommitmentKey) *SumProofProver {
	return &SumProofProver{
		Parameters: params,

		engine: newRelationEngine(params, key),
	}
}

// ShallowCopy creates a copy of SumProofProver that is thread-safe.
func (p *SumProofProver) ShallowCopy() *SumProofProver {
	return &SumProofProver{
		Parameters: p.Parameters,

		engine: p.engine.shallowCopy(),
	}
}

// Commit commits to each msgs[i] and to the weighted sum
// gs[0]*msgs[0] + ... + gs[n-1]*msgs[n-1], and emits the first protocol
// message. The returned context is consumed by exactly one
// CreateResponse call.
//
// Panics if gs and msgs differ in length, or are empty.
func (p *SumProofProver) Commit(s *Sampler, gs []Scalar, msgs []Message) (*SumProofResponseContext, SumProofCommitment) {
	if len(gs) != len(msgs) {
		panic("bdlop: scalar and message counts differ")
	}
	if len(gs) == 0 {
		panic("bdlop: empty sum relation")
	}

	params := p.Parameters
	ringQ := params.ringQ
	terms := len(gs)

	msgP := NewMessage(params)
	for t := 0; t < terms; t++ {
		for i := 0; i < params.msgDim; i++ {
			ringQ.MulCoeffsMontgomeryThenAdd(gs[t].Value, msgs[t].Value[i], msgP.Value[i])
		}
	}

	openings := make([]Opening, terms)
	cs := make([]Commitment, terms)
	ys := make([][]ring.Poly, terms)
	ts := make([][]ring.Poly, terms)
	for t := 0; t < terms; t++ {
		rand := p.engine.commiter.SampleRandomness(s)
		cs[t] = p.engine.commiter.Commit(msgs[t], rand)
		openings[t] = Opening{Message: msgs[t], Rand: rand}

		ys[t] = p.engine.sampleMask(s)
		ts[t] = p.engine.maskValue(ys[t])
	}

	randP := p.engine.commiter.SampleRandomness(s)
	cp := p.engine.commiter.Commit(msgP, randP)
	yp := p.engine.sampleMask(s)
	tp := p.engine.maskValue(yp)
	u := p.engine.aggregateMaskValue(gs, ys, yp)

	ctx := &SumProofResponseContext{
		Openings: openings,
		OpeningP: Opening{Message: msgP, Rand: randP},

		ys: ys,
		yp: yp,
	}

	com := SumProofCommitment{
		Cs: cs,
		Cp: cp,
		Gs: gs,
		Ts: ts,
		Tp: tp,
		U:  u,
	}

	return ctx, com
}

// CreateResponse computes the responses z_i = y_i + d*r_i and
// z' = y' + d*r'. The returned bool is false when rejection sampling
// aborts on any response; the session is then void and must restart
// from Commit. All responses are computed before the bound checks.
func (p *SumProofProver) CreateResponse(ctx *SumProofResponseContext, ch Challenge) (SumProofResponse, bool) {
	ctx.consume()

	zs := make([][]ring.Poly, len(ctx.ys))
	for t := range ctx.ys {
		zs[t] = p.engine.response(ctx.ys[t], ctx.Openings[t].Rand, ch.D)
	}
	zp := p.engine.response(ctx.yp, ctx.OpeningP.Rand, ch.D)

	ok := p.engine.withinVerifyBound(zp)
	for t := range zs {
		ok = p.engine.withinVerifyBound(zs[t]) && ok
	}
	if !ok {
		return SumProofResponse{}, false
	}

	return SumProofResponse{Zs: zs, Zp: zp}, true
}

// SumProofVerifier verifies a weighted sum relation proof.
type SumProofVerifier struct {
	Parameters Parameters

	engine *relationEngine
}

// NewSumProofVerifier creates a new SumProofVerifier.
func NewSumProofVerifier(params Parameters, key CommitmentKey) *SumProofVerifier {
	return &SumProofVerifier{
		Parameters: params,

		engine: newRelationEngine(params, key),
	}
}

// ShallowCopy creates a copy of SumProofVerifier that is thread-safe.
func (v *SumProofVerifier) ShallowCopy() *SumProofVerifier {
	return &SumProofVerifier{
		Parameters: v.Parameters,

		engine: v.engine.shallowCopy(),
	}
}

// GenerateChallenge samples a challenge for the received commitment.
// The returned context is consumed by exactly one Verify call.
//
// Panics if the commitment is malformed: Cs, Gs and Ts must share one
// nonzero length.
func (v *SumProofVerifier) GenerateChallenge(s *Sampler, com SumProofCommitment) (*SumProofVerificationContext, Challenge) {
	terms := len(com.Cs)
	if terms == 0 || len(com.Gs) != terms || len(com.Ts) != terms {
		panic("bdlop: malformed sum proof commitment")
	}

	ch := s.SampleChallenge()

	c1s := make([][]ring.Poly, terms)
	c2s := make([][]ring.Poly, terms)
	for t := 0; t < terms; t++ {
		c1s[t], c2s[t] = com.Cs[t].Split(v.Parameters)
	}
	c1p, c2p := com.Cp.Split(v.Parameters)

	ctx := &SumProofVerificationContext{
		c1s: c1s,
		c2s: c2s,
		c1p: c1p,
		c2p: c2p,
		gs:  com.Gs,
		ts:  com.Ts,
		tp:  com.Tp,
		u:   com.U,
		d:   ch.D,
	}

	return ctx, ch
}

// Verify checks the responses against the context:
// every z_i and z' satisfies VerifyBound, every opening equation
// A1*z_i == t_i + d*c1_i and A1*z' == t' + d*c1' holds, and
// sum_i g_i*(A2*z_i) - A2*z' == d*(sum_i g_i*c2_i - c2') + u.
// A response with the wrong number of terms is rejected outright.
func (v *SumProofVerifier) Verify(resp SumProofResponse, ctx *SumProofVerificationContext) bool {
	ctx.consume()

	terms := len(ctx.gs)
	if len(resp.Zs) != terms {
		return false
	}

	ok := v.engine.withinVerifyBound(resp.Zp)
	ok = v.engine.openingEqHolds(resp.Zp, ctx.tp, ctx.c1p, ctx.d) && ok
	for t := 0; t < terms; t++ {
		ok = v.engine.withinVerifyBound(resp.Zs[t]) && ok
		ok = v.engine.openingEqHolds(resp.Zs[t], ctx.ts[t], ctx.c1s[t], ctx.d) && ok
	}
	ok = v.engine.relationEqHolds(ctx.gs, resp.Zs, resp.Zp, ctx.c2s, ctx.c2p, ctx.u, ctx.d) && ok

	return ok
}

// SumProofCommitment is the first message of the sum proof.
type SumProofCommitment struct {
	// Cs are the commitments to the values x_i.
	Cs []Commitment
	// Cp is the commitment to the weighted sum.
	Cp Commitment
	// Gs are the public scalars of the relation.
	Gs []Scalar
	// Ts has one length-Rows entry per term.
	Ts [][]ring.Poly
	// Tp has length Rows.
	Tp []ring.Poly
	// U has length MsgDim.
	U []ring.Poly
}

// NewSumProofCommitment creates a new zero SumProofCommitment with the
// given number of terms.
func NewSumProofCommitment(params Parameters, terms int) SumProofCommitment {
	cs := make([]Commitment, terms)
	gs := make([]Scalar, terms)
	ts := make([][]ring.Poly, terms)
	for t := 0; t < terms; t++ {
		cs[t] = NewCommitment(params)
		gs[t] = NewScalar(params)
		ts[t] = newPolyVec(params, params.rows)
	}

	return SumProofCommitment{
		Cs: cs,
		Cp: NewCommitment(params),
		Gs: gs,
		Ts: ts,
		Tp: newPolyVec(params, params.rows),
		U:  newPolyVec(params, params.msgDim),
	}
}

// SumProofResponse is the last message of the sum proof.
type SumProofResponse struct {
	// Zs has one length-Width entry per term.
	Zs [][]ring.Poly
	// Zp has length Width.
	Zp []ring.Poly
}

// NewSumProofResponse creates a new zero SumProofResponse with the
// given number of terms.
func NewSumProofResponse(params Parameters, terms int) SumProofResponse {
	zs := make([][]ring.Poly, terms)
	for t := 0; t < terms; t++ {
		zs[t] = newPolyVec(params, params.width)
	}

	return SumProofResponse{
		Zs: zs,
		Zp: newPolyVec(params, params.width),
	}
}

// SumProofResponseContext is the prover's ephemeral per-session state.
// It is consumed by exactly one CreateResponse call; reuse panics.
type SumProofResponseContext struct {
	// Openings are the openings of the commitments to the x_i.
	Openings []Opening
	// OpeningP is the opening of the commitment to the weighted sum.
	OpeningP Opening

	ys   [][]ring.Poly
	yp   []ring.Poly
	used bool
}

func (ctx *SumProofResponseContext) consume() {
	if ctx.used {
		panic("bdlop: response context already consumed")
	}
	ctx.used = true
}

// SumProofVerificationContext is the verifier's ephemeral per-session
// state. It is consumed by exactly one Verify call; reuse panics.
type SumProofVerificationContext struct {
	c1s [][]ring.Poly
	c2s [][]ring.Poly
	c1p []ring.Poly
	c2p []ring.Poly
	gs  []Scalar
	ts  [][]ring.Poly
	tp  []ring.Poly
	u   []ring.Poly
	d   ring.Poly

	used bool
}

func (ctx *SumProofVerificationContext) consume() {
	if ctx.used {
		panic("bdlop: verification context already consumed")
	}
	ctx.used = true
}
