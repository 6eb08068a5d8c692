// Package bdlop implements a commitment scheme over the ring
// R_q = Z_q[X]/(X^N + 1), together with interactive Sigma protocols
// proving knowledge of an opening, a linear relation x' = g*x, and a
// weighted-sum relation x' = g_0*x_0 + g_1*x_1 + ..., following
// "More Efficient Commitments from Structured Lattice Assumptions".
//
// All ring elements are kept in the NTT and Montgomery domain.
package bdlop

import (
	"math"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/ring"
)

// MaxRingDegree is the maximum supported ring degree.
const MaxRingDegree = 1 << 16

// ParametersLiteral is a structure for commitment scheme parameters.
type ParametersLiteral struct {
	// RingDegree is the degree of the ring R_q.
	// Denoted as N in the paper. Must be a power of two.
	RingDegree int
	// LogModulus is the (log2 value of) modulus of the ring R_q.
	// Denoted as q in the paper.
	LogModulus int

	// Rows is the height of the binding part A1 of the commitment key.
	// Denoted as n in the paper.
	Rows int
	// Width is the width of the commitment key matrices, and the
	// length of the commitment randomness.
	// Denoted as k in the paper.
	Width int
	// MsgDim is the dimension of the message space.
	// Denoted as l in the paper.
	MsgDim int

	// RandBound is the infinity-norm bound of honest commitment randomness.
	// Denoted as beta in the paper. The value should be a small constant.
	RandBound int64
	// MsgBound is the largest centered coefficient magnitude accepted
	// by PrepareValue and PrepareScalar. Must satisfy 2*MsgBound < q.
	MsgBound int64

	// Kappa is the 1-norm of challenge space elements: a challenge has
	// exactly Kappa coefficients in {-1, +1} and the rest zero.
	Kappa int
}

// Compile transforms ParametersLiteral to read-only Parameters.
// If there is any invalid parameter in the literal, it panics.
// Default parameters are guaranteed to be compiled without panics.
func (p ParametersLiteral) Compile() Parameters {
	switch {
	case p.RingDegree < 8 || p.RingDegree > MaxRingDegree || p.RingDegree&(p.RingDegree-1) != 0:
		panic("RingDegree must be a power of two in [8, MaxRingDegree]")
	case p.Rows <= 0 || p.MsgDim <= 0:
		panic("Rows and MsgDim must be positive")
	case p.Width <= p.Rows:
		panic("Width must exceed Rows")
	case p.Rows < p.MsgDim:
		panic("Rows must be at least MsgDim")
	case p.Width < p.Rows+p.MsgDim:
		panic("Width must be at least Rows + MsgDim")
	case p.RandBound <= 0:
		panic("RandBound must be positive")
	case p.Kappa <= 0 || p.Kappa > p.RingDegree:
		panic("Kappa must be in [1, RingDegree]")
	}

	logRingDegree := int(math.Log2(float64(p.RingDegree)))
	q, _, err := rlwe.GenModuli(logRingDegree+1, []int{p.LogModulus}, nil)
	if err != nil {
		panic(err)
	}

	ringQ, err := ring.NewRing(p.RingDegree, q)
	if err != nil {
		panic(err)
	}

	if p.MsgBound <= 0 || uint64(p.MsgBound) >= q[0]/2 {
		panic("MsgBound must be in (0, q/2)")
	}

	// Table 1 of the paper: sigma = 11 * kappa * beta * sqrt(k*N).
	sigma := 11 * float64(p.Kappa) * float64(p.RandBound) * math.Sqrt(float64(p.Width*p.RingDegree))
	sqrtDegree := math.Sqrt(float64(p.RingDegree))

	return Parameters{
		ringDegree: p.RingDegree,
		modulus:    q[0],

		rows:   p.Rows,
		width:  p.Width,
		msgDim: p.MsgDim,

		randBound: p.RandBound,
		msgBound:  p.MsgBound,

		kappa: p.Kappa,

		ringQ: ringQ,

		sigma:       sigma,
		commitBound: 4 * sigma * sqrtDegree,
		verifyBound: 2 * sigma * sqrtDegree,
	}
}

// Parameters is a read-only structure for commitment scheme parameters.
type Parameters struct {
	// ringDegree is the degree of the ring R_q.
	// Denoted as N in the paper.
	ringDegree int
	// modulus is the modulus of the ring R_q.
	// Denoted as q in the paper.
	modulus uint64

	// rows is the height of the binding part A1 of the commitment key.
	// Denoted as n in the paper.
	rows int
	// width is the width of the commitment key matrices.
	// Denoted as k in the paper.
	width int
	// msgDim is the dimension of the message space.
	// Denoted as l in the paper.
	msgDim int

	// randBound is the infinity-norm bound of honest commitment randomness.
	// Denoted as beta in the paper.
	randBound int64
	// msgBound is the largest accepted centered message coefficient.
	msgBound int64

	// kappa is the 1-norm of challenge space elements.
	kappa int

	// ringQ is the ring R_q.
	ringQ *ring.Ring

	// sigma is the standard deviation of the proof masks.
	sigma float64
	// commitBound is the 2-norm bound of each honest opening randomness entry.
	// Equals to 4 * sigma * sqrt(N).
	commitBound float64
	// verifyBound is the 2-norm bound of each response entry, and the
	// rejection sampling threshold. Equals to 2 * sigma * sqrt(N).
	verifyBound float64
}

// RingDegree returns the degree of the ring R_q.
func (p Parameters) RingDegree() int {
	return p.ringDegree
}

// Modulus returns the modulus of the ring R_q.
func (p Parameters) Modulus() uint64 {
	return p.modulus
}

// Rows returns the height of the binding part A1 of the commitment key.
func (p Parameters) Rows() int {
	return p.rows
}

// Width returns the width of the commitment key matrices.
func (p Parameters) Width() int {
	return p.width
}

// MsgDim returns the dimension of the message space.
func (p Parameters) MsgDim() int {
	return p.msgDim
}

// RandBound returns the infinity-norm bound of honest commitment randomness.
func (p Parameters) RandBound() int64 {
	return p.randBound
}

// MsgBound returns the largest accepted centered message coefficient.
func (p Parameters) MsgBound() int64 {
	return p.msgBound
}

// Kappa returns the 1-norm of challenge space elements.
func (p Parameters) Kappa() int {
	return p.kappa
}

// RingQ returns the ring R_q.
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// Sigma returns the standard deviation of the proof masks.
func (p Parameters) Sigma() float64 {
	return p.sigma
}

// CommitBound returns the 2-norm bound of each honest opening randomness entry.
func (p Parameters) CommitBound() float64 {
	return p.commitBound
}

// VerifyBound returns the 2-norm bound of each response entry.
// Responses above this bound are rejected, both by the rejection
// sampling step of the prover and by the verifier.
func (p Parameters) VerifyBound() float64 {
	return p.verifyBound
}
