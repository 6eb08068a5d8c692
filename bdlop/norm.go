package bdlop

import (
	"math"
	"math/big"

	"github.com/tuneinsight/lattigo/v6/ring"
)

// normChecker computes norms of centered coefficients of ring elements.
// Not safe for concurrent use.
type normChecker struct {
	params Parameters

	buf    ring.Poly
	normSq *big.Int
	mul    *big.Int
}

// newNormChecker creates a new normChecker.
func newNormChecker(params Parameters) *normChecker {
	return &normChecker{
		params: params,

		buf:    params.ringQ.NewPoly(),
		normSq: big.NewInt(0),
		mul:    big.NewInt(0),
	}
}

// toBalanced maps x mod q to the centered representative in (-q/2, q/2].
func toBalanced(x, q uint64) int64 {
	if x > q>>1 {
		return int64(x) - int64(q)
	}
	return int64(x)
}

// polyNorm returns the 2-norm of the centered coefficients of p.
// p is expected in the NTT and Montgomery domain.
func (c *normChecker) polyNorm(p ring.Poly) float64 {
	c.params.ringQ.IMForm(p, c.buf)
	c.params.ringQ.INTT(c.buf, c.buf)

	q := c.params.ringQ.SubRings[0].Modulus

	c.normSq.SetUint64(0)
	for i := 0; i < c.params.ringQ.N(); i++ {
		c.mul.SetInt64(toBalanced(c.buf.Coeffs[0][i], q))
		c.mul.Mul(c.mul, c.mul)
		c.normSq.Add(c.normSq, c.mul)
	}

	normFloat, _ := c.normSq.Float64()
	return math.Sqrt(normFloat)
}

// vecWithinBound checks that the 2-norm of every entry of ps is at most bound.
func (c *normChecker) vecWithinBound(ps []ring.Poly, bound float64) bool {
	for i := range ps {
		if c.polyNorm(ps[i]) > bound {
			return false
		}
	}
	return true
}
