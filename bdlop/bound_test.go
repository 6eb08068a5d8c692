package bdlop_test

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sp301415/ring-zk/bdlop"
	"github.com/sp301415/ring-zk/csprng"
)

func TestMsgBoundProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("values within MsgBound always encode", prop.ForAll(
		func(coeffs []int64) bool {
			_, err := params.PrepareValue([][]int64{coeffs})
			return err == nil
		},
		gen.SliceOf(gen.Int64Range(-params.MsgBound(), params.MsgBound())),
	))

	properties.Property("any coefficient above MsgBound is rejected", prop.ForAll(
		func(c int64) bool {
			_, err := params.PrepareValue([][]int64{{c}})
			return errors.Is(err, bdlop.ErrMsgBound)
		},
		gen.OneGenOf(
			gen.Int64Range(params.MsgBound()+1, math.MaxInt64),
			gen.Int64Range(math.MinInt64, -params.MsgBound()-1),
		),
	))

	properties.TestingRun(t)
}

func TestMsgBoundBoundary(t *testing.T) {
	_, err := params.PrepareValue([][]int64{{params.MsgBound(), -params.MsgBound()}})
	if err != nil {
		t.Errorf("coefficients at exactly MsgBound rejected: %v", err)
	}
}

func TestRandomnessBoundProperties(t *testing.T) {
	key := bdlop.GenCommitmentKey(params, csprng.NewStreamSampler())
	commiter := bdlop.NewCommiter(params, key)

	ringQ := params.RingQ()
	buf := ringQ.NewPoly()
	q := ringQ.SubRings[0].Modulus

	properties := gopter.NewProperties(nil)

	properties.Property("sampled randomness stays within RandBound", prop.ForAll(
		func(seed []byte) bool {
			s := bdlop.NewSampler(params, csprng.NewUniformSamplerWithSeed(seed))

			for _, p := range commiter.SampleRandomness(s) {
				ringQ.IMForm(p, buf)
				ringQ.INTT(buf, buf)
				for i := 0; i < ringQ.N(); i++ {
					c := centered(buf.Coeffs[0][i], q)
					if c > params.RandBound() || c < -params.RandBound() {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(32, gen.UInt8()),
	))

	properties.Property("challenges carry exactly Kappa signs", prop.ForAll(
		func(seed []byte) bool {
			s := bdlop.NewSampler(params, csprng.NewUniformSamplerWithSeed(seed))
			ch := s.SampleChallenge()

			ringQ.IMForm(ch.D, buf)
			ringQ.INTT(buf, buf)

			ones := 0
			for i := 0; i < ringQ.N(); i++ {
				switch buf.Coeffs[0][i] {
				case 0:
				case 1, q - 1:
					ones++
				default:
					return false
				}
			}
			return ones == params.Kappa()
		},
		gen.SliceOfN(32, gen.UInt8()),
	))

	properties.TestingRun(t)
}

// Responses of honest provers should look like fresh Gaussian masks:
// their mean norm stays close to sigma*sqrt(N) regardless of the
// committed message, so accepted transcripts leak nothing about it.
func TestResponseNormDistribution(t *testing.T) {
	key := bdlop.GenCommitmentKey(params, csprng.NewStreamSampler())
	prover := bdlop.NewOpenProofProver(params, key)
	verifier := bdlop.NewOpenProofVerifier(params, key)
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())

	msgZero, _ := params.PrepareValue(nil)
	msgBig, _ := params.PrepareValue([][]int64{{params.MsgBound(), -params.MsgBound(), params.MsgBound()}})

	meanNorm := func(msg bdlop.Message) float64 {
		const samples = 20

		total := 0.0
		collected := 0
		for collected < samples {
			ctx, com := prover.Commit(s, msg)
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}
			if !verifier.Verify(resp, vctx) {
				t.Fatal("honest proof rejected")
			}

			total += responseNorm(resp)
			collected++
		}
		return total / samples
	}

	expected := params.Sigma() * math.Sqrt(float64(params.RingDegree()))
	for _, msg := range []bdlop.Message{msgZero, msgBig} {
		mean := meanNorm(msg)
		if mean < 0.9*expected || mean > 1.1*expected {
			t.Errorf("mean response norm %f too far from %f", mean, expected)
		}
	}
}

// responseNorm computes the mean 2-norm of the centered coefficients of
// the response entries.
func responseNorm(resp bdlop.OpenProofResponse) float64 {
	ringQ := params.RingQ()
	buf := ringQ.NewPoly()
	q := ringQ.SubRings[0].Modulus

	total := 0.0
	for _, z := range resp.Z {
		ringQ.IMForm(z, buf)
		ringQ.INTT(buf, buf)

		normSq := 0.0
		for i := 0; i < ringQ.N(); i++ {
			c := float64(centered(buf.Coeffs[0][i], q))
			normSq += c * c
		}
		total += math.Sqrt(normSq)
	}

	return total / float64(len(resp.Z))
}

// centered maps x mod q to its representative in (-q/2, q/2].
func centered(x, q uint64) int64 {
	if x > q>>1 {
		return int64(x) - int64(q)
	}
	return int64(x)
}
