package bdlop_test

import (
	"bytes"
	"testing"

	"github.com/sp301415/ring-zk/bdlop"
	"github.com/sp301415/ring-zk/csprng"
	"github.com/stretchr/testify/assert"
	"github.com/tuneinsight/lattigo/v6/ring"
	"github.com/tuneinsight/lattigo/v6/utils/structs"
)

var (
	params = bdlop.ParamsLogN9LogQ32.Compile()

	// Rejection sampling aborts are rare with the default parameters,
	// but the protocols are restarted up to this many times anyway.
	maxRestarts = 100
)

func TestParams(t *testing.T) {
	t.Run("Compile", func(t *testing.T) {
		assert.Greater(t, params.Sigma(), 0.0)
		assert.Greater(t, params.CommitBound(), params.VerifyBound())
		assert.Equal(t, 3, params.Width())
	})

	t.Run("CompileInvalid", func(t *testing.T) {
		badDegree := bdlop.ParamsLogN9LogQ32
		badDegree.RingDegree = 500
		assert.Panics(t, func() { badDegree.Compile() })

		badWidth := bdlop.ParamsLogN9LogQ32
		badWidth.Width = 1
		assert.Panics(t, func() { badWidth.Compile() })
	})
}

func TestPrepareValue(t *testing.T) {
	t.Run("Prepare", func(t *testing.T) {
		_, err := params.PrepareValue([][]int64{{1, -2, 3}})
		assert.NoError(t, err)
	})

	t.Run("PreparePadded", func(t *testing.T) {
		msg, err := params.PrepareValue(nil)
		assert.NoError(t, err)
		assert.Equal(t, params.MsgDim(), len(msg.Value))
	})

	t.Run("MsgDimExceeded", func(t *testing.T) {
		_, err := params.PrepareValue([][]int64{{1}, {2}})
		assert.ErrorIs(t, err, bdlop.ErrMsgDim)
	})

	t.Run("RingDegreeExceeded", func(t *testing.T) {
		_, err := params.PrepareValue([][]int64{make([]int64, params.RingDegree()+1)})
		assert.ErrorIs(t, err, bdlop.ErrRingDegree)
	})

	t.Run("MsgBoundExceeded", func(t *testing.T) {
		_, err := params.PrepareValue([][]int64{{params.MsgBound() + 1}})
		assert.ErrorIs(t, err, bdlop.ErrMsgBound)

		_, err = params.PrepareScalar([]int64{-params.MsgBound() - 1})
		assert.ErrorIs(t, err, bdlop.ErrMsgBound)
	})
}

func TestChallenge(t *testing.T) {
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())
	ch := s.SampleChallenge()

	ringQ := params.RingQ()
	buf := ringQ.NewPoly()
	ringQ.IMForm(ch.D, buf)
	ringQ.INTT(buf, buf)

	q := ringQ.SubRings[0].Modulus
	ones := 0
	for i := 0; i < ringQ.N(); i++ {
		switch buf.Coeffs[0][i] {
		case 0:
		case 1, q - 1:
			ones++
		default:
			t.Fatalf("challenge coefficient %d out of {-1, 0, 1}", i)
		}
	}
	assert.Equal(t, params.Kappa(), ones)
}

func TestChallengeDifference(t *testing.T) {
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())
	f := s.SampleChallengeDifference()

	ringQ := params.RingQ()
	buf := ringQ.NewPoly()
	ringQ.IMForm(f, buf)
	ringQ.INTT(buf, buf)

	q := ringQ.SubRings[0].Modulus
	nonzero := false
	for i := 0; i < ringQ.N(); i++ {
		c := centered(buf.Coeffs[0][i], q)
		if c < -2 || c > 2 {
			t.Fatalf("difference coefficient %d out of [-2, 2]", i)
		}
		nonzero = nonzero || c != 0
	}
	assert.True(t, nonzero)
}

func TestCommitment(t *testing.T) {
	key := bdlop.GenCommitmentKey(params, csprng.NewStreamSampler())
	commiter := bdlop.NewCommiter(params, key)
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())

	msg, err := params.PrepareValue([][]int64{{1, 2, 3, -4}})
	assert.NoError(t, err)

	t.Run("VerifyOpening", func(t *testing.T) {
		rand := commiter.SampleRandomness(s)
		com := commiter.Commit(msg, rand)

		assert.True(t, commiter.VerifyOpening(com, bdlop.Opening{Message: msg, Rand: rand}))
	})

	t.Run("Deterministic", func(t *testing.T) {
		rand := commiter.SampleRandomness(s)
		com0 := commiter.Commit(msg, rand)
		com1 := commiter.Commit(msg, rand)

		assert.True(t, com0.Equals(com1))
	})

	t.Run("WrongMessage", func(t *testing.T) {
		rand := commiter.SampleRandomness(s)
		com := commiter.Commit(msg, rand)

		msgOther, err := params.PrepareValue([][]int64{{1, 2, 3, 4}})
		assert.NoError(t, err)

		assert.False(t, commiter.VerifyOpening(com, bdlop.Opening{Message: msgOther, Rand: rand}))
	})

	t.Run("WrongRandomness", func(t *testing.T) {
		rand := commiter.SampleRandomness(s)
		com := commiter.Commit(msg, rand)

		assert.False(t, commiter.VerifyOpening(com, bdlop.Opening{Message: msg, Rand: commiter.SampleRandomness(s)}))
	})

	t.Run("RelaxedOpening", func(t *testing.T) {
		rand := commiter.SampleRandomness(s)
		com := commiter.Commit(msg, rand)

		// f*c = A*(f*r) + f*[0 x], so (x, f*r, f) opens c relaxedly.
		f := s.SampleChallengeDifference()
		ringQ := params.RingQ()
		randF := make([]ring.Poly, len(rand))
		for i := range rand {
			randF[i] = ringQ.NewPoly()
			ringQ.MulCoeffsMontgomery(f, rand[i], randF[i])
		}

		open := bdlop.Opening{Message: msg, Rand: randF, Factor: f, HasFactor: true}
		assert.True(t, commiter.VerifyOpening(com, open))
	})

	t.Run("RelaxedOpeningWrongMessage", func(t *testing.T) {
		rand := commiter.SampleRandomness(s)
		com := commiter.Commit(msg, rand)

		f := s.SampleChallengeDifference()
		ringQ := params.RingQ()
		randF := make([]ring.Poly, len(rand))
		for i := range rand {
			randF[i] = ringQ.NewPoly()
			ringQ.MulCoeffsMontgomery(f, rand[i], randF[i])
		}

		msgOther, err := params.PrepareValue([][]int64{{-8, 1}})
		assert.NoError(t, err)

		open := bdlop.Opening{Message: msgOther, Rand: randF, Factor: f, HasFactor: true}
		assert.False(t, commiter.VerifyOpening(com, open))
	})
}

func TestOpenProof(t *testing.T) {
	key := bdlop.GenCommitmentKey(params, csprng.NewStreamSampler())
	prover := bdlop.NewOpenProofProver(params, key)
	verifier := bdlop.NewOpenProofVerifier(params, key)
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())

	msg, err := params.PrepareValue([][]int64{{7, -3, 1}})
	assert.NoError(t, err)

	t.Run("Complete", func(t *testing.T) {
		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, msg)
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.True(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("TamperedCommitment", func(t *testing.T) {
		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, msg)
			com.T[0].Coeffs[0][0] ^= 1
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.False(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("TamperedResponse", func(t *testing.T) {
		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, msg)
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			resp.Z[0].Coeffs[0][0] ^= 1
			assert.False(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("WrongKey", func(t *testing.T) {
		verifierOther := bdlop.NewOpenProofVerifier(params, bdlop.GenCommitmentKey(params, csprng.NewStreamSampler()))

		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, msg)
			vctx, ch := verifierOther.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.False(t, verifierOther.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("ContextReuse", func(t *testing.T) {
		ctx, com := prover.Commit(s, msg)
		vctx, ch := verifier.GenerateChallenge(s, com)

		resp, ok := prover.CreateResponse(ctx, ch)
		assert.Panics(t, func() { prover.CreateResponse(ctx, ch) })

		if ok {
			verifier.Verify(resp, vctx)
			assert.Panics(t, func() { verifier.Verify(resp, vctx) })
		}
	})
}

func TestLinearProof(t *testing.T) {
	key := bdlop.GenCommitmentKey(params, csprng.NewStreamSampler())
	prover := bdlop.NewLinearProofProver(params, key)
	verifier := bdlop.NewLinearProofVerifier(params, key)
	commiter := bdlop.NewCommiter(params, key)
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())

	g, err := params.PrepareScalar([]int64{2, 0, -1})
	assert.NoError(t, err)
	msg, err := params.PrepareValue([][]int64{{5, 1, -2, 4}})
	assert.NoError(t, err)

	t.Run("Complete", func(t *testing.T) {
		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, g, msg)
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.True(t, verifier.Verify(resp, vctx))

			// Both openings remain valid commitments in their own right.
			assert.True(t, commiter.VerifyOpening(com.C, ctx.Opening))
			assert.True(t, commiter.VerifyOpening(com.Cp, ctx.OpeningP))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("WrongScalar", func(t *testing.T) {
		gOther, err := params.PrepareScalar([]int64{3})
		assert.NoError(t, err)

		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, g, msg)
			com.G = gOther
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.False(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("ContextReuse", func(t *testing.T) {
		ctx, _ := prover.Commit(s, g, msg)
		ch := s.SampleChallenge()

		prover.CreateResponse(ctx, ch)
		assert.Panics(t, func() { prover.CreateResponse(ctx, ch) })
	})
}

func TestSumProof(t *testing.T) {
	key := bdlop.GenCommitmentKey(params, csprng.NewStreamSampler())
	prover := bdlop.NewSumProofProver(params, key)
	verifier := bdlop.NewSumProofVerifier(params, key)
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())

	gs := make([]bdlop.Scalar, 3)
	msgs := make([]bdlop.Message, 3)
	rawScalars := [][]int64{{1}, {2, -1}, {0, 0, 3}}
	rawMsgs := [][]int64{{4, 2}, {-1, 5}, {7}}
	for i := 0; i < 3; i++ {
		var err error
		gs[i], err = params.PrepareScalar(rawScalars[i])
		assert.NoError(t, err)
		msgs[i], err = params.PrepareValue([][]int64{rawMsgs[i]})
		assert.NoError(t, err)
	}

	t.Run("Complete", func(t *testing.T) {
		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, gs, msgs)
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.True(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("SingleTerm", func(t *testing.T) {
		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, gs[:1], msgs[:1])
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.True(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("WrongScalar", func(t *testing.T) {
		gOther, err := params.PrepareScalar([]int64{-2})
		assert.NoError(t, err)

		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, gs, msgs)
			com.Gs[1] = gOther
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			assert.False(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("WrongTermCount", func(t *testing.T) {
		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, gs, msgs)
			vctx, ch := verifier.GenerateChallenge(s, com)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			resp.Zs = resp.Zs[:2]
			assert.False(t, verifier.Verify(resp, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("MismatchedInput", func(t *testing.T) {
		assert.Panics(t, func() { prover.Commit(s, gs[:2], msgs) })
		assert.Panics(t, func() { prover.Commit(s, nil, nil) })
	})
}

func TestSerialization(t *testing.T) {
	key := bdlop.GenCommitmentKey(params, csprng.NewStreamSampler())
	commiter := bdlop.NewCommiter(params, key)
	s := bdlop.NewSampler(params, csprng.NewStreamSampler())

	msg, err := params.PrepareValue([][]int64{{9, -9}})
	assert.NoError(t, err)

	t.Run("Commitment", func(t *testing.T) {
		com := commiter.Commit(msg, commiter.SampleRandomness(s))

		var buf bytes.Buffer
		n, err := com.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, com.BinarySize(), int(n))

		var comOut bdlop.Commitment
		_, err = comOut.ReadFrom(&buf)
		assert.NoError(t, err)
		assert.True(t, com.Equals(comOut))
	})

	t.Run("OpenProof", func(t *testing.T) {
		prover := bdlop.NewOpenProofProver(params, key)
		verifier := bdlop.NewOpenProofVerifier(params, key)

		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, msg)

			var buf bytes.Buffer
			_, err := com.WriteTo(&buf)
			assert.NoError(t, err)

			var comOut bdlop.OpenProofCommitment
			_, err = comOut.ReadFrom(&buf)
			assert.NoError(t, err)

			vctx, ch := verifier.GenerateChallenge(s, comOut)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			buf.Reset()
			_, err = resp.WriteTo(&buf)
			assert.NoError(t, err)

			var respOut bdlop.OpenProofResponse
			_, err = respOut.ReadFrom(&buf)
			assert.NoError(t, err)

			assert.True(t, verifier.Verify(respOut, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("LinearProof", func(t *testing.T) {
		prover := bdlop.NewLinearProofProver(params, key)
		verifier := bdlop.NewLinearProofVerifier(params, key)

		g, err := params.PrepareScalar([]int64{4})
		assert.NoError(t, err)

		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, g, msg)

			var buf bytes.Buffer
			_, err := com.WriteTo(&buf)
			assert.NoError(t, err)

			var comOut bdlop.LinearProofCommitment
			_, err = comOut.ReadFrom(&buf)
			assert.NoError(t, err)

			vctx, ch := verifier.GenerateChallenge(s, comOut)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			buf.Reset()
			_, err = resp.WriteTo(&buf)
			assert.NoError(t, err)

			var respOut bdlop.LinearProofResponse
			_, err = respOut.ReadFrom(&buf)
			assert.NoError(t, err)

			assert.True(t, verifier.Verify(respOut, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})

	t.Run("MalformedSumCommitment", func(t *testing.T) {
		ringQ := params.RingQ()

		// a stream carrying an empty scalar row, which no WriteTo emits
		cs := structs.Matrix[ring.Poly]{{ringQ.NewPoly()}}
		gs := structs.Matrix[ring.Poly]{{}}
		ts := structs.Matrix[ring.Poly]{{ringQ.NewPoly()}}

		var buf bytes.Buffer
		for _, m := range []structs.Matrix[ring.Poly]{cs, gs, ts} {
			_, err := m.WriteTo(&buf)
			assert.NoError(t, err)
		}

		var comOut bdlop.SumProofCommitment
		_, err := comOut.ReadFrom(&buf)
		assert.ErrorIs(t, err, bdlop.ErrMalformedEncoding)
	})

	t.Run("SumProof", func(t *testing.T) {
		prover := bdlop.NewSumProofProver(params, key)
		verifier := bdlop.NewSumProofVerifier(params, key)

		gs := make([]bdlop.Scalar, 2)
		msgs := make([]bdlop.Message, 2)
		for i := range gs {
			var err error
			gs[i], err = params.PrepareScalar([]int64{int64(i + 1)})
			assert.NoError(t, err)
			msgs[i], err = params.PrepareValue([][]int64{{int64(10 * (i + 1))}})
			assert.NoError(t, err)
		}

		for i := 0; i < maxRestarts; i++ {
			ctx, com := prover.Commit(s, gs, msgs)

			var buf bytes.Buffer
			_, err := com.WriteTo(&buf)
			assert.NoError(t, err)

			var comOut bdlop.SumProofCommitment
			_, err = comOut.ReadFrom(&buf)
			assert.NoError(t, err)

			vctx, ch := verifier.GenerateChallenge(s, comOut)

			resp, ok := prover.CreateResponse(ctx, ch)
			if !ok {
				continue
			}

			buf.Reset()
			_, err = resp.WriteTo(&buf)
			assert.NoError(t, err)

			var respOut bdlop.SumProofResponse
			_, err = respOut.ReadFrom(&buf)
			assert.NoError(t, err)

			assert.True(t, verifier.Verify(respOut, vctx))
			return
		}
		t.Fatal("all proof attempts aborted")
	})
}
