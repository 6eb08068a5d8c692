package bdlop

import (
	"errors"

	"github.com/tuneinsight/lattigo/v6/ring"
)

var (
	// ErrMsgDim is returned when a raw value has more rows than MsgDim.
	ErrMsgDim = errors.New("bdlop: value length exceeds MsgDim")
	// ErrRingDegree is returned when a raw coefficient vector is longer
	// than the ring degree.
	ErrRingDegree = errors.New("bdlop: coefficient vector length exceeds RingDegree")
	// ErrMsgBound is returned when a raw coefficient magnitude exceeds MsgBound.
	ErrMsgBound = errors.New("bdlop: coefficient magnitude exceeds MsgBound")
)

// PrepareValue encodes a raw integer matrix into a Message.
// Each row becomes one ring element; rows shorter than RingDegree are
// zero-padded, and fewer than MsgDim rows are padded with zero elements.
// Returns ErrMsgDim, ErrRingDegree or ErrMsgBound when raw exceeds the
// configured dimensions or bound; inputs are never truncated.
func (p Parameters) PrepareValue(raw [][]int64) (Message, error) {
	if len(raw) > p.msgDim {
		return Message{}, ErrMsgDim
	}

	msg := NewMessage(p)
	for i := range raw {
		if err := p.encodeBounded(raw[i], msg.Value[i]); err != nil {
			return Message{}, err
		}
	}

	return msg, nil
}

// PrepareScalar encodes a raw integer vector into a Scalar.
// Returns ErrRingDegree or ErrMsgBound when raw exceeds the configured
// degree or bound.
func (p Parameters) PrepareScalar(raw []int64) (Scalar, error) {
	sc := NewScalar(p)
	if err := p.encodeBounded(raw, sc.Value); err != nil {
		return Scalar{}, err
	}

	return sc, nil
}

// encodeBounded writes the centered coefficients of raw into pOut and
// moves it to the NTT and Montgomery domain.
func (p Parameters) encodeBounded(raw []int64, pOut ring.Poly) error {
	if len(raw) > p.ringDegree {
		return ErrRingDegree
	}

	for _, c := range raw {
		if c > p.msgBound || c < -p.msgBound {
			return ErrMsgBound
		}
	}

	for i, c := range raw {
		if c >= 0 {
			for j := 0; j <= p.ringQ.Level(); j++ {
				pOut.Coeffs[j][i] = uint64(c)
			}
		} else {
			for j := 0; j <= p.ringQ.Level(); j++ {
				pOut.Coeffs[j][i] = uint64(c + int64(p.ringQ.SubRings[j].Modulus))
			}
		}
	}

	p.ringQ.NTT(pOut, pOut)
	p.ringQ.MForm(pOut, pOut)

	return nil
}
