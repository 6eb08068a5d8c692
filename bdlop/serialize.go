package bdlop

import (
	"errors"
	"io"

	"github.com/tuneinsight/lattigo/v6/ring"
	"github.com/tuneinsight/lattigo/v6/utils/structs"
)

// ErrMalformedEncoding is returned by ReadFrom when a decoded wire
// message has a shape no WriteTo produces.
var ErrMalformedEncoding = errors.New("bdlop: malformed encoding")

// Wire types implement io.WriterTo and io.ReaderFrom on top of the
// self-describing polynomial encoding of [ring.Poly], so a zero-valued
// destination works for ReadFrom. Polynomials travel in the NTT and
// Montgomery domain, exactly as held in memory.

// BinarySize returns the size in bytes of the serialized message.
func (m Message) BinarySize() int {
	return structs.Vector[ring.Poly](m.Value).BinarySize()
}

// WriteTo writes the message to w.
func (m Message) WriteTo(w io.Writer) (int64, error) {
	return structs.Vector[ring.Poly](m.Value).WriteTo(w)
}

// ReadFrom reads the message from r.
func (m *Message) ReadFrom(r io.Reader) (int64, error) {
	v := structs.Vector[ring.Poly](m.Value)
	n, err := v.ReadFrom(r)
	m.Value = v
	return n, err
}

// BinarySize returns the size in bytes of the serialized scalar.
func (s Scalar) BinarySize() int {
	return s.Value.BinarySize()
}

// WriteTo writes the scalar to w.
func (s Scalar) WriteTo(w io.Writer) (int64, error) {
	return s.Value.WriteTo(w)
}

// ReadFrom reads the scalar from r.
func (s *Scalar) ReadFrom(r io.Reader) (int64, error) {
	return s.Value.ReadFrom(r)
}

// BinarySize returns the size in bytes of the serialized commitment.
func (c Commitment) BinarySize() int {
	return structs.Vector[ring.Poly](c.Value).BinarySize()
}

// WriteTo writes the commitment to w.
func (c Commitment) WriteTo(w io.Writer) (int64, error) {
	return structs.Vector[ring.Poly](c.Value).WriteTo(w)
}

// ReadFrom reads the commitment from r.
func (c *Commitment) ReadFrom(r io.Reader) (int64, error) {
	v := structs.Vector[ring.Poly](c.Value)
	n, err := v.ReadFrom(r)
	c.Value = v
	return n, err
}

// BinarySize returns the size in bytes of the serialized challenge.
func (ch Challenge) BinarySize() int {
	return ch.D.BinarySize()
}

// WriteTo writes the challenge to w.
func (ch Challenge) WriteTo(w io.Writer) (int64, error) {
	return ch.D.WriteTo(w)
}

// ReadFrom reads the challenge from r.
func (ch *Challenge) ReadFrom(r io.Reader) (int64, error) {
	return ch.D.ReadFrom(r)
}

// BinarySize returns the size in bytes of the serialized commitment.
func (com OpenProofCommitment) BinarySize() int {
	return com.C.BinarySize() + structs.Vector[ring.Poly](com.T).BinarySize()
}

// WriteTo writes the commitment to w.
func (com OpenProofCommitment) WriteTo(w io.Writer) (n int64, err error) {
	var inc int64

	if inc, err = com.C.WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = structs.Vector[ring.Poly](com.T).WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	return n, nil
}

// ReadFrom reads the commitment from r.
func (com *OpenProofCommitment) ReadFrom(r io.Reader) (n int64, err error) {
	var inc int64

	if inc, err = com.C.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc

	t := structs.Vector[ring.Poly](com.T)
	if inc, err = t.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc
	com.T = t

	return n, nil
}

// BinarySize returns the size in bytes of the serialized response.
func (resp OpenProofResponse) BinarySize() int {
	return structs.Vector[ring.Poly](resp.Z).BinarySize()
}

// WriteTo writes the response to w.
func (resp OpenProofResponse) WriteTo(w io.Writer) (int64, error) {
	return structs.Vector[ring.Poly](resp.Z).WriteTo(w)
}

// ReadFrom reads the response from r.
func (resp *OpenProofResponse) ReadFrom(r io.Reader) (int64, error) {
	v := structs.Vector[ring.Poly](resp.Z)
	n, err := v.ReadFrom(r)
	resp.Z = v
	return n, err
}

// BinarySize returns the size in bytes of the serialized commitment.
func (com LinearProofCommitment) BinarySize() int {
	size := com.C.BinarySize()
	size += com.Cp.BinarySize()
	size += com.G.BinarySize()
	size += structs.Vector[ring.Poly](com.T).BinarySize()
	size += structs.Vector[ring.Poly](com.Tp).BinarySize()
	size += structs.Vector[ring.Poly](com.U).BinarySize()
	return size
}

// WriteTo writes the commitment to w.
func (com LinearProofCommitment) WriteTo(w io.Writer) (n int64, err error) {
	var inc int64

	if inc, err = com.C.WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = com.Cp.WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = com.G.WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	for _, vec := range [][]ring.Poly{com.T, com.Tp, com.U} {
		if inc, err = structs.Vector[ring.Poly](vec).WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
	}

	return n, nil
}

// ReadFrom reads the commitment from r.
func (com *LinearProofCommitment) ReadFrom(r io.Reader) (n int64, err error) {
	var inc int64

	if inc, err = com.C.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = com.Cp.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = com.G.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc

	for _, vec := range []*[]ring.Poly{&com.T, &com.Tp, &com.U} {
		v := structs.Vector[ring.Poly](*vec)
		if inc, err = v.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		*vec = v
	}

	return n, nil
}

// BinarySize returns the size in bytes of the serialized response.
func (resp LinearProofResponse) BinarySize() int {
	return structs.Vector[ring.Poly](resp.Z).BinarySize() + structs.Vector[ring.Poly](resp.Zp).BinarySize()
}

// WriteTo writes the response to w.
func (resp LinearProofResponse) WriteTo(w io.Writer) (n int64, err error) {
	var inc int64

	for _, vec := range [][]ring.Poly{resp.Z, resp.Zp} {
		if inc, err = structs.Vector[ring.Poly](vec).WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
	}

	return n, nil
}

// ReadFrom reads the response from r.
func (resp *LinearProofResponse) ReadFrom(r io.Reader) (n int64, err error) {
	var inc int64

	for _, vec := range []*[]ring.Poly{&resp.Z, &resp.Zp} {
		v := structs.Vector[ring.Poly](*vec)
		if inc, err = v.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		*vec = v
	}

	return n, nil
}

func (com SumProofCommitment) asMatrices() (cs, gs, ts structs.Matrix[ring.Poly]) {
	cs = make(structs.Matrix[ring.Poly], len(com.Cs))
	for i := range com.Cs {
		cs[i] = com.Cs[i].Value
	}
	gs = make(structs.Matrix[ring.Poly], len(com.Gs))
	for i := range com.Gs {
		gs[i] = []ring.Poly{com.Gs[i].Value}
	}
	ts = structs.Matrix[ring.Poly](com.Ts)
	return
}

// BinarySize returns the size in bytes of the serialized commitment.
func (com SumProofCommitment) BinarySize() int {
	cs, gs, ts := com.asMatrices()
	size := cs.BinarySize() + gs.BinarySize() + ts.BinarySize()
	size += com.Cp.BinarySize()
	size += structs.Vector[ring.Poly](com.Tp).BinarySize()
	size += structs.Vector[ring.Poly](com.U).BinarySize()
	return size
}

// WriteTo writes the commitment to w.
func (com SumProofCommitment) WriteTo(w io.Writer) (n int64, err error) {
	var inc int64

	cs, gs, ts := com.asMatrices()
	for _, m := range []structs.Matrix[ring.Poly]{cs, gs, ts} {
		if inc, err = m.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
	}

	if inc, err = com.Cp.WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	for _, vec := range [][]ring.Poly{com.Tp, com.U} {
		if inc, err = structs.Vector[ring.Poly](vec).WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
	}

	return n, nil
}

// ReadFrom reads the commitment from r.
func (com *SumProofCommitment) ReadFrom(r io.Reader) (n int64, err error) {
	var inc int64

	var cs, gs, ts structs.Matrix[ring.Poly]
	for _, m := range []*structs.Matrix[ring.Poly]{&cs, &gs, &ts} {
		if inc, err = m.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
	}

	com.Cs = make([]Commitment, len(cs))
	for i := range cs {
		com.Cs[i] = Commitment{Value: cs[i]}
	}
	com.Gs = make([]Scalar, len(gs))
	for i := range gs {
		if len(gs[i]) != 1 {
			return n, ErrMalformedEncoding
		}
		com.Gs[i] = Scalar{Value: gs[i][0]}
	}
	com.Ts = ts

	if inc, err = com.Cp.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc

	for _, vec := range []*[]ring.Poly{&com.Tp, &com.U} {
		v := structs.Vector[ring.Poly](*vec)
		if inc, err = v.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		*vec = v
	}

	return n, nil
}

// BinarySize returns the size in bytes of the serialized response.
func (resp SumProofResponse) BinarySize() int {
	return structs.Matrix[ring.Poly](resp.Zs).BinarySize() + structs.Vector[ring.Poly](resp.Zp).BinarySize()
}

// WriteTo writes the response to w.
func (resp SumProofResponse) WriteTo(w io.Writer) (n int64, err error) {
	var inc int64

	if inc, err = structs.Matrix[ring.Poly](resp.Zs).WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = structs.Vector[ring.Poly](resp.Zp).WriteTo(w); err != nil {
		return n + inc, err
	}
	n += inc

	return n, nil
}

// ReadFrom reads the response from r.
func (resp *SumProofResponse) ReadFrom(r io.Reader) (n int64, err error) {
	var inc int64

	zs := structs.Matrix[ring.Poly](resp.Zs)
	if inc, err = zs.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc
	resp.Zs = zs

	zp := structs.Vector[ring.Poly](resp.Zp)
	if inc, err = zp.ReadFrom(r); err != nil {
		return n + inc, err
	}
	n += inc
	resp.Zp = zp

	return n, nil
}
