package ntt

import (
	"github.com/orhosko/tiny-ntt/zq"
)

// Transformer computes forward and inverse transforms over a fixed
// parameter set.
type Transformer struct {
	buffer transformerBuffer

	params  Parameters
	reducer zq.Reducer

	// tw holds the prepared powers of Psi in bit-reversed order.
	tw []uint64
	// twInv holds the prepared powers of PsiInv in bit-reversed order.
	twInv []uint64
	// nInv is the prepared inverse of N.
	nInv uint64
}

// transformerBuffer is a buffer for Transformer.
type transformerBuffer struct {
	// fw0 holds the transform of the first operand.
	fw0 NTTPoly
	// fw1 holds the transform of the second operand.
	fw1 NTTPoly
}

// newTransformerBuffer creates a new transformerBuffer.
func newTransformerBuffer(N int) transformerBuffer {
	return transformerBuffer{
		fw0: NewNTTPoly(N),
		fw1: NewNTTPoly(N),
	}
}

// NewTransformer creates a new Transformer.
func NewTransformer(params Parameters) *Transformer {
	reducer := params.Reducer()
	table := NewTwiddleTable(params, reducer)

	return &Transformer{
		buffer: newTransformerBuffer(params.N()),

		params:  params,
		reducer: reducer,

		tw:    table.Fwd,
		twInv: table.Inv,
		nInv:  table.NInv,
	}
}

// ShallowCopy creates a shallow copy of this Transformer that is thread-safe.
func (tr *Transformer) ShallowCopy() *Transformer {
	return &Transformer{
		buffer: newTransformerBuffer(tr.params.N()),

		params:  tr.params,
		reducer: tr.reducer,

		tw:    tr.tw,
		twInv: tr.twInv,
		nInv:  tr.nInv,
	}
}

// Params returns the parameters of this Transformer.
func (tr *Transformer) Params() Parameters {
	return tr.params
}

// ToNTTPoly computes the forward transform of p.
func (tr *Transformer) ToNTTPoly(p Poly) NTTPoly {
	pOut := NewNTTPoly(tr.params.n)
	tr.ToNTTPolyAssign(p, pOut)
	return pOut
}

// ToNTTPolyAssign computes the forward transform of p and writes it to pOut.
func (tr *Transformer) ToNTTPolyAssign(p Poly, pOut NTTPoly) {
	copy(pOut.Coeffs, p.Coeffs)
	tr.NTTInPlace(pOut.Coeffs)
}

// ToPoly computes the inverse transform of p.
func (tr *Transformer) ToPoly(p NTTPoly) Poly {
	pOut := NewPoly(tr.params.n)
	tr.ToPolyAssign(p, pOut)
	return pOut
}

// ToPolyAssign computes the inverse transform of p and writes it to pOut.
func (tr *Transformer) ToPolyAssign(p NTTPoly, pOut Poly) {
	copy(pOut.Coeffs, p.Coeffs)
	tr.InvNTTInPlace(pOut.Coeffs)
	tr.NormalizeInPlace(pOut.Coeffs)
}

// NTTInPlace computes the forward transform of coeffs in-place.
// The input is in normal order, and the output is in bit-reversed order.
func (tr *Transformer) NTTInPlace(coeffs []uint64) {
	t := tr.params.n
	for m := 1; m < tr.params.n; m <<= 1 {
		t >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * t
			j2 := j1 + t
			w := tr.tw[m+i]
			for j := j1; j < j2; j++ {
				u := coeffs[j]
				v := tr.reducer.MulConst(coeffs[j+t], w)
				coeffs[j] = tr.reducer.Add(u, v)
				coeffs[j+t] = tr.reducer.Sub(u, v)
			}
		}
	}
}

// InvNTTInPlace computes the inverse transform of coeffs in-place,
// without normalizing by 1/N. The input is in bit-reversed order,
// and the output is in normal order.
func (tr *Transformer) InvNTTInPlace(coeffs []uint64) {
	t := 1
	for m := tr.params.n >> 1; m >= 1; m >>= 1 {
		for i := 0; i < m; i++ {
			j1 := 2 * i * t
			j2 := j1 + t
			w := tr.twInv[m+i]
			for j := j1; j < j2; j++ {
				u := coeffs[j]
				v := coeffs[j+t]
				coeffs[j] = tr.reducer.Add(u, v)
				coeffs[j+t] = tr.reducer.MulConst(tr.reducer.Sub(u, v), w)
			}
		}
		t <<= 1
	}
}

// NormalizeInPlace normalizes coeffs by 1/N in-place.
func (tr *Transformer) NormalizeInPlace(coeffs []uint64) {
	for i := range coeffs {
		coeffs[i] = tr.reducer.MulConst(coeffs[i], tr.nInv)
	}
}

// Convolve computes the negacyclic convolution of p0 and p1.
func (tr *Transformer) Convolve(p0, p1 Poly) Poly {
	pOut := NewPoly(tr.params.n)
	tr.ConvolveAssign(p0, p1, pOut)
	return pOut
}

// ConvolveAssign computes the negacyclic convolution of p0 and p1,
// and writes it to pOut.
func (tr *Transformer) ConvolveAssign(p0, p1, pOut Poly) {
	tr.ToNTTPolyAssign(p0, tr.buffer.fw0)
	tr.ToNTTPolyAssign(p1, tr.buffer.fw1)
	tr.MulNTTAssign(tr.buffer.fw0, tr.buffer.fw1, tr.buffer.fw0)
	tr.ToPolyAssign(tr.buffer.fw0, pOut)
}
