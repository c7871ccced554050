package ntt

import (
	"github.com/orhosko/tiny-ntt/num"
	"github.com/orhosko/tiny-ntt/zq"
)

// TwiddleTable holds the prepared butterfly constants of one parameter set.
// Both tables are in bit-reversed order, so that the constant of butterfly
// group i of a stage with m groups sits at index m+i.
type TwiddleTable struct {
	// Fwd holds the prepared powers of Psi.
	Fwd []uint64
	// Inv holds the prepared powers of PsiInv.
	Inv []uint64
	// NInv is the prepared inverse of N.
	NInv uint64
}

// NewTwiddleTable generates the prepared twiddle factors of params
// through the given reducer.
func NewTwiddleTable(params Parameters, reducer zq.Reducer) TwiddleTable {
	fwd := make([]uint64, params.N())
	inv := make([]uint64, params.N())
	for i, w := 0, uint64(1); i < params.N(); i++ {
		fwd[i] = reducer.PrepConst(w)
		w = num.MulMod(w, params.Psi(), params.Q())
	}
	for i, w := 0, uint64(1); i < params.N(); i++ {
		inv[i] = reducer.PrepConst(w)
		w = num.MulMod(w, params.PsiInv(), params.Q())
	}
	num.BitReverseInPlace(fwd)
	num.BitReverseInPlace(inv)

	return TwiddleTable{
		Fwd:  fwd,
		Inv:  inv,
		NInv: reducer.PrepConst(params.NInv()),
	}
}
