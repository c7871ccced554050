package hwsim

import (
	"github.com/orhosko/tiny-ntt/ntt"
	"github.com/orhosko/tiny-ntt/zq"
)

// twiddleROM models the read-only constant store. The butterfly constant
// of group i in a stage with m groups is addressed as m+i.
type twiddleROM struct {
	fwd   []uint64
	inv   []uint64
	scale uint64
}

// newTwiddleROM builds the ROM contents for params, preparing every
// constant through the given reducer.
func newTwiddleROM(params ntt.Parameters, reducer zq.Reducer) *twiddleROM {
	table := ntt.NewTwiddleTable(params, reducer)
	return &twiddleROM{
		fwd:   table.Fwd,
		inv:   table.Inv,
		scale: table.NInv,
	}
}

// ReadFwd returns the forward butterfly constant at idx.
func (r *twiddleROM) ReadFwd(idx int) uint64 {
	return r.fwd[idx]
}

// ReadInv returns the inverse butterfly constant at idx.
func (r *twiddleROM) ReadInv(idx int) uint64 {
	return r.inv[idx]
}

// ReadScale returns the prepared inverse of N.
func (r *twiddleROM) ReadScale() uint64 {
	return r.scale
}
