package hwsim

import "github.com/orhosko/tiny-ntt/zq"

// butterfly models one butterfly lane. Inputs are read at the start of a
// cycle and results are committed at the end of it.
type butterfly struct {
	reducer zq.Reducer
}

// CT computes the decimation-in-time butterfly (u + w*v, u - w*v).
func (b butterfly) CT(u, v, w uint64) (uint64, uint64) {
	t := b.reducer.MulConst(v, w)
	return b.reducer.Add(u, t), b.reducer.Sub(u, t)
}

// GS computes the decimation-in-frequency butterfly (u + v, (u - v)*w).
func (b butterfly) GS(u, v, w uint64) (uint64, uint64) {
	return b.reducer.Add(u, v), b.reducer.MulConst(b.reducer.Sub(u, v), w)
}
