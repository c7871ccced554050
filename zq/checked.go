package zq

import (
	"fmt"
)

// MismatchError reports a disagreement between two reduction strategies
// on the same product.
type MismatchError struct {
	Primary ReductionType
	Shadow  ReductionType
	X, Y    uint64
	Got     uint64
	Want    uint64
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("zq: %v and %v disagree on %d * %d: got %d, want %d",
		e.Primary, e.Shadow, e.X, e.Y, e.Got, e.Want)
}

// CheckedReducer runs a shadow strategy alongside a primary one and
// records the first disagreement. The primary result is always returned,
// so a faulty primary keeps running the way faulty hardware would.
type CheckedReducer struct {
	primary Reducer
	shadow  Reducer

	// plain maps lifted constants back to their plain values, so that
	// the shadow can recompute MulConst products from scratch.
	plain map[uint64]uint64

	err error
}

// NewCheckedReducer wraps primary so that every product is recomputed
// with shadow and compared. The two reducers must share a modulus.
func NewCheckedReducer(primary, shadow Reducer) (*CheckedReducer, error) {
	if primary.Modulus() != shadow.Modulus() {
		return nil, fmt.Errorf("zq: checked reducer moduli differ: %d != %d", primary.Modulus(), shadow.Modulus())
	}
	return &CheckedReducer{
		primary: primary,
		shadow:  shadow,
		plain:   make(map[uint64]uint64),
	}, nil
}

// Err returns the first recorded mismatch, if any.
func (r *CheckedReducer) Err() error {
	return r.err
}

// Type returns the strategy of the primary reducer.
func (r *CheckedReducer) Type() ReductionType {
	return r.primary.Type()
}

// Modulus returns the modulus.
func (r *CheckedReducer) Modulus() uint64 {
	return r.primary.Modulus()
}

// Add returns x + y mod Q.
func (r *CheckedReducer) Add(x, y uint64) uint64 {
	return r.primary.Add(x, y)
}

// Sub returns x - y mod Q.
func (r *CheckedReducer) Sub(x, y uint64) uint64 {
	return r.primary.Sub(x, y)
}

// PrepConst lifts a constant with the primary strategy and registers it
// for shadow recomputation.
func (r *CheckedReducer) PrepConst(c uint64) uint64 {
	lifted := r.primary.PrepConst(c)
	r.plain[lifted] = c
	return lifted
}

// MulConst returns x * c mod Q with the primary strategy, comparing
// against the shadow when c is a registered constant.
func (r *CheckedReducer) MulConst(x, c uint64) uint64 {
	got := r.primary.MulConst(x, c)
	if plain, ok := r.plain[c]; ok {
		want := r.shadow.Mul(x, plain)
		r.record(x, plain, got, want)
	}
	return got
}

// Mul returns x * y mod Q with the primary strategy, comparing against
// the shadow.
func (r *CheckedReducer) Mul(x, y uint64) uint64 {
	got := r.primary.Mul(x, y)
	want := r.shadow.Mul(x, y)
	r.record(x, y, got, want)
	return got
}

func (r *CheckedReducer) record(x, y, got, want uint64) {
	if got != want && r.err == nil {
		r.err = &MismatchError{
			Primary: r.primary.Type(),
			Shadow:  r.shadow.Type(),
			X:       x,
			Y:       y,
			Got:     got,
			Want:    want,
		}
	}
}
