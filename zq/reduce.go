// Package zq implements modular multiplication over word-sized moduli
// with selectable reduction strategies.
package zq

import (
	"fmt"
	"math/bits"

	"github.com/orhosko/tiny-ntt/num"
)

// MaxModulusBits bounds the supported modulus size.
// Products and derived constants must fit in 64 bits.
const MaxModulusBits = 31

// ReductionType selects a modular reduction strategy.
type ReductionType int

const (
	// ReductionSimple divides the full product directly.
	ReductionSimple ReductionType = iota
	// ReductionBarrett uses a precomputed scaled reciprocal.
	ReductionBarrett
	// ReductionMontgomery uses REDC with constants kept in the Montgomery domain.
	ReductionMontgomery
)

// String returns the name of the reduction type.
func (t ReductionType) String() string {
	switch t {
	case ReductionSimple:
		return "simple"
	case ReductionBarrett:
		return "barrett"
	case ReductionMontgomery:
		return "montgomery"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseReductionType parses the name of a reduction type, as returned
// by String.
func ParseReductionType(s string) (ReductionType, error) {
	switch s {
	case "simple":
		return ReductionSimple, nil
	case "barrett":
		return ReductionBarrett, nil
	case "montgomery":
		return ReductionMontgomery, nil
	}
	return 0, fmt.Errorf("zq: unknown reduction type %q", s)
}

// Reducer performs arithmetic modulo a fixed modulus with one strategy.
// Inputs to Add, Sub, MulConst and Mul must already be reduced.
type Reducer interface {
	// Type returns the strategy of this reducer.
	Type() ReductionType
	// Modulus returns the modulus.
	Modulus() uint64
	// Add returns x + y mod Q.
	Add(x, y uint64) uint64
	// Sub returns x - y mod Q.
	Sub(x, y uint64) uint64
	// PrepConst lifts a multiplicand constant into the operand domain of MulConst.
	PrepConst(c uint64) uint64
	// MulConst returns x * c mod Q, where c was lifted by PrepConst.
	MulConst(x, c uint64) uint64
	// Mul returns x * y mod Q for two plain operands.
	Mul(x, y uint64) uint64
}

// NewReducer creates a Reducer for the given strategy and modulus.
func NewReducer(t ReductionType, q uint64) (Reducer, error) {
	if q < 3 {
		return nil, fmt.Errorf("zq: modulus must be at least 3")
	}
	if q >= 1<<MaxModulusBits {
		return nil, fmt.Errorf("zq: modulus must fit %d bits", MaxModulusBits)
	}

	switch t {
	case ReductionSimple:
		return &simpleReducer{modArith{q}}, nil
	case ReductionBarrett:
		k, mu := BarrettConstants(q)
		return &barrettReducer{modArith: modArith{q}, k: uint(k), mu: mu}, nil
	case ReductionMontgomery:
		if q&1 == 0 {
			return nil, fmt.Errorf("zq: montgomery reduction requires an odd modulus")
		}
		k, _, qPrime, r2 := MontgomeryConstants(q)
		return &montgomeryReducer{
			modArith: modArith{q},
			k:        uint(k),
			mask:     (uint64(1) << k) - 1,
			qPrime:   qPrime,
			r2:       r2,
		}, nil
	}
	return nil, fmt.Errorf("zq: unknown reduction type %d", int(t))
}

// BarrettConstants returns the shift amount k = bitlen(q) and the scaled
// reciprocal mu = floor(2^(2k) / q).
func BarrettConstants(q uint64) (k int, mu uint64) {
	k = bits.Len64(q)
	mu = (uint64(1) << (2 * k)) / q
	return k, mu
}

// MontgomeryConstants returns the radix exponent k with R = 2^k > q,
// along with R mod q, -q^-1 mod R and R^2 mod q.
// The modulus must be odd.
func MontgomeryConstants(q uint64) (k int, rModQ, qPrime, r2 uint64) {
	k = bits.Len64(q)
	r := uint64(1) << k
	if r <= q {
		k++
		r <<= 1
	}
	rModQ = r % q
	qPrime = r - num.ModInverse(q, r)
	r2 = num.MulMod(rModQ, rModQ, q)
	return k, rModQ, qPrime, r2
}

// modArith carries the strategy-independent add and sub datapath.
type modArith struct {
	q uint64
}

func (m modArith) Modulus() uint64 {
	return m.q
}

func (m modArith) Add(x, y uint64) uint64 {
	z := x + y
	if z >= m.q {
		z -= m.q
	}
	return z
}

func (m modArith) Sub(x, y uint64) uint64 {
	z := x + m.q - y
	if z >= m.q {
		z -= m.q
	}
	return z
}

type simpleReducer struct {
	modArith
}

func (r *simpleReducer) Type() ReductionType {
	return ReductionSimple
}

func (r *simpleReducer) PrepConst(c uint64) uint64 {
	return c
}

func (r *simpleReducer) MulConst(x, c uint64) uint64 {
	return (x * c) % r.q
}

func (r *simpleReducer) Mul(x, y uint64) uint64 {
	return (x * y) % r.q
}

type barrettReducer struct {
	modArith
	k  uint
	mu uint64
}

func (r *barrettReducer) Type() ReductionType {
	return ReductionBarrett
}

func (r *barrettReducer) PrepConst(c uint64) uint64 {
	return c
}

func (r *barrettReducer) MulConst(x, c uint64) uint64 {
	return r.reduce(x * c)
}

func (r *barrettReducer) Mul(x, y uint64) uint64 {
	return r.reduce(x * y)
}

// reduce maps a product in [0, q^2) to [0, q).
// The quotient estimate is off by at most two.
func (r *barrettReducer) reduce(p uint64) uint64 {
	q1 := p >> (r.k - 1)
	q2 := (q1 * r.mu) >> (r.k + 1)
	z := p - q2*r.q
	if z >= r.q {
		z -= r.q
	}
	if z >= r.q {
		z -= r.q
	}
	return z
}

type montgomeryReducer struct {
	modArith
	k      uint
	mask   uint64
	qPrime uint64
	r2     uint64
}

func (r *montgomeryReducer) Type() ReductionType {
	return ReductionMontgomery
}

func (r *montgomeryReducer) PrepConst(c uint64) uint64 {
	return r.redc(c * r.r2)
}

func (r *montgomeryReducer) MulConst(x, c uint64) uint64 {
	return r.redc(x * c)
}

func (r *montgomeryReducer) Mul(x, y uint64) uint64 {
	return r.redc(x * r.PrepConst(y))
}

// redc divides by R = 2^k after cancelling the low k bits.
// Inputs below q*R reduce to [0, q).
func (r *montgomeryReducer) redc(t uint64) uint64 {
	m := ((t & r.mask) * r.qPrime) & r.mask
	z := (t + m*r.q) >> r.k
	if z >= r.q {
		z -= r.q
	}
	return z
}
