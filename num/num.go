// Package num implements various utility functions regarding numeric types.
package num

import (
	"math/bits"
)

// MulMod returns x * y mod q, using a full 128-bit intermediate product.
func MulMod(x, y, q uint64) uint64 {
	x %= q
	y %= q
	hi, lo := bits.Mul64(x, y)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// ModExp returns x^y mod q.
func ModExp(x, y, q uint64) uint64 {
	r := uint64(1)
	x %= q
	for y > 0 {
		if y&1 == 1 {
			r = MulMod(r, x, q)
		}
		x = MulMod(x, x, q)
		y >>= 1
	}
	return r
}

// ModInverse returns the modular inverse of x modulo m.
// Output is always positive.
// Panics if x and m are not coprime, or if m does not fit in int64.
func ModInverse(x, m uint64) uint64 {
	if m > 1<<62 {
		panic("modulus too large")
	}
	x %= m

	a, b := int64(x), int64(m)
	u, v := int64(1), int64(0)
	for b != 0 {
		q := a / b
		a, b = b, a-q*b
		u, v = v, u-q*v
	}

	if a != 1 {
		panic("modular inverse does not exist")
	}

	u %= int64(m)
	if u < 0 {
		u += int64(m)
	}
	return uint64(u)
}

// BitReverse returns x with its low bitLen bits reversed.
func BitReverse(x uint64, bitLen int) uint64 {
	return bits.Reverse64(x) >> (64 - bitLen)
}

// BitReverseInPlace reorders v into bit-reversal order in-place.
func BitReverseInPlace[T any](v []T) {
	var bit, j int
	for i := 1; i < len(v); i++ {
		bit = len(v) >> 1
		for j >= bit {
			j -= bit
			bit >>= 1
		}
		j += bit
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
}
