package ntt

import "slices"

// Poly is a polynomial over Z_Q[X]/(X^N + 1) with coefficients
// in normal order.
type Poly struct {
	Coeffs []uint64
}

// NewPoly creates a new Poly.
func NewPoly(N int) Poly {
	return Poly{
		Coeffs: make([]uint64, N),
	}
}

// Degree returns the degree of the polynomial.
func (p Poly) Degree() int {
	return len(p.Coeffs)
}

// Clear clears the polynomial.
func (p Poly) Clear() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// CopyFrom copies p0 to p.
func (p Poly) CopyFrom(p0 Poly) {
	copy(p.Coeffs, p0.Coeffs)
}

// Equals checks if p equals p0.
func (p Poly) Equals(p0 Poly) bool {
	return slices.Equal(p.Coeffs, p0.Coeffs)
}

// NTTPoly is a polynomial in the transform domain with coefficients
// in bit-reversed order.
type NTTPoly struct {
	Coeffs []uint64
}

// NewNTTPoly creates a new NTTPoly.
func NewNTTPoly(N int) NTTPoly {
	return NTTPoly{
		Coeffs: make([]uint64, N),
	}
}

// Degree returns the degree of the polynomial.
func (p NTTPoly) Degree() int {
	return len(p.Coeffs)
}

// Clear clears the polynomial.
func (p NTTPoly) Clear() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// CopyFrom copies p0 to p.
func (p NTTPoly) CopyFrom(p0 NTTPoly) {
	copy(p.Coeffs, p0.Coeffs)
}

// Equals checks if p equals p0.
func (p NTTPoly) Equals(p0 NTTPoly) bool {
	return slices.Equal(p.Coeffs, p0.Coeffs)
}
