package ntt

// Add returns pOut = p0 + p1.
func (tr *Transformer) Add(p0, p1 Poly) Poly {
	pOut := NewPoly(tr.params.n)
	tr.AddAssign(p0, p1, pOut)
	return pOut
}

// AddAssign assigns pOut = p0 + p1.
func (tr *Transformer) AddAssign(p0, p1, pOut Poly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Add(p0.Coeffs[i], p1.Coeffs[i])
	}
}

// Sub returns pOut = p0 - p1.
func (tr *Transformer) Sub(p0, p1 Poly) Poly {
	pOut := NewPoly(tr.params.n)
	tr.SubAssign(p0, p1, pOut)
	return pOut
}

// SubAssign assigns pOut = p0 - p1.
func (tr *Transformer) SubAssign(p0, p1, pOut Poly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Sub(p0.Coeffs[i], p1.Coeffs[i])
	}
}

// Neg returns pOut = -p.
func (tr *Transformer) Neg(p Poly) Poly {
	pOut := NewPoly(tr.params.n)
	tr.NegAssign(p, pOut)
	return pOut
}

// NegAssign assigns pOut = -p.
func (tr *Transformer) NegAssign(p, pOut Poly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Sub(0, p.Coeffs[i])
	}
}

// ScalarMul returns pOut = p * c.
func (tr *Transformer) ScalarMul(p Poly, c uint64) Poly {
	pOut := NewPoly(tr.params.n)
	tr.ScalarMulAssign(p, c, pOut)
	return pOut
}

// ScalarMulAssign assigns pOut = p * c.
func (tr *Transformer) ScalarMulAssign(p Poly, c uint64, pOut Poly) {
	w := tr.reducer.PrepConst(c)
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.MulConst(p.Coeffs[i], w)
	}
}
