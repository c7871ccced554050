package ntt

// AddNTT returns pOut = p0 + p1.
func (tr *Transformer) AddNTT(p0, p1 NTTPoly) NTTPoly {
	pOut := NewNTTPoly(tr.params.n)
	tr.AddNTTAssign(p0, p1, pOut)
	return pOut
}

// AddNTTAssign assigns pOut = p0 + p1.
func (tr *Transformer) AddNTTAssign(p0, p1, pOut NTTPoly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Add(p0.Coeffs[i], p1.Coeffs[i])
	}
}

// SubNTT returns pOut = p0 - p1.
func (tr *Transformer) SubNTT(p0, p1 NTTPoly) NTTPoly {
	pOut := NewNTTPoly(tr.params.n)
	tr.SubNTTAssign(p0, p1, pOut)
	return pOut
}

// SubNTTAssign assigns pOut = p0 - p1.
func (tr *Transformer) SubNTTAssign(p0, p1, pOut NTTPoly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Sub(p0.Coeffs[i], p1.Coeffs[i])
	}
}

// NegNTT returns pOut = -p.
func (tr *Transformer) NegNTT(p NTTPoly) NTTPoly {
	pOut := NewNTTPoly(tr.params.n)
	tr.NegNTTAssign(p, pOut)
	return pOut
}

// NegNTTAssign assigns pOut = -p.
func (tr *Transformer) NegNTTAssign(p, pOut NTTPoly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Sub(0, p.Coeffs[i])
	}
}

// ScalarMulNTT returns pOut = p * c.
func (tr *Transformer) ScalarMulNTT(p NTTPoly, c uint64) NTTPoly {
	pOut := NewNTTPoly(tr.params.n)
	tr.ScalarMulNTTAssign(p, c, pOut)
	return pOut
}

// ScalarMulNTTAssign assigns pOut = p * c.
func (tr *Transformer) ScalarMulNTTAssign(p NTTPoly, c uint64, pOut NTTPoly) {
	w := tr.reducer.PrepConst(c)
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.MulConst(p.Coeffs[i], w)
	}
}

// MulNTT returns pOut = p0 * p1.
func (tr *Transformer) MulNTT(p0, p1 NTTPoly) NTTPoly {
	pOut := NewNTTPoly(tr.params.n)
	tr.MulNTTAssign(p0, p1, pOut)
	return pOut
}

// MulNTTAssign assigns pOut = p0 * p1.
func (tr *Transformer) MulNTTAssign(p0, p1, pOut NTTPoly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Mul(p0.Coeffs[i], p1.Coeffs[i])
	}
}

// MulAddNTTAssign assigns pOut += p0 * p1.
func (tr *Transformer) MulAddNTTAssign(p0, p1 NTTPoly, pOut NTTPoly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Add(pOut.Coeffs[i], tr.reducer.Mul(p0.Coeffs[i], p1.Coeffs[i]))
	}
}

// MulSubNTTAssign assigns pOut -= p0 * p1.
func (tr *Transformer) MulSubNTTAssign(p0, p1 NTTPoly, pOut NTTPoly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = tr.reducer.Sub(pOut.Coeffs[i], tr.reducer.Mul(p0.Coeffs[i], p1.Coeffs[i]))
	}
}
