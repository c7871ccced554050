package ntt

import (
	"github.com/orhosko/tiny-ntt/csprng"
)

// UniformSampler samples polynomials with uniform coefficients.
type UniformSampler struct {
	Parameters Parameters

	*csprng.UniformSampler
}

// NewUniformSampler creates a new UniformSampler.
func NewUniformSampler(params Parameters) *UniformSampler {
	return &UniformSampler{
		Parameters:     params,
		UniformSampler: csprng.NewUniformSampler(),
	}
}

// NewUniformSamplerWithSeed creates a new UniformSampler with seed.
func NewUniformSamplerWithSeed(params Parameters, seed []byte) *UniformSampler {
	return &UniformSampler{
		Parameters:     params,
		UniformSampler: csprng.NewUniformSamplerWithSeed(seed),
	}
}

// SamplePoly samples a polynomial with coefficients uniform in [0, Q).
func (s *UniformSampler) SamplePoly() Poly {
	pOut := NewPoly(s.Parameters.N())
	s.SamplePolyAssign(pOut)
	return pOut
}

// SamplePolyAssign samples a polynomial with coefficients uniform in [0, Q)
// and assigns it to pOut.
func (s *UniformSampler) SamplePolyAssign(pOut Poly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = s.SampleN(s.Parameters.Q())
	}
}

// SampleNTTPoly samples a transform-domain polynomial with coefficients
// uniform in [0, Q).
func (s *UniformSampler) SampleNTTPoly() NTTPoly {
	pOut := NewNTTPoly(s.Parameters.N())
	s.SampleNTTPolyAssign(pOut)
	return pOut
}

// SampleNTTPolyAssign samples a transform-domain polynomial with coefficients
// uniform in [0, Q) and assigns it to pOut.
func (s *UniformSampler) SampleNTTPolyAssign(pOut NTTPoly) {
	for i := range pOut.Coeffs {
		pOut.Coeffs[i] = s.SampleN(s.Parameters.Q())
	}
}

// GaussianSampler samples polynomials with discrete gaussian coefficients.
type GaussianSampler struct {
	Parameters Parameters

	*csprng.GaussianSampler
}

// NewGaussianSampler creates a new GaussianSampler.
func NewGaussianSampler(params Parameters, stdDev float64) *GaussianSampler {
	return &GaussianSampler{
		Parameters:      params,
		GaussianSampler: csprng.NewGaussianSampler(stdDev),
	}
}

// SamplePoly samples a polynomial from the Discrete Gaussian Distribution.
func (s *GaussianSampler) SamplePoly() Poly {
	pOut := NewPoly(s.Parameters.N())
	s.SamplePolyAssign(pOut)
	return pOut
}

// SamplePolyAssign samples a polynomial from the Discrete Gaussian Distribution
// and assigns it to pOut. Negative samples c are mapped to Q + c.
func (s *GaussianSampler) SamplePolyAssign(pOut Poly) {
	for i := range pOut.Coeffs {
		c := s.Sample()
		if c >= 0 {
			pOut.Coeffs[i] = uint64(c)
		} else {
			pOut.Coeffs[i] = uint64(c + int64(s.Parameters.Q()))
		}
	}
}
