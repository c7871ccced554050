package csprng

import (
	"math"
	"slices"
)

// tailCut bounds samples to [-tailCut*stdDev, tailCut*stdDev].
const tailCut = 9

// GaussianSampler samples from Discrete Gaussian Distribution
// with zero center and fixed stdDev, using a Cumulative Distribution Table.
type GaussianSampler struct {
	baseSampler *UniformSampler

	stdDev float64
	table  []uint64

	tailLo int64
	tailHi int64
}

// NewGaussianSampler creates a new GaussianSampler.
//
// Panics when read from crypto/rand or blake2b initialization fails.
func NewGaussianSampler(stdDev float64) *GaussianSampler {
	tailHi := int64(math.Ceil(tailCut * stdDev))
	tailLo := -tailHi

	return &GaussianSampler{
		baseSampler: NewUniformSampler(),

		stdDev: stdDev,
		table:  computeCDT(stdDev),

		tailLo: tailLo,
		tailHi: tailHi,
	}
}

// computeCDT computes the Cumulative Distribution Table for a given sigma.
func computeCDT(sigma float64) []uint64 {
	tailHi := int64(math.Ceil(tailCut * sigma))
	tailLo := -tailHi
	tableSize := int(tailHi - tailLo + 1)

	table := make([]uint64, tableSize)
	cdf := 0.0
	norm := math.Sqrt(2*math.Pi) * sigma
	for i, x := 0, tailLo; x <= tailHi; i, x = i+1, x+1 {
		xf := float64(x)
		rho := math.Exp(-xf*xf/(2*sigma*sigma)) / norm
		cdf += rho
		if cdf >= 1 {
			table[i] = math.MaxUint64
		} else {
			table[i] = uint64(math.Round(cdf * math.Exp2(64)))
		}
	}

	// The last entry must cover the whole range of the base sampler.
	table[tableSize-1] = math.MaxUint64

	return table
}

// ShallowCopy creates a copy of Sampler that is thread-safe.
func (s *GaussianSampler) ShallowCopy() *GaussianSampler {
	return &GaussianSampler{
		baseSampler: NewUniformSampler(),

		stdDev: s.stdDev,
		table:  s.table,

		tailLo: s.tailLo,
		tailHi: s.tailHi,
	}
}

// StdDev returns the standard deviation of the sampler.
func (s *GaussianSampler) StdDev() float64 {
	return s.stdDev
}

// Sample samples from Discrete Gaussian Distribution.
func (s *GaussianSampler) Sample() int64 {
	u := s.baseSampler.Sample()

	v, ok := slices.BinarySearch(s.table, u)
	if ok {
		v -= 1
	}

	return int64(v) + s.tailLo
}
