// Package ntt implements the negacyclic Number Theoretic Transform over
// Z_Q[X]/(X^N + 1) for power-of-two N and word-sized NTT-friendly primes.
//
// Forward transforms produce bit-reversed output without a reordering pass,
// and inverse transforms consume bit-reversed input, so a forward-pointwise-
// inverse pipeline never permutes data. The two orderings are kept apart by
// the Poly and NTTPoly types.
package ntt

import (
	"fmt"
	"math/big"

	"github.com/orhosko/tiny-ntt/num"
	"github.com/orhosko/tiny-ntt/zq"
)

// MaxLogN is the largest supported log2 of the transform length.
const MaxLogN = 16

// ParametersLiteral is a structure for transform parameters.
type ParametersLiteral struct {
	// LogN is the log2 of the transform length N.
	LogN int
	// Q is the coefficient modulus.
	// It must be an odd prime with Q = 1 (mod 2N), below 2^31.
	Q uint64
	// Psi is a primitive 2Nth root of unity modulo Q.
	// If zero, Compile searches for the smallest one.
	Psi uint64
	// Reduction selects the modular multiplication strategy.
	Reduction zq.ReductionType
}

// Compile transforms ParametersLiteral to read-only Parameters.
// If the parameters are invalid, it returns an error.
func (p ParametersLiteral) Compile() (Parameters, error) {
	if p.LogN < 1 || p.LogN > MaxLogN {
		return Parameters{}, fmt.Errorf("ntt: LogN must be between 1 and %d", MaxLogN)
	}
	n := uint64(1) << p.LogN

	if p.Q < 3 || p.Q >= 1<<zq.MaxModulusBits {
		return Parameters{}, fmt.Errorf("ntt: modulus must be between 3 and 2^%d", zq.MaxModulusBits)
	}
	if !new(big.Int).SetUint64(p.Q).ProbablyPrime(0) {
		return Parameters{}, fmt.Errorf("ntt: modulus %d is not prime", p.Q)
	}
	if (p.Q-1)%(2*n) != 0 {
		return Parameters{}, fmt.Errorf("ntt: no 2Nth root of unity modulo %d", p.Q)
	}

	reducer, err := zq.NewReducer(p.Reduction, p.Q)
	if err != nil {
		return Parameters{}, err
	}

	psi := p.Psi
	if psi == 0 {
		psi = findRoot(n, p.Q)
	}
	if !isPrimitiveRoot(psi, n, p.Q) {
		return Parameters{}, fmt.Errorf("ntt: %d is not a primitive 2Nth root of unity modulo %d", psi, p.Q)
	}

	return Parameters{
		logN: p.LogN,
		n:    int(n),

		q:      p.Q,
		psi:    psi,
		psiInv: num.ModInverse(psi, p.Q),
		nInv:   num.ModInverse(n, p.Q),
		omega:  num.MulMod(psi, psi, p.Q),

		reduction: p.Reduction,
		reducer:   reducer,
	}, nil
}

// MustCompile transforms ParametersLiteral to read-only Parameters.
// If the parameters are invalid, it panics.
func (p ParametersLiteral) MustCompile() Parameters {
	params, err := p.Compile()
	if err != nil {
		panic(err)
	}
	return params
}

// isPrimitiveRoot checks if psi is a primitive 2Nth root of unity modulo q,
// i.e. psi^N = -1 (mod q).
func isPrimitiveRoot(psi, n, q uint64) bool {
	return psi > 1 && psi < q && num.ModExp(psi, n, q) == q-1
}

// findRoot returns the smallest primitive 2Nth root of unity modulo q,
// or zero if none exists.
func findRoot(n, q uint64) uint64 {
	for x := uint64(2); x < q; x++ {
		if isPrimitiveRoot(x, n, q) {
			return x
		}
	}
	return 0
}

// Parameters is a read-only struct for transform parameters.
// It is created from ParametersLiteral using Compile or MustCompile.
type Parameters struct {
	logN int
	n    int

	q      uint64
	psi    uint64
	psiInv uint64
	nInv   uint64
	omega  uint64

	reduction zq.ReductionType
	reducer   zq.Reducer
}

// LogN returns the log2 of the transform length.
func (p Parameters) LogN() int {
	return p.logN
}

// N returns the transform length.
func (p Parameters) N() int {
	return p.n
}

// Q returns the coefficient modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// Psi returns the primitive 2Nth root of unity modulo Q.
func (p Parameters) Psi() uint64 {
	return p.psi
}

// PsiInv returns the inverse of Psi modulo Q.
func (p Parameters) PsiInv() uint64 {
	return p.psiInv
}

// NInv returns the inverse of N modulo Q.
func (p Parameters) NInv() uint64 {
	return p.nInv
}

// Omega returns Psi^2, a primitive Nth root of unity modulo Q.
func (p Parameters) Omega() uint64 {
	return p.omega
}

// Reduction returns the modular multiplication strategy.
func (p Parameters) Reduction() zq.ReductionType {
	return p.reduction
}

// Reducer returns the modular arithmetic backend.
func (p Parameters) Reducer() zq.Reducer {
	return p.reducer
}
