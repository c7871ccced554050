package ntt

import "github.com/orhosko/tiny-ntt/zq"

var (
	// ParamsDilithium is a parameter set over the ML-DSA modulus,
	// with N = 256 and Q = 2^23 - 2^13 + 1.
	ParamsDilithium = ParametersLiteral{
		LogN:      8,
		Q:         8380417,
		Psi:       1239911,
		Reduction: zq.ReductionBarrett,
	}

	// ParamsToy is a hand-checkable parameter set with N = 4,
	// small enough to verify transforms on paper.
	ParamsToy = ParametersLiteral{
		LogN:      2,
		Q:         7681,
		Psi:       1925,
		Reduction: zq.ReductionSimple,
	}

	// ParamsN512Q12289 is a parameter set over the Falcon modulus,
	// with the root of unity discovered at compile time.
	ParamsN512Q12289 = ParametersLiteral{
		LogN:      9,
		Q:         12289,
		Reduction: zq.ReductionBarrett,
	}

	// ParamsBabyBear is a parameter set over the 31-bit BabyBear prime
	// 2^31 - 2^27 + 1 used by small-field proof systems.
	ParamsBabyBear = ParametersLiteral{
		LogN:      8,
		Q:         2013265921,
		Psi:       16303300,
		Reduction: zq.ReductionMontgomery,
	}
)
