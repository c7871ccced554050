package ntt_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/orhosko/tiny-ntt/ntt"
	"github.com/orhosko/tiny-ntt/num"
	"github.com/orhosko/tiny-ntt/zq"
)

var paramsList = []ntt.ParametersLiteral{
	ntt.ParamsDilithium,
	ntt.ParamsToy,
	ntt.ParamsN512Q12289,
	ntt.ParamsBabyBear,
}

// convolveNaive computes the negacyclic convolution directly from the definition.
func convolveNaive(p0, p1 ntt.Poly, q uint64) ntt.Poly {
	n := p0.Degree()
	pOut := ntt.NewPoly(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := num.MulMod(p0.Coeffs[i], p1.Coeffs[j], q)
			if i+j < n {
				pOut.Coeffs[(i+j)%n] = (pOut.Coeffs[(i+j)%n] + c) % q
			} else {
				pOut.Coeffs[(i+j)%n] = (pOut.Coeffs[(i+j)%n] + q - c) % q
			}
		}
	}
	return pOut
}

func TestNTT(t *testing.T) {
	for _, pl := range paramsList {
		params := pl.MustCompile()
		tr := ntt.NewTransformer(params)
		us := ntt.NewUniformSampler(params)

		t.Run(fmt.Sprintf("RoundTrip/N%dQ%d", params.N(), params.Q()), func(t *testing.T) {
			p := us.SamplePoly()
			pOut := tr.ToPoly(tr.ToNTTPoly(p))
			assert.Equal(t, p, pOut)
		})

		t.Run(fmt.Sprintf("Impulse/N%dQ%d", params.N(), params.Q()), func(t *testing.T) {
			p := ntt.NewPoly(params.N())
			p.Coeffs[0] = 1

			ones := ntt.NewNTTPoly(params.N())
			for i := range ones.Coeffs {
				ones.Coeffs[i] = 1
			}

			assert.Equal(t, ones, tr.ToNTTPoly(p))
			assert.Equal(t, p, tr.ToPoly(ones))
		})

		t.Run(fmt.Sprintf("ZeroAndIdentity/N%dQ%d", params.N(), params.Q()), func(t *testing.T) {
			zero := ntt.NewPoly(params.N())
			assert.Equal(t, ntt.NewNTTPoly(params.N()), tr.ToNTTPoly(zero))

			// Multiplying by the transformed identity polynomial changes nothing.
			identity := ntt.NewPoly(params.N())
			identity.Coeffs[0] = 1

			fw := tr.ToNTTPoly(us.SamplePoly())
			assert.Equal(t, fw, tr.MulNTT(fw, tr.ToNTTPoly(identity)))
		})

		t.Run(fmt.Sprintf("Linearity/N%dQ%d", params.N(), params.Q()), func(t *testing.T) {
			p0 := us.SamplePoly()
			p1 := us.SamplePoly()

			fwSum := tr.AddNTT(tr.ToNTTPoly(p0), tr.ToNTTPoly(p1))
			sumFw := tr.ToNTTPoly(tr.Add(p0, p1))
			assert.Equal(t, sumFw, fwSum)
		})

		t.Run(fmt.Sprintf("Convolve/N%dQ%d", params.N(), params.Q()), func(t *testing.T) {
			p0 := us.SamplePoly()
			p1 := us.SamplePoly()

			pOut := tr.Convolve(p0, p1)
			assert.Equal(t, convolveNaive(p0, p1, params.Q()), pOut)
		})

		t.Run(fmt.Sprintf("MonomialWrap/N%dQ%d", params.N(), params.Q()), func(t *testing.T) {
			i, j := params.N()/2, params.N()/2+3
			p0 := ntt.NewPoly(params.N())
			p0.Coeffs[i] = 1
			p1 := ntt.NewPoly(params.N())
			p1.Coeffs[j] = 1

			pOut := tr.Convolve(p0, p1)

			want := ntt.NewPoly(params.N())
			want.Coeffs[(i+j)%params.N()] = params.Q() - 1
			assert.Equal(t, want, pOut)
		})
	}
}

func TestNTTKnownAnswer(t *testing.T) {
	t.Run("ForwardN4", func(t *testing.T) {
		params := ntt.ParamsToy.MustCompile()
		tr := ntt.NewTransformer(params)

		fw := tr.ToNTTPoly(ntt.Poly{Coeffs: []uint64{1, 2, 3, 4}})
		assert.Equal(t, []uint64{1467, 3471, 2807, 7621}, fw.Coeffs)
	})

	t.Run("ConvolveN4", func(t *testing.T) {
		params := ntt.ParamsToy.MustCompile()
		tr := ntt.NewTransformer(params)

		p0 := ntt.Poly{Coeffs: []uint64{1, 2, 3, 4}}
		p1 := ntt.Poly{Coeffs: []uint64{5, 6, 7, 8}}
		assert.Equal(t, []uint64{7625, 7645, 2, 60}, tr.Convolve(p0, p1).Coeffs)
	})

	t.Run("ConvolveSparse", func(t *testing.T) {
		params := ntt.ParamsDilithium.MustCompile()
		tr := ntt.NewTransformer(params)

		p0 := ntt.NewPoly(params.N())
		p0.Coeffs[0], p0.Coeffs[1], p0.Coeffs[2] = 1, 5, 1
		p1 := ntt.NewPoly(params.N())
		p1.Coeffs[0], p1.Coeffs[1] = 5, 1

		want := ntt.NewPoly(params.N())
		want.Coeffs[0], want.Coeffs[1], want.Coeffs[2], want.Coeffs[3] = 5, 26, 10, 1
		assert.Equal(t, want, tr.Convolve(p0, p1))
	})
}

func TestNTTReductionAgreement(t *testing.T) {
	seed := []byte("reduction-agreement")
	reductions := []zq.ReductionType{zq.ReductionSimple, zq.ReductionBarrett, zq.ReductionMontgomery}

	for _, pl := range []ntt.ParametersLiteral{ntt.ParamsDilithium, ntt.ParamsBabyBear} {
		var fws []ntt.NTTPoly
		for _, red := range reductions {
			plRed := pl
			plRed.Reduction = red
			params := plRed.MustCompile()
			tr := ntt.NewTransformer(params)
			us := ntt.NewUniformSamplerWithSeed(params, seed)

			fws = append(fws, tr.ToNTTPoly(us.SamplePoly()))
		}

		t.Run(fmt.Sprintf("Q%d", pl.Q), func(t *testing.T) {
			assert.Equal(t, fws[0], fws[1])
			assert.Equal(t, fws[0], fws[2])
		})
	}
}

func TestPolyOps(t *testing.T) {
	params := ntt.ParamsDilithium.MustCompile()
	tr := ntt.NewTransformer(params)
	us := ntt.NewUniformSampler(params)

	q := params.Q()
	p0 := us.SamplePoly()
	p1 := us.SamplePoly()

	t.Run("Add", func(t *testing.T) {
		pOut := tr.Add(p0, p1)
		for i := range pOut.Coeffs {
			assert.Equal(t, (p0.Coeffs[i]+p1.Coeffs[i])%q, pOut.Coeffs[i])
		}
	})

	t.Run("Sub", func(t *testing.T) {
		pOut := tr.Sub(p0, p1)
		for i := range pOut.Coeffs {
			assert.Equal(t, (p0.Coeffs[i]+q-p1.Coeffs[i])%q, pOut.Coeffs[i])
		}
	})

	t.Run("Neg", func(t *testing.T) {
		pOut := tr.Neg(p0)
		for i := range pOut.Coeffs {
			assert.Equal(t, (q-p0.Coeffs[i])%q, pOut.Coeffs[i])
		}
	})

	t.Run("ScalarMul", func(t *testing.T) {
		c := uint64(12345)
		pOut := tr.ScalarMul(p0, c)
		for i := range pOut.Coeffs {
			assert.Equal(t, num.MulMod(p0.Coeffs[i], c, q), pOut.Coeffs[i])
		}
	})

	t.Run("MulNTT", func(t *testing.T) {
		fw0 := tr.ToNTTPoly(p0)
		fw1 := tr.ToNTTPoly(p1)
		pOut := tr.MulNTT(fw0, fw1)
		for i := range pOut.Coeffs {
			assert.Equal(t, num.MulMod(fw0.Coeffs[i], fw1.Coeffs[i], q), pOut.Coeffs[i])
		}
	})

	t.Run("MulAddNTT", func(t *testing.T) {
		fw0 := tr.ToNTTPoly(p0)
		fw1 := tr.ToNTTPoly(p1)

		pOut := tr.ScalarMulNTT(fw0, 7)
		tr.MulAddNTTAssign(fw0, fw1, pOut)
		for i := range pOut.Coeffs {
			want := num.MulMod(fw0.Coeffs[i], 7, q) + num.MulMod(fw0.Coeffs[i], fw1.Coeffs[i], q)
			assert.Equal(t, want%q, pOut.Coeffs[i])
		}
	})

	t.Run("MulSubNTT", func(t *testing.T) {
		fw0 := tr.ToNTTPoly(p0)
		fw1 := tr.ToNTTPoly(p1)

		pOut := tr.ScalarMulNTT(fw0, 7)
		tr.MulSubNTTAssign(fw0, fw1, pOut)
		for i := range pOut.Coeffs {
			want := num.MulMod(fw0.Coeffs[i], 7, q) + q - num.MulMod(fw0.Coeffs[i], fw1.Coeffs[i], q)
			assert.Equal(t, want%q, pOut.Coeffs[i])
		}
	})
}

func TestPolyEquals(t *testing.T) {
	params := ntt.ParamsToy.MustCompile()
	tr := ntt.NewTransformer(params)

	p := ntt.Poly{Coeffs: []uint64{1, 2, 3, 4}}
	assert.True(t, p.Equals(tr.ToPoly(tr.ToNTTPoly(p))))
	assert.False(t, p.Equals(tr.Add(p, p)))

	fw := tr.ToNTTPoly(p)
	assert.True(t, fw.Equals(tr.ToNTTPoly(p)))
	assert.False(t, fw.Equals(tr.AddNTT(fw, fw)))
}

func TestConvolveBatch(t *testing.T) {
	params := ntt.ParamsDilithium.MustCompile()
	tr := ntt.NewTransformer(params)
	us := ntt.NewUniformSampler(params)

	batchSize := 17
	p0s := make([]ntt.Poly, batchSize)
	p1s := make([]ntt.Poly, batchSize)
	for i := range p0s {
		p0s[i] = us.SamplePoly()
		p1s[i] = us.SamplePoly()
	}

	pOuts := tr.ConvolveBatch(p0s, p1s)
	for i := range pOuts {
		assert.Equal(t, tr.Convolve(p0s[i], p1s[i]), pOuts[i])
	}
}

func TestNTTProperties(t *testing.T) {
	params := ntt.ParamsDilithium.MustCompile()
	tr := ntt.NewTransformer(params)

	genPoly := gen.SliceOfN(params.N(), gen.UInt64Range(0, params.Q()-1))

	properties := gopter.NewProperties(nil)

	properties.Property("round trip is the identity", prop.ForAll(
		func(coeffs []uint64) bool {
			p := ntt.Poly{Coeffs: coeffs}
			pOut := tr.ToPoly(tr.ToNTTPoly(p))
			for i := range coeffs {
				if pOut.Coeffs[i] != coeffs[i] {
					return false
				}
			}
			return true
		},
		genPoly,
	))

	properties.Property("convolution commutes", prop.ForAll(
		func(coeffs0, coeffs1 []uint64) bool {
			p0 := ntt.Poly{Coeffs: coeffs0}
			p1 := ntt.Poly{Coeffs: coeffs1}
			pOut0 := tr.Convolve(p0, p1)
			pOut1 := tr.Convolve(p1, p0)
			for i := range pOut0.Coeffs {
				if pOut0.Coeffs[i] != pOut1.Coeffs[i] {
					return false
				}
			}
			return true
		},
		genPoly, genPoly,
	))

	properties.Property("transform commutes with scalar multiplication", prop.ForAll(
		func(coeffs []uint64, c uint64) bool {
			p := ntt.Poly{Coeffs: coeffs}
			fw0 := tr.ToNTTPoly(tr.ScalarMul(p, c))
			fw1 := tr.ScalarMulNTT(tr.ToNTTPoly(p), c)
			for i := range fw0.Coeffs {
				if fw0.Coeffs[i] != fw1.Coeffs[i] {
					return false
				}
			}
			return true
		},
		genPoly, gen.UInt64Range(0, params.Q()-1),
	))

	properties.TestingRun(t)
}
