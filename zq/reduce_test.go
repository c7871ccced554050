package zq_test

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orhosko/tiny-ntt/num"
	"github.com/orhosko/tiny-ntt/zq"
)

var testModuli = []uint64{7681, 12289, 8380417, 2013265921}

var reductionTypes = []zq.ReductionType{
	zq.ReductionSimple,
	zq.ReductionBarrett,
	zq.ReductionMontgomery,
}

func TestNewReducer(t *testing.T) {
	t.Run("SmallModulus", func(t *testing.T) {
		_, err := zq.NewReducer(zq.ReductionSimple, 2)
		assert.Error(t, err)
	})

	t.Run("LargeModulus", func(t *testing.T) {
		_, err := zq.NewReducer(zq.ReductionBarrett, 1<<zq.MaxModulusBits)
		assert.Error(t, err)
	})

	t.Run("EvenModulusMontgomery", func(t *testing.T) {
		_, err := zq.NewReducer(zq.ReductionMontgomery, 1<<20)
		assert.Error(t, err)
	})

	t.Run("EvenModulusBarrett", func(t *testing.T) {
		_, err := zq.NewReducer(zq.ReductionBarrett, 1<<20)
		assert.NoError(t, err)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := zq.NewReducer(zq.ReductionType(17), 7681)
		assert.Error(t, err)
	})
}

func TestConstants(t *testing.T) {
	t.Run("Barrett", func(t *testing.T) {
		k, mu := zq.BarrettConstants(8380417)
		assert.Equal(t, 23, k)
		assert.Equal(t, uint64(8396807), mu)

		k, mu = zq.BarrettConstants(7681)
		assert.Equal(t, 13, k)
		assert.Equal(t, uint64(8736), mu)

		k, mu = zq.BarrettConstants(2013265921)
		assert.Equal(t, 31, k)
		assert.Equal(t, uint64(2290649223), mu)
	})

	t.Run("Montgomery", func(t *testing.T) {
		k, rModQ, qPrime, r2 := zq.MontgomeryConstants(8380417)
		assert.Equal(t, 23, k)
		assert.Equal(t, uint64(8191), rModQ)
		assert.Equal(t, uint64(8380415), qPrime)
		assert.Equal(t, uint64(49145), r2)

		k, rModQ, qPrime, r2 = zq.MontgomeryConstants(7681)
		assert.Equal(t, 13, k)
		assert.Equal(t, uint64(511), rModQ)
		assert.Equal(t, uint64(7679), qPrime)
		assert.Equal(t, uint64(7648), r2)

		k, rModQ, qPrime, r2 = zq.MontgomeryConstants(2013265921)
		assert.Equal(t, 31, k)
		assert.Equal(t, uint64(134217727), rModQ)
		assert.Equal(t, uint64(2013265919), qPrime)
		assert.Equal(t, uint64(796358521), r2)
	})
}

func TestStrategyAgreement(t *testing.T) {
	for _, q := range testModuli {
		reducers := make([]zq.Reducer, 0, len(reductionTypes))
		for _, rt := range reductionTypes {
			r, err := zq.NewReducer(rt, q)
			require.NoError(t, err)
			reducers = append(reducers, r)
		}

		testParams := gopter.DefaultTestParameters()
		testParams.MinSuccessfulTests = 1000

		properties := gopter.NewProperties(testParams)
		for _, r := range reducers {
			r := r
			properties.Property(r.Type().String(), prop.ForAll(
				func(x, y uint64) bool {
					want := num.MulMod(x, y, q)
					if r.Mul(x, y) != want {
						return false
					}
					return r.MulConst(x, r.PrepConst(y)) == want
				},
				gen.UInt64Range(0, q-1),
				gen.UInt64Range(0, q-1),
			))
		}
		properties.TestingRun(t)
	}
}

func TestEdgeOperands(t *testing.T) {
	for _, q := range testModuli {
		for _, rt := range reductionTypes {
			r, err := zq.NewReducer(rt, q)
			require.NoError(t, err)

			edges := []uint64{0, 1, 2, q - 2, q - 1}
			for _, x := range edges {
				for _, y := range edges {
					want := num.MulMod(x, y, q)
					assert.Equal(t, want, r.Mul(x, y))
					assert.Equal(t, want, r.MulConst(x, r.PrepConst(y)))
				}
			}
		}
	}
}

func TestAddSub(t *testing.T) {
	q := uint64(8380417)
	r, err := zq.NewReducer(zq.ReductionBarrett, q)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), r.Add(q-1, 1))
	assert.Equal(t, q-2, r.Add(q-1, q-1))
	assert.Equal(t, q-1, r.Sub(0, 1))
	assert.Equal(t, uint64(0), r.Sub(q-1, q-1))
	assert.Equal(t, uint64(5), r.Add(2, 3))
	assert.Equal(t, uint64(2), r.Sub(5, 3))
}

// faultyReducer corrupts products whenever the left operand hits trigger.
type faultyReducer struct {
	zq.Reducer
	trigger uint64
}

func (r *faultyReducer) MulConst(x, c uint64) uint64 {
	v := r.Reducer.MulConst(x, c)
	if x == r.trigger {
		v = r.Reducer.Add(v, 1)
	}
	return v
}

func (r *faultyReducer) Mul(x, y uint64) uint64 {
	v := r.Reducer.Mul(x, y)
	if x == r.trigger {
		v = r.Reducer.Add(v, 1)
	}
	return v
}

func TestCheckedReducer(t *testing.T) {
	q := uint64(7681)
	primary, err := zq.NewReducer(zq.ReductionMontgomery, q)
	require.NoError(t, err)
	shadow, err := zq.NewReducer(zq.ReductionSimple, q)
	require.NoError(t, err)

	t.Run("ModulusMismatch", func(t *testing.T) {
		other, err := zq.NewReducer(zq.ReductionSimple, 12289)
		require.NoError(t, err)
		_, err = zq.NewCheckedReducer(primary, other)
		assert.Error(t, err)
	})

	t.Run("Clean", func(t *testing.T) {
		checked, err := zq.NewCheckedReducer(primary, shadow)
		require.NoError(t, err)

		w := checked.PrepConst(1925)
		for x := uint64(0); x < 2000; x += 7 {
			assert.Equal(t, num.MulMod(x, 1925, q), checked.MulConst(x, w))
			checked.Mul(x, x+3)
		}
		assert.NoError(t, checked.Err())
	})

	t.Run("FaultDetected", func(t *testing.T) {
		checked, err := zq.NewCheckedReducer(&faultyReducer{Reducer: primary, trigger: 100}, shadow)
		require.NoError(t, err)

		w := checked.PrepConst(77)
		checked.MulConst(99, w)
		assert.NoError(t, checked.Err())

		checked.MulConst(100, w)
		require.Error(t, checked.Err())

		var mismatch *zq.MismatchError
		require.True(t, errors.As(checked.Err(), &mismatch))
		assert.Equal(t, uint64(100), mismatch.X)
		assert.Equal(t, uint64(77), mismatch.Y)
		assert.Equal(t, num.MulMod(100, 77, q), mismatch.Want)

		// only the first mismatch is kept
		first := checked.Err()
		checked.Mul(100, 33)
		assert.Same(t, first, checked.Err())
	})
}
