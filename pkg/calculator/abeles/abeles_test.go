package abeles

import (
	"context"
	"math"
	"testing"

	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestLegendre(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		x, w := legendre(n)
		var sum, sq float64
		for i := range x {
			sum += w[i]
			sq += w[i] * x[i] * x[i]
		}
		require.InDelta(t, 2, sum, 1e-12, "n=%d", n)
		if n > 1 {
			require.InDelta(t, 2.0/3, sq, 1e-12, "n=%d", n)
		}
	}
}

func TestReflectivity_Rejects(t *testing.T) {
	e := New()
	ctx := context.Background()

	_, err := e.Reflectivity(ctx, []sample.Slab{{}}, []float64{0.01})
	require.ErrorIs(t, err, serrors.ErrCalculation)

	_, err = e.Reflectivity(ctx, []sample.Slab{{}, {Thickness: -1, SLD: 1}, {SLD: 2}}, []float64{0.01})
	require.ErrorIs(t, err, serrors.ErrCalculation)

	_, err = e.Reflectivity(ctx, []sample.Slab{{}, {SLD: math.NaN()}}, []float64{0.01})
	require.ErrorIs(t, err, serrors.ErrCalculation)
}

func TestSmearedReflectivity_ZeroWidth(t *testing.T) {
	e := New()
	ctx := context.Background()
	slabs := []sample.Slab{{}, {Thickness: 50, SLD: 3.5, Roughness: 2}, {SLD: 2.07, Roughness: 2}}
	q := []float64{0.04, 0.01, 0.02}

	plain, err := e.Reflectivity(ctx, slabs, q)
	require.NoError(t, err)
	smeared, err := e.SmearedReflectivity(ctx, slabs, q, make([]float64, len(q)))
	require.NoError(t, err)
	require.Equal(t, plain, smeared)

	_, err = e.SmearedReflectivity(ctx, slabs, q, []float64{0})
	require.ErrorIs(t, err, serrors.ErrCalculation)
}

func TestReflectivity_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Reflectivity(ctx, []sample.Slab{{}, {SLD: 2.07}}, []float64{0.01})
	require.ErrorIs(t, err, context.Canceled)
}
