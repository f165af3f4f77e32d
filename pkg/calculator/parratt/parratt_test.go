package parratt

import (
	"context"
	"testing"

	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestBuild_SubstrateFirst(t *testing.T) {
	s, err := build([]sample.Slab{
		{SLD: 0},
		{Thickness: 20, SLD: 4, ISLD: -0.1, Roughness: 3},
		{SLD: 2.07, Roughness: 5},
	})
	require.NoError(t, err)

	require.Equal(t, []float64{0, 20, 0}, s.depth)
	require.Equal(t, []float64{2.07, 4, 0}, s.rho)
	require.Equal(t, []float64{0, 0.1, 0}, s.irho)
	require.Equal(t, []float64{5, 3}, s.sigma)
}

func TestReflectivity_RequiresSortedQ(t *testing.T) {
	e := New()
	require.True(t, e.RequiresSortedQ())

	slabs := []sample.Slab{{}, {SLD: 2.07}}
	_, err := e.Reflectivity(context.Background(), slabs, []float64{0.02, 0.01})
	require.ErrorIs(t, err, serrors.ErrCalculation)

	r, err := e.Reflectivity(context.Background(), slabs, []float64{0.01, 0.01, 0.02})
	require.NoError(t, err)
	require.Equal(t, r[0], r[1])
	require.Less(t, r[2], r[1])
}

func TestReflectivity_Rejects(t *testing.T) {
	_, err := New().Reflectivity(context.Background(), []sample.Slab{{}, {Roughness: -1}}, []float64{0.01})
	require.ErrorIs(t, err, serrors.ErrCalculation)
}
