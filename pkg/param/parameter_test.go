package param_test

import (
	"math"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		opts    []param.Option
		wantErr bool
	}{
		{name: "defaults", value: 1},
		{name: "inside bounds", value: 5, opts: []param.Option{param.WithBounds(0, 10)}},
		{name: "on lower bound", value: 0, opts: []param.Option{param.WithBounds(0, math.Inf(1))}},
		{name: "below bounds", value: -1, opts: []param.Option{param.WithBounds(0, 10)}, wantErr: true},
		{name: "inverted bounds", value: 1, opts: []param.Option{param.WithBounds(10, 0)}, wantErr: true},
		{name: "nan", value: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := param.New("p", tt.value, tt.opts...)
			if tt.wantErr {
				require.ErrorIs(t, err, serrors.ErrValidation)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.value, p.Value())
		})
	}
}

func TestParameter_SetChecksBounds(t *testing.T) {
	p, err := param.New("layer.thickness", 10, param.WithBounds(0, 100), param.WithUnit("angstrom"))
	require.NoError(t, err)

	require.NoError(t, p.Set(50))
	require.Equal(t, 50.0, p.Value())

	err = p.Set(-3)
	require.ErrorIs(t, err, serrors.ErrValidation)
	require.Equal(t, 50.0, p.Value(), "rejected value must not be stored")

	require.ErrorIs(t, p.SetBounds(60, 70), serrors.ErrValidation)
	require.NoError(t, p.SetBounds(20, 80))
	lo, hi := p.Bounds()
	require.Equal(t, 20.0, lo)
	require.Equal(t, 80.0, hi)
	require.Equal(t, "angstrom", p.Unit())
}

func TestParameter_Free(t *testing.T) {
	a, err := param.New("a", 1)
	require.NoError(t, err)
	require.True(t, a.Fixed())
	require.False(t, a.Free())

	a.SetFixed(false)
	require.True(t, a.Free())

	b, err := param.New("b", 2, param.Varying())
	require.NoError(t, err)
	require.True(t, b.Free())

	require.NoError(t, param.Link(b, a))
	require.False(t, b.Free(), "constrained parameters are never free")
	require.Contains(t, b.String(), "constrained")

	param.Unconstrain(b)
	require.True(t, b.Free())
}
