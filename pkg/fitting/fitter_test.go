package fitting_test

import (
	"context"
	"testing"

	"reflectometry/pkg/calculator"
	"reflectometry/pkg/fitting"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"

	"github.com/stretchr/testify/require"
)

// synthetic returns a dataset calculated from a film of the given thickness
// with 5% relative uncertainties.
func synthetic(t *testing.T, calc *calculator.Calculator, thickness, scale, background float64) []float64 {
	t.Helper()
	truth := newFilm(t, "truth", thickness, nil)
	require.NoError(t, truth.model.Scale().Set(scale))
	require.NoError(t, truth.model.Background().Set(background))

	q := make([]float64, 40)
	for i := range q {
		q[i] = 0.012 + 0.003*float64(i)
	}
	r, err := calc.Calculate(context.Background(), truth.model, q)
	require.NoError(t, err)

	return append(q, r...)
}

func TestFitter_ScaleAndBackground(t *testing.T) {
	calc, err := calculator.NewFromBackend(calculator.BackendAbeles)
	require.NoError(t, err)
	qr := synthetic(t, calc, 100, 1.2, 1e-6)
	q, r := qr[:40], qr[40:]
	e := make([]float64, len(r))
	for i := range r {
		e[i] = 0.05 * r[i]
	}

	f := newFilm(t, "fit", 100, dataset(t, q, r, e))
	f.model.Scale().SetFixed(false)
	f.model.Background().SetFixed(false)

	c, err := fitting.NewCollection(calc, f.model)
	require.NoError(t, err)
	res, err := fitting.NewFitter(c, fitting.Options{}).Fit(context.Background())
	require.NoError(t, err)

	require.True(t, res.Converged)
	require.InDelta(t, 1.2, f.model.Scale().Value(), 1e-6)
	require.InDelta(t, 1e-6, f.model.Background().Value(), 1e-9)
	require.Less(t, res.Chi2, 1e-8)
	require.Len(t, res.Parameters, 2)
	require.Equal(t, "fit.scale", res.Parameters[0].Name)
	require.Len(t, res.Curves, 1)
	require.Len(t, res.Curves[0].R, 40)
}

func TestFitter_Thickness(t *testing.T) {
	calc, err := calculator.NewFromBackend(calculator.BackendParratt)
	require.NoError(t, err)
	qr := synthetic(t, calc, 100, 1, 0)
	q, r := qr[:40], qr[40:]
	e := make([]float64, len(r))
	for i := range r {
		e[i] = 0.05 * r[i]
	}

	f := newFilm(t, "fit", 98, dataset(t, q, r, e))
	th := f.layer.Thickness()
	th.SetFixed(false)
	require.NoError(t, th.SetBounds(80, 120))

	c, err := fitting.NewCollection(calc, f.model)
	require.NoError(t, err)
	res, err := fitting.NewFitter(c, fitting.Options{MaxIterations: 50}).Fit(context.Background())
	require.NoError(t, err)

	require.InDelta(t, 100, th.Value(), 1e-3)
	require.InDelta(t, 100, res.Parameters[0].Value, 1e-3)
	require.Equal(t, 80.0, res.Parameters[0].Min)
	require.GreaterOrEqual(t, res.Parameters[0].Stderr, 0.0)
}

func TestFitter_RespectsBounds(t *testing.T) {
	calc, err := calculator.NewFromBackend(calculator.BackendAbeles)
	require.NoError(t, err)
	qr := synthetic(t, calc, 100, 1.5, 0)
	q, r := qr[:40], qr[40:]

	f := newFilm(t, "fit", 100, dataset(t, q, r, nil))
	scale := f.model.Scale()
	scale.SetFixed(false)
	require.NoError(t, scale.SetBounds(0.5, 1.2))

	c, err := fitting.NewCollection(calc, f.model)
	require.NoError(t, err)
	_, err = fitting.NewFitter(c, fitting.Options{}).Fit(context.Background())
	require.NoError(t, err)

	require.LessOrEqual(t, scale.Value(), 1.2)
	require.InDelta(t, 1.2, scale.Value(), 1e-9)
}

func TestFitter_Errors(t *testing.T) {
	calc, err := calculator.NewFromBackend(calculator.BackendAbeles)
	require.NoError(t, err)
	f := newFilm(t, "fit", 100, dataset(t, []float64{0.01, 0.02}, []float64{1, 0.1}, nil))

	c, err := fitting.NewCollection(calc, f.model)
	require.NoError(t, err)
	_, err = fitting.NewFitter(c, fitting.Options{}).Fit(context.Background())
	require.ErrorIs(t, err, serrors.ErrConfiguration)

	f.layer.Thickness().SetFixed(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fitting.NewFitter(c, fitting.Options{}).Fit(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 100.0, f.layer.Thickness().Value())

	require.NoError(t, param.Link(f.layer.Roughness(), f.layer.Thickness()))
	require.NoError(t, param.Link(f.layer.Thickness(), f.layer.Roughness()))
	f.model.Scale().SetFixed(false)
	_, err = fitting.NewFitter(c, fitting.Options{}).Fit(context.Background())
	require.ErrorIs(t, err, serrors.ErrConstraintCycle)
}
