package fitting_test

import (
	"context"
	"math"
	"testing"

	"reflectometry/pkg/calculator"
	"reflectometry/pkg/fitting"
	mockfitting "reflectometry/pkg/fitting/mock"
	"reflectometry/pkg/model"
	"reflectometry/pkg/param"
	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type film struct {
	model *model.Model
	layer *sample.Layer
}

func newFilm(t *testing.T, name string, thickness float64, data *model.Dataset) film {
	t.Helper()
	air, err := sample.NewMaterial(name+".air", 0, 0)
	require.NoError(t, err)
	si, err := sample.NewMaterial(name+".si", 2.07, 0)
	require.NoError(t, err)
	mat, err := sample.NewMaterial(name+".film", 4, 0)
	require.NoError(t, err)
	l, err := sample.NewLayer(name+".film", mat, thickness, 3)
	require.NoError(t, err)
	s, err := sample.New(name, air, si, 3, l)
	require.NoError(t, err)
	res, err := model.PercentResolution(name+".resolution", 0)
	require.NoError(t, err)

	opts := []model.Option{model.WithResolution(res), model.WithBackground(0)}
	if data != nil {
		opts = append(opts, model.WithData(data))
	}
	m, err := model.New(name, s, opts...)
	require.NoError(t, err)

	return film{model: m, layer: l}
}

func dataset(t *testing.T, q, r, e []float64) *model.Dataset {
	t.Helper()
	d, err := model.NewDataset(q, r, e, nil)
	require.NoError(t, err)

	return d
}

func TestNewCollection(t *testing.T) {
	calc, err := calculator.NewFromBackend(calculator.BackendAbeles)
	require.NoError(t, err)
	d := dataset(t, []float64{0.01}, []float64{1}, nil)
	withData := newFilm(t, "a", 100, d).model
	without := newFilm(t, "b", 100, nil).model

	tests := []struct {
		name   string
		calc   fitting.Calculator
		models []*model.Model
	}{
		{name: "missing data", calc: calc, models: []*model.Model{withData, without}},
		{name: "no models", calc: calc},
		{name: "nil model", calc: calc, models: []*model.Model{nil}},
		{name: "duplicate", calc: calc, models: []*model.Model{withData, withData}},
		{name: "no calculator", models: []*model.Model{withData}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fitting.NewCollection(tt.calc, tt.models...)
			require.ErrorIs(t, err, serrors.ErrConfiguration)
		})
	}

	c, err := fitting.NewCollection(calc, withData)
	require.NoError(t, err)
	require.Len(t, c.Models(), 1)
}

func TestCollection_FreeParameters(t *testing.T) {
	calc, err := calculator.NewFromBackend(calculator.BackendAbeles)
	require.NoError(t, err)
	d := dataset(t, []float64{0.01, 0.02}, []float64{1, 0.1}, nil)
	a := newFilm(t, "a", 100, d)
	b := newFilm(t, "b", 100, d)

	a.layer.Thickness().SetFixed(false)
	a.model.Scale().SetFixed(false)
	b.layer.Thickness().SetFixed(false)
	b.layer.Roughness().SetFixed(false)
	require.NoError(t, param.Link(b.layer.Thickness(), a.layer.Thickness()))

	c, err := fitting.NewCollection(calc, a.model, b.model)
	require.NoError(t, err)

	var names []string
	for _, p := range c.FreeParameters() {
		names = append(names, p.Name())
	}
	require.Equal(t, []string{"a.film.thickness", "a.scale", "b.film.roughness"}, names)
	require.Equal(t, []float64{100, 1, 3}, c.Vector())

	lo, hi := c.Bounds()
	require.Equal(t, []float64{0, 0, 0}, lo)
	require.True(t, math.IsInf(hi[0], 1))

	_, err = c.Evaluate(context.Background(), []float64{100})
	require.ErrorIs(t, err, serrors.ErrValidation)
	_, err = c.Evaluate(context.Background(), []float64{-5, 1, 3})
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestCollection_EvaluateOrderAndWeights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calc := mockfitting.NewMockCalculator(ctrl)
	a := newFilm(t, "a", 100, dataset(t, []float64{0.01, 0.02}, []float64{1, 2}, []float64{0.5, 2}))
	b := newFilm(t, "b", 100, dataset(t, []float64{0.03}, []float64{3}, nil))
	a.model.Scale().SetFixed(false)

	calc.EXPECT().Calculate(gomock.Any(), a.model, []float64{0.01, 0.02}).Return([]float64{2, 4}, nil).Times(2)
	calc.EXPECT().Calculate(gomock.Any(), b.model, []float64{0.03}).Return([]float64{1}, nil).Times(2)

	c, err := fitting.NewCollection(calc, a.model, b.model)
	require.NoError(t, err)
	require.NoError(t, c.WithWeight(1, 2))
	require.ErrorIs(t, c.WithWeight(2, 1), serrors.ErrValidation)
	require.ErrorIs(t, c.WithWeight(0, 0), serrors.ErrValidation)

	r1, err := c.Evaluate(context.Background(), []float64{1.5})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1, -4}, r1)
	require.Equal(t, 1.5, a.model.Scale().Value())

	r2, err := c.Evaluate(context.Background(), []float64{1.5})
	require.NoError(t, err)
	require.Equal(t, r1, r2)
}

func TestCollection_EvaluatePropagatesCalculationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calc := mockfitting.NewMockCalculator(ctrl)
	a := newFilm(t, "a", 100, dataset(t, []float64{0.01}, []float64{1}, nil))
	calc.EXPECT().Calculate(gomock.Any(), a.model, gomock.Any()).
		Return(nil, serrors.With(serrors.ErrCalculation, "diverged"))

	c, err := fitting.NewCollection(calc, a.model)
	require.NoError(t, err)

	_, err = c.Evaluate(context.Background(), nil)
	require.ErrorIs(t, err, serrors.ErrCalculation)
}

func TestCollection_SharedLinkedParameter(t *testing.T) {
	ctx := context.Background()
	calc, err := calculator.NewFromBackend(calculator.BackendAbeles)
	require.NoError(t, err)

	q := []float64{0.02, 0.04, 0.06}
	d := dataset(t, q, []float64{1e-3, 1e-4, 1e-5}, nil)
	a := newFilm(t, "a", 100, d)
	b := newFilm(t, "b", 80, d)
	a.layer.Thickness().SetFixed(false)
	require.NoError(t, param.Link(b.layer.Thickness(), a.layer.Thickness()))

	c, err := fitting.NewCollection(calc, a.model, b.model)
	require.NoError(t, err)
	require.Len(t, c.FreeParameters(), 1)

	r1, err := c.Evaluate(ctx, []float64{100})
	require.NoError(t, err)
	require.Equal(t, 100.0, b.layer.Thickness().Value())
	// Both models describe the same structure now.
	require.Equal(t, r1[:3], r1[3:])

	r2, err := c.Evaluate(ctx, []float64{120})
	require.NoError(t, err)
	require.Equal(t, 120.0, b.layer.Thickness().Value())
	require.Equal(t, r2[:3], r2[3:])
	require.NotEqual(t, r1[:3], r2[:3])
}

func TestCollection_OrderIndependentResolution(t *testing.T) {
	ctx := context.Background()
	calc, err := calculator.NewFromBackend(calculator.BackendParratt)
	require.NoError(t, err)
	d := dataset(t, []float64{0.02, 0.05}, []float64{1e-3, 1e-4}, nil)

	run := func(reverse bool) []float64 {
		a := newFilm(t, "a", 100, d)
		a.layer.Thickness().SetFixed(false)
		th, ro := a.layer.Thickness(), a.layer.Roughness()
		sub := a.model.Sample().SubphaseRoughness()
		link := []func() error{
			func() error { return param.Expression(ro, "t / 20", map[string]*param.Parameter{"t": th}) },
			func() error { return param.Expression(sub, "r * 2", map[string]*param.Parameter{"r": ro}) },
		}
		if reverse {
			link[0], link[1] = link[1], link[0]
		}
		for _, f := range link {
			require.NoError(t, f())
		}

		c, err := fitting.NewCollection(calc, a.model)
		require.NoError(t, err)
		r, err := c.Evaluate(ctx, []float64{140})
		require.NoError(t, err)
		require.Equal(t, 14.0, sub.Value())

		return r
	}

	require.Equal(t, run(false), run(true))
}

func TestCollection_EvaluateRejectsVectorWithoutSideEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calc := mockfitting.NewMockCalculator(ctrl)
	f := newFilm(t, "a", 100, dataset(t, []float64{0.01}, []float64{1}, nil))
	f.layer.Thickness().SetFixed(false)
	f.layer.Roughness().SetFixed(false)

	c, err := fitting.NewCollection(calc, f.model)
	require.NoError(t, err)
	before := c.Vector()
	require.Len(t, before, 2)

	_, err = c.Evaluate(context.Background(), []float64{before[0] + 50, -1})
	require.ErrorIs(t, err, serrors.ErrValidation)
	require.Equal(t, before, c.Vector())

	_, err = c.Evaluate(context.Background(), []float64{math.NaN(), before[1]})
	require.ErrorIs(t, err, serrors.ErrValidation)
	require.Equal(t, before, c.Vector())
}
