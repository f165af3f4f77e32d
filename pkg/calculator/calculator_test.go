package calculator_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"reflectometry/pkg/calculator"
	"reflectometry/pkg/model"
	"reflectometry/pkg/param"
	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func filmModel(t *testing.T, resolution float64) *model.Model {
	t.Helper()
	air, err := sample.NewMaterial("air", 0, 0)
	require.NoError(t, err)
	si, err := sample.NewMaterial("si", 2.07, 0)
	require.NoError(t, err)
	film, err := sample.NewMaterial("film", 4, 0)
	require.NoError(t, err)
	l, err := sample.NewLayer("film", film, 100, 3)
	require.NoError(t, err)
	s, err := sample.New("s", air, si, 3, l)
	require.NoError(t, err)

	res, err := model.PercentResolution("m.resolution", resolution)
	require.NoError(t, err)
	m, err := model.New("m", s, model.WithResolution(res))
	require.NoError(t, err)

	return m
}

func newCalculator(t *testing.T, b calculator.Backend, opts ...calculator.Option) *calculator.Calculator {
	t.Helper()
	c, err := calculator.NewFromBackend(b, opts...)
	require.NoError(t, err)

	return c
}

func TestCalculate_FilmScenario(t *testing.T) {
	q := []float64{0.01, 0.02, 0.05}

	for _, b := range calculator.Backends {
		t.Run(string(b), func(t *testing.T) {
			r, err := newCalculator(t, b).Calculate(context.Background(), filmModel(t, 5), q)
			require.NoError(t, err)
			require.Len(t, r, len(q))
			for i, v := range r {
				require.False(t, math.IsNaN(v))
				require.GreaterOrEqual(t, v, 0.0)
				if i > 0 {
					require.Less(t, v, r[i-1])
				}
			}
		})
	}
}

func TestCalculate_EnginesAgree(t *testing.T) {
	q := []float64{0.3, 0.005, 0.012, 0.02, 0.05, 0.1, 0.011, 0}

	for _, res := range []float64{0, 5} {
		m := filmModel(t, res)
		a, err := newCalculator(t, calculator.BackendAbeles).Calculate(context.Background(), m, q)
		require.NoError(t, err)
		p, err := newCalculator(t, calculator.BackendParratt).Calculate(context.Background(), m, q)
		require.NoError(t, err)

		for i := range q {
			require.InEpsilon(t, a[i], p[i], 1e-9, "q=%g resolution=%g", q[i], res)
		}
	}
}

func TestCalculate_Fresnel(t *testing.T) {
	air, err := sample.NewMaterial("air", 0, 0)
	require.NoError(t, err)
	si, err := sample.NewMaterial("si", 2.07, 0)
	require.NoError(t, err)
	s, err := sample.New("bare", air, si, 0)
	require.NoError(t, err)
	res, err := model.PercentResolution("bare.resolution", 0)
	require.NoError(t, err)
	m, err := model.New("bare", s, model.WithResolution(res), model.WithBackground(0))
	require.NoError(t, err)

	q := []float64{0.05, 0.1, 0.2}
	for _, b := range calculator.Backends {
		r, err := newCalculator(t, b).Calculate(context.Background(), m, q)
		require.NoError(t, err)
		for i, qi := range q {
			kz := complex(qi/2, 0)
			k1 := complex(math.Sqrt(qi*qi/4-4*math.Pi*2.07e-6), 0)
			f := (kz - k1) / (kz + k1)
			want := real(f)*real(f) + imag(f)*imag(f)
			require.InEpsilon(t, want, r[i], 1e-6, "backend %s q=%g", b, qi)
		}

		low, err := newCalculator(t, b).Calculate(context.Background(), m, []float64{0.001})
		require.NoError(t, err)
		require.InDelta(t, 1, low[0], 1e-6)
	}
}

func TestCalculate_CacheAndLinearity(t *testing.T) {
	ctx := context.Background()
	m := filmModel(t, 5)
	q := []float64{0.02, 0.01, 0.05, 0.1}
	c := newCalculator(t, calculator.BackendAbeles)

	u1, err := c.Unscaled(ctx, m, q)
	require.NoError(t, err)
	r1, err := c.Calculate(ctx, m, q)
	require.NoError(t, err)

	require.NoError(t, m.Scale().Set(2.5))
	require.NoError(t, m.Background().Set(1e-5))
	r2, err := c.Calculate(ctx, m, q)
	require.NoError(t, err)
	u2, err := c.Unscaled(ctx, m, q)
	require.NoError(t, err)

	require.Equal(t, u1, u2)
	require.Equal(t, calculator.Stats{Hits: 3, Misses: 1, Entries: 1}, c.Stats())
	for i := range q {
		require.InDelta(t, r1[i]-model.DefaultBackground, u1[i], 1e-15)
		require.InDelta(t, 2.5*u1[i]+1e-5, r2[i], 1e-15)
	}

	// Mutating the returned curve does not touch the cache.
	u2[0] = -1
	u3, err := c.Unscaled(ctx, m, q)
	require.NoError(t, err)
	require.Equal(t, u1, u3)

	film := m.Sample().Layers()[0].(*sample.Layer)
	require.NoError(t, film.Thickness().Set(120))
	_, err = c.Calculate(ctx, m, q)
	require.NoError(t, err)
	require.Equal(t, 2, c.Stats().Misses)

	c.Reset()
	require.Equal(t, calculator.Stats{}, c.Stats())
}

func TestCalculate_EqualMaterialsShareCache(t *testing.T) {
	ctx := context.Background()
	c := newCalculator(t, calculator.BackendParratt)
	q := []float64{0.01, 0.02}

	_, err := c.Calculate(ctx, filmModel(t, 5), q)
	require.NoError(t, err)
	_, err = c.Calculate(ctx, filmModel(t, 5), q)
	require.NoError(t, err)

	require.Equal(t, 1, c.Stats().Hits)
}

func TestCalculate_CacheEviction(t *testing.T) {
	ctx := context.Background()
	c := newCalculator(t, calculator.BackendAbeles, calculator.WithCacheSize(1))
	m := filmModel(t, 0)

	_, err := c.Calculate(ctx, m, []float64{0.01})
	require.NoError(t, err)
	_, err = c.Calculate(ctx, m, []float64{0.02})
	require.NoError(t, err)
	_, err = c.Calculate(ctx, m, []float64{0.01})
	require.NoError(t, err)

	require.Equal(t, calculator.Stats{Hits: 0, Misses: 3, Entries: 1}, c.Stats())

	off := newCalculator(t, calculator.BackendAbeles, calculator.WithCacheSize(0))
	for range 2 {
		_, err = off.Calculate(ctx, m, []float64{0.01})
		require.NoError(t, err)
	}
	require.Equal(t, 0, off.Stats().Hits)
}

func TestCalculate_UnsortedQ(t *testing.T) {
	ctx := context.Background()
	m := filmModel(t, 5)
	sorted := []float64{0.01, 0.02, 0.03, 0.05}
	unsorted := []float64{0.05, 0.01, 0.03, 0.02}
	perm := []int{3, 0, 2, 1}

	for _, b := range calculator.Backends {
		rs, err := newCalculator(t, b).Calculate(ctx, m, sorted)
		require.NoError(t, err)
		ru, err := newCalculator(t, b).Calculate(ctx, m, unsorted)
		require.NoError(t, err)
		for i, j := range perm {
			require.InEpsilon(t, rs[j], ru[i], 1e-12)
		}
	}
}

func TestCalculate_EngineSmearing(t *testing.T) {
	ctx := context.Background()
	m := filmModel(t, 5)
	q := []float64{0.03, 0.05, 0.08}

	iface, err := newCalculator(t, calculator.BackendAbeles).Calculate(ctx, m, q)
	require.NoError(t, err)
	native, err := newCalculator(t, calculator.BackendAbeles, calculator.WithSmearing(calculator.SmearEngine)).Calculate(ctx, m, q)
	require.NoError(t, err)
	for i := range q {
		require.InEpsilon(t, iface[i], native[i], 0.02)
	}

	// Parratt has no native smearing and falls back to the interface.
	pi, err := newCalculator(t, calculator.BackendParratt).Calculate(ctx, m, q)
	require.NoError(t, err)
	pe, err := newCalculator(t, calculator.BackendParratt, calculator.WithSmearing(calculator.SmearEngine)).Calculate(ctx, m, q)
	require.NoError(t, err)
	require.Equal(t, pi, pe)
}

func TestCalculate_Validation(t *testing.T) {
	ctx := context.Background()
	c := newCalculator(t, calculator.BackendAbeles)
	m := filmModel(t, 5)

	for _, q := range [][]float64{{-0.01}, {math.NaN()}, {0.01, math.Inf(1)}} {
		_, err := c.Calculate(ctx, m, q)
		require.ErrorIs(t, err, serrors.ErrValidation)
	}

	r, err := c.Calculate(ctx, m, nil)
	require.NoError(t, err)
	require.Empty(t, r)

	_, err = c.Calculate(ctx, nil, []float64{0.01})
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestCalculate_ConstraintCycle(t *testing.T) {
	m := filmModel(t, 5)
	film := m.Sample().Layers()[0].(*sample.Layer)
	require.NoError(t, param.Link(film.Thickness(), film.Roughness()))
	require.NoError(t, param.Link(film.Roughness(), film.Thickness()))

	_, err := newCalculator(t, calculator.BackendAbeles).Calculate(context.Background(), m, []float64{0.01})
	require.ErrorIs(t, err, serrors.ErrConstraintCycle)
}

type brokenEngine struct{ value float64 }

func (brokenEngine) Name() string { return "broken" }

func (e brokenEngine) Reflectivity(_ context.Context, _ []sample.Slab, q []float64) ([]float64, error) {
	if e.value == 0 {
		return nil, errors.New("did not converge")
	}
	out := make([]float64, len(q))
	for i := range out {
		out[i] = e.value
	}

	return out, nil
}

func TestCalculate_CalculationError(t *testing.T) {
	m := filmModel(t, 0)

	for _, e := range []brokenEngine{{value: 0}, {value: math.NaN()}, {value: -1}} {
		c, err := calculator.New(e)
		require.NoError(t, err)

		_, err = c.Calculate(context.Background(), m, []float64{0.01})
		require.ErrorIs(t, err, serrors.ErrCalculation)

		var ce *calculator.CalculationError
		require.ErrorAs(t, err, &ce)
		require.Same(t, m, ce.Model)
		require.Equal(t, "broken", ce.Engine)
	}
}

// shortEngine drops the last point and wants sorted q.
type shortEngine struct{}

func (shortEngine) Name() string          { return "short" }
func (shortEngine) RequiresSortedQ() bool { return true }

func (shortEngine) Reflectivity(_ context.Context, _ []sample.Slab, q []float64) ([]float64, error) {
	return make([]float64, len(q)-1), nil
}

func TestCalculate_ShortEngineResult(t *testing.T) {
	c, err := calculator.New(shortEngine{})
	require.NoError(t, err)

	for _, resolution := range []float64{0, 5} {
		m := filmModel(t, resolution)
		for _, q := range [][]float64{{0.01, 0.02, 0.03}, {0.03, 0.01, 0.02}} {
			require.NotPanics(t, func() {
				_, err = c.Calculate(context.Background(), m, q)
			})
			require.ErrorIs(t, err, serrors.ErrCalculation)

			var ce *calculator.CalculationError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, "short", ce.Engine)
		}
	}
}

type countingObserver struct {
	hits, misses int
	took         time.Duration
}

func (o *countingObserver) CacheHit(string) { o.hits++ }
func (o *countingObserver) CacheMiss(string) { o.misses++ }
func (o *countingObserver) EngineDuration(_ string, d time.Duration) { o.took += d }

func TestCalculate_Observer(t *testing.T) {
	o := &countingObserver{}
	c := newCalculator(t, calculator.BackendAbeles, calculator.WithObserver(o))
	m := filmModel(t, 5)

	for range 3 {
		_, err := c.Calculate(context.Background(), m, []float64{0.01, 0.02})
		require.NoError(t, err)
	}
	require.Equal(t, 2, o.hits)
	require.Equal(t, 1, o.misses)
}

func TestParseBackend(t *testing.T) {
	b, err := calculator.ParseBackend(" Parratt ")
	require.NoError(t, err)
	require.Equal(t, calculator.BackendParratt, b)

	_, err = calculator.ParseBackend("refl1d")
	require.ErrorIs(t, err, serrors.ErrConfiguration)

	mode, err := calculator.ParseSmearingMode("")
	require.NoError(t, err)
	require.Equal(t, calculator.SmearInterface, mode)

	_, err = calculator.New(nil)
	require.ErrorIs(t, err, serrors.ErrConfiguration)

	_, err = calculator.NewFromBackend(calculator.BackendAbeles, calculator.WithSmearing("magic"))
	require.ErrorIs(t, err, serrors.ErrConfiguration)
}
