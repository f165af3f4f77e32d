package fitting

import (
	"context"
	"math"

	"reflectometry/pkg/logger"
	"reflectometry/pkg/serrors"

	"go.uber.org/zap"
)

// Options tunes the Levenberg–Marquardt driver.
type Options struct {
	// MaxIterations bounds the number of accepted or rejected steps.
	MaxIterations int
	// Tolerance is the relative chi² decrease below which the fit stops.
	Tolerance float64
	// Step is the relative finite difference step of the Jacobian.
	Step float64
	// Lambda is the initial damping.
	Lambda float64
}

// DefaultOptions are used for zero fields of Options.
var DefaultOptions = Options{
	MaxIterations: 200,
	Tolerance:     1e-8,
	Step:          1e-6,
	Lambda:        1e-3,
}

const maxLambda = 1e16

// ParameterResult is the fitted state of one free parameter.
type ParameterResult struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Stderr float64 `json:"stderr"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Curve is the calculated curve of one model at its data points.
type Curve struct {
	Model string    `json:"model"`
	Q     []float64 `json:"q"`
	R     []float64 `json:"r"`
}

// Result summarises a finished fit.
type Result struct {
	Parameters  []ParameterResult `json:"parameters"`
	Chi2        float64           `json:"chi2"`
	ReducedChi2 float64           `json:"reduced_chi2"`
	Iterations  int               `json:"iterations"`
	Evaluations int               `json:"evaluations"`
	Converged   bool              `json:"converged"`
	Curves      []Curve           `json:"curves"`
}

// Fitter minimises the residuals of a Collection within the parameter bounds.
type Fitter struct {
	coll *Collection
	opts Options
}

// NewFitter creates a fitter for coll.
func NewFitter(coll *Collection, opts Options) *Fitter {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions.MaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions.Tolerance
	}
	if opts.Step <= 0 {
		opts.Step = DefaultOptions.Step
	}
	if opts.Lambda <= 0 {
		opts.Lambda = DefaultOptions.Lambda
	}

	return &Fitter{coll: coll, opts: opts}
}

type state struct {
	coll  *Collection
	evals int
}

func (s *state) eval(ctx context.Context, x []float64) ([]float64, float64, error) {
	s.evals++
	r, err := s.coll.Evaluate(ctx, x)
	if err != nil {
		return nil, 0, err
	}

	return r, sumSquares(r), nil
}

// Fit runs the minimizer. The free parameters hold the best values found
// when Fit returns, also on error.
func (f *Fitter) Fit(ctx context.Context) (*Result, error) {
	free := f.coll.FreeParameters()
	if len(free) == 0 {
		return nil, serrors.With(serrors.ErrConfiguration, "collection has no free parameters")
	}
	lo, hi := f.coll.Bounds()
	x := f.coll.Vector()
	st := &state{coll: f.coll}

	r, chi2, err := st.eval(ctx, x)
	if err != nil {
		return nil, err
	}
	// restore puts the last accepted vector back after a failed trial.
	restore := func() { _ = f.coll.Apply(x) }

	lambda := f.opts.Lambda
	converged := false
	iter := 0
	for ; iter < f.opts.MaxIterations && !converged; iter++ {
		if err := ctx.Err(); err != nil {
			restore()

			return nil, err
		}

		jac, err := f.jacobian(ctx, st, x, r, lo, hi)
		if err != nil {
			restore()

			return nil, err
		}
		a, g := normal(jac, r)

		for {
			damped := make([][]float64, len(a))
			rhs := make([]float64, len(g))
			for i := range a {
				damped[i] = append([]float64(nil), a[i]...)
				d := a[i][i]
				if d == 0 {
					d = 1
				}
				damped[i][i] += lambda * d
				rhs[i] = -g[i]
			}

			step, serr := solve(damped, rhs)
			if serr != nil {
				lambda *= 10
				if lambda > maxLambda {
					converged = true

					break
				}

				continue
			}

			trial := make([]float64, len(x))
			moved := false
			for i := range x {
				trial[i] = clamp(x[i]+step[i], lo[i], hi[i])
				if trial[i] != x[i] {
					moved = true
				}
			}
			if !moved {
				converged = true

				break
			}

			tr, tchi2, err := st.eval(ctx, trial)
			if err != nil {
				restore()

				return nil, err
			}
			if tchi2 < chi2 {
				improvement := (chi2 - tchi2) / math.Max(chi2, math.SmallestNonzeroFloat64)
				x, r, chi2 = trial, tr, tchi2
				lambda = math.Max(lambda/10, 1e-12)
				if improvement < f.opts.Tolerance {
					converged = true
				}

				break
			}

			lambda *= 10
			if lambda > maxLambda {
				converged = true

				break
			}
		}
		logger.Debug(ctx, "fit iteration",
			zap.Int("iteration", iter),
			zap.Float64("chi2", chi2),
			zap.Float64("lambda", lambda))
	}

	if err := f.coll.Apply(x); err != nil {
		return nil, err
	}

	res := &Result{
		Chi2:        chi2,
		Iterations:  iter,
		Evaluations: st.evals,
		Converged:   converged,
	}
	dof := len(r) - len(x)
	if dof > 0 {
		res.ReducedChi2 = chi2 / float64(dof)
	}

	stderr, err := f.stderr(ctx, st, x, r, lo, hi, res.ReducedChi2)
	if err != nil {
		return nil, err
	}
	for i, p := range free {
		res.Parameters = append(res.Parameters, ParameterResult{
			Name:   p.Name(),
			Value:  x[i],
			Stderr: stderr[i],
			Min:    lo[i],
			Max:    hi[i],
		})
	}

	curves, err := f.coll.Curves(ctx)
	if err != nil {
		return nil, err
	}
	for i, m := range f.coll.models {
		res.Curves = append(res.Curves, Curve{Model: m.Name(), Q: m.Data().Q, R: curves[i]})
	}

	logger.Info(ctx, "fit finished",
		zap.Float64("chi2", res.Chi2),
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged))

	return res, nil
}

// jacobian returns ∂r/∂x column-wise by forward differences, stepping
// backwards at an upper bound.
func (f *Fitter) jacobian(ctx context.Context, st *state, x, r, lo, hi []float64) ([][]float64, error) {
	jac := make([][]float64, len(x))
	trial := append([]float64(nil), x...)
	for j := range x {
		h := f.opts.Step * math.Max(math.Abs(x[j]), 1e-8)
		if x[j]+h > hi[j] {
			h = -h
		}
		if x[j]+h < lo[j] {
			h = 0
		}

		col := make([]float64, len(r))
		if h != 0 {
			trial[j] = x[j] + h
			rj, _, err := st.eval(ctx, trial)
			if err != nil {
				return nil, err
			}
			for k := range r {
				col[k] = (rj[k] - r[k]) / h
			}
			trial[j] = x[j]
		}
		jac[j] = col
	}

	if err := f.coll.Apply(x); err != nil {
		return nil, err
	}

	return jac, nil
}

// stderr estimates parameter uncertainties from the covariance s²·(JᵀJ)⁻¹.
// Parameters whose uncertainty cannot be estimated get 0.
func (f *Fitter) stderr(ctx context.Context, st *state, x, r, lo, hi []float64, s2 float64) ([]float64, error) {
	out := make([]float64, len(x))
	if s2 == 0 {
		s2 = 1
	}

	jac, err := f.jacobian(ctx, st, x, r, lo, hi)
	if err != nil {
		return nil, err
	}
	a, _ := normal(jac, r)
	cov, err := invert(a)
	if err != nil {
		logger.Debug(ctx, "covariance is singular", zap.Error(err))

		return out, nil
	}
	for i := range out {
		if v := cov[i][i] * s2; v > 0 && !math.IsInf(v, 0) {
			out[i] = math.Sqrt(v)
		}
	}

	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
