// Package fitting aggregates models into a collection that exposes one flat
// vector of free parameters and one residual vector to a minimizer, and
// provides a bounded Levenberg–Marquardt driver on top of it.
package fitting

import (
	"context"
	"fmt"
	"math"
	"slices"

	"reflectometry/pkg/model"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
)

//go:generate mockgen -package mockfitting -source=collection.go -destination=mock/mockfitting.go Calculator

// Calculator computes the reflectivity of a model.
type Calculator interface {
	Calculate(ctx context.Context, m *model.Model, q []float64) ([]float64, error)
}

// Collection is an ordered set of models fitted together. Parameters shared
// by pointer between models are one parameter of the collection.
type Collection struct {
	calc    Calculator
	models  []*model.Model
	weights []float64
}

// NewCollection creates a collection. Every model must have bound data.
func NewCollection(calc Calculator, models ...*model.Model) (*Collection, error) {
	if calc == nil {
		return nil, serrors.With(serrors.ErrConfiguration, "collection needs a calculator")
	}
	if len(models) == 0 {
		return nil, serrors.With(serrors.ErrConfiguration, "collection needs at least one model")
	}

	c := &Collection{calc: calc}
	for i, m := range models {
		switch {
		case m == nil:
			return nil, serrors.With(serrors.ErrConfiguration, "model %d is nil", i)
		case m.Data() == nil:
			return nil, serrors.With(serrors.ErrConfiguration, "model %q has no bound data", m.Name())
		case slices.Contains(c.models, m):
			return nil, serrors.With(serrors.ErrConfiguration, "model %q added twice", m.Name())
		}
		c.models = append(c.models, m)
		c.weights = append(c.weights, 1)
	}

	return c, nil
}

// Models returns the models in insertion order.
func (c *Collection) Models() []*model.Model { return slices.Clone(c.models) }

// WithWeight sets the residual weight of model i.
func (c *Collection) WithWeight(i int, w float64) error {
	if i < 0 || i >= len(c.models) {
		return serrors.With(serrors.ErrValidation, "model index %d out of range", i)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return serrors.With(serrors.ErrValidation, "weight must be positive, got %g", w)
	}
	c.weights[i] = w

	return nil
}

// Weight returns the residual weight of model i.
func (c *Collection) Weight(i int) float64 { return c.weights[i] }

// Parameters returns every parameter of every model, deduplicated, in model
// insertion order and then parameter order.
func (c *Collection) Parameters() []*param.Parameter {
	var ps []*param.Parameter
	for _, m := range c.models {
		ps = append(ps, m.Parameters()...)
	}

	return param.Unique(ps)
}

// FreeParameters returns the parameters a minimizer may vary, in the same
// order as Parameters.
func (c *Collection) FreeParameters() []*param.Parameter {
	var free []*param.Parameter
	for _, p := range c.Parameters() {
		if p.Free() {
			free = append(free, p)
		}
	}

	return free
}

// Vector returns the current values of the free parameters.
func (c *Collection) Vector() []float64 {
	free := c.FreeParameters()
	x := make([]float64, len(free))
	for i, p := range free {
		x[i] = p.Value()
	}

	return x
}

// Bounds returns the bounds of the free parameters.
func (c *Collection) Bounds() (lo, hi []float64) {
	free := c.FreeParameters()
	lo, hi = make([]float64, len(free)), make([]float64, len(free))
	for i, p := range free {
		lo[i], hi[i] = p.Bounds()
	}

	return lo, hi
}

// Points returns the total number of data points.
func (c *Collection) Points() int {
	n := 0
	for _, m := range c.models {
		n += m.Data().Len()
	}

	return n
}

// Apply writes x into the free parameters and resolves every constraint.
// The parameters keep their values when x is rejected.
func (c *Collection) Apply(x []float64) error {
	free := c.FreeParameters()
	if len(x) != len(free) {
		return serrors.With(serrors.ErrValidation, "parameter vector has %d values, collection has %d free parameters", len(x), len(free))
	}
	for i, p := range free {
		if err := p.Validate(x[i]); err != nil {
			return err
		}
	}

	prev := make([]float64, len(free))
	for i, p := range free {
		prev[i] = p.Value()
		if err := p.Set(x[i]); err != nil {
			return err
		}
	}
	if err := param.Resolve(c.Parameters()); err != nil {
		for i, p := range free {
			_ = p.Set(prev[i])
		}

		return err
	}

	return nil
}

// Evaluate applies x and returns the weighted residuals (calc − data)/σ of
// every model, concatenated in model order and then point order.
func (c *Collection) Evaluate(ctx context.Context, x []float64) ([]float64, error) {
	if err := c.Apply(x); err != nil {
		return nil, err
	}

	res := make([]float64, 0, c.Points())
	for i, m := range c.models {
		d := m.Data()
		curve, err := c.calc.Calculate(ctx, m, d.Q)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate model %q: %w", m.Name(), err)
		}
		for k, r := range curve {
			res = append(res, c.weights[i]*(r-d.R[k])/d.Uncertainty(k))
		}
	}

	return res, nil
}

// Curves returns the calculated curve of every model at its data points with
// the current parameter values.
func (c *Collection) Curves(ctx context.Context) ([][]float64, error) {
	if err := param.Resolve(c.Parameters()); err != nil {
		return nil, err
	}

	out := make([][]float64, len(c.models))
	for i, m := range c.models {
		curve, err := c.calc.Calculate(ctx, m, m.Data().Q)
		if err != nil {
			return nil, fmt.Errorf("could not calculate model %q: %w", m.Name(), err)
		}
		out[i] = curve
	}

	return out, nil
}
