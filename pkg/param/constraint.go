package param

import (
	"context"
	"fmt"
	"maps"
	"reflectometry/pkg/serrors"
	"slices"

	"github.com/PaesslerAG/gval"
)

// Constraint derives the value of a dependent parameter from a set of source
// parameters.
type Constraint struct {
	sources []*Parameter
	names   []string
	expr    string
	derived bool
	eval    func(values []float64) (float64, error)
}

// Sources returns the parameters the constraint reads.
func (c *Constraint) Sources() []*Parameter { return slices.Clone(c.sources) }

// Expression returns the textual form of the constraint. Function constraints
// created by Derive have an empty expression.
func (c *Constraint) Expression() string { return c.expr }

// Vars returns the variable name to parameter mapping of the expression.
func (c *Constraint) Vars() map[string]*Parameter {
	out := make(map[string]*Parameter, len(c.names))
	for i, n := range c.names {
		out[n] = c.sources[i]
	}

	return out
}

// Derived reports whether the constraint was built from Go code by a
// structural component. Derived constraints are rebuilt with the component
// and never persisted.
func (c *Constraint) Derived() bool { return c.derived }

func (c *Constraint) evaluate(dep *Parameter) (float64, error) {
	values := make([]float64, len(c.sources))
	for i, s := range c.sources {
		values[i] = s.value
	}

	v, err := c.eval(values)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrValidation, err, "could not evaluate constraint on %q", dep.name)
	}

	return v, nil
}

// Link makes dep follow src: after resolution dep.Value() == src.Value().
func Link(dep, src *Parameter) error {
	return Expression(dep, "x", map[string]*Parameter{"x": src})
}

// Expression constrains dep to an arithmetic expression over named source
// parameters, for example Expression(rough, "2 * a + b", map[string]*Parameter{"a": pa, "b": pb}).
func Expression(dep *Parameter, expr string, vars map[string]*Parameter) error {
	if dep == nil {
		return serrors.With(serrors.ErrValidation, "constraint target is nil")
	}
	evaluable, err := gval.Full().NewEvaluable(expr)
	if err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "could not parse constraint %q on %q", expr, dep.name)
	}

	names := slices.Sorted(maps.Keys(vars))
	sources := make([]*Parameter, len(names))
	for i, n := range names {
		if vars[n] == nil {
			return serrors.With(serrors.ErrValidation, "constraint variable %q on %q is nil", n, dep.name)
		}
		sources[i] = vars[n]
	}

	dep.constraint = &Constraint{
		sources: sources,
		names:   names,
		expr:    expr,
		eval: func(values []float64) (float64, error) {
			env := make(map[string]any, len(names))
			for i, n := range names {
				env[n] = values[i]
			}
			v, err := evaluable.EvalFloat64(context.Background(), env)
			if err != nil {
				return 0, fmt.Errorf("could not evaluate %q: %w", expr, err)
			}

			return v, nil
		},
	}

	return nil
}

// Derive constrains dep to fn applied to the values of srcs in order.
func Derive(dep *Parameter, fn func(values ...float64) float64, srcs ...*Parameter) error {
	if dep == nil {
		return serrors.With(serrors.ErrValidation, "constraint target is nil")
	}
	names := make([]string, len(srcs))
	for i, s := range srcs {
		if s == nil {
			return serrors.With(serrors.ErrValidation, "constraint source %d on %q is nil", i, dep.name)
		}
		names[i] = s.name
	}

	dep.constraint = &Constraint{
		sources: slices.Clone(srcs),
		names:   names,
		derived: true,
		eval: func(values []float64) (float64, error) {
			return fn(values...), nil
		},
	}

	return nil
}

// Unconstrain removes the constraint of p, making it independent again with
// its last resolved value.
func Unconstrain(p *Parameter) { p.constraint = nil }
