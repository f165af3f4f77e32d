// Package param implements fit parameters and the resolution of the
// constraints that link them.
//
// A Parameter is a named value with bounds, a fixed flag and an optional
// Constraint. Constrained parameters are never optimized directly: Resolve
// recomputes them from their sources in a single topological pass once all
// independent values for an iteration are set.
package param

import (
	"fmt"
	"math"
	"reflectometry/pkg/serrors"
)

// Parameter is a numeric value that may be optimized by a minimizer.
// Parameters are shared by pointer; the same *Parameter referenced from
// several models resolves to one value everywhere.
type Parameter struct {
	name        string
	value       float64
	min, max    float64
	fixed       bool
	unit        string
	description string
	constraint  *Constraint
}

// Option configures a Parameter at construction.
type Option func(*Parameter)

// WithBounds sets the inclusive bounds of the parameter.
func WithBounds(lo, hi float64) Option {
	return func(p *Parameter) { p.min, p.max = lo, hi }
}

// WithUnit attaches a unit label such as "angstrom".
func WithUnit(unit string) Option {
	return func(p *Parameter) { p.unit = unit }
}

// WithDescription attaches a human readable description.
func WithDescription(d string) Option {
	return func(p *Parameter) { p.description = d }
}

// Varying marks the parameter as free for fitting. Parameters are fixed by default.
func Varying() Option {
	return func(p *Parameter) { p.fixed = false }
}

// New creates a fixed parameter with unbounded range unless options say otherwise.
// It fails with a validation error when value lies outside the bounds.
func New(name string, value float64, opts ...Option) (*Parameter, error) {
	p := &Parameter{
		name:  name,
		value: value,
		min:   math.Inf(-1),
		max:   math.Inf(1),
		fixed: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	if math.IsNaN(p.min) || math.IsNaN(p.max) || p.min > p.max {
		return nil, serrors.With(serrors.ErrValidation, "parameter %q has invalid bounds [%g, %g]", name, p.min, p.max)
	}
	if err := p.check(value); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Parameter) check(v float64) error {
	if math.IsNaN(v) {
		return serrors.With(serrors.ErrValidation, "parameter %q cannot be NaN", p.name)
	}
	if v < p.min || v > p.max {
		return serrors.With(serrors.ErrValidation, "parameter %q value %g outside bounds [%g, %g]", p.name, v, p.min, p.max)
	}

	return nil
}

// Validate reports whether v is an acceptable value of p without setting it.
func (p *Parameter) Validate(v float64) error { return p.check(v) }

// Name returns the qualified parameter name, e.g. "SiO2 layer.thickness".
func (p *Parameter) Name() string { return p.name }

// Rename changes the parameter name.
func (p *Parameter) Rename(name string) { p.name = name }

// Value returns the current value.
func (p *Parameter) Value() float64 { return p.value }

// Set assigns a new value after checking it against the bounds.
func (p *Parameter) Set(v float64) error {
	if err := p.check(v); err != nil {
		return err
	}
	p.value = v

	return nil
}

// Bounds returns the inclusive bounds.
func (p *Parameter) Bounds() (float64, float64) { return p.min, p.max }

// SetBounds replaces the bounds. The current value must lie within them.
func (p *Parameter) SetBounds(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return serrors.With(serrors.ErrValidation, "parameter %q has invalid bounds [%g, %g]", p.name, lo, hi)
	}
	if p.value < lo || p.value > hi {
		return serrors.With(serrors.ErrValidation,
			"parameter %q value %g outside new bounds [%g, %g]", p.name, p.value, lo, hi)
	}
	p.min, p.max = lo, hi

	return nil
}

// Fixed reports whether the parameter is excluded from fitting by the user.
func (p *Parameter) Fixed() bool { return p.fixed }

// SetFixed toggles the fixed flag.
func (p *Parameter) SetFixed(fixed bool) { p.fixed = fixed }

// Free reports whether a minimizer may vary the parameter: it must be
// neither fixed nor constrained.
func (p *Parameter) Free() bool { return !p.fixed && p.constraint == nil }

// Constraint returns the constraint deriving this parameter, or nil.
func (p *Parameter) Constraint() *Constraint { return p.constraint }

// Unit returns the unit label.
func (p *Parameter) Unit() string { return p.unit }

// Description returns the description.
func (p *Parameter) Description() string { return p.description }

// String implements fmt.Stringer.
func (p *Parameter) String() string {
	state := "fixed"
	switch {
	case p.constraint != nil:
		state = "constrained"
	case !p.fixed:
		state = "free"
	}

	return fmt.Sprintf("%s=%g (%s)", p.name, p.value, state)
}

// assign stores a derived value. Derived values are not bound-checked because
// they are never proposed by a minimizer.
func (p *Parameter) assign(v float64) { p.value = v }
