// Package model wraps a sample with the experimental metadata needed to turn
// it into a reflectivity curve: scale, background, resolution and the
// measured data the curve is compared against.
package model

import (
	"fmt"
	"math"
	"reflectometry/pkg/param"
	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"
)

const (
	// DefaultScale of a new model.
	DefaultScale = 1.0
	// DefaultBackground of a new model.
	DefaultBackground = 1e-8
)

// Model is a sample plus instrument description.
type Model struct {
	name       string
	sample     *sample.Sample
	scale      *param.Parameter
	background *param.Parameter
	resolution *Resolution
	data       *Dataset
}

// Option configures a Model at construction.
type Option func(*Model) error

// WithScale sets the initial scale factor.
func WithScale(v float64) Option {
	return func(m *Model) error { return m.scale.Set(v) }
}

// WithBackground sets the initial constant background.
func WithBackground(v float64) Option {
	return func(m *Model) error { return m.background.Set(v) }
}

// WithResolution replaces the default percent resolution.
func WithResolution(r *Resolution) Option {
	return func(m *Model) error { return m.SetResolution(r) }
}

// WithData binds a measured dataset.
func WithData(d *Dataset) Option {
	return func(m *Model) error { return m.BindData(d) }
}

// New creates a model of s named name.
func New(name string, s *sample.Sample, opts ...Option) (*Model, error) {
	if s == nil {
		return nil, serrors.With(serrors.ErrValidation, "model %q has no sample", name)
	}

	scale, err := param.New(name+".scale", DefaultScale,
		param.WithBounds(0, math.Inf(1)),
		param.WithDescription("scale factor"))
	if err != nil {
		return nil, fmt.Errorf("could not create model %q: %w", name, err)
	}
	bkg, err := param.New(name+".background", DefaultBackground,
		param.WithBounds(0, math.Inf(1)),
		param.WithDescription("constant background"))
	if err != nil {
		return nil, fmt.Errorf("could not create model %q: %w", name, err)
	}
	res, err := PercentResolution(name+".resolution", DefaultResolutionPercent)
	if err != nil {
		return nil, err
	}

	m := &Model{name: name, sample: s, scale: scale, background: bkg, resolution: res}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("could not create model %q: %w", name, err)
		}
	}

	return m, nil
}

func (m *Model) Name() string                 { return m.name }
func (m *Model) Sample() *sample.Sample       { return m.sample }
func (m *Model) Scale() *param.Parameter      { return m.scale }
func (m *Model) Background() *param.Parameter { return m.background }
func (m *Model) Resolution() *Resolution      { return m.resolution }

// SetResolution replaces the resolution description.
func (m *Model) SetResolution(r *Resolution) error {
	if r == nil {
		return serrors.With(serrors.ErrValidation, "model %q needs a resolution", m.name)
	}
	m.resolution = r

	return nil
}

// Data returns the bound dataset or nil.
func (m *Model) Data() *Dataset { return m.data }

// BindData attaches a measured dataset to the model.
func (m *Model) BindData(d *Dataset) error {
	if d == nil {
		return serrors.With(serrors.ErrValidation, "cannot bind nil dataset to model %q", m.name)
	}
	m.data = d

	return nil
}

// Widths returns the resolution FWHM at every q.
func (m *Model) Widths(q []float64) ([]float64, error) {
	w, err := m.resolution.Widths(q, m.data)
	if err != nil {
		return nil, fmt.Errorf("could not compute resolution of model %q: %w", m.name, err)
	}

	return w, nil
}

// Parameters returns every parameter of the model: the sample first, then
// scale, background and resolution.
func (m *Model) Parameters() []*param.Parameter {
	ps := append(m.sample.Parameters(), m.scale, m.background)
	if p := m.resolution.Percent(); p != nil {
		ps = append(ps, p)
	}

	return param.Unique(ps)
}

// String implements fmt.Stringer.
func (m *Model) String() string {
	return fmt.Sprintf("model %s (%s)", m.name, m.sample)
}
