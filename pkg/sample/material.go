package sample

import (
	"fmt"
	"reflectometry/pkg/param"
)

// Material is a homogeneous medium described by its complex scattering
// length density. Materials are shared by pointer between layers.
type Material struct {
	name string
	sld  *param.Parameter
	isld *param.Parameter
}

// NewMaterial creates a material with real SLD sld and imaginary SLD isld.
func NewMaterial(name string, sld, isld float64) (*Material, error) {
	re, err := param.New(name+".sld", sld,
		param.WithUnit("1e-6 1/angstrom^2"),
		param.WithDescription("real scattering length density"))
	if err != nil {
		return nil, fmt.Errorf("could not create material %q: %w", name, err)
	}
	im, err := param.New(name+".isld", isld,
		param.WithUnit("1e-6 1/angstrom^2"),
		param.WithDescription("imaginary scattering length density"))
	if err != nil {
		return nil, fmt.Errorf("could not create material %q: %w", name, err)
	}

	return &Material{name: name, sld: re, isld: im}, nil
}

// Name returns the material name.
func (m *Material) Name() string { return m.name }

// SLD returns the real scattering length density parameter.
func (m *Material) SLD() *param.Parameter { return m.sld }

// ISLD returns the imaginary scattering length density parameter.
func (m *Material) ISLD() *param.Parameter { return m.isld }

// Value returns the current complex SLD.
func (m *Material) Value() complex128 {
	return complex(m.sld.Value(), m.isld.Value())
}

// Parameters returns the material parameters.
func (m *Material) Parameters() []*param.Parameter {
	return []*param.Parameter{m.sld, m.isld}
}

// Equal compares two materials by SLD value, ignoring names and identity.
func (m *Material) Equal(o *Material) bool {
	if m == nil || o == nil {
		return m == o
	}

	return m.Value() == o.Value()
}
