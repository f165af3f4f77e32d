package sample

import (
	"fmt"
	"math"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
)

// Slab is the engine-neutral description of one homogeneous slab.
type Slab struct {
	// Thickness in angstrom; zero for the boundary media.
	Thickness float64
	// SLD is the real scattering length density in 1e-6 Å⁻².
	SLD float64
	// ISLD is the imaginary scattering length density in 1e-6 Å⁻².
	ISLD float64
	// Roughness is the width of the interface above this slab in angstrom.
	Roughness float64
}

// Item is anything that can be stacked in a Sample.
type Item interface {
	// Name identifies the item inside its sample.
	Name() string
	// Slabs flattens the item into slabs ordered from top to bottom.
	Slabs() []Slab
	// Parameters returns every parameter the item depends on.
	Parameters() []*param.Parameter
}

// Layer is a finite slab of one material.
type Layer struct {
	name      string
	material  *Material
	thickness *param.Parameter
	roughness *param.Parameter
}

var _ Item = (*Layer)(nil)

func newLength(name string, v float64, what string) (*param.Parameter, error) {
	if v < 0 {
		return nil, serrors.With(serrors.ErrValidation, "%s must be non-negative, got %g", name, v)
	}

	p, err := param.New(name, v,
		param.WithBounds(0, math.Inf(1)),
		param.WithUnit("angstrom"),
		param.WithDescription(what))
	if err != nil {
		return nil, fmt.Errorf("could not create %s: %w", name, err)
	}

	return p, nil
}

// NewLayer creates a layer of material m. Thickness and roughness must be
// non-negative.
func NewLayer(name string, m *Material, thickness, roughness float64) (*Layer, error) {
	if m == nil {
		return nil, serrors.With(serrors.ErrValidation, "layer %q has no material", name)
	}

	t, err := newLength(name+".thickness", thickness, "layer thickness")
	if err != nil {
		return nil, err
	}
	r, err := newLength(name+".roughness", roughness, "roughness of the upper interface")
	if err != nil {
		return nil, err
	}

	return &Layer{name: name, material: m, thickness: t, roughness: r}, nil
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Material returns the layer material.
func (l *Layer) Material() *Material { return l.material }

// SetMaterial replaces the layer material.
func (l *Layer) SetMaterial(m *Material) error {
	if m == nil {
		return serrors.With(serrors.ErrValidation, "layer %q has no material", l.name)
	}
	l.material = m

	return nil
}

// Thickness returns the thickness parameter.
func (l *Layer) Thickness() *param.Parameter { return l.thickness }

// Roughness returns the roughness parameter.
func (l *Layer) Roughness() *param.Parameter { return l.roughness }

// Slabs implements Item.
func (l *Layer) Slabs() []Slab {
	return []Slab{{
		Thickness: l.thickness.Value(),
		SLD:       l.material.sld.Value(),
		ISLD:      l.material.isld.Value(),
		Roughness: l.roughness.Value(),
	}}
}

// Parameters implements Item.
func (l *Layer) Parameters() []*param.Parameter {
	return []*param.Parameter{l.thickness, l.roughness, l.material.sld, l.material.isld}
}
