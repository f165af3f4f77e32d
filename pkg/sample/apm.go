package sample

import (
	"fmt"
	"math"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
)

// LayerAreaPerMolecule is a layer whose SLD follows from the chemistry of the
// molecules it contains: the molecular scattering length spread over a
// thickness times area-per-molecule volume, diluted by a solvent fraction.
type LayerAreaPerMolecule struct {
	name            string
	formula         string
	thickness       *param.Parameter
	roughness       *param.Parameter
	areaPerMolecule *param.Parameter
	solvation       *param.Parameter
	slReal          *param.Parameter
	slImag          *param.Parameter
	molecule        *Material
	solvent         *Material
}

var _ Item = (*LayerAreaPerMolecule)(nil)

// APMOptions holds the numeric inputs of a LayerAreaPerMolecule.
type APMOptions struct {
	// Thickness of the layer in angstrom.
	Thickness float64
	// Roughness of the upper interface in angstrom.
	Roughness float64
	// AreaPerMolecule is the surface coverage in angstrom squared.
	AreaPerMolecule float64
	// Solvation is the volume fraction of solvent, in [0, 1].
	Solvation float64
}

// DefaultAPMOptions are the values used for a DPPC head group.
var DefaultAPMOptions = APMOptions{Thickness: 10, Roughness: 3, AreaPerMolecule: 48.2, Solvation: 0.2}

// apmToSLD converts a scattering length in angstrom into an SLD in 1e-6 Å⁻².
func apmToSLD(values ...float64) float64 {
	sl, thickness, apm := values[0], values[1], values[2]
	if thickness*apm == 0 {
		return 0
	}

	return sl / (thickness * apm) * 1e6
}

// NewLayerAreaPerMolecule creates a layer of molecules with the given formula
// immersed in solvent.
func NewLayerAreaPerMolecule(name, formula string, solvent *Material, opts APMOptions) (*LayerAreaPerMolecule, error) {
	if solvent == nil {
		return nil, serrors.With(serrors.ErrValidation, "layer %q has no solvent", name)
	}
	sl, err := ScatteringLength(formula)
	if err != nil {
		return nil, fmt.Errorf("could not create layer %q: %w", name, err)
	}

	l := &LayerAreaPerMolecule{name: name, formula: formula, solvent: solvent}
	if l.thickness, err = newLength(name+".thickness", opts.Thickness, "layer thickness"); err != nil {
		return nil, err
	}
	if l.roughness, err = newLength(name+".roughness", opts.Roughness, "roughness of the upper interface"); err != nil {
		return nil, err
	}
	if l.areaPerMolecule, err = param.New(name+".area_per_molecule", opts.AreaPerMolecule,
		param.WithBounds(0, math.Inf(1)),
		param.WithUnit("angstrom^2"),
		param.WithDescription("surface coverage")); err != nil {
		return nil, fmt.Errorf("could not create layer %q: %w", name, err)
	}
	if l.solvation, err = param.New(name+".solvation", opts.Solvation,
		param.WithBounds(0, 1),
		param.WithDescription("fraction of solvent present")); err != nil {
		return nil, fmt.Errorf("could not create layer %q: %w", name, err)
	}
	if l.slReal, err = param.New(name+".sl", real(sl),
		param.WithUnit("angstrom"),
		param.WithDescription("real scattering length of the molecule")); err != nil {
		return nil, fmt.Errorf("could not create layer %q: %w", name, err)
	}
	if l.slImag, err = param.New(name+".isl", imag(sl),
		param.WithUnit("angstrom"),
		param.WithDescription("imaginary scattering length of the molecule")); err != nil {
		return nil, fmt.Errorf("could not create layer %q: %w", name, err)
	}
	if l.molecule, err = NewMaterial(name+".molecule", 0, 0); err != nil {
		return nil, err
	}

	if err := param.Derive(l.molecule.sld, apmToSLD, l.slReal, l.thickness, l.areaPerMolecule); err != nil {
		return nil, err
	}
	if err := param.Derive(l.molecule.isld, apmToSLD, l.slImag, l.thickness, l.areaPerMolecule); err != nil {
		return nil, err
	}
	if err := param.Resolve(l.molecule.Parameters()); err != nil {
		return nil, fmt.Errorf("could not create layer %q: %w", name, err)
	}

	return l, nil
}

// Name returns the layer name.
func (l *LayerAreaPerMolecule) Name() string { return l.name }

// Formula returns the molecular formula.
func (l *LayerAreaPerMolecule) Formula() string { return l.formula }

// SetFormula replaces the molecular formula and updates the scattering
// lengths. The molecule SLD follows on the next resolution.
func (l *LayerAreaPerMolecule) SetFormula(formula string) error {
	sl, err := ScatteringLength(formula)
	if err != nil {
		return err
	}
	if err := l.slReal.Set(real(sl)); err != nil {
		return err
	}
	if err := l.slImag.Set(imag(sl)); err != nil {
		return err
	}
	l.formula = formula

	return param.Resolve(l.molecule.Parameters())
}

func (l *LayerAreaPerMolecule) Thickness() *param.Parameter       { return l.thickness }
func (l *LayerAreaPerMolecule) Roughness() *param.Parameter       { return l.roughness }
func (l *LayerAreaPerMolecule) AreaPerMolecule() *param.Parameter { return l.areaPerMolecule }
func (l *LayerAreaPerMolecule) Solvation() *param.Parameter       { return l.solvation }

// ScatteringLength returns the real and imaginary scattering length parameters.
func (l *LayerAreaPerMolecule) ScatteringLength() (*param.Parameter, *param.Parameter) {
	return l.slReal, l.slImag
}

// Molecule returns the dry molecular material. Its SLD is derived and must
// not be constrained by callers.
func (l *LayerAreaPerMolecule) Molecule() *Material { return l.molecule }

// Solvent returns the solvent material.
func (l *LayerAreaPerMolecule) Solvent() *Material { return l.solvent }

// SetSolvent replaces the solvent material.
func (l *LayerAreaPerMolecule) SetSolvent(m *Material) error {
	if m == nil {
		return serrors.With(serrors.ErrValidation, "layer %q has no solvent", l.name)
	}
	l.solvent = m

	return nil
}

// Slabs implements Item.
func (l *LayerAreaPerMolecule) Slabs() []Slab {
	f := l.solvation.Value()
	mix := func(a, b float64) float64 { return (1-f)*a + f*b }

	return []Slab{{
		Thickness: l.thickness.Value(),
		SLD:       mix(l.molecule.sld.Value(), l.solvent.sld.Value()),
		ISLD:      mix(l.molecule.isld.Value(), l.solvent.isld.Value()),
		Roughness: l.roughness.Value(),
	}}
}

// Parameters implements Item.
func (l *LayerAreaPerMolecule) Parameters() []*param.Parameter {
	return []*param.Parameter{
		l.thickness, l.roughness, l.areaPerMolecule, l.solvation,
		l.slReal, l.slImag,
		l.molecule.sld, l.molecule.isld,
		l.solvent.sld, l.solvent.isld,
	}
}
