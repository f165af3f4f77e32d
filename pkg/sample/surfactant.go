package sample

import (
	"fmt"
	"math"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
	"slices"
)

// SurfactantLayer is a pair of area-per-molecule layers describing the two
// halves of a surfactant or lipid, ordered in the direction of the beam.
type SurfactantLayer struct {
	name            string
	first, second   *LayerAreaPerMolecule
	areaPerMolecule *param.Parameter
	roughness       *param.Parameter
	apmConstrained  bool
	conformal       bool
}

var _ Item = (*SurfactantLayer)(nil)

// NewSurfactantLayer pairs first (met first by the beam) and second.
func NewSurfactantLayer(name string, first, second *LayerAreaPerMolecule) (*SurfactantLayer, error) {
	if first == nil || second == nil {
		return nil, serrors.With(serrors.ErrValidation, "surfactant %q needs two layers", name)
	}
	if first == second {
		return nil, serrors.With(serrors.ErrValidation, "surfactant %q cannot use the same layer twice", name)
	}

	return &SurfactantLayer{name: name, first: first, second: second}, nil
}

// NewDPPC returns a DPPC monolayer at an interface: a deuterated tail group
// in the super-phase medium above a head group solvated by the sub-phase.
func NewDPPC(name string, air, water *Material) (*SurfactantLayer, error) {
	tail, err := NewLayerAreaPerMolecule(name+".tail", "C32D64", air,
		APMOptions{Thickness: 16, Roughness: 3, AreaPerMolecule: 48.2, Solvation: 0})
	if err != nil {
		return nil, err
	}
	head, err := NewLayerAreaPerMolecule(name+".head", "C10H18NO8P", water, DefaultAPMOptions)
	if err != nil {
		return nil, err
	}

	return NewSurfactantLayer(name, tail, head)
}

// Name returns the surfactant name.
func (s *SurfactantLayer) Name() string { return s.name }

// First returns the layer met first by the beam.
func (s *SurfactantLayer) First() *LayerAreaPerMolecule { return s.first }

// Second returns the layer met second by the beam.
func (s *SurfactantLayer) Second() *LayerAreaPerMolecule { return s.second }

// AreaPerMolecule returns the shared area per molecule, nil until
// ConstrainAreaPerMolecule was first called.
func (s *SurfactantLayer) AreaPerMolecule() *param.Parameter { return s.areaPerMolecule }

// Roughness returns the shared roughness, nil until ConformalRoughness was
// first called.
func (s *SurfactantLayer) Roughness() *param.Parameter { return s.roughness }

// AreaPerMoleculeConstrained reports whether both layers share one area per molecule.
func (s *SurfactantLayer) AreaPerMoleculeConstrained() bool { return s.apmConstrained }

// Conformal reports whether both layers share one roughness.
func (s *SurfactantLayer) Conformal() bool { return s.conformal }

func (s *SurfactantLayer) shared(p **param.Parameter, suffix, unit, what string, from *param.Parameter) error {
	if *p != nil {
		return nil
	}

	np, err := param.New(s.name+"."+suffix, from.Value(),
		param.WithBounds(0, math.Inf(1)),
		param.WithUnit(unit),
		param.WithDescription(what))
	if err != nil {
		return fmt.Errorf("could not create shared %s of %q: %w", suffix, s.name, err)
	}
	*p = np

	return nil
}

// follow links every dependent to src, or releases the links to src.
func follow(on bool, src *param.Parameter, deps ...*param.Parameter) error {
	for _, d := range deps {
		if on {
			if err := d.Set(src.Value()); err != nil {
				return err
			}
			if err := param.Link(d, src); err != nil {
				return err
			}

			continue
		}
		if c := d.Constraint(); c != nil && slices.Equal(c.Sources(), []*param.Parameter{src}) {
			param.Unconstrain(d)
		}
	}

	return nil
}

// ConstrainAreaPerMolecule makes both layers follow one shared area per
// molecule, initialised from the first layer, or releases them.
func (s *SurfactantLayer) ConstrainAreaPerMolecule(on bool) error {
	if err := s.shared(&s.areaPerMolecule, "area_per_molecule", "angstrom^2", "shared surface coverage",
		s.first.areaPerMolecule); err != nil {
		return err
	}
	if err := follow(on, s.areaPerMolecule, s.first.areaPerMolecule, s.second.areaPerMolecule); err != nil {
		return err
	}
	s.apmConstrained = on

	return nil
}

// ConformalRoughness makes both layers follow one shared roughness,
// initialised from the first layer, or releases them.
func (s *SurfactantLayer) ConformalRoughness(on bool) error {
	if err := s.shared(&s.roughness, "roughness", "angstrom", "conformal roughness",
		s.first.roughness); err != nil {
		return err
	}
	if err := follow(on, s.roughness, s.first.roughness, s.second.roughness); err != nil {
		return err
	}
	s.conformal = on

	return nil
}

// ConstrainSolventRoughness makes the roughness of the solvent interface,
// usually the sample sub-phase roughness, follow the conformal roughness.
func (s *SurfactantLayer) ConstrainSolventRoughness(solventRoughness *param.Parameter) error {
	if !s.conformal {
		return serrors.With(serrors.ErrValidation, "roughness of %q must be conformal to constrain the solvent roughness", s.name)
	}
	if solventRoughness == nil {
		return serrors.With(serrors.ErrValidation, "solvent roughness of %q is nil", s.name)
	}

	return follow(true, s.roughness, solventRoughness)
}

// ContrastOptions selects the structural parameters shared between two
// contrasts of the same surfactant.
type ContrastOptions struct {
	FirstThickness        bool
	SecondThickness       bool
	FirstAreaPerMolecule  bool
	SecondAreaPerMolecule bool
	FirstSolvation        bool
	SecondSolvation       bool
}

// AllContrast shares every structural parameter.
var AllContrast = ContrastOptions{
	FirstThickness:        true,
	SecondThickness:       true,
	FirstAreaPerMolecule:  true,
	SecondAreaPerMolecule: true,
	FirstSolvation:        true,
	SecondSolvation:       true,
}

// ConstrainMultipleContrast makes the selected parameters of s follow those of
// other, so that a surfactant measured against several solvents is described
// by one structure.
func (s *SurfactantLayer) ConstrainMultipleContrast(other *SurfactantLayer, opts ContrastOptions) error {
	if other == nil || other == s {
		return serrors.With(serrors.ErrValidation, "surfactant %q needs another contrast", s.name)
	}

	links := []struct {
		on       bool
		dep, src *param.Parameter
	}{
		{opts.FirstThickness, s.first.thickness, other.first.thickness},
		{opts.SecondThickness, s.second.thickness, other.second.thickness},
		{opts.FirstAreaPerMolecule, s.first.areaPerMolecule, other.first.areaPerMolecule},
		{opts.SecondAreaPerMolecule, s.second.areaPerMolecule, other.second.areaPerMolecule},
		{opts.FirstSolvation, s.first.solvation, other.first.solvation},
		{opts.SecondSolvation, s.second.solvation, other.second.solvation},
	}
	for _, l := range links {
		if !l.on {
			continue
		}
		if err := follow(true, l.src, l.dep); err != nil {
			return fmt.Errorf("could not constrain %q to %q: %w", s.name, other.name, err)
		}
	}

	return nil
}

// Slabs implements Item.
func (s *SurfactantLayer) Slabs() []Slab {
	return append(s.first.Slabs(), s.second.Slabs()...)
}

// Parameters implements Item.
func (s *SurfactantLayer) Parameters() []*param.Parameter {
	ps := append(s.first.Parameters(), s.second.Parameters()...)
	if s.areaPerMolecule != nil {
		ps = append(ps, s.areaPerMolecule)
	}
	if s.roughness != nil {
		ps = append(ps, s.roughness)
	}

	return param.Unique(ps)
}
