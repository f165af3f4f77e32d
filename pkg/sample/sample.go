package sample

import (
	"fmt"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
	"slices"
)

// Sample is an ordered stack of items between a super-phase (where the beam
// comes from) and a sub-phase. Both boundary media are semi-infinite.
type Sample struct {
	name              string
	superphase        *Material
	subphase          *Material
	subphaseRoughness *param.Parameter
	items             []Item
}

// New creates a sample. With no items the sample is a bare interface between
// the two media whose width is subphaseRoughness.
func New(name string, superphase, subphase *Material, subphaseRoughness float64, items ...Item) (*Sample, error) {
	if superphase == nil || subphase == nil {
		return nil, serrors.With(serrors.ErrValidation, "sample %q needs both super-phase and sub-phase media", name)
	}

	rough, err := newLength(name+".subphase_roughness", subphaseRoughness, "roughness of the sub-phase interface")
	if err != nil {
		return nil, err
	}

	s := &Sample{
		name:              name,
		superphase:        superphase,
		subphase:          subphase,
		subphaseRoughness: rough,
	}
	for _, it := range items {
		if err := s.InsertLayer(len(s.items), it); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Name returns the sample name.
func (s *Sample) Name() string { return s.name }

// Superphase returns the fronting medium.
func (s *Sample) Superphase() *Material { return s.superphase }

// Subphase returns the backing medium.
func (s *Sample) Subphase() *Material { return s.subphase }

// SetSuperphase replaces the fronting medium.
func (s *Sample) SetSuperphase(m *Material) error {
	if m == nil {
		return serrors.With(serrors.ErrValidation, "sample %q needs a super-phase medium", s.name)
	}
	s.superphase = m

	return nil
}

// SetSubphase replaces the backing medium.
func (s *Sample) SetSubphase(m *Material) error {
	if m == nil {
		return serrors.With(serrors.ErrValidation, "sample %q needs a sub-phase medium", s.name)
	}
	s.subphase = m

	return nil
}

// SubphaseRoughness returns the width of the last interface.
func (s *Sample) SubphaseRoughness() *param.Parameter { return s.subphaseRoughness }

// Len returns the number of stacked items.
func (s *Sample) Len() int { return len(s.items) }

// Layers returns a copy of the stacked items in physical order.
func (s *Sample) Layers() []Item { return slices.Clone(s.items) }

// InsertLayer inserts item at index, shifting the items at and after index down
// the stack. index may equal Len to append.
func (s *Sample) InsertLayer(index int, item Item) error {
	if item == nil {
		return serrors.With(serrors.ErrValidation, "cannot insert nil item into sample %q", s.name)
	}
	if index < 0 || index > len(s.items) {
		return serrors.With(serrors.ErrValidation,
			"insert index %d out of range [0, %d] in sample %q", index, len(s.items), s.name)
	}
	if slices.Contains(s.items, item) {
		return serrors.With(serrors.ErrValidation, "item %q is already part of sample %q", item.Name(), s.name)
	}
	s.items = slices.Insert(s.items, index, item)

	return nil
}

// AppendLayer adds item at the bottom of the stack, just above the sub-phase.
func (s *Sample) AppendLayer(item Item) error {
	return s.InsertLayer(len(s.items), item)
}

// RemoveLayer removes and returns the item at index.
func (s *Sample) RemoveLayer(index int) (Item, error) {
	if index < 0 || index >= len(s.items) {
		return nil, serrors.With(serrors.ErrValidation,
			"remove index %d out of range [0, %d) in sample %q", index, len(s.items), s.name)
	}
	it := s.items[index]
	s.items = slices.Delete(s.items, index, index+1)

	return it, nil
}

// Slabs flattens the sample: super-phase, every item's slabs, sub-phase.
func (s *Sample) Slabs() []Slab {
	out := make([]Slab, 0, len(s.items)+2)
	out = append(out, Slab{SLD: s.superphase.sld.Value(), ISLD: s.superphase.isld.Value()})
	for _, it := range s.items {
		out = append(out, it.Slabs()...)
	}
	out = append(out, Slab{
		SLD:       s.subphase.sld.Value(),
		ISLD:      s.subphase.isld.Value(),
		Roughness: s.subphaseRoughness.Value(),
	})

	return out
}

// Parameters returns every parameter of the sample without duplicates, in
// stacking order.
func (s *Sample) Parameters() []*param.Parameter {
	ps := s.superphase.Parameters()
	for _, it := range s.items {
		ps = append(ps, it.Parameters()...)
	}
	ps = append(ps, s.subphase.Parameters()...)
	ps = append(ps, s.subphaseRoughness)

	return param.Unique(ps)
}

// Materials returns the distinct materials referenced by the sample, in
// stacking order.
func (s *Sample) Materials() []*Material {
	var out []*Material
	add := func(m *Material) {
		if m != nil && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}

	add(s.superphase)
	for _, it := range s.items {
		for _, m := range itemMaterials(it) {
			add(m)
		}
	}
	add(s.subphase)

	return out
}

func itemMaterials(it Item) []*Material {
	switch v := it.(type) {
	case *Layer:
		return []*Material{v.material}
	case *RepeatingMultiLayer:
		out := make([]*Material, 0, len(v.layers))
		for _, l := range v.layers {
			out = append(out, l.material)
		}

		return out
	case *LayerAreaPerMolecule:
		return []*Material{v.solvent}
	case *SurfactantLayer:
		return []*Material{v.first.solvent, v.second.solvent}
	default:
		return nil
	}
}

// String implements fmt.Stringer.
func (s *Sample) String() string {
	return fmt.Sprintf("%s: %s | %d items | %s", s.name, s.superphase.name, len(s.items), s.subphase.name)
}
