package sample

import (
	"fmt"
	"math"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
	"slices"
)

// MaxRepetitions bounds the repetition count of a RepeatingMultiLayer.
const MaxRepetitions = 9999

// RepeatingMultiLayer is a block of layers stacked Repetitions times.
type RepeatingMultiLayer struct {
	name        string
	layers      []*Layer
	repetitions *param.Parameter
}

var _ Item = (*RepeatingMultiLayer)(nil)

// NewRepeatingMultiLayer repeats layers, top to bottom, repetitions times.
func NewRepeatingMultiLayer(name string, repetitions float64, layers ...*Layer) (*RepeatingMultiLayer, error) {
	if len(layers) == 0 {
		return nil, serrors.With(serrors.ErrValidation, "multilayer %q has no layers", name)
	}
	if slices.Contains(layers, nil) {
		return nil, serrors.With(serrors.ErrValidation, "multilayer %q contains a nil layer", name)
	}

	reps, err := param.New(name+".repetitions", repetitions,
		param.WithBounds(1, MaxRepetitions),
		param.WithDescription("number of repetitions of the layer block"))
	if err != nil {
		return nil, fmt.Errorf("could not create multilayer %q: %w", name, err)
	}

	return &RepeatingMultiLayer{name: name, layers: slices.Clone(layers), repetitions: reps}, nil
}

// NewMultiLayer groups layers without repeating them.
func NewMultiLayer(name string, layers ...*Layer) (*RepeatingMultiLayer, error) {
	return NewRepeatingMultiLayer(name, 1, layers...)
}

// Name returns the multilayer name.
func (m *RepeatingMultiLayer) Name() string { return m.name }

// Layers returns a copy of the repeated block.
func (m *RepeatingMultiLayer) Layers() []*Layer { return slices.Clone(m.layers) }

// Repetitions returns the repetition parameter.
func (m *RepeatingMultiLayer) Repetitions() *param.Parameter { return m.repetitions }

// Slabs implements Item. Fractional repetition counts are truncated.
func (m *RepeatingMultiLayer) Slabs() []Slab {
	n := max(int(math.Floor(m.repetitions.Value())), 1)
	block := make([]Slab, 0, len(m.layers))
	for _, l := range m.layers {
		block = append(block, l.Slabs()...)
	}

	out := make([]Slab, 0, n*len(block))
	for range n {
		out = append(out, block...)
	}

	return out
}

// Parameters implements Item.
func (m *RepeatingMultiLayer) Parameters() []*param.Parameter {
	ps := []*param.Parameter{m.repetitions}
	for _, l := range m.layers {
		ps = append(ps, l.Parameters()...)
	}

	return param.Unique(ps)
}
