package description

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"reflectometry/pkg/calculator"
	"reflectometry/pkg/fitting"
	"reflectometry/pkg/model"
	"reflectometry/pkg/param"
	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"

	"gopkg.in/yaml.v3"
)

// ProjectSeparator joins a model name and a parameter name in project
// constraints.
const ProjectSeparator = "/"

// FitProject is a decoded project ready to be fitted.
type FitProject struct {
	Name     string
	Backend  calculator.Backend
	Smearing calculator.SmearingMode
	Models   []*model.Model
	Weights  []float64
	Options  fitting.Options
}

func unmarshal(b []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return serrors.With(serrors.ErrValidation, "empty description")
		}

		return serrors.Wrap(serrors.ErrValidation, err, "could not parse description")
	}

	return nil
}

// DecodeModel parses a single model document.
func DecodeModel(b []byte) (*model.Model, error) {
	var dto Model
	if err := unmarshal(b, &dto); err != nil {
		return nil, err
	}

	return BuildModel(dto)
}

// DecodeProject parses a project document.
func DecodeProject(b []byte) (*FitProject, error) {
	var dto Project
	if err := unmarshal(b, &dto); err != nil {
		return nil, err
	}

	return BuildProject(dto)
}

// BuildProject maps a project DTO onto models.
func BuildProject(dto Project) (*FitProject, error) {
	if err := check(dto); err != nil {
		return nil, err
	}
	if len(dto.Fit.Weights) > 0 && len(dto.Fit.Weights) != len(dto.Models) {
		return nil, serrors.With(serrors.ErrValidation,
			"fit.weights has %d entries for %d models", len(dto.Fit.Weights), len(dto.Models))
	}

	p := &FitProject{
		Name: dto.Name,
		Options: fitting.Options{
			MaxIterations: dto.Fit.MaxIterations,
			Tolerance:     dto.Fit.Tolerance,
		},
		Weights: dto.Fit.Weights,
	}
	if dto.Engine != "" {
		b, err := calculator.ParseBackend(dto.Engine)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrValidation, err, "invalid engine")
		}
		p.Backend = b
	}
	if dto.Smearing != "" {
		s, err := calculator.ParseSmearingMode(dto.Smearing)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrValidation, err, "invalid smearing")
		}
		p.Smearing = s
	}

	index := make(map[string]*param.Parameter)
	seen := make(map[string]struct{}, len(dto.Models))
	for _, md := range dto.Models {
		if _, ok := seen[md.Name]; ok {
			return nil, serrors.With(serrors.ErrValidation, "duplicate model %q", md.Name)
		}
		seen[md.Name] = struct{}{}

		m, err := buildModel(md)
		if err != nil {
			return nil, err
		}
		for _, prm := range m.Parameters() {
			index[md.Name+ProjectSeparator+prm.Name()] = prm
		}
		p.Models = append(p.Models, m)
	}

	if err := applyConstraints(dto.Constraints, index); err != nil {
		return nil, err
	}

	var all []*param.Parameter
	for _, m := range p.Models {
		all = append(all, m.Parameters()...)
	}
	if err := param.Resolve(all); err != nil {
		return nil, err
	}

	return p, nil
}

// BuildModel maps a model DTO onto a model.
func BuildModel(dto Model) (*model.Model, error) {
	if err := check(dto); err != nil {
		return nil, err
	}

	m, err := buildModel(dto)
	if err != nil {
		return nil, err
	}
	if err := param.Resolve(m.Parameters()); err != nil {
		return nil, err
	}

	return m, nil
}

// builder keeps the materials of one model while its items are created.
type builder struct {
	model     string
	materials map[string]*sample.Material
}

func buildModel(dto Model) (*model.Model, error) {
	b := &builder{model: dto.Name, materials: make(map[string]*sample.Material, len(dto.Materials))}
	for _, md := range dto.Materials {
		if _, ok := b.materials[md.Name]; ok {
			return nil, serrors.With(serrors.ErrValidation, "duplicate material %q in model %q", md.Name, dto.Name)
		}
		mat, err := sample.NewMaterial(md.Name, md.SLD.Value, md.ISLD.Value)
		if err != nil {
			return nil, err
		}
		if err := applyAll(pair{mat.SLD(), md.SLD}, pair{mat.ISLD(), md.ISLD}); err != nil {
			return nil, err
		}
		b.materials[md.Name] = mat
	}

	super, err := b.material(dto.Sample.Superphase)
	if err != nil {
		return nil, err
	}
	sub, err := b.material(dto.Sample.Subphase)
	if err != nil {
		return nil, err
	}

	items := make([]sample.Item, 0, len(dto.Sample.Items))
	var solventRoughness []*sample.SurfactantLayer
	for i, it := range dto.Sample.Items {
		item, err := b.item(i, it)
		if err != nil {
			return nil, err
		}
		if sl, ok := item.(*sample.SurfactantLayer); ok && it.Surfactant.ConstrainSolventRoughness {
			solventRoughness = append(solventRoughness, sl)
		}
		items = append(items, item)
	}

	sampleName := dto.Sample.Name
	if sampleName == "" {
		sampleName = dto.Name
	}
	s, err := sample.New(sampleName, super, sub, dto.Sample.SubphaseRoughness.Value, items...)
	if err != nil {
		return nil, err
	}
	if err := apply(s.SubphaseRoughness(), dto.Sample.SubphaseRoughness); err != nil {
		return nil, err
	}
	for _, sl := range solventRoughness {
		if err := sl.ConstrainSolventRoughness(s.SubphaseRoughness()); err != nil {
			return nil, err
		}
	}

	m, err := model.New(dto.Name, s)
	if err != nil {
		return nil, err
	}
	if err := b.instrument(m, dto); err != nil {
		return nil, err
	}

	index := make(map[string]*param.Parameter)
	for _, p := range m.Parameters() {
		if prev, ok := index[p.Name()]; ok && prev != p {
			return nil, serrors.With(serrors.ErrValidation, "duplicate parameter name %q in model %q", p.Name(), dto.Name)
		}
		index[p.Name()] = p
	}
	if err := applyConstraints(dto.Constraints, index); err != nil {
		return nil, fmt.Errorf("model %q: %w", dto.Name, err)
	}

	return m, nil
}

func (b *builder) instrument(m *model.Model, dto Model) error {
	if dto.Scale != nil {
		if err := apply(m.Scale(), *dto.Scale); err != nil {
			return err
		}
	}
	if dto.Background != nil {
		if err := apply(m.Background(), *dto.Background); err != nil {
			return err
		}
	}
	if r := dto.Resolution; r != nil {
		switch model.ResolutionKind(r.Kind) {
		case model.ResolutionPercent:
			name := r.Name
			if name == "" {
				name = dto.Name + ".resolution"
			}
			res, err := model.PercentResolution(name, r.Value.Value)
			if err != nil {
				return err
			}
			if err := apply(res.Percent(), *r.Value); err != nil {
				return err
			}
			if err := m.SetResolution(res); err != nil {
				return err
			}
		case model.ResolutionPointwise:
			if err := m.SetResolution(model.PointwiseResolution()); err != nil {
				return err
			}
		}
	}
	if d := dto.Data; d != nil {
		ds, err := model.NewDataset(d.Q, d.R, d.E, d.DQ)
		if err != nil {
			return err
		}
		if err := m.BindData(ds); err != nil {
			return err
		}
	}
	if m.Resolution().Kind() == model.ResolutionPointwise && (m.Data() == nil || m.Data().DQ == nil) {
		return serrors.With(serrors.ErrValidation, "model %q uses pointwise resolution without data dq", dto.Name)
	}

	return nil
}

func (b *builder) material(name string) (*sample.Material, error) {
	m, ok := b.materials[name]
	if !ok {
		return nil, serrors.With(serrors.ErrValidation, "unknown material %q in model %q", name, b.model)
	}

	return m, nil
}

func (b *builder) item(i int, it Item) (sample.Item, error) {
	set := 0
	for _, ok := range []bool{it.Layer != nil, it.Repeating != nil, it.AreaPerMolecule != nil, it.Surfactant != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, serrors.With(serrors.ErrValidation, "sample.items[%d] must hold exactly one item, got %d", i, set)
	}

	switch {
	case it.Layer != nil:
		return b.layer(*it.Layer)
	case it.Repeating != nil:
		return b.repeating(*it.Repeating)
	case it.AreaPerMolecule != nil:
		return b.areaPerMolecule(*it.AreaPerMolecule)
	default:
		return b.surfactant(*it.Surfactant)
	}
}

func (b *builder) layer(dto Layer) (*sample.Layer, error) {
	mat, err := b.material(dto.Material)
	if err != nil {
		return nil, err
	}
	l, err := sample.NewLayer(dto.Name, mat, dto.Thickness.Value, dto.Roughness.Value)
	if err != nil {
		return nil, err
	}
	if err := applyAll(pair{l.Thickness(), dto.Thickness}, pair{l.Roughness(), dto.Roughness}); err != nil {
		return nil, err
	}

	return l, nil
}

func (b *builder) repeating(dto Repeating) (*sample.RepeatingMultiLayer, error) {
	layers := make([]*sample.Layer, 0, len(dto.Layers))
	for _, ld := range dto.Layers {
		l, err := b.layer(ld)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}

	ml, err := sample.NewRepeatingMultiLayer(dto.Name, dto.Repetitions.Value, layers...)
	if err != nil {
		return nil, err
	}
	if err := apply(ml.Repetitions(), dto.Repetitions); err != nil {
		return nil, err
	}

	return ml, nil
}

func (b *builder) areaPerMolecule(dto AreaPerMolecule) (*sample.LayerAreaPerMolecule, error) {
	solvent, err := b.material(dto.Solvent)
	if err != nil {
		return nil, err
	}
	l, err := sample.NewLayerAreaPerMolecule(dto.Name, dto.Formula, solvent, sample.APMOptions{
		Thickness:       dto.Thickness.Value,
		Roughness:       dto.Roughness.Value,
		AreaPerMolecule: dto.AreaPerMolecule.Value,
		Solvation:       dto.Solvation.Value,
	})
	if err != nil {
		return nil, err
	}
	if err := applyAll(
		pair{l.Thickness(), dto.Thickness},
		pair{l.Roughness(), dto.Roughness},
		pair{l.AreaPerMolecule(), dto.AreaPerMolecule},
		pair{l.Solvation(), dto.Solvation},
	); err != nil {
		return nil, err
	}

	return l, nil
}

func (b *builder) surfactant(dto Surfactant) (*sample.SurfactantLayer, error) {
	first, err := b.areaPerMolecule(dto.First)
	if err != nil {
		return nil, err
	}
	second, err := b.areaPerMolecule(dto.Second)
	if err != nil {
		return nil, err
	}
	s, err := sample.NewSurfactantLayer(dto.Name, first, second)
	if err != nil {
		return nil, err
	}
	if dto.ConstrainAreaPerMolecule {
		if err := s.ConstrainAreaPerMolecule(true); err != nil {
			return nil, err
		}
		if err := apply(s.AreaPerMolecule(), dto.First.AreaPerMolecule); err != nil {
			return nil, err
		}
	}
	if dto.ConformalRoughness {
		if err := s.ConformalRoughness(true); err != nil {
			return nil, err
		}
		if err := apply(s.Roughness(), dto.First.Roughness); err != nil {
			return nil, err
		}
	}
	if dto.ConstrainSolventRoughness && !dto.ConformalRoughness {
		return nil, serrors.With(serrors.ErrValidation, "surfactant %q constrains the solvent roughness without conformal roughness", dto.Name)
	}

	return s, nil
}

type pair struct {
	p   *param.Parameter
	dto Parameter
}

func applyAll(pairs ...pair) error {
	for _, pr := range pairs {
		if err := apply(pr.p, pr.dto); err != nil {
			return err
		}
	}

	return nil
}

// apply writes value, bounds and vary flag of dto into p. Bounds are
// intersected with the bounds p was created with.
func apply(p *param.Parameter, dto Parameter) error {
	lo, hi := p.Bounds()
	if dto.Min != nil {
		lo = math.Max(lo, *dto.Min)
	}
	if dto.Max != nil {
		hi = math.Min(hi, *dto.Max)
	}

	if err := p.SetBounds(math.Inf(-1), math.Inf(1)); err != nil {
		return err
	}
	if err := p.Set(dto.Value); err != nil {
		return err
	}
	if err := p.SetBounds(lo, hi); err != nil {
		return err
	}
	p.SetFixed(!dto.Vary)

	return nil
}

func applyConstraints(cs []Constraint, index map[string]*param.Parameter) error {
	lookup := func(name string) (*param.Parameter, error) {
		p, ok := index[strings.TrimSpace(name)]
		if !ok {
			return nil, serrors.With(serrors.ErrValidation, "unknown parameter %q", name)
		}

		return p, nil
	}

	for _, c := range cs {
		target, err := lookup(c.Target)
		if err != nil {
			return err
		}
		if target.Constraint() != nil && target.Constraint().Derived() {
			return serrors.With(serrors.ErrValidation, "parameter %q is derived and cannot be constrained", c.Target)
		}

		vars := make(map[string]*param.Parameter, len(c.Vars))
		for v, name := range c.Vars {
			src, err := lookup(name)
			if err != nil {
				return err
			}
			vars[v] = src
		}
		if err := param.Expression(target, c.Expression, vars); err != nil {
			return err
		}
	}

	return nil
}
