package description

import (
	"bytes"
	"math"
	"slices"

	"reflectometry/pkg/model"
	"reflectometry/pkg/param"
	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"

	"gopkg.in/yaml.v3"
)

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not encode description")
	}
	if err := enc.Close(); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not encode description")
	}

	return buf.Bytes(), nil
}

// EncodeModel writes m as a model document. Constraints reaching outside m
// cannot be expressed in a model document and fail with a validation error.
func EncodeModel(m *model.Model) ([]byte, error) {
	dto, err := DescribeModel(m)
	if err != nil {
		return nil, err
	}

	return marshal(dto)
}

// DescribeModel maps m onto its DTO.
func DescribeModel(m *model.Model) (Model, error) {
	dto, external, err := describeModel(m)
	if err != nil {
		return Model{}, err
	}
	if len(external) > 0 {
		return Model{}, serrors.With(serrors.ErrValidation,
			"constraint on %q refers to parameters outside model %q", external[0].Name(), m.Name())
	}

	return dto, nil
}

// EncodeProject writes p as a project document. Constraints between models
// become project constraints.
func EncodeProject(p *FitProject) ([]byte, error) {
	dto, err := DescribeProject(p)
	if err != nil {
		return nil, err
	}

	return marshal(dto)
}

// DescribeProject maps p onto its DTO.
func DescribeProject(p *FitProject) (Project, error) {
	if p == nil {
		return Project{}, serrors.With(serrors.ErrValidation, "project is nil")
	}

	dto := Project{
		Name:     p.Name,
		Engine:   string(p.Backend),
		Smearing: string(p.Smearing),
		Fit: FitOptions{
			MaxIterations: p.Options.MaxIterations,
			Tolerance:     p.Options.Tolerance,
			Weights:       slices.Clone(p.Weights),
		},
	}

	refs := make(map[*param.Parameter]string)
	var shared, external []*param.Parameter
	var sharedRefs []string
	seen := make(map[*param.Parameter]struct{})
	for _, m := range p.Models {
		md, ext, err := describeModel(m)
		if err != nil {
			return Project{}, err
		}
		for _, prm := range m.Parameters() {
			ref := m.Name() + ProjectSeparator + prm.Name()
			first, ok := refs[prm]
			if !ok {
				refs[prm] = ref

				continue
			}
			// a parameter owned by several models is written once per model
			// and tied back to its first occurrence
			if prm.Constraint() == nil && first != ref {
				shared = append(shared, prm)
				sharedRefs = append(sharedRefs, ref)
			}
		}
		for _, e := range ext {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				external = append(external, e)
			}
		}
		dto.Models = append(dto.Models, md)
	}

	for i, prm := range shared {
		dto.Constraints = append(dto.Constraints, Constraint{
			Target:     sharedRefs[i],
			Expression: "x",
			Vars:       map[string]string{"x": refs[prm]},
		})
	}

	for _, target := range external {
		c := target.Constraint()
		out := Constraint{Target: refs[target], Expression: c.Expression(), Vars: make(map[string]string)}
		for v, src := range c.Vars() {
			ref, ok := refs[src]
			if !ok {
				return Project{}, serrors.With(serrors.ErrValidation,
					"constraint on %q refers to %q outside the project", target.Name(), src.Name())
			}
			out.Vars[v] = ref
		}
		dto.Constraints = append(dto.Constraints, out)
	}

	return dto, nil
}

// describeModel returns the DTO of m and the constrained parameters whose
// sources lie outside m.
func describeModel(m *model.Model) (Model, []*param.Parameter, error) {
	if m == nil {
		return Model{}, nil, serrors.With(serrors.ErrValidation, "model is nil")
	}

	s := m.Sample()
	dto := Model{
		Name: m.Name(),
		Sample: Sample{
			Name:              s.Name(),
			Superphase:        s.Superphase().Name(),
			Subphase:          s.Subphase().Name(),
			SubphaseRoughness: describe(s.SubphaseRoughness()),
		},
	}
	materials := make(map[string]*sample.Material)
	for _, mat := range s.Materials() {
		if prev, ok := materials[mat.Name()]; ok && prev != mat {
			return Model{}, nil, serrors.With(serrors.ErrValidation,
				"model %q has distinct materials named %q", m.Name(), mat.Name())
		}
		materials[mat.Name()] = mat
		dto.Materials = append(dto.Materials, Material{
			Name: mat.Name(),
			SLD:  describe(mat.SLD()),
			ISLD: describe(mat.ISLD()),
		})
	}

	implied := make(map[*param.Parameter]struct{})
	for _, it := range s.Layers() {
		item, err := describeItem(it, s, implied)
		if err != nil {
			return Model{}, nil, err
		}
		dto.Sample.Items = append(dto.Sample.Items, item)
	}

	scale, bkg := describe(m.Scale()), describe(m.Background())
	dto.Scale, dto.Background = &scale, &bkg

	switch r := m.Resolution(); r.Kind() {
	case model.ResolutionPercent:
		v := describe(r.Percent())
		dto.Resolution = &Resolution{Kind: string(model.ResolutionPercent), Name: r.Percent().Name(), Value: &v}
	case model.ResolutionPointwise:
		dto.Resolution = &Resolution{Kind: string(model.ResolutionPointwise)}
	default:
		return Model{}, nil, serrors.With(serrors.ErrValidation,
			"resolution %q of model %q cannot be described", r.Kind(), m.Name())
	}

	if d := m.Data(); d != nil {
		dto.Data = &Data{Q: d.Q, R: d.R, E: d.E, DQ: d.DQ}
	}

	params := m.Parameters()
	own := make(map[*param.Parameter]struct{}, len(params))
	names := make(map[string]*param.Parameter, len(params))
	for _, p := range params {
		own[p] = struct{}{}
		if prev, ok := names[p.Name()]; ok && prev != p {
			return Model{}, nil, serrors.With(serrors.ErrValidation,
				"model %q has distinct parameters named %q", m.Name(), p.Name())
		}
		names[p.Name()] = p
	}

	var external []*param.Parameter
	for _, p := range params {
		c := p.Constraint()
		if c == nil || c.Derived() {
			continue
		}
		if _, ok := implied[p]; ok {
			continue
		}

		vars := c.Vars()
		inside := true
		for _, src := range vars {
			if _, ok := own[src]; !ok {
				inside = false

				break
			}
		}
		if !inside {
			external = append(external, p)

			continue
		}

		out := Constraint{Target: p.Name(), Expression: c.Expression(), Vars: make(map[string]string, len(vars))}
		for v, src := range vars {
			out.Vars[v] = src.Name()
		}
		dto.Constraints = append(dto.Constraints, out)
	}

	return dto, external, nil
}

func describeItem(it sample.Item, s *sample.Sample, implied map[*param.Parameter]struct{}) (Item, error) {
	switch v := it.(type) {
	case *sample.Layer:
		l := describeLayer(v)

		return Item{Layer: &l}, nil
	case *sample.RepeatingMultiLayer:
		r := Repeating{Name: v.Name(), Repetitions: describe(v.Repetitions())}
		for _, l := range v.Layers() {
			r.Layers = append(r.Layers, describeLayer(l))
		}

		return Item{Repeating: &r}, nil
	case *sample.LayerAreaPerMolecule:
		a := describeAPM(v)

		return Item{AreaPerMolecule: &a}, nil
	case *sample.SurfactantLayer:
		sd := Surfactant{
			Name:                     v.Name(),
			First:                    describeAPM(v.First()),
			Second:                   describeAPM(v.Second()),
			ConstrainAreaPerMolecule: v.AreaPerMoleculeConstrained(),
			ConformalRoughness:       v.Conformal(),
		}
		if v.AreaPerMoleculeConstrained() {
			sd.First.AreaPerMolecule = describe(v.AreaPerMolecule())
			implied[v.First().AreaPerMolecule()] = struct{}{}
			implied[v.Second().AreaPerMolecule()] = struct{}{}
		}
		if v.Conformal() {
			sd.First.Roughness = describe(v.Roughness())
			implied[v.First().Roughness()] = struct{}{}
			implied[v.Second().Roughness()] = struct{}{}
			if follows(s.SubphaseRoughness(), v.Roughness()) {
				sd.ConstrainSolventRoughness = true
				implied[s.SubphaseRoughness()] = struct{}{}
			}
		}

		return Item{Surfactant: &sd}, nil
	default:
		return Item{}, serrors.With(serrors.ErrValidation, "item %q of type %T cannot be described", it.Name(), it)
	}
}

func describeLayer(l *sample.Layer) Layer {
	return Layer{
		Name:      l.Name(),
		Material:  l.Material().Name(),
		Thickness: describe(l.Thickness()),
		Roughness: describe(l.Roughness()),
	}
}

func describeAPM(l *sample.LayerAreaPerMolecule) AreaPerMolecule {
	return AreaPerMolecule{
		Name:            l.Name(),
		Formula:         l.Formula(),
		Solvent:         l.Solvent().Name(),
		Thickness:       describe(l.Thickness()),
		Roughness:       describe(l.Roughness()),
		AreaPerMolecule: describe(l.AreaPerMolecule()),
		Solvation:       describe(l.Solvation()),
	}
}

// follows reports whether dep is a plain link to src.
func follows(dep, src *param.Parameter) bool {
	c := dep.Constraint()
	if c == nil || src == nil {
		return false
	}

	return slices.Equal(c.Sources(), []*param.Parameter{src}) && c.Expression() == "x"
}

func describe(p *param.Parameter) Parameter {
	out := Parameter{Value: p.Value(), Vary: !p.Fixed()}
	lo, hi := p.Bounds()
	if !math.IsInf(lo, 0) {
		out.Min = &lo
	}
	if !math.IsInf(hi, 0) {
		out.Max = &hi
	}

	return out
}
