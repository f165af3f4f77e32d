// Package description reads and writes the YAML description of models and
// multi-model projects: structure, parameter state, constraints and data.
package description

// Parameter is the persisted state of one fit parameter. Bounds are
// intersected with the natural bounds of the parameter.
type Parameter struct {
	Value float64  `yaml:"value"`
	Vary  bool     `yaml:"vary,omitempty"`
	Min   *float64 `yaml:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"`
}

// Material is a named SLD.
type Material struct {
	Name string    `yaml:"name" validate:"required"`
	SLD  Parameter `yaml:"sld"`
	ISLD Parameter `yaml:"isld"`
}

// Layer is a slab of a named material.
type Layer struct {
	Name      string    `yaml:"name" validate:"required"`
	Material  string    `yaml:"material" validate:"required"`
	Thickness Parameter `yaml:"thickness"`
	Roughness Parameter `yaml:"roughness"`
}

// Repeating is a block of layers repeated several times.
type Repeating struct {
	Name        string    `yaml:"name" validate:"required"`
	Repetitions Parameter `yaml:"repetitions"`
	Layers      []Layer   `yaml:"layers" validate:"required,min=1,dive"`
}

// AreaPerMolecule is a layer described by its chemistry.
type AreaPerMolecule struct {
	Name            string    `yaml:"name" validate:"required"`
	Formula         string    `yaml:"formula" validate:"required"`
	Solvent         string    `yaml:"solvent" validate:"required"`
	Thickness       Parameter `yaml:"thickness"`
	Roughness       Parameter `yaml:"roughness"`
	AreaPerMolecule Parameter `yaml:"area_per_molecule"`
	Solvation       Parameter `yaml:"solvation"`
}

// Surfactant is a pair of area-per-molecule layers.
type Surfactant struct {
	Name                      string          `yaml:"name" validate:"required"`
	First                     AreaPerMolecule `yaml:"first"`
	Second                    AreaPerMolecule `yaml:"second"`
	ConstrainAreaPerMolecule  bool            `yaml:"constrain_area_per_molecule,omitempty"`
	ConformalRoughness        bool            `yaml:"conformal_roughness,omitempty"`
	ConstrainSolventRoughness bool            `yaml:"constrain_solvent_roughness,omitempty"`
}

// Item holds exactly one stackable item.
type Item struct {
	Layer           *Layer           `yaml:"layer,omitempty"`
	Repeating       *Repeating       `yaml:"repeating,omitempty"`
	AreaPerMolecule *AreaPerMolecule `yaml:"area_per_molecule,omitempty"`
	Surfactant      *Surfactant      `yaml:"surfactant,omitempty"`
}

// Sample is the layer stack between two media.
type Sample struct {
	// Name prefixes the sub-phase roughness parameter. It defaults to the
	// model name.
	Name              string    `yaml:"name,omitempty"`
	Superphase        string    `yaml:"superphase" validate:"required"`
	Subphase          string    `yaml:"subphase" validate:"required"`
	SubphaseRoughness Parameter `yaml:"subphase_roughness"`
	Items             []Item    `yaml:"items,omitempty" validate:"dive"`
}

// Resolution is the instrumental resolution of a model.
type Resolution struct {
	Kind  string     `yaml:"kind" validate:"required,oneof=percent pointwise"`
	// Name of the percent parameter, "<model>.resolution" when empty.
	Name  string     `yaml:"name,omitempty"`
	Value *Parameter `yaml:"value,omitempty" validate:"required_if=Kind percent"`
}

// Constraint derives Target from an expression over Vars, which map
// expression variables onto parameter names.
type Constraint struct {
	Target     string            `yaml:"target" validate:"required"`
	Expression string            `yaml:"expression" validate:"required"`
	Vars       map[string]string `yaml:"vars,omitempty" validate:"dive,keys,required,endkeys,required"`
}

// Data is an inline measured curve.
type Data struct {
	Q  []float64 `yaml:"q" validate:"required,min=1"`
	R  []float64 `yaml:"r" validate:"required,min=1"`
	E  []float64 `yaml:"e,omitempty"`
	DQ []float64 `yaml:"dq,omitempty"`
}

// Model is the full description of one model.
type Model struct {
	Name        string       `yaml:"name" validate:"required"`
	Materials   []Material   `yaml:"materials" validate:"required,min=1,dive"`
	Sample      Sample       `yaml:"sample"`
	Scale       *Parameter   `yaml:"scale,omitempty"`
	Background  *Parameter   `yaml:"background,omitempty"`
	Resolution  *Resolution  `yaml:"resolution,omitempty"`
	Constraints []Constraint `yaml:"constraints,omitempty" validate:"dive"`
	Data        *Data        `yaml:"data,omitempty"`
}

// FitOptions tunes the minimizer of a project.
type FitOptions struct {
	MaxIterations int       `yaml:"max_iterations,omitempty" validate:"gte=0"`
	Tolerance     float64   `yaml:"tolerance,omitempty" validate:"gte=0"`
	Weights       []float64 `yaml:"weights,omitempty" validate:"dive,gt=0"`
}

// Project groups models fitted together. Project constraints refer to
// parameters as "<model>/<parameter>".
type Project struct {
	Name        string       `yaml:"name" validate:"required"`
	Engine      string       `yaml:"engine,omitempty" validate:"omitempty,oneof=abeles parratt"`
	Smearing    string       `yaml:"smearing,omitempty" validate:"omitempty,oneof=interface engine"`
	Models      []Model      `yaml:"models" validate:"required,min=1,dive"`
	Constraints []Constraint `yaml:"constraints,omitempty" validate:"dive"`
	Fit         FitOptions   `yaml:"fit,omitempty"`
}
