// Package calculator turns a model into a reflectivity curve through one of
// several interchangeable engines.
//
// Engines only see the flattened slab list of a sample; model code never
// changes with the selected backend. The Calculator resolves constraints,
// validates Q, caches the unscaled smeared curve per structure and applies
// scale and background on every call.
package calculator

import (
	"context"
	"fmt"
	"strings"

	"reflectometry/pkg/calculator/abeles"
	"reflectometry/pkg/calculator/parratt"
	"reflectometry/pkg/model"
	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"
)

// Engine computes unsmeared, unscaled reflectivity of a slab stack.
type Engine interface {
	// Name identifies the engine in errors and metrics.
	Name() string
	// Reflectivity returns one value per q.
	Reflectivity(ctx context.Context, slabs []sample.Slab, q []float64) ([]float64, error)
}

// ResolutionEngine is an engine that applies Gaussian resolution smearing
// itself. widths are FWHM values, one per q.
type ResolutionEngine interface {
	Engine
	SmearedReflectivity(ctx context.Context, slabs []sample.Slab, q, widths []float64) ([]float64, error)
}

// OrderedEngine is an engine that may only be called with sorted q.
type OrderedEngine interface {
	Engine
	RequiresSortedQ() bool
}

// Backend enumerates the built-in engines.
type Backend string

const (
	BackendAbeles  Backend = abeles.Name
	BackendParratt Backend = parratt.Name
)

// Backends lists every supported backend.
var Backends = []Backend{BackendAbeles, BackendParratt}

// ParseBackend maps a configuration value onto a Backend.
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case BackendAbeles, BackendParratt:
		return b, nil
	default:
		return "", serrors.With(serrors.ErrConfiguration, "unknown calculation backend %q", s)
	}
}

// NewEngine creates the engine of a backend.
func NewEngine(b Backend) (Engine, error) {
	switch b {
	case BackendAbeles:
		return abeles.New(), nil
	case BackendParratt:
		return parratt.New(), nil
	default:
		return nil, serrors.With(serrors.ErrConfiguration, "unknown calculation backend %q", string(b))
	}
}

// SmearingMode selects who applies resolution smearing.
type SmearingMode string

const (
	// SmearInterface convolves every engine's curve in the Calculator.
	SmearInterface SmearingMode = "interface"
	// SmearEngine delegates to engines implementing ResolutionEngine and falls
	// back to SmearInterface for the others.
	SmearEngine SmearingMode = "engine"
)

// ParseSmearingMode maps a configuration value onto a SmearingMode.
func ParseSmearingMode(s string) (SmearingMode, error) {
	switch m := SmearingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SmearInterface, SmearEngine:
		return m, nil
	case "":
		return SmearInterface, nil
	default:
		return "", serrors.With(serrors.ErrConfiguration, "unknown smearing mode %q", s)
	}
}

// CalculationError reports an engine failure on a model.
type CalculationError struct {
	Model  *model.Model
	Engine string
	Err    error
}

func (e *CalculationError) Error() string {
	name := "<nil>"
	if e.Model != nil {
		name = e.Model.Name()
	}

	return fmt.Sprintf("engine %s failed on model %s: %v", e.Engine, name, e.Err)
}

func (e *CalculationError) Unwrap() error { return e.Err }
