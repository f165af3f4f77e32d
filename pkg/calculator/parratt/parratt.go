// Package parratt computes specular reflectivity with Parratt's recursion.
//
// The engine keeps its own columnar representation ordered from the
// substrate up: depth, rho and irho per medium, plus the width of the N-1
// interfaces between them. Q must be sorted in non-decreasing order.
package parratt

import (
	"context"
	"math"
	"math/cmplx"
	"slices"

	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"
)

// Name is the backend name of the engine.
const Name = "parratt"

// Engine is the Parratt recursion engine.
type Engine struct{}

// New returns a Parratt engine.
func New() *Engine { return &Engine{} }

// Name returns the backend name.
func (*Engine) Name() string { return Name }

// RequiresSortedQ reports that q must be non-decreasing.
func (*Engine) RequiresSortedQ() bool { return true }

// stack is the substrate-first representation.
type stack struct {
	depth []float64
	rho   []float64
	irho  []float64
	// sigma[i] is the width of the interface between medium i and i+1.
	sigma []float64
}

func build(slabs []sample.Slab) (*stack, error) {
	n := len(slabs)
	if n < 2 {
		return nil, serrors.With(serrors.ErrCalculation, "need at least two media, got %d", n)
	}

	s := &stack{
		depth: make([]float64, n),
		rho:   make([]float64, n),
		irho:  make([]float64, n),
		sigma: make([]float64, n-1),
	}
	for i := range n {
		src := slabs[n-1-i]
		if src.Thickness < 0 || src.Roughness < 0 {
			return nil, serrors.With(serrors.ErrCalculation, "medium %d has negative thickness or roughness", n-1-i)
		}
		s.depth[i], s.rho[i], s.irho[i] = src.Thickness, src.SLD, math.Abs(src.ISLD)
		if i < n-1 {
			s.sigma[i] = src.Roughness
		}
	}
	for _, col := range [][]float64{s.depth, s.rho, s.irho, s.sigma} {
		for _, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, serrors.With(serrors.ErrCalculation, "structure contains non-finite values")
			}
		}
	}

	return s, nil
}

// Reflectivity returns the reflectivity at every q. It rejects unsorted q.
func (e *Engine) Reflectivity(ctx context.Context, slabs []sample.Slab, q []float64) ([]float64, error) {
	if !slices.IsSorted(q) {
		return nil, serrors.With(serrors.ErrCalculation, "parratt engine requires non-decreasing q")
	}
	s, err := build(slabs)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(q))
	k := make([]complex128, len(s.rho))
	for i, qi := range q {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = s.reflectivity(qi, k)
	}

	return out, nil
}

func (s *stack) reflectivity(q float64, k []complex128) float64 {
	n := len(s.rho)
	top := n - 1
	kz := complex(q/2, 0)
	for i := range n {
		if i == top {
			k[i] = kz

			continue
		}
		d := complex(4*math.Pi*(s.rho[i]-s.rho[top])*1e-6, 4*math.Pi*(s.irho[i]+1e-30)*1e-6)
		k[i] = cmplx.Sqrt(kz*kz - d)
	}

	var x complex128
	for i := 0; i < top; i++ {
		lower, upper := k[i], k[i+1]
		var r complex128
		if sum := upper + lower; sum != 0 {
			r = (upper - lower) / sum
		}
		r *= cmplx.Exp(complex(-2*s.sigma[i]*s.sigma[i], 0) * upper * lower)

		phase := cmplx.Exp(complex(0, -2*s.depth[i]) * lower)
		xp := x * phase
		den := 1 + r*xp
		if den == 0 {
			return 1
		}
		x = (r + xp) / den
	}

	return real(x)*real(x) + imag(x)*imag(x)
}
