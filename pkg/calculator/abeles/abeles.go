// Package abeles computes specular reflectivity with the Abeles
// characteristic matrix method and Névot–Croce interfacial roughness.
//
// The native representation is an N×4 slab matrix, fronting medium first,
// with columns thickness, sld, isld and roughness.
package abeles

import (
	"context"
	"math"
	"math/cmplx"

	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"
)

// Name is the backend name of the engine.
const Name = "abeles"

// tiny keeps the wavevector of non-absorbing media off the branch cut.
const tiny = 1e-30

// Engine is the Abeles matrix engine. The zero value is ready to use.
type Engine struct {
	// Nodes is the number of Gauss–Legendre nodes used for native resolution
	// smearing. Zero means 17.
	Nodes int
}

// New returns an engine with default settings.
func New() *Engine { return &Engine{} }

// Name returns the backend name.
func (e *Engine) Name() string { return Name }

type layers [][4]float64

func build(slabs []sample.Slab) (layers, error) {
	if len(slabs) < 2 {
		return nil, serrors.With(serrors.ErrCalculation, "need at least fronting and backing media, got %d slabs", len(slabs))
	}

	out := make(layers, len(slabs))
	for i, s := range slabs {
		row := [4]float64{s.Thickness, s.SLD, s.ISLD, s.Roughness}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, serrors.With(serrors.ErrCalculation, "slab %d has non-finite value", i)
			}
		}
		if s.Thickness < 0 || s.Roughness < 0 {
			return nil, serrors.With(serrors.ErrCalculation, "slab %d has negative thickness or roughness", i)
		}
		out[i] = row
	}

	return out, nil
}

// Reflectivity returns the unsmeared reflectivity at every q. q may be unsorted.
func (e *Engine) Reflectivity(ctx context.Context, slabs []sample.Slab, q []float64) ([]float64, error) {
	w, err := build(slabs)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(q))
	for i, qi := range q {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = w.reflectivity(qi)
	}

	return out, nil
}

func (w layers) reflectivity(q float64) float64 {
	n := len(w)
	kz := complex(q/2, 0)

	sld := make([]complex128, n)
	for j := 1; j < n; j++ {
		sld[j] = complex(4*math.Pi*(w[j][1]-w[0][1])*1e-6, 4*math.Pi*(math.Abs(w[j][2])+tiny)*1e-6)
	}

	var m00, m01, m10, m11 complex128 = 1, 0, 0, 1
	kn := kz
	for j := 1; j < n; j++ {
		next := cmplx.Sqrt(kz*kz - sld[j])

		var r complex128
		if sum := kn + next; sum != 0 {
			r = (kn - next) / sum
		}
		sigma := w[j][3]
		r *= cmplx.Exp(complex(-2*sigma*sigma, 0) * kn * next)

		var beta complex128
		if j > 1 {
			beta = kn * complex(0, w[j-1][0])
		}
		ep, em := cmplx.Exp(beta), cmplx.Exp(-beta)

		a00, a01 := ep, r*ep
		a10, a11 := r*em, em
		m00, m01, m10, m11 = m00*a00+m01*a10, m00*a01+m01*a11, m10*a00+m11*a10, m10*a01+m11*a11

		kn = next
	}

	if m00 == 0 {
		return 1
	}
	ratio := m10 / m00

	return real(ratio)*real(ratio) + imag(ratio)*imag(ratio)
}
