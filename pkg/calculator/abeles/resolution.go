package abeles

import (
	"context"
	"math"

	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"
)

// fwhmToSigma converts a Gaussian full width at half maximum into a standard deviation.
var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

// gaussianSpan is the number of standard deviations covered on each side.
const gaussianSpan = 3.5

// SmearedReflectivity returns the reflectivity at every q convolved with a
// Gaussian of FWHM widths[i], integrated point-wise by Gauss–Legendre
// quadrature.
func (e *Engine) SmearedReflectivity(ctx context.Context, slabs []sample.Slab, q, widths []float64) ([]float64, error) {
	if len(widths) != len(q) {
		return nil, serrors.With(serrors.ErrCalculation, "%d resolution widths for %d q points", len(widths), len(q))
	}
	w, err := build(slabs)
	if err != nil {
		return nil, err
	}

	n := e.Nodes
	if n <= 0 {
		n = 17
	}
	x, wt := legendre(n)

	out := make([]float64, len(q))
	for i, qi := range q {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sigma := widths[i] * fwhmToSigma
		if sigma == 0 {
			out[i] = w.reflectivity(qi)

			continue
		}

		var sum, norm float64
		for k := range x {
			d := x[k] * gaussianSpan * sigma
			g := wt[k] * math.Exp(-d*d/(2*sigma*sigma))
			sum += g * w.reflectivity(math.Abs(qi+d))
			norm += g
		}
		out[i] = sum / norm
	}

	return out, nil
}

// legendre returns the nodes and weights of n-point Gauss–Legendre
// quadrature on [-1, 1], found by Newton iteration on P_n.
func legendre(n int) ([]float64, []float64) {
	x := make([]float64, n)
	w := make([]float64, n)
	for i := range (n + 1) / 2 {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var dp float64
		for range 100 {
			p0, p1 := 1.0, 0.0
			for j := 1; j <= n; j++ {
				p0, p1 = ((2*float64(j)-1)*z*p0-(float64(j)-1)*p1)/float64(j), p0
			}
			dp = float64(n) * (z*p0 - p1) / (z*z - 1)
			dz := p0 / dp
			z -= dz
			if math.Abs(dz) < 1e-15 {
				break
			}
		}
		x[i], x[n-1-i] = -z, z
		w[i] = 2 / ((1 - z*z) * dp * dp)
		w[n-1-i] = w[i]
	}

	return x, w
}
