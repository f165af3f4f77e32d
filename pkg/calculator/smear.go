package calculator

import (
	"cmp"
	"context"
	"math"
	"slices"

	"reflectometry/pkg/sample"
	"reflectometry/pkg/serrors"
)

// smearNodes is the number of equally spaced quadrature nodes per point.
const smearNodes = 21

// smearSpan is the half width of the quadrature window in standard deviations.
const smearSpan = 3.5

var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

func checkLen(r []float64, n int) error {
	if len(r) != n {
		return serrors.With(serrors.ErrCalculation, "engine returned %d points for %d q values", len(r), n)
	}

	return nil
}

// kernel returns the offsets, in standard deviations, and normalised weights
// of the Gaussian quadrature.
func kernel() ([]float64, []float64) {
	x := make([]float64, smearNodes)
	w := make([]float64, smearNodes)
	var norm float64
	for i := range smearNodes {
		x[i] = -smearSpan + 2*smearSpan*float64(i)/float64(smearNodes-1)
		w[i] = math.Exp(-x[i] * x[i] / 2)
		norm += w[i]
	}
	for i := range w {
		w[i] /= norm
	}

	return x, w
}

// smear evaluates the engine on every quadrature node of every point in one
// call and folds the results back into one value per q.
func (c *Calculator) smear(ctx context.Context, slabs []sample.Slab, q, widths []float64) ([]float64, error) {
	if !slices.ContainsFunc(widths, func(w float64) bool { return w > 0 }) {
		return c.reflectivity(ctx, slabs, q)
	}

	x, w := kernel()
	nodes := make([]float64, 0, len(q)*smearNodes)
	for i, qi := range q {
		sigma := widths[i] * fwhmToSigma
		for _, xk := range x {
			nodes = append(nodes, math.Abs(qi+xk*sigma))
		}
	}

	r, err := c.reflectivity(ctx, slabs, nodes)
	if err != nil {
		return nil, err
	}
	if err := checkLen(r, len(nodes)); err != nil {
		return nil, err
	}

	out := make([]float64, len(q))
	for i := range q {
		var sum float64
		for k, wk := range w {
			sum += wk * r[i*smearNodes+k]
		}
		out[i] = sum
	}

	return out, nil
}

// reflectivity calls the engine, sorting q first when the engine needs it.
func (c *Calculator) reflectivity(ctx context.Context, slabs []sample.Slab, q []float64) ([]float64, error) {
	return c.sorted(q, nil, func(sq, _ []float64) ([]float64, error) {
		return c.engine.Reflectivity(ctx, slabs, sq)
	})
}

// sorted runs fn on q, and the matching widths, in non-decreasing q order if
// the engine requires it and returns the result in the caller's order.
func (c *Calculator) sorted(q, widths []float64, fn func(sq, sw []float64) ([]float64, error)) ([]float64, error) {
	oe, ok := c.engine.(OrderedEngine)
	if !ok || !oe.RequiresSortedQ() || slices.IsSorted(q) {
		return fn(q, widths)
	}

	idx := make([]int, len(q))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(q[a], q[b]) })

	sq := make([]float64, len(q))
	var sw []float64
	if widths != nil {
		sw = make([]float64, len(widths))
	}
	for i, j := range idx {
		sq[i] = q[j]
		if sw != nil {
			sw[i] = widths[j]
		}
	}
	r, err := fn(sq, sw)
	if err != nil {
		return nil, err
	}
	if err := checkLen(r, len(q)); err != nil {
		return nil, err
	}

	out := make([]float64, len(q))
	for i, j := range idx {
		out[j] = r[i]
	}

	return out, nil
}
