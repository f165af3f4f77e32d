package model

import (
	"cmp"
	"fmt"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"
	"slices"
	"sort"
)

// ResolutionKind identifies how instrumental broadening is described.
type ResolutionKind string

const (
	// ResolutionPercent is a constant dQ/Q FWHM in percent.
	ResolutionPercent ResolutionKind = "percent"
	// ResolutionPointwise takes the FWHM of every point from the bound dataset.
	ResolutionPointwise ResolutionKind = "pointwise"
	// ResolutionFunction computes the FWHM from Q with a Go function.
	ResolutionFunction ResolutionKind = "function"
)

// DefaultResolutionPercent is the dQ/Q of a new model.
const DefaultResolutionPercent = 5.0

// Resolution describes the Gaussian instrumental broadening of a model as a
// full width at half maximum in Q.
type Resolution struct {
	kind    ResolutionKind
	percent *param.Parameter
	fn      func(q float64) float64
}

// PercentResolution is a constant relative resolution of pct percent.
func PercentResolution(name string, pct float64) (*Resolution, error) {
	p, err := param.New(name, pct,
		param.WithBounds(0, 100),
		param.WithUnit("%"),
		param.WithDescription("relative resolution dQ/Q (FWHM)"))
	if err != nil {
		return nil, fmt.Errorf("could not create resolution: %w", err)
	}

	return &Resolution{kind: ResolutionPercent, percent: p}, nil
}

// PointwiseResolution reads absolute widths from the DQ column of the data.
func PointwiseResolution() *Resolution {
	return &Resolution{kind: ResolutionPointwise}
}

// FunctionResolution computes absolute widths with fn.
func FunctionResolution(fn func(q float64) float64) (*Resolution, error) {
	if fn == nil {
		return nil, serrors.With(serrors.ErrValidation, "resolution function is nil")
	}

	return &Resolution{kind: ResolutionFunction, fn: fn}, nil
}

// Kind returns the resolution kind.
func (r *Resolution) Kind() ResolutionKind { return r.kind }

// Percent returns the dQ/Q parameter of a percent resolution, otherwise nil.
func (r *Resolution) Percent() *param.Parameter { return r.percent }

// Widths returns the FWHM at every q. Pointwise widths are linearly
// interpolated on the dataset and clamped at its ends.
func (r *Resolution) Widths(q []float64, data *Dataset) ([]float64, error) {
	out := make([]float64, len(q))
	switch r.kind {
	case ResolutionPercent:
		pct := r.percent.Value() / 100
		for i, v := range q {
			out[i] = v * pct
		}
	case ResolutionFunction:
		for i, v := range q {
			w := r.fn(v)
			if !finite(w) || w < 0 {
				return nil, serrors.With(serrors.ErrValidation, "resolution function returned %g at q=%g", w, v)
			}
			out[i] = w
		}
	case ResolutionPointwise:
		if data == nil || data.DQ == nil {
			return nil, serrors.With(serrors.ErrValidation, "pointwise resolution needs a dataset with dq")
		}
		interpolate(q, data.Q, data.DQ, out)
	default:
		return nil, serrors.With(serrors.ErrValidation, "unknown resolution kind %q", r.kind)
	}

	return out, nil
}

func interpolate(q, xq, yq, out []float64) {
	idx := make([]int, len(xq))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(xq[a], xq[b]) })
	xs := make([]float64, len(idx))
	ys := make([]float64, len(idx))
	for i, j := range idx {
		xs[i], ys[i] = xq[j], yq[j]
	}

	n := len(xs)
	for i, v := range q {
		k := sort.SearchFloat64s(xs, v)
		switch {
		case k == 0:
			out[i] = ys[0]
		case k == n:
			out[i] = ys[n-1]
		case xs[k] == v:
			out[i] = ys[k]
		default:
			t := (v - xs[k-1]) / (xs[k] - xs[k-1])
			out[i] = ys[k-1] + t*(ys[k]-ys[k-1])
		}
	}
}
