package model

import (
	"math"
	"reflectometry/pkg/serrors"
	"slices"
)

// Dataset is a measured reflectivity curve.
type Dataset struct {
	// Q is the momentum transfer in 1/angstrom.
	Q []float64
	// R is the measured reflectivity.
	R []float64
	// E holds one standard deviation per point. Optional.
	E []float64
	// DQ holds the FWHM resolution per point in 1/angstrom. Optional.
	DQ []float64
}

// NewDataset validates and copies a measured curve. e and dq may be nil.
func NewDataset(q, r, e, dq []float64) (*Dataset, error) {
	if len(q) == 0 {
		return nil, serrors.With(serrors.ErrValidation, "dataset has no points")
	}
	if len(r) != len(q) {
		return nil, serrors.With(serrors.ErrValidation, "dataset has %d q values but %d reflectivities", len(q), len(r))
	}
	if e != nil && len(e) != len(q) {
		return nil, serrors.With(serrors.ErrValidation, "dataset has %d q values but %d uncertainties", len(q), len(e))
	}
	if dq != nil && len(dq) != len(q) {
		return nil, serrors.With(serrors.ErrValidation, "dataset has %d q values but %d resolutions", len(q), len(dq))
	}

	if err := ValidateQ(q); err != nil {
		return nil, err
	}
	for i, v := range r {
		if !finite(v) {
			return nil, serrors.With(serrors.ErrValidation, "reflectivity %d is not finite", i)
		}
	}
	for i, v := range e {
		if !finite(v) || v <= 0 {
			return nil, serrors.With(serrors.ErrValidation, "uncertainty %d must be positive, got %g", i, v)
		}
	}
	for i, v := range dq {
		if !finite(v) || v < 0 {
			return nil, serrors.With(serrors.ErrValidation, "resolution %d must be non-negative, got %g", i, v)
		}
	}

	return &Dataset{
		Q:  slices.Clone(q),
		R:  slices.Clone(r),
		E:  slices.Clone(e),
		DQ: slices.Clone(dq),
	}, nil
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.Q) }

// Uncertainty returns the standard deviation of point i, or 1 without
// uncertainties.
func (d *Dataset) Uncertainty(i int) float64 {
	if d.E == nil {
		return 1
	}

	return d.E[i]
}

// ValidateQ checks that every Q value is finite and non-negative. Order is
// not checked.
func ValidateQ(q []float64) error {
	for i, v := range q {
		if !finite(v) || v < 0 {
			return serrors.With(serrors.ErrValidation, "q[%d] must be finite and non-negative, got %g", i, v)
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
