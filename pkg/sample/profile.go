package sample

import (
	"math"

	"reflectometry/pkg/serrors"
)

// Profile is a real SLD profile sampled on a depth grid. Z is measured in
// angstrom from the super-phase interface into the sample.
type Profile struct {
	Z   []float64
	SLD []float64
}

// SLDProfile samples the real SLD of s at points depths spanning the whole
// stack plus four interface widths on each side. Interfaces are smoothed
// with an error function of their roughness.
func SLDProfile(s *Sample, points int) (Profile, error) {
	if points < 2 {
		return Profile{}, serrors.With(serrors.ErrValidation, "profile needs at least 2 points, got %d", points)
	}

	slabs := s.Slabs()
	// depth[i] is the position of the interface above slabs[i+1].
	depth := make([]float64, len(slabs)-1)
	z := 0.0
	for i := 1; i < len(slabs); i++ {
		depth[i-1] = z
		z += slabs[i].Thickness
	}

	first := slabs[1].Roughness
	last := slabs[len(slabs)-1].Roughness
	lo := -4 * max(first, 1)
	hi := depth[len(depth)-1] + 4*max(last, 1)

	p := Profile{Z: make([]float64, points), SLD: make([]float64, points)}
	step := (hi - lo) / float64(points-1)
	for k := range points {
		zk := lo + float64(k)*step
		v := slabs[0].SLD
		for i, d := range depth {
			delta := slabs[i+1].SLD - slabs[i].SLD
			sigma := slabs[i+1].Roughness
			if sigma == 0 {
				if zk >= d {
					v += delta
				}

				continue
			}
			v += delta / 2 * (1 + math.Erf((zk-d)/(sigma*math.Sqrt2)))
		}
		p.Z[k], p.SLD[k] = zk, v
	}

	return p, nil
}
