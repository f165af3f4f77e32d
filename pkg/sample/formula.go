package sample

import (
	"strconv"
	"unicode"

	"reflectometry/pkg/serrors"
)

// fmToAngstrom converts femtometres to angstrom.
const fmToAngstrom = 1e-5

// coherent bound scattering lengths in fm (NIST neutron scattering lengths table).
var scatteringLengths = map[string]complex128{
	"H":  complex(-3.7390, 0),
	"D":  complex(6.671, 0),
	"T":  complex(4.792, 0),
	"He": complex(3.26, 0),
	"Li": complex(-1.90, 0),
	"Be": complex(7.79, 0),
	"B":  complex(5.30, -0.213),
	"C":  complex(6.6460, 0),
	"N":  complex(9.36, 0),
	"O":  complex(5.803, 0),
	"F":  complex(5.654, 0),
	"Ne": complex(4.566, 0),
	"Na": complex(3.63, 0),
	"Mg": complex(5.375, 0),
	"Al": complex(3.449, 0),
	"Si": complex(4.1491, 0),
	"P":  complex(5.13, 0),
	"S":  complex(2.847, 0),
	"Cl": complex(9.5770, 0),
	"Ar": complex(1.909, 0),
	"K":  complex(3.67, 0),
	"Ca": complex(4.70, 0),
	"Ti": complex(-3.438, 0),
	"Cr": complex(3.635, 0),
	"Mn": complex(-3.73, 0),
	"Fe": complex(9.45, 0),
	"Co": complex(2.49, 0),
	"Ni": complex(10.3, 0),
	"Cu": complex(7.718, 0),
	"Zn": complex(5.680, 0),
	"Ge": complex(8.185, 0),
	"Se": complex(7.970, 0),
	"Br": complex(6.795, 0),
	"Zr": complex(7.16, 0),
	"Pd": complex(5.91, 0),
	"Ag": complex(5.922, 0),
	"Cd": complex(4.87, -0.70),
	"Sn": complex(6.225, 0),
	"I":  complex(5.28, 0),
	"Gd": complex(6.5, -13.82),
	"Pt": complex(9.60, 0),
	"Au": complex(7.63, 0),
	"Pb": complex(9.405, 0),
}

// ScatteringLength returns the total coherent neutron scattering length of
// a molecular formula in angstrom. Formulas are element symbols with optional
// (possibly fractional) counts and parenthesised groups, e.g. "C10H18NO8P",
// "C32D64" or "(CH2)16CH3".
func ScatteringLength(formula string) (complex128, error) {
	p := formulaParser{src: []rune(formula)}
	if len(p.src) == 0 {
		return 0, serrors.With(serrors.ErrValidation, "empty molecular formula")
	}

	counts, err := p.group(0)
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.src) {
		return 0, serrors.With(serrors.ErrValidation, "unexpected %q at offset %d in formula %q", p.src[p.pos], p.pos, formula)
	}

	var sl complex128
	for el, n := range counts {
		sl += scatteringLengths[el] * complex(n, 0)
	}

	return sl * fmToAngstrom, nil
}

type formulaParser struct {
	src []rune
	pos int
}

func (p *formulaParser) group(depth int) (map[string]float64, error) {
	counts := make(map[string]float64)
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case r == '(':
			p.pos++
			inner, err := p.group(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.src) || p.src[p.pos] != ')' {
				return nil, serrors.With(serrors.ErrValidation, "unbalanced parenthesis in formula %q", string(p.src))
			}
			p.pos++
			n, err := p.count()
			if err != nil {
				return nil, err
			}
			for el, c := range inner {
				counts[el] += c * n
			}
		case r == ')':
			if depth == 0 {
				return nil, serrors.With(serrors.ErrValidation, "unbalanced parenthesis in formula %q", string(p.src))
			}

			return counts, nil
		case unicode.IsUpper(r):
			start := p.pos
			p.pos++
			for p.pos < len(p.src) && unicode.IsLower(p.src[p.pos]) {
				p.pos++
			}
			el := string(p.src[start:p.pos])
			if _, ok := scatteringLengths[el]; !ok {
				return nil, serrors.With(serrors.ErrValidation, "unknown element %q in formula %q", el, string(p.src))
			}
			n, err := p.count()
			if err != nil {
				return nil, err
			}
			counts[el] += n
		default:
			return nil, serrors.With(serrors.ErrValidation, "unexpected %q at offset %d in formula %q", r, p.pos, string(p.src))
		}
	}
	if depth > 0 {
		return nil, serrors.With(serrors.ErrValidation, "unbalanced parenthesis in formula %q", string(p.src))
	}

	return counts, nil
}

// count reads an optional multiplier, defaulting to one.
func (p *formulaParser) count() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 1, nil
	}

	n, err := strconv.ParseFloat(string(p.src[start:p.pos]), 64)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrValidation, err, "invalid count in formula %q", string(p.src))
	}

	return n, nil
}
