package fitting

import (
	"math"

	"reflectometry/pkg/serrors"
)

// solve solves a·x = b by Gaussian elimination with partial pivoting. a and
// b are not modified.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	aug := make([][]float64, n)
	for i := range n {
		aug[i] = make([]float64, n+1)
		copy(aug[i], a[i])
		aug[i][n] = b[i]
	}

	for col := range n {
		pivot := col
		maxAbs := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > maxAbs {
				maxAbs, pivot = v, r
			}
		}
		if maxAbs == 0 {
			return nil, serrors.With(serrors.ErrCalculation, "singular normal matrix")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		for r := col + 1; r < n; r++ {
			f := aug[r][col] / aug[col][col]
			for k := col; k <= n; k++ {
				aug[r][k] -= f * aug[col][k]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * x[j]
		}
		x[i] = sum / aug[i][i]
	}

	return x, nil
}

// invert returns the inverse of a by solving for every unit vector.
func invert(a [][]float64) ([][]float64, error) {
	n := len(a)
	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
	}

	e := make([]float64, n)
	for j := range n {
		clear(e)
		e[j] = 1
		col, err := solve(a, e)
		if err != nil {
			return nil, err
		}
		for i := range n {
			inv[i][j] = col[i]
		}
	}

	return inv, nil
}

// normal returns JᵀJ and Jᵀr for a Jacobian stored column-wise.
func normal(jac [][]float64, r []float64) ([][]float64, []float64) {
	p := len(jac)
	a := make([][]float64, p)
	g := make([]float64, p)
	for i := range p {
		a[i] = make([]float64, p)
		for j := 0; j <= i; j++ {
			var sum float64
			for k := range r {
				sum += jac[i][k] * jac[j][k]
			}
			a[i][j], a[j][i] = sum, sum
		}
		for k := range r {
			g[i] += jac[i][k] * r[k]
		}
	}

	return a, g
}

func sumSquares(r []float64) float64 {
	var s float64
	for _, v := range r {
		s += v * v
	}

	return s
}
