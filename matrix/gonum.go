// SPDX-License-Identifier: MIT

// Package matrix - bridges to gonum.org/v1/gonum/mat.
//
// Dense keeps its own error-returning surface; these helpers copy into and out
// of *mat.Dense so callers can reuse gonum kernels (solvers, formatting, LP).

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Gonum returns a *mat.Dense holding a copy of m's data.
// Complexity: O(r*c).
func (m *Dense) Gonum() *mat.Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return mat.NewDense(m.r, m.c, cp)
}

// FromGonum copies any gonum matrix into a new Dense.
//
// Errors:
//   - ErrInvalidDimensions for empty matrices, ErrNaNInf for non-finite entries.
//
// Complexity: O(r*c).
func FromGonum(g mat.Matrix) (*Dense, error) {
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = g.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf("FromGonum", i, j, ErrNaNInf)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}
