// SPDX-License-Identifier: MIT

// Package matrix - row/column reductions.
//
// All reductions work on the Matrix interface with a fast path for *Dense
// (single pass over the flat buffer). Loop order is fixed (row-major), so
// floating-point sums are reproducible for identical inputs.

package matrix

import "fmt"

// RowSums returns s where s[i] = Σ_j m[i][j].
//
// Errors:
//   - ErrNilMatrix if m is nil; accessor errors from generic implementations.
//
// Complexity: O(r*c) time, O(r) space.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	out := make([]float64, m.Rows())
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		for i = 0; i < d.r; i++ {
			base = i * d.c
			for j = 0; j < d.c; j++ {
				out[i] += d.data[base+j]
			}
		}

		return out, nil
	}

	err := forEach(m, func(i, _ int, v float64) { out[i] += v })
	if err != nil {
		return nil, fmt.Errorf("RowSums: %w", err)
	}

	return out, nil
}

// ColSums returns s where s[j] = Σ_i m[i][j].
// Complexity: O(r*c) time, O(c) space.
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	out := make([]float64, m.Cols())
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		for i = 0; i < d.r; i++ {
			base = i * d.c
			for j = 0; j < d.c; j++ {
				out[j] += d.data[base+j]
			}
		}

		return out, nil
	}

	err := forEach(m, func(_, j int, v float64) { out[j] += v })
	if err != nil {
		return nil, fmt.Errorf("ColSums: %w", err)
	}

	return out, nil
}

// SumWhere returns Σ f(i,j,v) over all cells where keep(i,j,v) is true.
// A nil keep accepts every cell; a nil f sums the raw values.
//
// AI-Hints:
//   - Weighted totals (quantity × unit cost) are SumWhere(alloc, keep, costTimes).
//
// Complexity: O(r*c).
func SumWhere(m Matrix, keep func(i, j int, v float64) bool, f func(i, j int, v float64) float64) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	var total float64
	err := forEach(m, func(i, j int, v float64) {
		if keep != nil && !keep(i, j, v) {
			return
		}
		if f != nil {
			total += f(i, j, v)

			return
		}
		total += v
	})
	if err != nil {
		return 0, fmt.Errorf("SumWhere: %w", err)
	}

	return total, nil
}

// forEach visits every cell in row-major order through the interface.
func forEach(m Matrix, f func(i, j int, v float64)) error {
	if d, ok := m.(*Dense); ok {
		d.Do(func(i, j int, v float64) bool {
			f(i, j, v)

			return true
		})

		return nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return err
			}
			f(i, j, v)
		}
	}

	return nil
}
