// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    match with errors.Is and still see which guard fired.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is rejected as well.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are non-nil.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateNonNegative checks that every entry of m is finite and ≥ 0.
//
// Errors:
//   - ErrNaNInf for NaN/±Inf, ErrNegative for negative entries (first hit, row-major).
//
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var bad error
	err := forEach(m, func(i, j int, v float64) {
		if bad != nil {
			return
		}
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			bad = fmt.Errorf("ValidateNonNegative(%d,%d): %w", i, j, ErrNaNInf)
		case v < 0:
			bad = fmt.Errorf("ValidateNonNegative(%d,%d): %w", i, j, ErrNegative)
		}
	})
	if err != nil {
		return validatorErrorf("ValidateNonNegative", err)
	}

	return bad
}

// ValidateVecNonNegative checks that every entry of x is finite and ≥ 0.
// Complexity: O(len(x)).
func ValidateVecNonNegative(x []float64) error {
	var (
		i int
		v float64
	)
	for i, v = range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("ValidateVecNonNegative[%d]: %w", i, ErrNaNInf)
		}
		if v < 0 {
			return fmt.Errorf("ValidateVecNonNegative[%d]: %w", i, ErrNegative)
		}
	}

	return nil
}
