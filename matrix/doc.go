// SPDX-License-Identifier: MIT

// Package matrix provides the dense, row-major float64 storage used by the
// transportation engine for cost tables and shipment allocations.
//
// What is inside:
//
//   - Matrix: minimal read/write interface (Rows, Cols, At, Set, Clone).
//   - Dense: contiguous row-major implementation with bounds-checked accessors
//     that return sentinel errors instead of panicking.
//   - Reductions: RowSums, ColSums, Sum and SumWhere over any Matrix.
//   - Validators: shape, finiteness and non-negativity checks shared by callers.
//   - gonum interop: Dense.Gonum and FromGonum bridge to gonum.org/v1/gonum/mat.
//
// Numeric policy:
//
//	Set rejects NaN and ±Inf by default (ErrNaNInf). Entries are plain float64;
//	tolerance decisions (what counts as "zero") belong to the caller.
//
// Errors:
//
//	Every error returned by this package is (or wraps) one of the sentinels in
//	errors.go and must be matched with errors.Is.
//
// Complexity quicksheet:
//
//	NewDense, NewDenseFrom, Clone, reductions: O(r·c). At/Set: O(1).
package matrix
