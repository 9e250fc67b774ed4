package transport

import (
	"math"

	"github.com/katalvlaran/lvtransport/matrix"
)

// roundScale stabilises reported costs to 1e-9.
const roundScale = 1e9

func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// PlanCost returns Σ alloc[i][j]·c[i][j] over cells holding more than
// Options.Sentinel, rounded to 1e-9. Degeneracy markers cost nothing.
//
// Errors: ErrBadOptions, shape/value errors as ComputePotentials.
func PlanCost(costs [][]float64, alloc *matrix.Dense, opts ...Option) (float64, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return 0, err
	}
	m, n, err := costsShape(costs)
	if err != nil {
		return 0, err
	}
	a, err := allocationTable(alloc, m, n)
	if err != nil {
		return 0, err
	}

	return planCost(costTable(costs), a, o.Sentinel), nil
}

func planCost(c, a table, sentinel float64) float64 {
	var sum, v float64
	for k := range a.data {
		v = a.data[k]
		if v > sentinel {
			sum += v * c.data[k]
		}
	}

	return round1e9(sum)
}

// UsedCells lists cells holding a real quantity (above Options.Sentinel),
// row-major. Markers and empty cells are excluded.
func UsedCells(alloc *matrix.Dense, opts ...Option) ([]Cell, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateNotNil(alloc); err != nil {
		return nil, err
	}

	var out []Cell
	alloc.Do(func(i, j int, v float64) bool {
		if v > o.Sentinel {
			out = append(out, Cell{Row: i, Col: j})
		}

		return true
	})

	return out, nil
}
