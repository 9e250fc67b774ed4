package transport

import (
	"fmt"

	"github.com/katalvlaran/lvtransport/matrix"
)

// table is a flat row-major view used by the hot loops.
// data aliases the backing matrix when built with tableOf.
type table struct {
	rows, cols int
	data       []float64
}

func tableOf(d *matrix.Dense) table {
	r, c := d.Shape()

	return table{rows: r, cols: c, data: d.Raw()}
}

func (t table) at(i, j int) float64     { return t.data[i*t.cols+j] }
func (t table) set(i, j int, v float64) { t.data[i*t.cols+j] = v }

// occupied reports a strictly positive cell; markers count.
func (t table) occupied(i, j int) bool { return t.data[i*t.cols+j] > 0 }

// occupiedCells lists occupied cells in row-major order.
func (t table) occupiedCells() []Cell {
	out := make([]Cell, 0, t.rows+t.cols)
	var i, j int
	for i = 0; i < t.rows; i++ {
		for j = 0; j < t.cols; j++ {
			if t.occupied(i, j) {
				out = append(out, Cell{Row: i, Col: j})
			}
		}
	}

	return out
}

// costTable copies validated costs into a flat table.
func costTable(costs [][]float64) table {
	m := len(costs)
	n := 0
	if m > 0 {
		n = len(costs[0])
	}
	t := table{rows: m, cols: n, data: make([]float64, m*n)}
	for i := range costs {
		copy(t.data[i*n:(i+1)*n], costs[i])
	}

	return t
}

// allocationTable checks alloc against an m×n instance and returns a view.
func allocationTable(alloc *matrix.Dense, m, n int) (table, error) {
	if err := matrix.ValidateNotNil(alloc); err != nil {
		return table{}, fmt.Errorf("transport: allocation: %w", err)
	}
	if alloc.Rows() != m || alloc.Cols() != n {
		return table{}, fmt.Errorf("%w: allocation %dx%d, costs %dx%d",
			ErrDimensionMismatch, alloc.Rows(), alloc.Cols(), m, n)
	}
	if err := matrix.ValidateNonNegative(alloc); err != nil {
		return table{}, valueError("allocation", err)
	}

	return tableOf(alloc), nil
}

// costsShape validates a cost table on its own: rectangular, finite, non-negative.
func costsShape(costs [][]float64) (int, int, error) {
	m := len(costs)
	if m == 0 || len(costs[0]) == 0 {
		return 0, 0, ErrEmptyInstance
	}
	n := len(costs[0])
	for i := range costs {
		if len(costs[i]) != n {
			return 0, 0, fmt.Errorf("%w: cost row %d has %d entries, want %d",
				ErrDimensionMismatch, i, len(costs[i]), n)
		}
		if err := matrix.ValidateVecNonNegative(costs[i]); err != nil {
			return 0, 0, valueError("costs", err)
		}
	}

	return m, n, nil
}
