package transport

import (
	"fmt"

	"github.com/katalvlaran/lvtransport/matrix"
)

// Evaluation is the gain of one unoccupied cell.
type Evaluation struct {
	Cell Cell
	Gain float64 // u[i] + v[j] - c[i][j]
}

// Gains evaluates every unoccupied cell whose potentials are both known,
// in row-major order.
//
// Errors: as ComputePotentials, plus ErrDimensionMismatch when p does not
// match the cost shape.
func Gains(costs [][]float64, alloc *matrix.Dense, p Potentials) ([]Evaluation, error) {
	c, a, err := pivotInputs(costs, alloc, p)
	if err != nil {
		return nil, err
	}

	return gains(c, a, p), nil
}

func gains(c, a table, p Potentials) []Evaluation {
	out := make([]Evaluation, 0, a.rows*a.cols)
	var i, j int
	for i = 0; i < a.rows; i++ {
		for j = 0; j < a.cols; j++ {
			if a.occupied(i, j) || !p.U[i].Known() || !p.V[j].Known() {
				continue
			}
			out = append(out, Evaluation{
				Cell: Cell{Row: i, Col: j},
				Gain: p.U[i].Value + p.V[j].Value - c.at(i, j),
			})
		}
	}

	return out
}

// SelectEntering returns the unoccupied cell with the largest gain above
// Options.Epsilon. Ties keep the first cell in row-major order. ok is false
// when no cell qualifies, i.e. the plan is optimal for these potentials.
//
// Errors: as Gains, plus ErrBadOptions.
//
// Complexity: O(mn).
func SelectEntering(costs [][]float64, alloc *matrix.Dense, p Potentials, opts ...Option) (cell Cell, gain float64, ok bool, err error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return Cell{}, 0, false, err
	}
	c, a, err := pivotInputs(costs, alloc, p)
	if err != nil {
		return Cell{}, 0, false, err
	}
	cell, gain, ok = selectEntering(c, a, p, o.Epsilon)

	return cell, gain, ok, nil
}

func selectEntering(c, a table, p Potentials, eps float64) (Cell, float64, bool) {
	best := eps
	var (
		cell  Cell
		found bool
		i, j  int
		g     float64
	)
	for i = 0; i < a.rows; i++ {
		for j = 0; j < a.cols; j++ {
			if a.occupied(i, j) || !p.U[i].Known() || !p.V[j].Known() {
				continue
			}
			g = p.U[i].Value + p.V[j].Value - c.at(i, j)
			// Strict '>' keeps the first of equal gains.
			if g > best {
				best, cell, found = g, Cell{Row: i, Col: j}, true
			}
		}
	}
	if !found {
		return Cell{}, 0, false
	}

	return cell, best, true
}

func pivotInputs(costs [][]float64, alloc *matrix.Dense, p Potentials) (table, table, error) {
	m, n, err := costsShape(costs)
	if err != nil {
		return table{}, table{}, err
	}
	a, err := allocationTable(alloc, m, n)
	if err != nil {
		return table{}, table{}, err
	}
	if len(p.U) != m || len(p.V) != n {
		return table{}, table{}, fmt.Errorf("%w: potentials %d+%d for %dx%d",
			ErrDimensionMismatch, len(p.U), len(p.V), m, n)
	}

	return costTable(costs), a, nil
}
