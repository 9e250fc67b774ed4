package transport

import (
	"sort"

	"github.com/katalvlaran/lvtransport/matrix"
)

// LeastCost builds an initial basic feasible solution with the least-cost
// (matrix minima) heuristic: visit cells by ascending unit cost, ties in
// row-major order, and ship min(remaining supply, remaining demand) wherever
// both sides still have something left.
//
// The instance must be balanced; use Balance first otherwise.
// Every decision is returned as a Step in the order it was taken.
//
// Errors:
//   - validation errors from Instance.Validate.
//   - *ImbalanceError (ErrImbalancedInstance) when totals differ.
//
// Complexity: O(mn log mn) time, O(mn) space.
func LeastCost(inst Instance, opts ...Option) (*matrix.Dense, []Step, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, nil, err
	}
	if err = inst.Validate(); err != nil {
		return nil, nil, err
	}
	if err = checkBalanced(inst, o.Epsilon); err != nil {
		return nil, nil, err
	}

	return leastCost(inst, o.Epsilon)
}

type rankedCell struct {
	cost float64
	cell Cell
}

func leastCost(inst Instance, eps float64) (*matrix.Dense, []Step, error) {
	m, n := inst.Shape()
	alloc, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, nil, err
	}
	a := tableOf(alloc)

	// Row-major fill + stable sort gives the row-major tie break.
	order := make([]rankedCell, 0, m*n)
	var i, j int
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			order = append(order, rankedCell{cost: inst.Costs[i][j], cell: Cell{Row: i, Col: j}})
		}
	}
	sort.SliceStable(order, func(x, y int) bool { return order[x].cost < order[y].cost })

	supply := append([]float64(nil), inst.Supply...)
	demand := append([]float64(nil), inst.Demand...)
	steps := make([]Step, 0, m+n-1)
	ts, td := inst.Totals()
	tol := balanceTolerance(ts, td, eps, m+n)

	for _, rc := range order {
		i, j = rc.cell.Row, rc.cell.Col
		if supply[i] <= tol || demand[j] <= tol {
			continue
		}
		q := supply[i]
		if demand[j] < q {
			q = demand[j]
		}
		a.set(i, j, q)
		supply[i] -= q
		demand[j] -= q
		// Clamp float residue so an exhausted side never ships again.
		if supply[i] <= tol {
			supply[i] = 0
		}
		if demand[j] <= tol {
			demand[j] = 0
		}
		steps = append(steps, Step{
			Index:           len(steps) + 1,
			Cell:            rc.cell,
			UnitCost:        rc.cost,
			Quantity:        q,
			RemainingSupply: supply[i],
			RemainingDemand: demand[j],
		})
	}

	return alloc, steps, nil
}
