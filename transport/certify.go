package transport

import (
	"math"

	"github.com/katalvlaran/lvtransport/matrix"
)

// Certificate is the optimality check of a given plan.
type Certificate struct {
	Optimal    bool       // determined, consistent and no gain above Epsilon
	Consistent bool       // u+v = c within Epsilon on every cell above Sentinel
	BestGain   float64    // largest gain above Epsilon, 0 when Optimal
	Entering   *Cell      // cell that would enter next; nil when Optimal
	Potentials Potentials // duals of the (marker-completed) basis
	Occupied   int        // occupied cells of alloc as given
	Expected   int        // m+n-1
	Markers    []Cell     // markers added to complete the basis for the check
	Cost       float64    // PlanCost of alloc
}

// Certify checks whether alloc is optimal for costs. A degenerate alloc is
// completed with markers on a private copy first, so alloc is never modified.
// A plan whose used cells contain a loop may leave potentials that do not
// price every used cell exactly; such a plan is reported as not Optimal.
//
// Errors: as Optimize, minus convergence errors.
//
// Complexity: O(mn·(m+n)).
func Certify(costs [][]float64, alloc *matrix.Dense, opts ...Option) (Certificate, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return Certificate{}, err
	}
	m, n, err := costsShape(costs)
	if err != nil {
		return Certificate{}, err
	}
	if _, err = allocationTable(alloc, m, n); err != nil {
		return Certificate{}, err
	}

	c := costTable(costs)
	work := alloc.Copy()
	a := tableOf(work)

	cert := Certificate{
		Occupied: CountOccupied(alloc),
		Expected: Expected(m, n),
		Cost:     planCost(c, a, o.Sentinel),
	}
	if cert.Markers, err = resolveDegeneracy(a, o.Sentinel); err != nil {
		return Certificate{}, err
	}

	cert.Potentials = computePotentials(c, a)
	cert.Consistent = pricesUsedCells(c, a, cert.Potentials, o.Sentinel, o.Epsilon)
	cell, gain, ok := selectEntering(c, a, cert.Potentials, o.Epsilon)
	if ok {
		cert.BestGain = gain
		cert.Entering = &cell

		return cert, nil
	}
	cert.Optimal = cert.Potentials.Determined() && cert.Consistent

	return cert, nil
}

// pricesUsedCells reports whether |u+v-c| ≤ eps on every cell above sentinel.
// Cells with an unknown potential fail.
func pricesUsedCells(c, a table, p Potentials, sentinel, eps float64) bool {
	var i, j int
	for i = 0; i < a.rows; i++ {
		for j = 0; j < a.cols; j++ {
			if a.at(i, j) <= sentinel {
				continue
			}
			if !p.U[i].Known() || !p.V[j].Known() {
				return false
			}
			if math.Abs(p.U[i].Value+p.V[j].Value-c.at(i, j)) > eps {
				return false
			}
		}
	}

	return true
}
