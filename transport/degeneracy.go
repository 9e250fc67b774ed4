package transport

import (
	"github.com/katalvlaran/lvtransport/matrix"
)

// Expected returns m+n-1, the occupied-cell count of a non-degenerate basic solution.
func Expected(m, n int) int { return m + n - 1 }

// CountOccupied counts strictly positive cells. Degeneracy markers count.
// A nil matrix has no occupied cells.
func CountOccupied(alloc *matrix.Dense) int {
	if alloc == nil {
		return 0
	}
	cnt := 0
	for _, v := range alloc.Raw() {
		if v > 0 {
			cnt++
		}
	}

	return cnt
}

// ResolveDegeneracy completes the occupied cells of alloc to a spanning tree
// of the m+n source/destination nodes by writing Options.Sentinel into zero
// cells, in place. The decision is made on connectivity, not on the count:
// a plan with m+n-1 occupied cells that contains a loop and a detached part
// still gets markers. Candidates are scanned in row-major order and a zero
// cell is taken only when it joins two parts that are not yet connected.
//
// It returns the marked cells (nil when the occupied cells already span).
//
// Errors:
//   - ErrBadOptions for inconsistent options.
//   - matrix validation errors for nil or negative allocations.
//   - *InvariantError wrapping ErrDegenerateBasisExhausted when the scan ends
//     before everything is connected; alloc keeps the markers placed so far.
//
// Complexity: O(mn·α(m+n)).
func ResolveDegeneracy(alloc *matrix.Dense, opts ...Option) ([]Cell, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateNotNil(alloc); err != nil {
		return nil, err
	}
	if err = matrix.ValidateNonNegative(alloc); err != nil {
		return nil, valueError("allocation", err)
	}

	return resolveDegeneracy(tableOf(alloc), o.Sentinel)
}

func resolveDegeneracy(a table, sentinel float64) ([]Cell, error) {
	m, n := a.rows, a.cols
	want := Expected(m, n)

	// links counts occupied cells that joined two components.
	ds := newDisjointSet(m + n)
	links := 0
	var i, j int
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if a.occupied(i, j) && ds.union(i, m+j) {
				links++
			}
		}
	}
	if links == want {
		return nil, nil
	}

	var added []Cell
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if a.occupied(i, j) || !ds.union(i, m+j) {
				continue
			}
			a.set(i, j, sentinel)
			added = append(added, Cell{Row: i, Col: j})
			links++
			if links == want {
				return added, nil
			}
		}
	}

	return added, &InvariantError{
		Op:       "resolve degeneracy",
		Rows:     m,
		Cols:     n,
		Expected: want,
		Occupied: a.occupiedCells(),
		Err:      ErrDegenerateBasisExhausted,
	}
}

// closingCell returns the first occupied cell, row-major, that closes a loop
// with the occupied cells before it.
func closingCell(a table) (Cell, bool) {
	m, n := a.rows, a.cols
	ds := newDisjointSet(m + n)
	var i, j int
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if a.occupied(i, j) && !ds.union(i, m+j) {
				return Cell{Row: i, Col: j}, true
			}
		}
	}

	return Cell{}, false
}

// cancelCycles removes loops from the occupied cells so they form a forest,
// as a basic solution requires. Each loop is shifted in the direction that
// does not raise the cost until one of its giving cells empties; a loop whose
// smallest giver is a marker loses that marker and nothing else moves.
// Row and column totals are preserved. It returns the number of loops removed.
//
// Complexity: O(L·mn·(m+n)) for L loops.
func cancelCycles(c, a table, sentinel float64) (int, error) {
	removed := 0
	for {
		start, ok := closingCell(a)
		if !ok {
			return removed, nil
		}
		cycle, err := findCycle(a, start)
		if err != nil {
			return removed, err
		}

		// delta is the cost change per unit with even positions receiving.
		delta := 0.0
		var k int
		for k = range cycle {
			if k%2 == 0 {
				delta += c.at(cycle[k].Row, cycle[k].Col)
			} else {
				delta -= c.at(cycle[k].Row, cycle[k].Col)
			}
		}
		if delta > 0 {
			// Rotate by one so the former even positions give.
			cycle = append(cycle[1:], cycle[0])
		}
		shiftLoop(a, cycle, sentinel)
		removed++
	}
}

// shiftLoop moves θ, the smallest odd-position quantity, from odd to even
// positions of a loop of occupied cells and empties the first cell holding θ.
func shiftLoop(a table, cycle []Cell, sentinel float64) {
	li := 1
	theta := a.at(cycle[1].Row, cycle[1].Col)
	var (
		k int
		v float64
	)
	for k = 3; k < len(cycle); k += 2 {
		if v = a.at(cycle[k].Row, cycle[k].Col); v < theta {
			theta, li = v, k
		}
	}
	if theta <= sentinel {
		a.set(cycle[li].Row, cycle[li].Col, 0)

		return
	}
	for k = range cycle {
		v = a.at(cycle[k].Row, cycle[k].Col)
		switch {
		case k == li:
			v = 0
		case k%2 == 0 && v <= sentinel:
			v = theta
		case k%2 == 0:
			v += theta
		default:
			v -= theta
			if v <= sentinel {
				v = 0
			}
		}
		a.set(cycle[k].Row, cycle[k].Col, v)
	}
}

// disjointSet is union-find over row nodes [0,m) and column nodes [m,m+n).
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(size int) *disjointSet {
	ds := &disjointSet{parent: make([]int, size), rank: make([]int, size)}
	for i := range ds.parent {
		ds.parent[i] = i
	}

	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}

	return x
}

// union merges the sets of a and b; false if they were already joined.
func (ds *disjointSet) union(a, b int) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}

	return true
}
