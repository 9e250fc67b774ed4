package transport

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvtransport/matrix"
)

// ApplyCycle shifts θ units around cycle in place: even positions gain θ,
// odd positions lose it. θ is the smallest quantity at an odd position and
// the first cell holding it (in cycle order) leaves the basis, ending at
// exactly 0.
//
// Markers are handled so the basis keeps m+n-1 cells:
//   - θ ≤ Sentinel (a marker would leave): degenerate pivot. The marker moves
//     to the entering cell, the leaving cell becomes 0, θ is reported as 0 and
//     no real quantity changes.
//   - an even cell holding a marker receives θ itself, not θ plus the marker.
//   - an odd cell other than the leaving one that drops to ≤ Sentinel keeps a
//     marker instead of vanishing.
//
// Errors:
//   - ErrBadOptions for inconsistent options.
//   - ErrBadCycle when cycle is shorter than 4, odd, out of range, does not
//     alternate row/column moves, or has nothing to give (θ ≤ 0).
//
// Complexity: O(len(cycle)).
func ApplyCycle(alloc *matrix.Dense, cycle []Cell, opts ...Option) (theta float64, leaving Cell, err error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return 0, Cell{}, err
	}
	if err = matrix.ValidateNotNil(alloc); err != nil {
		return 0, Cell{}, err
	}
	a := tableOf(alloc)
	if err = checkCycle(a, cycle); err != nil {
		return 0, Cell{}, err
	}

	return applyCycle(a, cycle, o.Sentinel)
}

// checkCycle validates shape and alternation.
func checkCycle(a table, cycle []Cell) error {
	k := len(cycle)
	if k < 4 || k%2 != 0 {
		return fmt.Errorf("%w: length %d", ErrBadCycle, k)
	}
	for _, c := range cycle {
		if c.Row < 0 || c.Row >= a.rows || c.Col < 0 || c.Col >= a.cols {
			return fmt.Errorf("%w: %s outside %dx%d", ErrBadCycle, c, a.rows, a.cols)
		}
	}
	for p := 0; p < k; p++ {
		cur, nxt := cycle[p], cycle[(p+1)%k]
		if p%2 == 0 && (cur.Row != nxt.Row || cur.Col == nxt.Col) {
			return fmt.Errorf("%w: %s -> %s is not a row move", ErrBadCycle, cur, nxt)
		}
		if p%2 == 1 && (cur.Col != nxt.Col || cur.Row == nxt.Row) {
			return fmt.Errorf("%w: %s -> %s is not a column move", ErrBadCycle, cur, nxt)
		}
	}

	return nil
}

func applyCycle(a table, cycle []Cell, sentinel float64) (float64, Cell, error) {
	theta := math.Inf(1)
	li := -1
	var (
		k int
		v float64
	)
	for k = 1; k < len(cycle); k += 2 {
		v = a.at(cycle[k].Row, cycle[k].Col)
		if v < theta {
			theta, li = v, k
		}
	}
	if theta <= 0 {
		return 0, Cell{}, fmt.Errorf("%w: %s holds nothing to shift", ErrBadCycle, cycle[li])
	}
	leaving := cycle[li]

	if theta <= sentinel {
		// Degenerate pivot: only the marker moves.
		a.set(cycle[0].Row, cycle[0].Col, sentinel)
		a.set(leaving.Row, leaving.Col, 0)

		return 0, leaving, nil
	}

	for k = 0; k < len(cycle); k++ {
		c := cycle[k]
		v = a.at(c.Row, c.Col)
		if k%2 == 0 {
			if v <= sentinel {
				v = theta
			} else {
				v += theta
			}
		} else {
			v -= theta
			switch {
			case k == li:
				v = 0
			case v <= sentinel:
				v = sentinel
			}
		}
		a.set(c.Row, c.Col, v)
	}

	return theta, leaving, nil
}
