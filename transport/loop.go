package transport

import (
	"fmt"

	"github.com/katalvlaran/lvtransport/matrix"
)

// FindCycle returns the closed alternating loop through the entering cell:
// cycle[0] is entering, consecutive cells share a row, then a column, then a
// row, and so on, and the last cell shares a column with entering. Every cell
// after the first is occupied. Even positions receive θ, odd positions give it.
//
// The search is an iterative depth-first walk (explicit frame stack, no
// recursion) over occupied cells, trying the row move first from entering.
// For a spanning-tree basis the loop is unique.
//
// Errors:
//   - matrix.ErrOutOfRange when entering is outside alloc.
//   - *InvariantError wrapping ErrCycleNotFound when no loop exists.
//
// Complexity: O(mn·(m+n)) worst case; O(mn) on a tree basis.
func FindCycle(alloc *matrix.Dense, entering Cell) ([]Cell, error) {
	if err := matrix.ValidateNotNil(alloc); err != nil {
		return nil, err
	}
	a := tableOf(alloc)
	if entering.Row < 0 || entering.Row >= a.rows || entering.Col < 0 || entering.Col >= a.cols {
		return nil, fmt.Errorf("transport: FindCycle: entering %s in %dx%d: %w",
			entering, a.rows, a.cols, matrix.ErrOutOfRange)
	}

	return findCycle(a, entering)
}

// loopFrame is one level of the explicit DFS stack.
type loopFrame struct {
	cell  Cell
	byRow bool // next move stays in cell.Row; otherwise in cell.Col
	next  int  // index into the row/column candidate list
}

func findCycle(a table, start Cell) ([]Cell, error) {
	// Candidate lists per row and column, row-major, including start.
	rows := make([][]Cell, a.rows)
	cols := make([][]Cell, a.cols)
	var i, j int
	for i = 0; i < a.rows; i++ {
		for j = 0; j < a.cols; j++ {
			c := Cell{Row: i, Col: j}
			if c == start || a.occupied(i, j) {
				rows[i] = append(rows[i], c)
				cols[j] = append(cols[j], c)
			}
		}
	}

	visited := map[Cell]bool{start: true}
	path := []Cell{start}
	stack := []loopFrame{{cell: start, byRow: true}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		cand := cols[top.cell.Col]
		if top.byRow {
			cand = rows[top.cell.Row]
		}

		advanced := false
		for top.next < len(cand) {
			nxt := cand[top.next]
			top.next++
			if nxt == top.cell {
				continue
			}
			if nxt == start {
				// Closing move must be a column move after an odd number of cells.
				if len(path) >= 4 && len(path)%2 == 0 {
					return append([]Cell(nil), path...), nil
				}
				continue
			}
			if visited[nxt] {
				continue
			}
			visited[nxt] = true
			path = append(path, nxt)
			stack = append(stack, loopFrame{cell: nxt, byRow: !top.byRow})
			advanced = true

			break
		}
		if advanced {
			continue
		}

		// Dead end: backtrack.
		done := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if done.cell != start {
			delete(visited, done.cell)
		}
		path = path[:len(path)-1]
	}

	ent := start

	return nil, &InvariantError{
		Op:       "find cycle",
		Rows:     a.rows,
		Cols:     a.cols,
		Expected: Expected(a.rows, a.cols),
		Occupied: a.occupiedCells(),
		Entering: &ent,
		Err:      ErrCycleNotFound,
	}
}
