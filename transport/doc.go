// Package transport solves the classic transportation problem: ship a fixed
// supply from m sources to a fixed demand at n destinations at minimum total
// unit cost.
//
// The engine works in two stages on a dense m×n allocation:
//
//  1. LeastCost builds an initial basic feasible solution with the
//     matrix-minima heuristic and records every allocation decision.
//  2. Optimize refines it with the MODI (u-v potentials) method: compute
//     potentials over the occupied cells, pick the entering cell with the
//     largest positive gain u[i]+v[j]-c[i][j], find the closed alternating
//     loop through it, and shift θ units around the loop. Repeat until no
//     gain exceeds the tolerance.
//
// A basic solution needs exactly m+n-1 occupied cells. When the greedy plan
// has fewer, ResolveDegeneracy marks extra cells with a negligible sentinel
// quantity (Options.Sentinel). Marked cells count as occupied for potentials
// and loops, and are ignored by PlanCost and UsedCells. The occupied cells
// must form a spanning tree: Optimize first removes loops from a caller's
// plan, and ResolveDegeneracy decides by connectivity, not by count.
//
// Pipeline (Solve):
//
//	Validate → [Balance, only with WithBalancing] → LeastCost
//	         → ResolveDegeneracy → Optimize → Result
//
// Conventions:
//
//   - Reduced costs are gains: g = u[i] + v[j] - c[i][j]. A plan is optimal
//     when every unoccupied cell has g ≤ Epsilon. Ties go to the first cell
//     in row-major order.
//   - Degenerate plans are perturbed and optimised; there is no "skip MODI"
//     mode.
//   - u[0] is the anchor (0); every other potential is Unknown until derived.
//
// Errors (sentinel, match with errors.Is):
//
//   - ErrImbalancedInstance: total supply ≠ total demand (user input).
//   - ErrDegenerateBasisExhausted, ErrCycleNotFound, ErrUndeterminedPotentials: broken basis invariants,
//     reported through *InvariantError with dimensions and the occupied set.
//   - ErrNonConvergence: iteration bound or context exhausted, reported through
//     *ConvergenceError.
//   - ErrEmptyInstance, ErrDimensionMismatch, ErrNegativeValue, ErrNonFinite,
//     ErrBadCycle, ErrBadOptions: malformed input.
//
// Concurrency:
//
//	Every call owns its working copies; independent instances can be solved
//	from separate goroutines, or together through SolveBatch.
//
// Complexity (m sources, n destinations, k pivots):
//
//   - LeastCost: O(mn log mn).
//   - One pivot: O(mn·(m+n)) for potentials, O(mn) selection, O(mn) loop search.
package transport
