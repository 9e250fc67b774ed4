package transport

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/lvtransport/matrix"
)

// Optimization is the outcome of Optimize.
type Optimization struct {
	Allocation *matrix.Dense // optimised plan; marker cells hold Options.Sentinel
	Pivots     []Pivot       // audit trail, one entry per completed pivot
	Cost       float64       // PlanCost of Allocation
	State      State
	Potentials Potentials // duals of the last evaluated basis
	Resolved   []Cell     // markers placed by degeneracy resolution, in order
	Cancelled  int        // loops removed from a non-basic input plan
}

// Optimize runs the MODI method from a feasible allocation until no
// unoccupied cell has a gain above Options.Epsilon.
//
// A plan whose occupied cells contain loops is first reduced to a basic one
// by shifting each loop in its non-increasing cost direction. Each iteration
// then completes the basis to a spanning tree when it is disconnected,
// computes potentials, selects the entering cell, finds its loop and shifts θ.
// The caller's alloc is not modified.
//
// Errors:
//   - ErrBadOptions, shape/value errors as ComputePotentials.
//   - *InvariantError (ErrDegenerateBasisExhausted, ErrCycleNotFound,
//     ErrUndeterminedPotentials).
//   - *ConvergenceError (ErrNonConvergence) when the iteration bound is hit or
//     ctx is done; the partial Optimization is returned alongside.
//
// Complexity: O(k·mn·(m+n)) for k pivots.
func Optimize(ctx context.Context, costs [][]float64, alloc *matrix.Dense, opts ...Option) (Optimization, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return Optimization{}, err
	}
	m, n, err := costsShape(costs)
	if err != nil {
		return Optimization{}, err
	}
	if _, err = allocationTable(alloc, m, n); err != nil {
		return Optimization{}, err
	}

	return optimize(ctx, costTable(costs), alloc.Copy(), o)
}

// optimize owns work and mutates it in place.
func optimize(ctx context.Context, c table, work *matrix.Dense, o Options) (Optimization, error) {
	a := tableOf(work)
	bound := o.iterationBound(a.rows, a.cols)
	log := o.logger()

	out := Optimization{Allocation: work, State: Improving}

	cancelled, err := cancelCycles(c, a, o.Sentinel)
	if err != nil {
		return Optimization{}, err
	}
	if cancelled > 0 {
		out.Cancelled = cancelled
		log.LogAttrs(ctx, slog.LevelDebug, "transport: loops cancelled",
			slog.Int("loops", cancelled), slog.Float64("cost", planCost(c, a, o.Sentinel)))
	}

	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			out.Cost = planCost(c, a, o.Sentinel)

			return out, &ConvergenceError{Iterations: iter, Bound: bound, Cause: err}
		}

		added, err := resolveDegeneracy(a, o.Sentinel)
		out.Resolved = append(out.Resolved, added...)
		if err != nil {
			return Optimization{}, err
		}
		if len(added) > 0 {
			log.LogAttrs(ctx, slog.LevelDebug, "transport: degeneracy resolved",
				slog.Int("iteration", iter), slog.Any("markers", added))
		}

		out.Potentials = computePotentials(c, a)
		if !out.Potentials.Determined() {
			return Optimization{}, &InvariantError{
				Op:       "compute potentials",
				Rows:     a.rows,
				Cols:     a.cols,
				Expected: Expected(a.rows, a.cols),
				Occupied: a.occupiedCells(),
				Err:      ErrUndeterminedPotentials,
			}
		}
		entering, gain, ok := selectEntering(c, a, out.Potentials, o.Epsilon)
		if !ok {
			out.State = Optimal
			out.Cost = planCost(c, a, o.Sentinel)
			log.LogAttrs(ctx, slog.LevelDebug, "transport: optimal",
				slog.Int("pivots", len(out.Pivots)), slog.Float64("cost", out.Cost))

			return out, nil
		}
		if iter >= bound {
			out.Cost = planCost(c, a, o.Sentinel)

			return out, &ConvergenceError{Iterations: iter, Bound: bound}
		}

		cycle, err := findCycle(a, entering)
		if err != nil {
			return Optimization{}, err
		}
		theta, leaving, err := applyCycle(a, cycle, o.Sentinel)
		if err != nil {
			return Optimization{}, err
		}

		p := Pivot{
			Iteration: iter + 1,
			Entering:  entering,
			Gain:      gain,
			Theta:     theta,
			Cycle:     cycle,
			Leaving:   leaving,
			Cost:      planCost(c, a, o.Sentinel),
		}
		out.Pivots = append(out.Pivots, p)
		log.LogAttrs(ctx, slog.LevelDebug, "transport: pivot",
			slog.Int("iteration", p.Iteration),
			slog.String("enter", p.Entering.String()),
			slog.Float64("gain", p.Gain),
			slog.Float64("theta", p.Theta),
			slog.String("leave", p.Leaving.String()),
			slog.Float64("cost", p.Cost))
	}
}
