package transport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvtransport/matrix"
)

// Solve runs the whole pipeline on inst:
//
//	Validate → [Balance, only with WithBalancing] → LeastCost
//	         → ResolveDegeneracy → Optimize
//
// Without WithBalancing an unbalanced instance fails with *ImbalanceError
// before anything is allocated. inst is never modified.
//
// Errors: everything LeastCost, ResolveDegeneracy and Optimize return.
func Solve(ctx context.Context, inst Instance, opts ...Option) (*Result, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}

	return solve(ctx, inst, o)
}

func solve(ctx context.Context, inst Instance, o Options) (*Result, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	var bal Balanced
	if o.Balance {
		bal = balance(inst, o.Epsilon)
	} else {
		if err := checkBalanced(inst, o.Epsilon); err != nil {
			return nil, err
		}
		bal = Balanced{Instance: inst.clone()}
	}

	initial, steps, err := leastCost(bal.Instance, o.Epsilon)
	if err != nil {
		return nil, err
	}
	m, n := bal.Shape()
	c := costTable(bal.Costs)

	res := &Result{
		Balanced:    bal,
		Initial:     initial,
		Steps:       steps,
		InitialCost: planCost(c, tableOf(initial), 0),
		Occupied:    CountOccupied(initial),
		Expected:    Expected(m, n),
	}
	res.Degenerate = res.Occupied < res.Expected

	log := o.logger()
	log.LogAttrs(ctx, slog.LevelDebug, "transport: initial plan",
		slog.Int("sources", m), slog.Int("destinations", n),
		slog.Int("steps", len(steps)), slog.Float64("cost", res.InitialCost),
		slog.Int("occupied", res.Occupied), slog.Int("expected", res.Expected),
		slog.Bool("dummy_source", bal.DummySource), slog.Bool("dummy_destination", bal.DummyDestination))

	work := initial.Copy()
	if res.Markers, err = resolveDegeneracy(tableOf(work), o.Sentinel); err != nil {
		return nil, err
	}
	if len(res.Markers) > 0 {
		log.LogAttrs(ctx, slog.LevelDebug, "transport: degenerate start",
			slog.Any("markers", res.Markers))
	}

	opt, err := optimize(ctx, c, work, o)
	if err != nil {
		return nil, err
	}
	res.Final = opt.Allocation
	res.Pivots = opt.Pivots
	res.FinalCost = opt.Cost
	res.State = opt.State
	res.Potentials = opt.Potentials

	return res, nil
}

// SolveMatrix is Solve for a cost matrix given as matrix.Matrix.
func SolveMatrix(ctx context.Context, costs matrix.Matrix, supply, demand []float64, opts ...Option) (*Result, error) {
	if err := matrix.ValidateNotNil(costs); err != nil {
		return nil, fmt.Errorf("transport: SolveMatrix: %w", err)
	}
	if d, ok := costs.(*matrix.Dense); ok {
		return Solve(ctx, Instance{Costs: d.ToRows(), Supply: supply, Demand: demand}, opts...)
	}
	rows := make([][]float64, costs.Rows())
	var (
		i, j int
		err  error
	)
	for i = range rows {
		rows[i] = make([]float64, costs.Cols())
		for j = range rows[i] {
			if rows[i][j], err = costs.At(i, j); err != nil {
				return nil, fmt.Errorf("transport: SolveMatrix: %w", err)
			}
		}
	}

	return Solve(ctx, Instance{Costs: rows, Supply: supply, Demand: demand}, opts...)
}
