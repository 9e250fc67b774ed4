package transport

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvtransport/matrix"
)

// Instance is a transportation problem: an m×n unit-cost table, m supplies and
// n demands. All values must be finite and non-negative.
type Instance struct {
	Costs  [][]float64
	Supply []float64
	Demand []float64
}

// Shape returns (sources, destinations).
func (inst Instance) Shape() (int, int) {
	return len(inst.Supply), len(inst.Demand)
}

// Totals returns (Σ supply, Σ demand).
func (inst Instance) Totals() (float64, float64) {
	return floats.Sum(inst.Supply), floats.Sum(inst.Demand)
}

// Validate checks shape and values.
//
// Errors:
//   - ErrEmptyInstance when there are no sources or no destinations.
//   - ErrDimensionMismatch when Costs is not len(Supply)×len(Demand).
//   - ErrNonFinite / ErrNegativeValue for bad entries (wrapping the matrix sentinel).
//
// Complexity: O(m·n).
func (inst Instance) Validate() error {
	m, n := inst.Shape()
	if m == 0 || n == 0 {
		return ErrEmptyInstance
	}
	if len(inst.Costs) != m {
		return fmt.Errorf("%w: %d cost rows for %d sources", ErrDimensionMismatch, len(inst.Costs), m)
	}
	var i int
	for i = 0; i < m; i++ {
		if len(inst.Costs[i]) != n {
			return fmt.Errorf("%w: cost row %d has %d entries for %d destinations",
				ErrDimensionMismatch, i, len(inst.Costs[i]), n)
		}
		if err := matrix.ValidateVecNonNegative(inst.Costs[i]); err != nil {
			return valueError("costs", err)
		}
	}
	if err := matrix.ValidateVecNonNegative(inst.Supply); err != nil {
		return valueError("supply", err)
	}
	if err := matrix.ValidateVecNonNegative(inst.Demand); err != nil {
		return valueError("demand", err)
	}

	return nil
}

// valueError maps matrix value sentinels onto transport sentinels, keeping both.
func valueError(what string, err error) error {
	switch {
	case errors.Is(err, matrix.ErrNaNInf):
		return fmt.Errorf("%w: %s: %w", ErrNonFinite, what, err)
	case errors.Is(err, matrix.ErrNegative):
		return fmt.Errorf("%w: %s: %w", ErrNegativeValue, what, err)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// clone returns a deep copy so the engine never aliases caller slices.
func (inst Instance) clone() Instance {
	out := Instance{
		Costs:  make([][]float64, len(inst.Costs)),
		Supply: append([]float64(nil), inst.Supply...),
		Demand: append([]float64(nil), inst.Demand...),
	}
	for i := range inst.Costs {
		out.Costs[i] = append([]float64(nil), inst.Costs[i]...)
	}

	return out
}

// checkBalanced fails with *ImbalanceError when totals differ beyond
// balanceTolerance.
func checkBalanced(inst Instance, eps float64) error {
	ts, td := inst.Totals()
	m, n := inst.Shape()
	if math.Abs(ts-td) > balanceTolerance(ts, td, eps, m+n) {
		return &ImbalanceError{Supply: ts, Demand: td}
	}

	return nil
}

// balanceTolerance is the summation noise allowed between totals of terms
// addends: eps per addend plus one ulp of the larger total per addend. It is
// absolute, so a whole unit of imbalance on large totals is still rejected.
func balanceTolerance(ts, td, eps float64, terms int) float64 {
	big := math.Max(ts, td)
	ulp := math.Nextafter(big, math.Inf(1)) - big

	return float64(terms) * (eps + ulp)
}

// Balanced is an instance with equal totals and a record of what was added.
type Balanced struct {
	Instance
	DummySource      bool // a zero-cost source row was appended
	DummyDestination bool // a zero-cost destination column was appended
}

// Balance equalises totals by appending a zero-cost dummy destination (excess
// supply) or dummy source (excess demand). Imbalance is the normal case here;
// only malformed input is an error. The input is never modified.
//
// Totals within summation noise (Options.Epsilon per addend) count as equal;
// Solve with WithBalancing applies the same rule with its own options.
//
// Complexity: O(m·n) for the copy.
func Balance(inst Instance, opts ...Option) (Balanced, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return Balanced{}, err
	}
	if err = inst.Validate(); err != nil {
		return Balanced{}, err
	}

	return balance(inst, o.Epsilon), nil
}

func balance(inst Instance, eps float64) Balanced {
	out := Balanced{Instance: inst.clone()}
	ts, td := inst.Totals()
	m, n := inst.Shape()
	if math.Abs(ts-td) <= balanceTolerance(ts, td, eps, m+n) {
		return out
	}

	if ts > td {
		// Surplus supply goes to a dummy destination.
		for i := range out.Costs {
			out.Costs[i] = append(out.Costs[i], 0)
		}
		out.Demand = append(out.Demand, ts-td)
		out.DummyDestination = true

		return out
	}

	// Unmet demand comes from a dummy source.
	out.Costs = append(out.Costs, make([]float64, len(out.Demand)))
	out.Supply = append(out.Supply, td-ts)
	out.DummySource = true

	return out
}
