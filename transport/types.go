package transport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvtransport/matrix"
)

// Sentinel errors returned by the transport engine.
var (
	// ErrImbalancedInstance indicates that total supply differs from total demand.
	// Balance the instance explicitly (Balance or WithBalancing) to recover.
	ErrImbalancedInstance = errors.New("transport: total supply does not equal total demand")

	// ErrDegenerateBasisExhausted indicates that the occupied-cell count could not be
	// raised to m+n-1. It signals a bug or a corrupted allocation, never bad user input.
	ErrDegenerateBasisExhausted = errors.New("transport: degeneracy resolution exhausted the matrix")

	// ErrCycleNotFound indicates that no closed alternating loop passes through the
	// entering cell, i.e. the occupied set is not a spanning tree.
	ErrCycleNotFound = errors.New("transport: no closed loop through entering cell")

	// ErrUndeterminedPotentials indicates that some u or v could not be derived
	// from the occupied cells, so no optimality verdict is possible.
	ErrUndeterminedPotentials = errors.New("transport: potentials not determined by the basis")

	// ErrNonConvergence indicates that the iteration bound or the context ran out
	// before an optimal plan was reached.
	ErrNonConvergence = errors.New("transport: optimization did not converge")

	// ErrEmptyInstance indicates an instance with no sources or no destinations.
	ErrEmptyInstance = errors.New("transport: instance has no sources or destinations")

	// ErrDimensionMismatch indicates inconsistent shapes between costs, supply,
	// demand or an allocation.
	ErrDimensionMismatch = errors.New("transport: dimension mismatch")

	// ErrNegativeValue indicates a negative cost, supply, demand or quantity.
	ErrNegativeValue = errors.New("transport: negative value")

	// ErrNonFinite indicates a NaN or ±Inf in the instance.
	ErrNonFinite = errors.New("transport: NaN or Inf value")

	// ErrBadCycle indicates a malformed loop passed to ApplyCycle.
	ErrBadCycle = errors.New("transport: malformed cycle")

	// ErrBadOptions indicates an inconsistent Options value.
	ErrBadOptions = errors.New("transport: invalid options")
)

// Cell addresses one (source, destination) pair by zero-based indices.
type Cell struct {
	Row int
	Col int
}

// String renders the cell with 1-based source/destination labels, e.g. "(S1, D3)".
func (c Cell) String() string {
	return fmt.Sprintf("(S%d, D%d)", c.Row+1, c.Col+1)
}

// Step is one greedy allocation decision, in the order it was taken.
type Step struct {
	Index           int     // 1-based position in the greedy log
	Cell            Cell    // cell that received the quantity
	UnitCost        float64 // c[i][j]
	Quantity        float64 // min(remaining supply, remaining demand)
	RemainingSupply float64 // supply left in the row after the step
	RemainingDemand float64 // demand left in the column after the step
}

// Pivot is one MODI iteration, appended to the audit trail after it completes.
type Pivot struct {
	Iteration int     // 1-based
	Entering  Cell    // cell entering the basis
	Gain      float64 // u[i] + v[j] - c[i][j] of the entering cell (> Epsilon)
	Theta     float64 // quantity shifted around the loop; 0 for a degenerate pivot
	Cycle     []Cell  // loop starting at Entering; even positions gain θ, odd lose θ
	Leaving   Cell    // cell that left the basis
	Cost      float64 // plan cost after the pivot
}

// State is the optimisation driver state.
type State uint8

const (
	// Improving means an improving pivot may still exist.
	Improving State = iota
	// Optimal means no unoccupied cell has a gain above the tolerance.
	Optimal
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Improving:
		return "improving"
	case Optimal:
		return "optimal"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Result is the full outcome of Solve.
type Result struct {
	// Balanced is the instance that was actually solved, with dummy flags.
	Balanced Balanced

	// Initial is the least-cost allocation, before degeneracy markers.
	Initial *matrix.Dense
	// Steps is the greedy decision log.
	Steps []Step
	// InitialCost is Σ Initial[i][j]·c[i][j].
	InitialCost float64

	// Degenerate reports Occupied < Expected for the initial allocation.
	Degenerate bool
	// Occupied counts strictly positive cells of Initial.
	Occupied int
	// Expected is m+n-1.
	Expected int
	// Markers lists cells that received the degeneracy sentinel before MODI.
	Markers []Cell

	// Final is the optimised allocation; marker cells hold Options.Sentinel.
	Final *matrix.Dense
	// Pivots is the MODI audit trail.
	Pivots []Pivot
	// FinalCost excludes marker cells.
	FinalCost float64
	// State is Optimal on success.
	State State
	// Potentials are the duals certifying Final.
	Potentials Potentials
}

// ImbalanceError carries both totals of an unbalanced instance.
// It unwraps to ErrImbalancedInstance.
type ImbalanceError struct {
	Supply float64
	Demand float64
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("transport: total supply %g does not equal total demand %g", e.Supply, e.Demand)
}

// Unwrap returns ErrImbalancedInstance.
func (e *ImbalanceError) Unwrap() error { return ErrImbalancedInstance }

// InvariantError reports a violated basic-solution invariant with enough state to
// reproduce it. Err is ErrDegenerateBasisExhausted, ErrCycleNotFound or
// ErrUndeterminedPotentials.
type InvariantError struct {
	Op       string
	Rows     int
	Cols     int
	Expected int    // m+n-1
	Occupied []Cell // occupied cells at the time of failure, row-major
	Entering *Cell  // entering cell, when the failure happened during a pivot
	Err      error
}

func (e *InvariantError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transport: %s: %v (dims %dx%d, occupied %d of %d",
		e.Op, e.Err, e.Rows, e.Cols, len(e.Occupied), e.Expected)
	if e.Entering != nil {
		fmt.Fprintf(&b, ", entering %s", e.Entering)
	}
	b.WriteString(", basis [")
	for k, c := range e.Occupied {
		if k > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.String())
	}
	b.WriteString("])")

	return b.String()
}

// Unwrap returns the underlying sentinel.
func (e *InvariantError) Unwrap() error { return e.Err }

// ConvergenceError reports an optimisation stopped by its iteration bound or by
// the context. It matches ErrNonConvergence and, when set, Cause.
type ConvergenceError struct {
	Iterations int
	Bound      int
	Cause      error // context error, nil when the iteration bound fired
}

func (e *ConvergenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport: optimization stopped after %d pivots (bound %d): %v",
			e.Iterations, e.Bound, e.Cause)
	}

	return fmt.Sprintf("transport: optimization did not converge within %d pivots", e.Bound)
}

// Unwrap exposes both ErrNonConvergence and the cause to errors.Is.
func (e *ConvergenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNonConvergence}
	}

	return []error{ErrNonConvergence, e.Cause}
}
