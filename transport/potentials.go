package transport

import (
	"fmt"

	"github.com/katalvlaran/lvtransport/matrix"
)

// PotentialState tells whether a potential has a value yet.
type PotentialState uint8

const (
	// Unknown: not reached from the anchor through occupied cells.
	Unknown PotentialState = iota
	// Derived: fixed by u[i]+v[j] = c[i][j] on some occupied cell.
	Derived
	// Anchor: u[0], fixed at 0.
	Anchor
)

// String implements fmt.Stringer.
func (s PotentialState) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Derived:
		return "derived"
	case Anchor:
		return "anchor"
	default:
		return fmt.Sprintf("PotentialState(%d)", uint8(s))
	}
}

// Potential is one MODI dual value. Value is meaningful only when Known.
type Potential struct {
	State PotentialState
	Value float64
}

// Known reports whether the potential has been assigned.
func (p Potential) Known() bool { return p.State != Unknown }

// Potentials are the row (U) and column (V) duals of a basic solution.
type Potentials struct {
	U []Potential
	V []Potential
}

// Determined reports whether every potential is known, which holds exactly
// when the occupied cells connect all rows and columns.
func (p Potentials) Determined() bool {
	for _, x := range p.U {
		if !x.Known() {
			return false
		}
	}
	for _, x := range p.V {
		if !x.Known() {
			return false
		}
	}

	return true
}

// Values returns plain slices; unknown entries are 0.
func (p Potentials) Values() (u, v []float64) {
	u = make([]float64, len(p.U))
	v = make([]float64, len(p.V))
	for i, x := range p.U {
		u[i] = x.Value
	}
	for j, x := range p.V {
		v[j] = x.Value
	}

	return u, v
}

// ComputePotentials solves u[i] + v[j] = c[i][j] over occupied cells with
// u[0] = 0, sweeping the allocation until nothing new is derived (at most
// m+n+1 sweeps). Potentials not connected to the anchor stay Unknown; that
// is not an error here, SelectEntering skips such cells.
//
// Errors:
//   - ErrEmptyInstance / ErrDimensionMismatch / ErrNonFinite / ErrNegativeValue
//     for malformed costs or an allocation of another shape.
//
// Complexity: O(mn·(m+n)) worst case, O(mn) per sweep.
func ComputePotentials(costs [][]float64, alloc *matrix.Dense) (Potentials, error) {
	m, n, err := costsShape(costs)
	if err != nil {
		return Potentials{}, err
	}
	a, err := allocationTable(alloc, m, n)
	if err != nil {
		return Potentials{}, err
	}

	return computePotentials(costTable(costs), a), nil
}

func computePotentials(c, a table) Potentials {
	m, n := a.rows, a.cols
	p := Potentials{U: make([]Potential, m), V: make([]Potential, n)}
	p.U[0] = Potential{State: Anchor}

	var (
		i, j    int
		changed bool
	)
	for pass := 0; pass <= m+n; pass++ {
		changed = false
		for i = 0; i < m; i++ {
			for j = 0; j < n; j++ {
				if !a.occupied(i, j) {
					continue
				}
				switch {
				case p.U[i].Known() && !p.V[j].Known():
					p.V[j] = Potential{State: Derived, Value: c.at(i, j) - p.U[i].Value}
					changed = true
				case p.V[j].Known() && !p.U[i].Known():
					p.U[i] = Potential{State: Derived, Value: c.at(i, j) - p.V[j].Value}
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return p
}
