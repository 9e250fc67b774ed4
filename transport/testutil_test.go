package transport_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtransport/matrix"
	"github.com/katalvlaran/lvtransport/transport"
)

const (
	seedDet = 20240611 // fixed seed for reproducible random instances
	tolQty  = 1e-7     // feasibility tolerance on row/column sums
)

// textbook is the 3×4 reference instance used across tests.
func textbook() transport.Instance {
	return transport.Instance{
		Costs: [][]float64{
			{5, 6, 8, 9},
			{8, 4, 7, 5},
			{5, 8, 3, 10},
		},
		Supply: []float64{45, 35, 18},
		Demand: []float64{26, 26, 10, 36},
	}
}

// textbookInitial is the least-cost plan of textbook().
func textbookInitial() [][]float64 {
	return [][]float64{
		{26, 0, 0, 19},
		{0, 26, 0, 9},
		{0, 0, 10, 8},
	}
}

// textbookFinal is the MODI optimum reached from textbookInitial.
func textbookFinal() [][]float64 {
	return [][]float64{
		{18, 26, 0, 1},
		{0, 0, 0, 35},
		{8, 0, 10, 0},
	}
}

func mustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return d
}

// approxRows compares matrices up to tol, reporting a readable diff.
func approxRows(t testing.TB, want, got [][]float64, tol float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Fatalf("allocation mismatch (-want +got):\n%s", diff)
	}
}

// requireFeasible checks non-negativity and that rows/columns ship exactly
// supply/demand, ignoring marker cells up to sentinel.
func requireFeasible(t testing.TB, inst transport.Instance, alloc *matrix.Dense) {
	t.Helper()
	m, n := inst.Shape()
	require.Equal(t, m, alloc.Rows())
	require.Equal(t, n, alloc.Cols())
	require.NoError(t, matrix.ValidateNonNegative(alloc))

	rs, err := matrix.RowSums(alloc)
	require.NoError(t, err)
	cs, err := matrix.ColSums(alloc)
	require.NoError(t, err)
	slack := float64(m+n) * transport.DefaultSentinel
	for i := range rs {
		require.InDelta(t, inst.Supply[i], rs[i], slack+tolQty, "row %d", i)
	}
	for j := range cs {
		require.InDelta(t, inst.Demand[j], cs[j], slack+tolQty, "col %d", j)
	}
}

// randomInstance builds a balanced m×n instance. Integer data produces many
// degenerate plans; fractional data stresses the tolerances.
func randomInstance(rng *rand.Rand, m, n int, integral bool) transport.Instance {
	draw := func(hi float64) float64 {
		if integral {
			return float64(rng.Intn(int(hi)) + 1)
		}

		return math.Round((rng.Float64()*hi+0.5)*1000) / 1000
	}

	inst := transport.Instance{
		Costs:  make([][]float64, m),
		Supply: make([]float64, m),
		Demand: make([]float64, n),
	}
	for i := 0; i < m; i++ {
		inst.Costs[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			inst.Costs[i][j] = draw(20)
		}
		inst.Supply[i] = draw(30)
	}

	// Split the total supply over destinations so the instance is balanced.
	total, _ := inst.Totals()
	rest := total
	for j := 0; j < n-1; j++ {
		share := math.Floor(rest / float64(n-j))
		if !integral {
			share = math.Round(rest/float64(n-j)*1000) / 1000
		}
		inst.Demand[j] = share
		rest -= share
	}
	inst.Demand[n-1] = rest

	return inst
}

func newRand() *rand.Rand { return rand.New(rand.NewSource(seedDet)) }
