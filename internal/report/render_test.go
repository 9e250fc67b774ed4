package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtransport/internal/report"
	"github.com/katalvlaran/lvtransport/transport"
)

func solve(t *testing.T, inst transport.Instance, opts ...transport.Option) *transport.Result {
	t.Helper()
	res, err := transport.Solve(context.Background(), inst, opts...)
	require.NoError(t, err)

	return res
}

func textbook() transport.Instance {
	return transport.Instance{
		Costs:  [][]float64{{5, 6, 8, 9}, {8, 4, 7, 5}, {5, 8, 3, 10}},
		Supply: []float64{45, 35, 18},
		Demand: []float64{26, 26, 10, 36},
	}
}

func TestNumber(t *testing.T) {
	require.Equal(t, "18", report.Number(17.9999999999))
	require.Equal(t, "0.333333", report.Number(1.0/3))
	require.Equal(t, "500", report.Number(500))
	require.Equal(t, "0", report.Number(0))
	require.Equal(t, "-2.5", report.Number(-2.5))

	require.Equal(t, report.Marker, report.Quantity(1e-6, 1e-6))
	require.Equal(t, "0", report.Quantity(0, 1e-6))
	require.Equal(t, "3", report.Quantity(3, 1e-6))
}

func TestText_Textbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Text(&buf, solve(t, textbook()), transport.DefaultSentinel))
	out := buf.String()

	for _, want := range []string{
		"Sources: 3, destinations: 4",
		"Step  1: cell (S3, D3), cost = 3, allocated = 10, supply→ 8, demand→ 0",
		"Step  4: cell (S2, D4), cost = 5, allocated = 9, supply→ 0, demand→ 27",
		"Initial cost: 560",
		"Non-degenerate plan: occupied = 6 = m + n - 1",
		"Iter 1: enter (S1, D2), gain = 2, θ = 19, leave (S1, D4), cost = 522",
		"loop: +(S1, D2) → -(S1, D4) → +(S2, D4) → -(S2, D2)",
		"Iter 3: enter (S1, D4), gain = 1, θ = 1, leave (S3, D4), cost = 500",
		"Final cost: 500",
	} {
		require.Contains(t, out, want)
	}
	require.NotContains(t, out, report.Marker)

	// Final table: S1 row lists 18 26 0 1 and the supply 45.
	var s1 []string
	final := out[strings.Index(out, "Final allocation:"):]
	for _, line := range strings.Split(final, "\n") {
		f := strings.Fields(line)
		if len(f) > 0 && f[0] == "S1" {
			s1 = f
			break
		}
	}
	require.Equal(t, []string{"S1", "18", "26", "0", "1", "45"}, s1)
}

func TestText_DegenerateAndBalanced(t *testing.T) {
	inst := transport.Instance{
		Costs:  [][]float64{{1, 2, 3}, {2, 1, 2}, {3, 2, 1}},
		Supply: []float64{5, 5, 5},
		Demand: []float64{5, 5, 4},
	}
	var buf bytes.Buffer
	require.NoError(t, report.Text(&buf, solve(t, inst, transport.WithBalancing()), transport.DefaultSentinel))
	out := buf.String()
	require.Contains(t, out, "Unbalanced: added dummy destination D4 with demand 1")
	require.Contains(t, out, "Degenerate plan:")
	require.Contains(t, out, report.Marker)
}

func TestJSON_Textbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.JSON(&buf, solve(t, textbook()), transport.DefaultSentinel))

	var doc report.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, 3, doc.Sources)
	require.Equal(t, 4, doc.Destinations)
	require.Equal(t, 560.0, doc.InitialCost)
	require.Equal(t, 500.0, doc.FinalCost)
	require.Equal(t, "optimal", doc.State)
	require.Len(t, doc.Steps, 6)
	require.Len(t, doc.Pivots, 3)
	require.Equal(t, report.CellDoc{Source: 1, Destination: 2}, doc.Pivots[0].Entering)
	require.Len(t, doc.Pivots[1].Loop, 6)
	require.Equal(t, [][]float64{{18, 26, 0, 1}, {0, 0, 0, 35}, {8, 0, 10, 0}}, doc.Final)
	require.NotNil(t, doc.Potentials)
	require.Equal(t, []float64{0, -4, 0}, doc.Potentials.U)
}

func TestNilResult(t *testing.T) {
	require.Error(t, report.Text(&bytes.Buffer{}, nil, 0))
	require.Error(t, report.JSON(&bytes.Buffer{}, nil, 0))
}
