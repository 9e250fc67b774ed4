package transport_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtransport/matrix"
	"github.com/katalvlaran/lvtransport/transport"
)

func TestInstanceValidate(t *testing.T) {
	require.NoError(t, textbook().Validate())

	cases := []struct {
		name string
		inst transport.Instance
		want error
	}{
		{"no sources", transport.Instance{Demand: []float64{1}}, transport.ErrEmptyInstance},
		{"no destinations", transport.Instance{Costs: [][]float64{{}}, Supply: []float64{1}}, transport.ErrEmptyInstance},
		{"row count", transport.Instance{
			Costs: [][]float64{{1}}, Supply: []float64{1, 1}, Demand: []float64{2},
		}, transport.ErrDimensionMismatch},
		{"ragged costs", transport.Instance{
			Costs: [][]float64{{1, 2}, {3}}, Supply: []float64{1, 1}, Demand: []float64{1, 1},
		}, transport.ErrDimensionMismatch},
		{"negative cost", transport.Instance{
			Costs: [][]float64{{-1}}, Supply: []float64{1}, Demand: []float64{1},
		}, transport.ErrNegativeValue},
		{"negative supply", transport.Instance{
			Costs: [][]float64{{1}}, Supply: []float64{-1}, Demand: []float64{1},
		}, transport.ErrNegativeValue},
		{"NaN demand", transport.Instance{
			Costs: [][]float64{{1}}, Supply: []float64{1}, Demand: []float64{math.NaN()},
		}, transport.ErrNonFinite},
		{"Inf cost", transport.Instance{
			Costs: [][]float64{{math.Inf(1)}}, Supply: []float64{1}, Demand: []float64{1},
		}, transport.ErrNonFinite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.inst.Validate(), tc.want)
		})
	}
}

func TestValidateKeepsMatrixSentinel(t *testing.T) {
	inst := transport.Instance{Costs: [][]float64{{1}}, Supply: []float64{-3}, Demand: []float64{1}}
	err := inst.Validate()
	require.ErrorIs(t, err, transport.ErrNegativeValue)
	require.ErrorIs(t, err, matrix.ErrNegative)
}

func TestBalance_AlreadyBalanced(t *testing.T) {
	inst := textbook()
	b, err := transport.Balance(inst)
	require.NoError(t, err)
	require.False(t, b.DummySource)
	require.False(t, b.DummyDestination)
	require.Equal(t, inst.Costs, b.Costs)
	require.Equal(t, inst.Supply, b.Supply)
	require.Equal(t, inst.Demand, b.Demand)

	// Deep copy: mutating the result leaves the input alone.
	b.Costs[0][0] = 99
	b.Supply[0] = 99
	require.Equal(t, 5.0, inst.Costs[0][0])
	require.Equal(t, 45.0, inst.Supply[0])
}

func TestBalance_SupplySurplusAddsDestination(t *testing.T) {
	inst := transport.Instance{
		Costs:  [][]float64{{4}, {6}},
		Supply: []float64{10, 10},
		Demand: []float64{15},
	}
	b, err := transport.Balance(inst)
	require.NoError(t, err)
	require.True(t, b.DummyDestination)
	require.False(t, b.DummySource)
	require.Equal(t, [][]float64{{4, 0}, {6, 0}}, b.Costs)
	require.Equal(t, []float64{15, 5}, b.Demand)
	require.Equal(t, []float64{10, 10}, b.Supply)
	require.Len(t, inst.Costs[0], 1, "input untouched")
}

func TestBalance_DemandSurplusAddsSource(t *testing.T) {
	inst := transport.Instance{
		Costs:  [][]float64{{2, 3}},
		Supply: []float64{7},
		Demand: []float64{4, 5},
	}
	b, err := transport.Balance(inst)
	require.NoError(t, err)
	require.True(t, b.DummySource)
	require.Equal(t, [][]float64{{2, 3}, {0, 0}}, b.Costs)
	require.Equal(t, []float64{7, 2}, b.Supply)

	ts, td := b.Totals()
	require.Equal(t, ts, td)
}

func TestBalance_RejectsMalformed(t *testing.T) {
	_, err := transport.Balance(transport.Instance{})
	require.ErrorIs(t, err, transport.ErrEmptyInstance)
}

func TestImbalanceError(t *testing.T) {
	inst := transport.Instance{
		Costs:  [][]float64{{4}, {6}},
		Supply: []float64{10, 10},
		Demand: []float64{15},
	}
	_, _, err := transport.LeastCost(inst)
	require.ErrorIs(t, err, transport.ErrImbalancedInstance)

	var ie *transport.ImbalanceError
	require.True(t, errors.As(err, &ie))
	require.Equal(t, 20.0, ie.Supply)
	require.Equal(t, 15.0, ie.Demand)
	require.Contains(t, ie.Error(), "20")
}

func TestImbalance_UnitGapOnLargeTotals(t *testing.T) {
	cases := []struct {
		name string
		inst transport.Instance
	}{
		{"single source", transport.Instance{
			Costs: [][]float64{{1}}, Supply: []float64{1e9 + 1}, Demand: []float64{1e9},
		}},
		{"split supply", transport.Instance{
			Costs: [][]float64{{1}, {1}}, Supply: []float64{5e8 + 1, 5e8}, Demand: []float64{1e9},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := transport.LeastCost(tc.inst)
			require.ErrorIs(t, err, transport.ErrImbalancedInstance)

			res, err := transport.Solve(context.Background(), tc.inst)
			require.ErrorIs(t, err, transport.ErrImbalancedInstance)
			require.Nil(t, res)

			b, err := transport.Balance(tc.inst)
			require.NoError(t, err)
			require.True(t, b.DummyDestination)
			require.Equal(t, 1.0, b.Demand[len(b.Demand)-1])
		})
	}
}

func TestImbalance_SummationNoiseIsBalanced(t *testing.T) {
	// 0.1+0.2 != 0.3 in float64.
	inst := transport.Instance{
		Costs:  [][]float64{{1}, {2}},
		Supply: []float64{0.1, 0.2},
		Demand: []float64{0.3},
	}
	alloc, steps, err := transport.LeastCost(inst)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	requireFeasible(t, inst, alloc)

	b, err := transport.Balance(inst)
	require.NoError(t, err)
	require.False(t, b.DummySource)
	require.False(t, b.DummyDestination)
}

func TestBalance_HonoursOptions(t *testing.T) {
	inst := transport.Instance{
		Costs:  [][]float64{{1}},
		Supply: []float64{1e9 + 1},
		Demand: []float64{1e9},
	}
	b, err := transport.Balance(inst, transport.WithSentinel(4), transport.WithEpsilon(1))
	require.NoError(t, err)
	require.False(t, b.DummyDestination, "a unit gap is within 2·(eps+ulp)")

	_, err = transport.Balance(inst, func(o *transport.Options) { o.Epsilon = 1 })
	require.ErrorIs(t, err, transport.ErrBadOptions)
}
