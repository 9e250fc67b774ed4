package transport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtransport/transport"
)

func TestSolveBatch_InputOrder(t *testing.T) {
	rng := newRand()
	insts := make([]transport.Instance, 24)
	for k := range insts {
		insts[k] = randomInstance(rng, 2+rng.Intn(4), 2+rng.Intn(4), true)
	}
	insts[5] = textbook()

	res, err := transport.SolveBatch(context.Background(), insts, transport.WithConcurrency(3))
	require.NoError(t, err)
	require.Len(t, res, len(insts))
	for k, r := range res {
		require.NotNil(t, r, "instance %d", k)
		one, err := transport.Solve(context.Background(), insts[k])
		require.NoError(t, err)
		require.Equal(t, one.FinalCost, r.FinalCost, "instance %d", k)
		require.Equal(t, one.Final.ToRows(), r.Final.ToRows(), "instance %d", k)
	}
	require.Equal(t, 500.0, res[5].FinalCost)
}

func TestSolveBatch_ReportsFailingIndex(t *testing.T) {
	insts := []transport.Instance{
		textbook(),
		{Costs: [][]float64{{1}, {2}}, Supply: []float64{10, 10}, Demand: []float64{15}},
	}
	_, err := transport.SolveBatch(context.Background(), insts, transport.WithConcurrency(1))
	require.ErrorIs(t, err, transport.ErrImbalancedInstance)
	require.Contains(t, err.Error(), "instance 1")
}

func TestSolveBatch_Empty(t *testing.T) {
	res, err := transport.SolveBatch(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, res)
}

func TestSolveBatch_BadOptions(t *testing.T) {
	_, err := transport.SolveBatch(context.Background(), []transport.Instance{textbook()},
		func(o *transport.Options) { o.Sentinel = 0 })
	require.ErrorIs(t, err, transport.ErrBadOptions)
}
