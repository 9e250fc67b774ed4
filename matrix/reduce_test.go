package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvtransport/matrix"
)

// sliceMatrix is a minimal non-Dense Matrix used to hit the generic paths.
type sliceMatrix struct{ a [][]float64 }

var _ matrix.Matrix = sliceMatrix{}

func (m sliceMatrix) Rows() int { return len(m.a) }
func (m sliceMatrix) Cols() int {
	if len(m.a) == 0 {
		return 0
	}

	return len(m.a[0])
}
func (m sliceMatrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, matrix.ErrOutOfRange
	}

	return m.a[i][j], nil
}
func (m sliceMatrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return matrix.ErrOutOfRange
	}
	m.a[i][j] = v

	return nil
}
func (m sliceMatrix) Clone() matrix.Matrix {
	cp := make([][]float64, len(m.a))
	for i := range m.a {
		cp[i] = append([]float64(nil), m.a[i]...)
	}

	return sliceMatrix{a: cp}
}

func TestRowColSums_DenseAndGeneric(t *testing.T) {
	rows := [][]float64{{5, 6, 8, 9}, {8, 4, 7, 5}, {5, 8, 3, 10}}
	d, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	for name, m := range map[string]matrix.Matrix{"dense": d, "generic": sliceMatrix{a: rows}} {
		t.Run(name, func(t *testing.T) {
			rs, err := matrix.RowSums(m)
			require.NoError(t, err)
			require.Equal(t, []float64{28, 24, 26}, rs)

			cs, err := matrix.ColSums(m)
			require.NoError(t, err)
			require.Equal(t, []float64{18, 18, 18, 24}, cs)
		})
	}
}

func TestSumWhere(t *testing.T) {
	qty, err := matrix.NewDenseFrom([][]float64{{2, 0}, {1e-6, 3}})
	require.NoError(t, err)
	unit := [][]float64{{10, 20}, {30, 40}}

	total, err := matrix.SumWhere(qty,
		func(_, _ int, v float64) bool { return v > 1e-6 },
		func(i, j int, v float64) float64 { return v * unit[i][j] },
	)
	require.NoError(t, err)
	require.Equal(t, 2*10+3*40.0, total)

	plain, err := matrix.SumWhere(qty, nil, nil)
	require.NoError(t, err)
	require.InDelta(t, 5.000001, plain, 1e-12)
}

func TestReductionsNil(t *testing.T) {
	var d *matrix.Dense
	_, err := matrix.RowSums(d)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.ColSums(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.SumWhere(nil, nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestValidators(t *testing.T) {
	ok, err := matrix.NewDenseFrom([][]float64{{0, 1}, {2, 3}})
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateNonNegative(ok))

	neg := sliceMatrix{a: [][]float64{{0, -1}}}
	require.ErrorIs(t, matrix.ValidateNonNegative(neg), matrix.ErrNegative)

	nan := sliceMatrix{a: [][]float64{{math.NaN()}}}
	require.ErrorIs(t, matrix.ValidateNonNegative(nan), matrix.ErrNaNInf)

	require.NoError(t, matrix.ValidateVecNonNegative([]float64{0, 1.5}))
	require.ErrorIs(t, matrix.ValidateVecNonNegative([]float64{1, -2}), matrix.ErrNegative)
	require.ErrorIs(t, matrix.ValidateVecNonNegative([]float64{math.Inf(1)}), matrix.ErrNaNInf)

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)

	other, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateSameShape(ok, other), matrix.ErrDimensionMismatch)
}

func TestGonumRoundTrip(t *testing.T) {
	d, err := matrix.NewDenseFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	g := d.Gonum()
	r, c := g.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 6.0, g.At(1, 2))

	g.Set(0, 0, 42) // copy, not alias
	v, err := d.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	back, err := matrix.FromGonum(mat.DenseCopyOf(g.T()))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{42, 4}, {2, 5}, {3, 6}}, back.ToRows())
}
