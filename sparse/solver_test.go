// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/uvatlas/sparse"
)

func TestJacobiPreconditioner(t *testing.T) {
	a := mustMatrix(t, [][]float64{
		{4, 0},
		{0, 0},
	})
	j, err := sparse.NewJacobiPreconditioner(a)
	require.NoError(t, err)
	dst := make([]float64, 2)
	j.Apply(dst, []float64{2, 3})
	require.Equal(t, []float64{1, 3}, dst)

	_, err = sparse.NewJacobiPreconditioner(mustMatrix(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, sparse.ErrNonSquare)
	_, err = sparse.NewJacobiPreconditioner(nil)
	require.ErrorIs(t, err, sparse.ErrNilMatrix)
}

func TestConjugateGradient_SolvesSPD(t *testing.T) {
	a := mustMatrix(t, [][]float64{
		{4, 1},
		{1, 3},
	})
	pre, err := sparse.NewJacobiPreconditioner(a)
	require.NoError(t, err)

	for _, p := range []sparse.Preconditioner{nil, pre} {
		x := []float64{0, 0}
		res, err := sparse.ConjugateGradient(a, []float64{1, 2}, x, p, 1e-10)
		require.NoError(t, err)
		require.True(t, res.Converged)
		require.LessOrEqual(t, res.Iterations, 8)
		require.InDelta(t, 1.0/11, x[0], 1e-8)
		require.InDelta(t, 7.0/11, x[1], 1e-8)
	}
}

func TestConjugateGradient_ZeroResidual(t *testing.T) {
	a := mustMatrix(t, [][]float64{{2, 0}, {0, 2}})
	x := []float64{1, 1}
	res, err := sparse.ConjugateGradient(a, []float64{2, 2}, x, nil, 1e-6)
	require.NoError(t, err)
	require.Zero(t, res.Iterations)
	require.Equal(t, []float64{1, 1}, x)
}

func TestConjugateGradient_NotConverged(t *testing.T) {
	a := mustMatrix(t, [][]float64{
		{4, 1, 0},
		{1, 3, 1},
		{0, 1, 2},
	})
	pre, err := sparse.NewJacobiPreconditioner(a)
	require.NoError(t, err)
	x := make([]float64, 3)
	res, err := sparse.ConjugateGradient(a, []float64{1, 2, 3}, x, pre, 1e-12, sparse.WithMaxIterations(1))
	require.ErrorIs(t, err, sparse.ErrNotConverged)
	require.False(t, res.Converged)
	require.Equal(t, 1, res.Iterations)
}

func TestConjugateGradient_Validation(t *testing.T) {
	sq := mustMatrix(t, [][]float64{{1, 0}, {0, 1}})
	_, err := sparse.ConjugateGradient(nil, nil, nil, nil, 1e-6)
	require.ErrorIs(t, err, sparse.ErrNilMatrix)
	_, err = sparse.ConjugateGradient(mustMatrix(t, [][]float64{{1, 2}}), []float64{1}, []float64{0, 0}, nil, 1e-6)
	require.ErrorIs(t, err, sparse.ErrNonSquare)
	_, err = sparse.ConjugateGradient(sq, []float64{1}, []float64{0, 0}, nil, 1e-6)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

// lineFit is y = 1 + 2t sampled at t = 0..3, unknowns (intercept, slope).
func lineFit(t *testing.T) (*sparse.Matrix, []float64) {
	rows := make([][]float64, 4)
	b := make([]float64, 4)
	for i := range rows {
		rows[i] = []float64{1, float64(i)}
		b[i] = 1 + 2*float64(i)
	}
	return mustMatrix(t, rows), b
}

func TestLeastSquares(t *testing.T) {
	tests := []struct {
		name   string
		x0     []float64
		locked []int
		want   []float64
	}{
		{"free", []float64{0, 0}, nil, []float64{1, 2}},
		{"intercept locked", []float64{1, 0}, []int{0}, []float64{1, 2}},
		{"wrong intercept locked", []float64{3, 0}, []int{0}, []float64{3, 2 - 6.0/7}},
		{"all locked", []float64{5, 6}, []int{0, 1}, []float64{5, 6}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := lineFit(t)
			x := append([]float64(nil), tc.x0...)
			res, err := sparse.LeastSquares(a, b, x, tc.locked, 1e-9)
			require.NoError(t, err)
			require.True(t, res.Converged)
			require.InDeltaSlice(t, tc.want, x, 1e-6)
		})
	}
}

func TestLeastSquares_Errors(t *testing.T) {
	a, b := lineFit(t)
	_, err := sparse.LeastSquares(nil, b, nil, nil, 0)
	require.ErrorIs(t, err, sparse.ErrNilMatrix)
	_, err = sparse.LeastSquares(a, b[:2], []float64{0, 0}, nil, 0)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	_, err = sparse.LeastSquares(a, b, []float64{0, 0}, []int{2}, 0)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)

	one := mustMatrix(t, [][]float64{{1, 1}})
	_, err = sparse.LeastSquares(one, []float64{1}, []float64{0, 0}, nil, 0)
	require.ErrorIs(t, err, sparse.ErrUnderdetermined)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	require.PanicsWithValue(t, "sparse: WithMaxIterations: n must be > 0", func() { sparse.WithMaxIterations(0) })
	require.PanicsWithValue(t, "sparse: WithResidualRecompute: k must be > 0", func() { sparse.WithResidualRecompute(-1) })
}
