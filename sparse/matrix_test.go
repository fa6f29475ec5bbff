// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/uvatlas/sparse"
)

func mustMatrix(t *testing.T, rows [][]float64) *sparse.Matrix {
	t.Helper()
	m, err := sparse.NewMatrix(len(rows), len(rows[0]))
	require.NoError(t, err)
	for y, row := range rows {
		for x, v := range row {
			require.NoError(t, m.Set(y, x, v))
		}
	}
	return m
}

func TestNewMatrix_BadShape(t *testing.T) {
	for _, tc := range []struct{ r, c int }{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := sparse.NewMatrix(tc.r, tc.c)
		require.ErrorIs(t, err, sparse.ErrBadShape)
	}
}

func TestMatrix_SetAddAt(t *testing.T) {
	m, err := sparse.NewMatrix(2, 3)
	require.NoError(t, err)
	require.Equal(t, 3, m.Width())
	require.Equal(t, 2, m.Height())

	require.NoError(t, m.Set(0, 2, 5))
	require.NoError(t, m.Add(0, 2, 1))
	require.NoError(t, m.Add(1, 0, -2))
	require.NoError(t, m.Set(1, 1, 0)) // zero on a missing slot stores nothing
	require.Equal(t, 2, m.NonZeros())

	v, err := m.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
	v, err = m.At(1, 1)
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 3, 1), sparse.ErrOutOfRange)
	require.ErrorIs(t, m.Add(-1, 0, 1), sparse.ErrOutOfRange)
	require.Nil(t, m.Row(5))
	require.Len(t, m.Row(0), 1)
}

func TestMatrix_TransposeAndMulVec(t *testing.T) {
	a := mustMatrix(t, [][]float64{
		{1, 2, 0},
		{0, 3, 4},
	})
	at := a.Transpose()
	require.Equal(t, 2, at.Width())
	require.Equal(t, 3, at.Height())
	v, _ := at.At(2, 1)
	require.Equal(t, 4.0, v)

	y := make([]float64, 2)
	require.NoError(t, a.MulVec(y, []float64{1, 1, 1}, false))
	require.Equal(t, []float64{3, 7}, y)

	z := make([]float64, 3)
	require.NoError(t, a.MulVec(z, []float64{1, 2}, true))
	require.Equal(t, []float64{1, 8, 8}, z)

	require.ErrorIs(t, a.MulVec(z, []float64{1, 2}, false), sparse.ErrDimensionMismatch)
	require.ErrorIs(t, a.MulVec(y, []float64{1, 2, 3}, true), sparse.ErrDimensionMismatch)
}

func TestMatrix_MulTranspose(t *testing.T) {
	a := mustMatrix(t, [][]float64{
		{1, 2},
		{3, 4},
		{0, 1},
	})
	ata := a.MulTranspose()
	require.True(t, ata.IsSymmetric(0))
	want := [][]float64{{10, 14}, {14, 21}}
	for y := range want {
		for x := range want[y] {
			v, err := ata.At(y, x)
			require.NoError(t, err)
			require.InDelta(t, want[y][x], v, 1e-12)
		}
	}
	require.False(t, a.IsSymmetric(0))
	require.False(t, mustMatrix(t, [][]float64{{1, 2}, {0, 1}}).IsSymmetric(1e-9))
}
