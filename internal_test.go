// SPDX-License-Identifier: MIT

package uvatlas

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestStreamsAreStable(t *testing.T) {
	require.Equal(t, deriveSeed(5, 3), deriveSeed(5, 3))
	require.NotEqual(t, deriveSeed(5, 3), deriveSeed(5, 4))
	require.NotEqual(t, deriveSeed(5, 3), deriveSeed(6, 3))
	require.NotEqual(t, deriveSeed(1, packStream), deriveSeed(1, segmentStream))

	a, b := streamRNG(11, segmentStream), streamRNG(11, segmentStream)
	for i := 0; i < 8; i++ {
		require.Equal(t, a.Int63(), b.Int63())
	}
}

func TestWithSeedZeroIsDefault(t *testing.T) {
	require.Equal(t, defaultRNGSeed, New(WithSeed(0)).seed)
	require.Equal(t, int64(77), New(WithSeed(77)).seed)
	require.Equal(t, defaultRNGSeed, New(WithRand(nil)).seed)
}

func TestWeldCanonical(t *testing.T) {
	pos := []r3.Vec{
		{X: 0},
		{X: 1},
		{X: 1e-6},
		{X: 1 - 1e-6},
		{X: 2e-6},
		{X: 5},
	}
	require.Equal(t, []int{0, 1, 0, 1, 0, 5}, weldCanonical(pos, 1e-5))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, weldCanonical(pos, 1e-9))
	require.Empty(t, weldCanonical(nil, 1))
}

func TestDegenerate(t *testing.T) {
	pos := []r3.Vec{{}, {X: 1}, {Y: 1}, {X: 2}, {}}
	tests := []struct {
		tri  [3]uint32
		want string
	}{
		{[3]uint32{0, 1, 2}, ""},
		{[3]uint32{0, 0, 1}, "repeated index"},
		{[3]uint32{0, 4, 1}, "zero length edge"},
		{[3]uint32{0, 1, 3}, "zero area"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, degenerate(pos, tt.tri), "%v", tt.tri)
	}
}

func TestProgressReporter(t *testing.T) {
	var got []int
	p := startProgress(func(_ ProgressCategory, pct int) { got = append(got, pct) }, PackingCharts)
	for i := 1; i <= 3; i++ {
		p.step(i, 3)
		p.step(i, 3)
	}
	p.finish()
	require.Equal(t, []int{0, 33, 66, 99, 100}, got)

	startProgress(nil, PackingCharts).finish()
}
