// SPDX-License-Identifier: MIT

package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
)

func TestEqual_RelativeScale(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		want bool
	}{
		{"Identical", 1, 1, true},
		{"SmallAbsolute", 0, 5e-5, true},
		{"TooFar", 0, 2e-4, false},
		{"LargeRelative", 10000, 10000.5, true},
		{"LargeTooFar", 10000, 10002, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, geom.Equal(tc.a, tc.b, geom.Epsilon))
		})
	}
}

func TestTriangleArea2_Winding(t *testing.T) {
	a := r2.Vec{X: 0, Y: 0}
	b := r2.Vec{X: 1, Y: 0}
	c := r2.Vec{X: 0, Y: 1}
	require.InDelta(t, 1.0, geom.TriangleArea2(a, b, c), 1e-12)
	require.InDelta(t, -1.0, geom.TriangleArea2(a, c, b), 1e-12)
}

func TestFrameForDirection_Orthonormal(t *testing.T) {
	dirs := []r3.Vec{
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 0},
		r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3}),
		r3.Unit(r3.Vec{X: -0.3, Y: 0.1, Z: -0.9}),
	}
	for _, d := range dirs {
		for _, angle := range []float64{0, 0.7} {
			b := geom.FrameForDirection(d, angle)
			require.InDelta(t, 1.0, r3.Norm(b.Tangent), 1e-9)
			require.InDelta(t, 1.0, r3.Norm(b.Bitangent), 1e-9)
			require.InDelta(t, 0.0, r3.Dot(b.Tangent, b.Normal), 1e-9)
			require.InDelta(t, 0.0, r3.Dot(b.Bitangent, b.Normal), 1e-9)
			require.InDelta(t, 0.0, r3.Dot(b.Tangent, b.Bitangent), 1e-9)
		}
	}
}

func TestPrincipalAxes_PlaneZ(t *testing.T) {
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 2}, {X: 4, Y: 0, Z: 2}, {X: 4, Y: 1, Z: 2},
		{X: 0, Y: 1, Z: 2}, {X: 2, Y: 0.5, Z: 2},
	}
	axes, err := geom.PrincipalAxes(pts)
	require.NoError(t, err)
	require.GreaterOrEqual(t, axes.Values[0], axes.Values[1])
	require.GreaterOrEqual(t, axes.Values[1], axes.Values[2])
	require.InDelta(t, 1.0, math.Abs(axes.Normal().Z), 1e-9)
	require.InDelta(t, 1.0, math.Abs(axes.Vectors[0].X), 1e-9)
	require.True(t, geom.IsPlanar(pts, geom.Epsilon))

	pts = append(pts, r3.Vec{X: 2, Y: 0.5, Z: 5})
	require.False(t, geom.IsPlanar(pts, geom.Epsilon))
}

func TestPrincipalAxes_Empty(t *testing.T) {
	_, err := geom.PrincipalAxes(nil)
	require.ErrorIs(t, err, geom.ErrEigenFailed)
}

func TestAlignAndPowerOfTwo(t *testing.T) {
	require.Equal(t, 8, geom.Align(5, 4))
	require.Equal(t, 4, geom.Align(4, 4))
	require.Equal(t, 1, geom.NextPowerOfTwo(0))
	require.Equal(t, 64, geom.NextPowerOfTwo(33))
	require.Equal(t, 64, geom.NextPowerOfTwo(64))
}
