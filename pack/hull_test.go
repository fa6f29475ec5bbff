// SPDX-License-Identifier: MIT

package pack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvatlas/geom"
	"github.com/katalvlaran/uvatlas/pack"
)

func TestConvexHull(t *testing.T) {
	tests := []struct {
		name string
		in   []r2.Vec
		want []r2.Vec
	}{
		{
			name: "square with noise",
			in: []r2.Vec{
				{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
				{X: 0.5, Y: 0}, {X: 0, Y: 0}, {X: 0.5, Y: 0.5},
			},
			want: []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}},
		},
		{
			name: "triangle",
			in:   []r2.Vec{{X: 2, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 3}},
			want: []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 3}, {X: 2, Y: 0}},
		},
		{
			name: "two points",
			in:   []r2.Vec{{X: 1, Y: 1}, {X: 0, Y: 0}},
			want: []r2.Vec{{X: 1, Y: 1}, {X: 0, Y: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pack.ConvexHull(tt.in, pack.HullEpsilon)
			require.Equal(t, tt.want, got)
			for i := range got {
				j := (i + 1) % len(got)
				k := (i + 2) % len(got)
				if len(got) > 2 {
					require.Negative(t, geom.TriangleArea2(got[i], got[j], got[k]), "clockwise")
				}
			}
		})
	}
}

func TestOrientedBox(t *testing.T) {
	angle := math.Pi / 6
	axis := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	minor := r2.Vec{X: -axis.Y, Y: axis.X}
	corner := func(u, v float64) r2.Vec {
		return r2.Add(r2.Vec{X: 3, Y: -1}, r2.Add(r2.Scale(u, axis), r2.Scale(v, minor)))
	}
	pts := []r2.Vec{corner(0, 0), corner(2, 0), corner(2, 1), corner(0, 1), corner(1, 0.5)}

	box := pack.OrientedBox(pack.ConvexHull(pts, pack.HullEpsilon), pts)
	require.InDelta(t, 2.0, box.Area(), 1e-9)
	ext := box.Extents()
	require.InDelta(t, 3.0, ext.X+ext.Y, 1e-9)
	require.InDelta(t, 0.0, r2.Dot(box.Axis, box.Minor()), 1e-12)
	for _, p := range pts {
		l := box.Local(p)
		require.GreaterOrEqual(t, l.X, -1e-9)
		require.GreaterOrEqual(t, l.Y, -1e-9)
		require.LessOrEqual(t, l.X, ext.X+1e-9)
		require.LessOrEqual(t, l.Y, ext.Y+1e-9)
	}
}

func TestOrientedBoxDegenerate(t *testing.T) {
	p := r2.Vec{X: 2, Y: 5}
	box := pack.OrientedBox(pack.ConvexHull([]r2.Vec{p, p, p}, pack.HullEpsilon), []r2.Vec{p})
	require.Equal(t, r2.Vec{X: 1}, box.Axis)
	require.Zero(t, box.Area())
	require.Equal(t, r2.Vec{}, box.Local(p))

	empty := pack.OrientedBox(nil, nil)
	require.Equal(t, r2.Vec{}, empty.Extents())
}
