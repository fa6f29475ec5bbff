// SPDX-License-Identifier: MIT

package raster_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/raster"
)

func TestBitmap_SetAndResize(t *testing.T) {
	b := raster.NewBitmap(4, 3)
	require.Equal(t, 4, b.Width())
	require.Equal(t, 3, b.Height())
	require.True(t, b.SetBit(3, 2))
	require.False(t, b.SetBit(4, 0))
	require.False(t, b.Bit(-1, 0))
	require.True(t, b.Bit(3, 2))
	require.Equal(t, 1, b.Count())

	b.Resize(6, 5, true)
	require.True(t, b.Bit(3, 2))
	require.False(t, b.Bit(0, 0)) // kept from the old area
	require.True(t, b.Bit(5, 4))  // new area takes initValue
	require.Equal(t, 6*5-4*3+1, b.Count())
	require.Equal(t, 1, b.CountRect(4, 3))

	b.Resize(2, 2, false)
	require.Zero(t, b.Count())
	b.ClearAll()
	require.Zero(t, b.Count())
}

func TestBitmap_Dilate(t *testing.T) {
	b := raster.NewBitmap(5, 5)
	b.SetBit(2, 2)
	b.Dilate(1)
	require.Equal(t, 9, b.Count())
	b.Dilate(1)
	require.Equal(t, 25, b.Count())

	edge := raster.NewBitmap(3, 3)
	edge.SetBit(0, 0)
	edge.Dilate(1)
	require.Equal(t, 4, edge.Count())
}

func TestBitmap_ForEach(t *testing.T) {
	b := raster.NewBitmap(3, 2)
	b.SetBit(2, 0)
	b.SetBit(0, 1)
	b.SetBit(1, 1)

	var got [][2]int
	b.ForEach(func(x, y int) bool {
		got = append(got, [2]int{x, y})
		return true
	})
	require.Equal(t, [][2]int{{2, 0}, {0, 1}, {1, 1}}, got)

	n := 0
	b.ForEach(func(int, int) bool { n++; return false })
	require.Equal(t, 1, n)

	raster.NewBitmap(0, 0).ForEach(func(int, int) bool {
		t.Fatal("empty bitmap has no bits")
		return false
	})
}

func TestClippedTriangle(t *testing.T) {
	cases := []struct {
		name     string
		a, b, c  r2.Vec
		area     float64
		centroid r2.Vec
	}{
		{"covers box", r2.Vec{X: -1, Y: -1}, r2.Vec{X: 3, Y: -1}, r2.Vec{X: -1, Y: 3}, 1, r2.Vec{}},
		{"right half", r2.Vec{X: 0, Y: -5}, r2.Vec{X: 5, Y: 0}, r2.Vec{X: 0, Y: 5}, 0.5, r2.Vec{X: 0.25}},
		{"inside", r2.Vec{}, r2.Vec{X: 0.2}, r2.Vec{Y: 0.2}, 0.02, r2.Vec{X: 0.2 / 3, Y: 0.2 / 3}},
		{"outside", r2.Vec{X: 2, Y: 2}, r2.Vec{X: 3, Y: 2}, r2.Vec{X: 2, Y: 3}, 0, r2.Vec{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ct := raster.NewClippedTriangle(tc.a, tc.b, tc.c)
			ct.ClipAABox(-0.5, -0.5, 0.5, 0.5)
			require.InDelta(t, tc.area, ct.Area(), 1e-12)
			require.InDelta(t, tc.centroid.X, ct.Centroid().X, 1e-12)
			require.InDelta(t, tc.centroid.Y, ct.Centroid().Y, 1e-12)
		})
	}
}

// square returns the two triangles of [0,s]².
func square(s float64) [2][3]r2.Vec {
	return [2][3]r2.Vec{
		{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}},
		{{X: 0, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}},
	}
}

func TestDrawTriangle_AntialiasedCoverage(t *testing.T) {
	bm := raster.NewBitmap(8, 8)
	coverage := make(map[[2]int]float64)
	for _, tri := range square(4) {
		ok := raster.DrawTriangle(raster.ModeAntialiased, r2.Vec{X: 8, Y: 8}, true, tri,
			func(x, y int, bar, dx, dy r3.Vec, c float64) bool {
				require.Greater(t, c, 0.0)
				require.LessOrEqual(t, c, 1.0+1e-12)
				coverage[[2]int{x, y}] += c
				bm.SetBit(x, y)
				return true
			})
		require.True(t, ok)
	}
	require.Equal(t, 16, bm.Count())
	require.Equal(t, 16, bm.CountRect(4, 4))
	total := 0.0
	for _, c := range coverage {
		total += c
	}
	require.InDelta(t, 16.0, total, 1e-9)
}

func TestDrawTriangle_ScissorAndStop(t *testing.T) {
	big := [3]r2.Vec{{X: -10, Y: -10}, {X: 30, Y: -10}, {X: -10, Y: 30}}
	n := 0
	raster.DrawTriangle(raster.ModeAntialiased, r2.Vec{X: 4, Y: 4}, true, big,
		func(x, y int, _, _, _ r3.Vec, _ float64) bool {
			require.True(t, x >= 0 && x < 4 && y >= 0 && y < 4)
			n++
			return true
		})
	require.Equal(t, 16, n)

	calls := 0
	ok := raster.DrawTriangle(raster.ModeNearest, r2.Vec{X: 16, Y: 16}, true, square(8)[0],
		func(int, int, r3.Vec, r3.Vec, r3.Vec, float64) bool {
			calls++
			return false
		})
	require.False(t, ok)
	require.Equal(t, 1, calls)
}

func TestDrawTriangle_NearestSharedEdgeOnce(t *testing.T) {
	hits := make(map[[2]int]int)
	for _, tri := range square(8) {
		raster.DrawTriangle(raster.ModeNearest, r2.Vec{X: 16, Y: 16}, true, tri,
			func(x, y int, bar, _, _ r3.Vec, c float64) bool {
				require.Equal(t, 1.0, c)
				require.InDelta(t, 1.0, bar.X+bar.Y+bar.Z, 1e-9)
				hits[[2]int{x, y}]++
				return true
			})
	}
	for p, n := range hits {
		require.Equal(t, 1, n, "pixel %v", p)
		require.True(t, p[0] >= 0 && p[0] <= 8 && p[1] >= 0 && p[1] <= 8)
	}
	require.GreaterOrEqual(t, len(hits), 49)
	require.LessOrEqual(t, len(hits), 81)
}

func TestDrawTriangle_Degenerate(t *testing.T) {
	line := [3]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 4}}
	for _, mode := range []raster.Mode{raster.ModeNearest, raster.ModeAntialiased} {
		ok := raster.DrawTriangle(mode, r2.Vec{X: 8, Y: 8}, true, line,
			func(int, int, r3.Vec, r3.Vec, r3.Vec, float64) bool {
				t.Fatal("degenerate triangle produced a sample")
				return false
			})
		require.True(t, ok)
	}
}
