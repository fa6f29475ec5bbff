// SPDX-License-Identifier: MIT

package halfedge_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/halfedge"
)

// tJunction builds a triangle whose right edge (1,0)→(1,2) is touched at
// (1,1) by two triangles on the other side.
func tJunction(t *testing.T) *halfedge.Mesh {
	t.Helper()
	m := halfedge.New()
	v0 := m.AddVertex(r3.Vec{X: 0, Y: 0})
	v1 := m.AddVertex(r3.Vec{X: 1, Y: 0})
	v2 := m.AddVertex(r3.Vec{X: 1, Y: 2})
	v3 := m.AddVertex(r3.Vec{X: 2, Y: 1})
	v4 := m.AddVertex(r3.Vec{X: 1, Y: 1})
	for _, f := range [][]halfedge.VertexID{{v0, v1, v2}, {v1, v3, v4}, {v4, v3, v2}} {
		_, err := m.AddFace(f, 0)
		require.NoError(t, err)
	}
	m.LinkBoundary()
	return m
}

func TestSplitBoundaryEdges_TJunction(t *testing.T) {
	m := tJunction(t)
	// The two sides only share v1 and v2, so each keeps its own loop.
	require.Len(t, m.BoundaryLoops(), 2)

	require.True(t, m.SplitBoundaryEdges())
	require.NoError(t, m.CheckInvariants())
	require.Equal(t, 6, m.VertexCount())
	require.True(t, m.IsColocal(4, 5))
	require.Equal(t, 4, m.FaceEdgeCount(0))
	require.False(t, m.SplitBoundaryEdges(), "second pass must be a no-op")

	u := m.Unify()
	require.NoError(t, u.CheckInvariants())
	require.Equal(t, 5, u.VertexCount())
	loops := u.BoundaryLoops()
	require.Len(t, loops, 1)
	require.Len(t, u.LoopEdges(loops[0]), 4)

	tri := u.Triangulate()
	require.NoError(t, tri.CheckInvariants())
	require.Equal(t, 4, tri.FaceCount())
	for f := 0; f < tri.FaceCount(); f++ {
		require.Equal(t, 3, tri.FaceEdgeCount(halfedge.FaceID(f)))
		require.Greater(t, tri.FaceNormalAreaScaled(halfedge.FaceID(f)).Z, 0.0)
	}
	require.InDelta(t, 2.0, tri.SurfaceArea(), 1e-9)
	require.Len(t, tri.BoundaryLoops(), 1)
}

// TestTriangulate_ConcavePolygon clips an L-shaped hexagon; no triangle may
// flip and the area must be preserved.
func TestTriangulate_ConcavePolygon(t *testing.T) {
	m := halfedge.New()
	pts := []r3.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}
	ids := make([]halfedge.VertexID, len(pts))
	for i, p := range pts {
		ids[i] = m.AddVertex(p)
	}
	_, err := m.AddFace(ids, 0)
	require.NoError(t, err)
	m.LinkBoundary()

	tri := m.Triangulate()
	require.NoError(t, tri.CheckInvariants())
	require.Equal(t, 4, tri.FaceCount())
	for f := 0; f < tri.FaceCount(); f++ {
		require.Greater(t, tri.FaceNormalAreaScaled(halfedge.FaceID(f)).Z, 0.0)
	}
	require.InDelta(t, 3.0, tri.SurfaceArea(), 1e-9)
}

func TestVertexFan(t *testing.T) {
	m := halfedge.New()
	hub := m.AddVertex(r3.Vec{})
	rim := []r3.Vec{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}
	for _, p := range rim {
		m.AddVertex(p)
	}
	for i := 0; i < 4; i++ {
		_, err := m.AddFace([]halfedge.VertexID{hub, halfedge.VertexID(1 + i), halfedge.VertexID(1 + (i+1)%4)}, 0)
		require.NoError(t, err)
	}
	m.LinkBoundary()
	fan := m.Edges(hub)
	require.Len(t, fan, 4)
	for _, e := range fan {
		require.Equal(t, hub, m.From(e))
	}
	require.False(t, m.IsBoundary(hub))
	require.True(t, m.IsBoundary(1))
}
