// SPDX-License-Identifier: MIT

package halfedge_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/builder"
	"github.com/katalvlaran/uvatlas/halfedge"
)

// fromBuilder loads a builder mesh, linking colocals by exact position.
func fromBuilder(t *testing.T, src *builder.Mesh) *halfedge.Mesh {
	t.Helper()
	m := halfedge.New()
	for i, p := range src.Positions {
		v := m.AddVertex(p)
		m.Vertex(v).Nor = src.Normals[i]
		m.Vertex(v).Tex = src.UVs[i]
	}
	m.LinkColocals()
	for i := 0; i+2 < len(src.Indices); i += 3 {
		_, err := m.AddFace([]halfedge.VertexID{
			halfedge.VertexID(src.Indices[i]),
			halfedge.VertexID(src.Indices[i+1]),
			halfedge.VertexID(src.Indices[i+2]),
		}, 0)
		require.NoError(t, err)
	}
	m.LinkBoundary()
	return m
}

type MeshSuite struct {
	suite.Suite
}

func TestMeshSuite(t *testing.T) {
	suite.Run(t, new(MeshSuite))
}

// TestClosedCubeHasNoBoundary checks pairing on a manifold shell.
func (s *MeshSuite) TestClosedCubeHasNoBoundary() {
	m := fromBuilder(s.T(), builder.MustBuild(nil, builder.PlatonicSolid(builder.Cube)))
	require.NoError(s.T(), m.CheckInvariants())
	require.Equal(s.T(), 12, m.FaceCount())
	require.Equal(s.T(), 18, m.EdgePairCount())
	require.Empty(s.T(), m.BoundaryLoops())
	for e := 0; e < m.EdgeCount(); e++ {
		id := halfedge.EdgeID(e)
		require.True(s.T(), m.IsLive(id))
		require.Equal(s.T(), id, m.Edge(m.Edge(id).Pair).Pair)
		require.NotEqual(s.T(), halfedge.NilFace, m.Edge(id).Face)
	}
	require.InDelta(s.T(), 24.0, m.SurfaceArea(), 1e-9)
}

// TestGridBoundaryLoop checks boundary twins and their loop on an open sheet.
func (s *MeshSuite) TestGridBoundaryLoop() {
	m := fromBuilder(s.T(), builder.MustBuild(nil, builder.Grid(2, 3)))
	require.NoError(s.T(), m.CheckInvariants())
	loops := m.BoundaryLoops()
	require.Len(s.T(), loops, 1)
	edges := m.LoopEdges(loops[0])
	require.Len(s.T(), edges, 10)
	length := 0.0
	for _, e := range edges {
		require.Equal(s.T(), halfedge.NilFace, m.Edge(e).Face)
		require.NotEqual(s.T(), halfedge.NilFace, m.Edge(m.Edge(e).Pair).Face)
		require.Equal(s.T(), m.To(e), m.From(m.Edge(e).Next))
		length += m.EdgeLength(e)
	}
	require.InDelta(s.T(), 10.0, length, 1e-9)
	for v := 0; v < m.VertexCount(); v++ {
		id := halfedge.VertexID(v)
		p := m.Vertex(id).Pos
		onRim := p.X == 0 || p.Y == 0 || p.X == 3 || p.Y == 2
		require.Equal(s.T(), onRim, m.IsBoundary(id), "vertex %d at %v", v, p)
	}
}

// TestSeamCubeColocals checks that split corners are ringed and seams are seen.
func (s *MeshSuite) TestSeamCubeColocals() {
	m := fromBuilder(s.T(), builder.MustBuild(nil, builder.SeamCube()))
	require.NoError(s.T(), m.CheckInvariants())
	require.Equal(s.T(), 24, m.VertexCount())
	require.Equal(s.T(), 8, m.ColocalVertexCount())
	for v := 0; v < m.VertexCount(); v++ {
		id := halfedge.VertexID(v)
		require.Len(s.T(), m.Colocals(id), 3)
		first := m.FirstColocal(id)
		for _, c := range m.Colocals(id) {
			require.True(s.T(), m.IsColocal(id, c))
			require.LessOrEqual(s.T(), first, c)
		}
	}
	require.Empty(s.T(), m.BoundaryLoops())
	normalSeams, texSeams := 0, 0
	for e := 0; e < m.EdgeCount(); e++ {
		if m.IsNormalSeam(halfedge.EdgeID(e)) {
			normalSeams++
		}
		if m.IsTextureSeam(halfedge.EdgeID(e)) {
			texSeams++
		}
	}
	require.Equal(s.T(), 24, normalSeams)
	require.Greater(s.T(), texSeams, 0)

	u := m.Unify()
	require.NoError(s.T(), u.CheckInvariants())
	require.Equal(s.T(), 8, u.VertexCount())
	require.Empty(s.T(), u.BoundaryLoops())
}

func (s *MeshSuite) TestAddFaceErrors() {
	m := halfedge.New()
	a := m.AddVertex(r3.Vec{})
	b := m.AddVertex(r3.Vec{X: 1})
	c := m.AddVertex(r3.Vec{Y: 1})

	_, err := m.AddFace([]halfedge.VertexID{a, b}, 0)
	require.ErrorIs(s.T(), err, halfedge.ErrDegenerateFace)
	_, err = m.AddFace([]halfedge.VertexID{a, a, b}, 0)
	require.ErrorIs(s.T(), err, halfedge.ErrDegenerateFace)
	_, err = m.AddFace([]halfedge.VertexID{a, b, 7}, 0)
	require.ErrorIs(s.T(), err, halfedge.ErrVertexOutOfRange)

	_, err = m.AddFace([]halfedge.VertexID{a, b, c}, 0)
	require.NoError(s.T(), err)
	_, err = m.AddFace([]halfedge.VertexID{a, b, c}, 0)
	require.ErrorIs(s.T(), err, halfedge.ErrEdgeConflict)
	require.Equal(s.T(), 1, m.FaceCount())
}

// TestAddFaceUnlinksColocalDuplicate adds the same triangle twice through
// colocal copies; the second one must succeed after the rings are split.
func (s *MeshSuite) TestAddFaceUnlinksColocalDuplicate() {
	m := halfedge.New()
	pts := []r3.Vec{{}, {X: 1}, {Y: 1}}
	for i := 0; i < 2; i++ {
		for _, p := range pts {
			m.AddVertex(p)
		}
	}
	m.LinkColocals()
	_, err := m.AddFace([]halfedge.VertexID{0, 1, 2}, 0)
	require.NoError(s.T(), err)
	_, err = m.AddFace([]halfedge.VertexID{3, 4, 5}, 0)
	require.NoError(s.T(), err)
	require.False(s.T(), m.IsColocal(0, 3) && m.IsColocal(1, 4))
	m.LinkBoundary()
	require.NoError(s.T(), m.CheckInvariants())
}

func (s *MeshSuite) TestDetachedFace() {
	m := halfedge.New()
	a := m.AddVertex(r3.Vec{})
	b := m.AddVertex(r3.Vec{X: 1})
	f := m.AddDetachedFace([]halfedge.VertexID{a, a, b}, 0)
	require.True(s.T(), m.IsDetached(f))
	require.True(s.T(), m.Face(f).Ignored())
	require.Equal(s.T(), []halfedge.VertexID{a, a, b}, m.FaceVertices(f))
	require.Zero(s.T(), m.FaceArea(f))
	m.LinkBoundary()
	require.NoError(s.T(), m.CheckInvariants())
}

func (s *MeshSuite) TestFaceGeometry() {
	m := halfedge.New()
	a := m.AddVertex(r3.Vec{})
	b := m.AddVertex(r3.Vec{X: 2})
	c := m.AddVertex(r3.Vec{Y: 2})
	m.Vertex(a).Tex = r2.Vec{}
	m.Vertex(b).Tex = r2.Vec{X: 1}
	m.Vertex(c).Tex = r2.Vec{Y: 1}
	f, err := m.AddFace([]halfedge.VertexID{a, b, c}, 0)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 2.0, m.FaceArea(f), 1e-12)
	require.InDelta(s.T(), 0.5, m.ParametricArea(f), 1e-12)
	require.Equal(s.T(), r3.Vec{Z: 1}, m.FaceNormal(f))
	require.InDelta(s.T(), 2.0/3, m.FaceCentroid(f).X, 1e-12)
	require.InDelta(s.T(), 4+2*1.4142135623730951, m.FaceBoundaryLength(f), 1e-9)
}
