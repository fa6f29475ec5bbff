// SPDX-License-Identifier: MIT

package param_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/builder"
	"github.com/katalvlaran/uvatlas/halfedge"
	"github.com/katalvlaran/uvatlas/param"
)

// load builds a half-edge mesh with zeroed UVs.
func load(t *testing.T, src *builder.Mesh) *halfedge.Mesh {
	t.Helper()
	m := halfedge.New()
	for _, p := range src.Positions {
		m.AddVertex(p)
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

// bowl lifts a 4×4 grid onto a shallow paraboloid.
func bowl(t *testing.T) *halfedge.Mesh {
	m := load(t, builder.MustBuild(nil, builder.Grid(4, 4)))
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(halfedge.VertexID(i))
		dx, dy := v.Pos.X-2, v.Pos.Y-2
		v.Pos.Z = 0.05 * (dx*dx + dy*dy)
	}
	return m
}

func setTex(m *halfedge.Mesh, fn func(p r3.Vec) r2.Vec) {
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(halfedge.VertexID(i))
		v.Tex = fn(v.Pos)
	}
}

type ParamSuite struct {
	suite.Suite
}

func TestParamSuite(t *testing.T) {
	suite.Run(t, new(ParamSuite))
}

func (s *ParamSuite) TestClassify() {
	cases := []struct {
		faces        int
		disk, mapped bool
		want         param.Strategy
	}{
		{1, true, false, param.SingleFace},
		{5, true, false, param.Conformal},
		{5, false, false, param.Unsupported},
		{1, false, true, param.Skip},
		{5, true, true, param.Skip},
	}
	for _, tc := range cases {
		s.Equal(tc.want, param.Classify(tc.faces, tc.disk, tc.mapped), tc.want.String())
	}
	s.Equal("Strategy(9)", param.Strategy(9).String())
}

func (s *ParamSuite) TestSingleFaceMapIsIsometric() {
	m := halfedge.New()
	a := m.AddVertex(r3.Vec{X: 1, Y: 1, Z: 1})
	b := m.AddVertex(r3.Vec{X: 3, Y: 1, Z: 1})
	c := m.AddVertex(r3.Vec{X: 1, Y: 2, Z: 3})
	_, err := m.AddFace([]halfedge.VertexID{a, b, c}, 0)
	require.NoError(s.T(), err)
	m.LinkBoundary()

	q, err := param.Parameterize(m, param.SingleFace)
	require.NoError(s.T(), err)
	require.Equal(s.T(), r2.Vec{}, m.Vertex(a).Tex)
	require.InDelta(s.T(), 2.0, m.Vertex(b).Tex.X, 1e-12)
	require.InDelta(s.T(), 0.0, m.Vertex(b).Tex.Y, 1e-12)
	for _, e := range [][2]halfedge.VertexID{{a, b}, {b, c}, {c, a}} {
		p := r3.Norm(r3.Sub(m.Vertex(e[0]).Pos, m.Vertex(e[1]).Pos))
		u := r2.Norm(r2.Sub(m.Vertex(e[0]).Tex, m.Vertex(e[1]).Tex))
		require.InDelta(s.T(), p, u, 1e-9)
	}
	require.True(s.T(), q.IsValid())
	require.InDelta(s.T(), 1.0, q.RMSStretch(), 1e-9)
	require.InDelta(s.T(), 1.0, q.RMSConformal(), 1e-9)

	require.ErrorIs(s.T(), param.SingleFaceMap(bowl(s.T())), param.ErrNotTriangle)
}

func (s *ParamSuite) TestOrthogonalProjection() {
	m := load(s.T(), builder.MustBuild(nil, builder.Grid(3, 2)))
	require.NoError(s.T(), param.OrthogonalProjection(m))
	q := param.MeasureQuality(m)
	require.True(s.T(), q.IsValid())
	require.Equal(s.T(), 12, q.TotalTriangles)
	require.InDelta(s.T(), 6.0, q.GeometricArea, 1e-9)
	require.InDelta(s.T(), 6.0, q.ParametricArea, 1e-9)
	require.InDelta(s.T(), 1.0, q.MaxStretch(), 1e-9)

	flat := halfedge.New()
	for i := 0; i < 3; i++ {
		flat.AddVertex(r3.Vec{X: 1})
	}
	require.ErrorIs(s.T(), param.OrthogonalProjection(flat), param.ErrDegenerate)
}

func (s *ParamSuite) TestConformalOnBowl() {
	m := bowl(s.T())
	q, err := param.Parameterize(m, param.Conformal)
	require.NoError(s.T(), err)
	require.True(s.T(), q.IsValid())
	require.Zero(s.T(), q.ZeroAreaTriangles)
	require.GreaterOrEqual(s.T(), q.RMSConformal(), 1.0-1e-9)
	require.Less(s.T(), q.RMSConformal(), 1.1)
	for i := 0; i < m.VertexCount(); i++ {
		tex := m.Vertex(halfedge.VertexID(i)).Tex
		require.False(s.T(), math.IsNaN(tex.X) || math.IsNaN(tex.Y))
	}
}

func (s *ParamSuite) TestConformalKeepsPinnedVertices() {
	m := load(s.T(), builder.MustBuild(nil, builder.Grid(2, 2)))
	setTex(m, func(p r3.Vec) r2.Vec { return r2.Vec{X: 2 * p.X, Y: 2 * p.Y} })
	m.Vertex(4).Tex = r2.Vec{X: 2.3, Y: 1.8}
	m.Vertex(1).Tex = r2.Vec{X: 2.1, Y: 0.2}
	require.NoError(s.T(), param.LeastSquaresConformalMap(m))
	// corners 0 and 6 are pinned; the similarity they imply is optimal
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(halfedge.VertexID(i))
		require.InDelta(s.T(), 2*v.Pos.X, v.Tex.X, 1e-4)
		require.InDelta(s.T(), 2*v.Pos.Y, v.Tex.Y, 1e-4)
	}
}

func (s *ParamSuite) TestConformalErrors() {
	cube := load(s.T(), builder.MustBuild(nil, builder.PlatonicSolid(builder.Cube)))
	require.ErrorIs(s.T(), param.LeastSquaresConformalMap(cube), param.ErrNoBoundary)

	grid := load(s.T(), builder.MustBuild(nil, builder.Grid(2, 2)))
	require.ErrorIs(s.T(), param.LeastSquaresConformalMap(grid), param.ErrPinnedCoincide)

	empty := halfedge.New()
	for i := 0; i < 4; i++ {
		empty.AddVertex(r3.Vec{X: float64(i)})
	}
	require.ErrorIs(s.T(), param.LeastSquaresConformalMap(empty), param.ErrUnderdetermined)
}

func (s *ParamSuite) TestUnsupportedReportsNotDisk() {
	m := load(s.T(), builder.MustBuild(nil, builder.Tube(8, 2)))
	q, err := param.Parameterize(m, param.Unsupported)
	require.ErrorIs(s.T(), err, param.ErrNotDisk)
	require.Equal(s.T(), 32, q.TotalTriangles)
}

func (s *ParamSuite) TestSkipLeavesUVs() {
	m := load(s.T(), builder.MustBuild(nil, builder.Grid(1, 1)))
	setTex(m, func(p r3.Vec) r2.Vec { return r2.Vec{X: 7, Y: 7} })
	q, err := param.Parameterize(m, param.Skip)
	require.NoError(s.T(), err)
	require.Zero(s.T(), q.TotalTriangles)
	require.Equal(s.T(), r2.Vec{X: 7, Y: 7}, m.Vertex(0).Tex)
}

func (s *ParamSuite) TestQualityOrientation() {
	cases := []struct {
		name  string
		tex   func(p r3.Vec) r2.Vec
		fold  bool
		valid bool
	}{
		{"identity", func(p r3.Vec) r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }, false, true},
		{"mirrored", func(p r3.Vec) r2.Vec { return r2.Vec{X: p.X, Y: -p.Y} }, false, true},
		{"folded", func(p r3.Vec) r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }, true, false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			m := load(s.T(), builder.MustBuild(nil, builder.Grid(1, 1)))
			setTex(m, tc.tex)
			if tc.fold {
				m.Vertex(1).Tex = r2.Vec{X: 0, Y: 0.9}
			}
			q := param.MeasureQuality(m)
			require.Equal(s.T(), tc.valid, q.IsValid())
			require.Equal(s.T(), 2, q.TotalTriangles)
		})
	}
}

func (s *ParamSuite) TestQualityAdd() {
	m := load(s.T(), builder.MustBuild(nil, builder.Grid(1, 1)))
	setTex(m, func(p r3.Vec) r2.Vec { return r2.Vec{X: 2 * p.X, Y: 2 * p.Y} })
	a := param.MeasureQuality(m)
	setTex(m, func(p r3.Vec) r2.Vec { return r2.Vec{X: 3 * p.X, Y: p.Y} })
	b := param.MeasureQuality(m)

	var sum param.Quality
	sum.Add(a)
	sum.Add(b)
	require.Equal(s.T(), 4, sum.TotalTriangles)
	require.InDelta(s.T(), a.GeometricArea+b.GeometricArea, sum.GeometricArea, 1e-12)
	require.InDelta(s.T(), math.Sqrt(3.5), sum.MaxStretch(), 1e-9)
	require.Greater(s.T(), b.RMSConformal(), a.RMSConformal())
	require.InDelta(s.T(), 1.0, a.RMSConformal(), 1e-9)
}

func TestWithSolverEpsilonPanics(t *testing.T) {
	require.PanicsWithValue(t, "param: WithSolverEpsilon: eps must be > 0", func() { param.WithSolverEpsilon(0) })
}
