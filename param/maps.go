// SPDX-License-Identifier: MIT

package param

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
	"github.com/katalvlaran/uvatlas/halfedge"
	"github.com/katalvlaran/uvatlas/sparse"
)

// SingleFaceMap lays the only face of m flat: the first corner goes to the
// origin, the first edge along +U and the face normal is the third axis.
//
// Errors:
//   - ErrNotTriangle if m does not hold exactly one linked face.
func SingleFaceMap(m *halfedge.Mesh) error {
	if m.FaceCount() != 1 || m.IsDetached(0) {
		return fmt.Errorf("SingleFaceMap: %d faces: %w", m.FaceCount(), ErrNotTriangle)
	}
	edges := m.FaceEdges(0)
	p0 := m.Vertex(m.From(edges[0])).Pos
	p1 := m.Vertex(m.To(edges[0])).Pos
	x := geom.NormalizeSafe(r3.Sub(p1, p0), r3.Vec{}, 0)
	z := m.FaceNormal(0)
	y := geom.NormalizeSafe(r3.Cross(z, x), r3.Vec{}, 0)
	for i, e := range edges {
		v := m.Vertex(m.From(e))
		if i == 0 {
			v.Tex = r2.Vec{}
			continue
		}
		d := r3.Sub(v.Pos, p0)
		v.Tex = r2.Vec{X: r3.Dot(d, x), Y: r3.Dot(d, y)}
	}
	return nil
}

// OrthogonalProjection projects every vertex on the two principal axes of
// the vertex positions.
//
// Errors:
//   - ErrDegenerate when all positions coincide.
//   - geom.ErrEigenFailed when the eigen solve fails.
//
// Complexity: O(V).
func OrthogonalProjection(m *halfedge.Mesh) error {
	pts := make([]r3.Vec, m.VertexCount())
	for i := range pts {
		pts[i] = m.Vertex(halfedge.VertexID(i)).Pos
	}
	cov, _ := geom.Covariance(pts)
	if cov.At(0, 0) == 0 && cov.At(1, 1) == 0 && cov.At(2, 2) == 0 {
		return fmt.Errorf("OrthogonalProjection: %w", ErrDegenerate)
	}
	axes, err := geom.PrincipalAxes(pts)
	if err != nil {
		return fmt.Errorf("OrthogonalProjection: %w", err)
	}
	u := r3.Unit(axes.Vectors[0])
	v := r3.Unit(axes.Vectors[1])
	for i := range pts {
		m.Vertex(halfedge.VertexID(i)).Tex = r2.Vec{X: r3.Dot(u, pts[i]), Y: r3.Dot(v, pts[i])}
	}
	return nil
}

// LeastSquaresConformalMap replaces the UVs of m with the least squares
// conformal map that keeps the current UVs of two far-apart boundary
// vertices. The current UVs are also the initial guess, so m should
// already carry a projection.
//
// Implementation:
//   - Stage 1: pin the endpoints of the longest of the three axis-aligned
//     extents of the boundary.
//   - Stage 2: two rows per triangle (real and imaginary part of the
//     conformality condition), angles reordered so the largest-sine corner
//     comes last.
//   - Stage 3: sparse.LeastSquares with the four pinned unknowns locked.
//
// Errors:
//   - ErrNoBoundary, ErrPinnedCoincide, ErrUnderdetermined.
//   - sparse.ErrNotConverged (UVs hold the last iterate).
func LeastSquaresConformalMap(m *halfedge.Mesh, opts ...Option) error {
	return lscm(m, gather(opts))
}

func lscm(m *halfedge.Mesh, cfg config) error {
	var tris [][3]halfedge.VertexID
	for f := 0; f < m.FaceCount(); f++ {
		fid := halfedge.FaceID(f)
		if m.IsDetached(fid) {
			continue
		}
		vs := m.FaceVertices(fid)
		for i := 1; i+1 < len(vs); i++ {
			tris = append(tris, [3]halfedge.VertexID{vs[0], vs[i], vs[i+1]})
		}
	}
	d := 2 * m.VertexCount()
	n := 2 * len(tris)
	if n == 0 || n < d-4 {
		return fmt.Errorf("LeastSquaresConformalMap: %d equations, %d unknowns: %w", n, d, ErrUnderdetermined)
	}

	a, b, ok := diameterVertices(m)
	if !ok {
		return fmt.Errorf("LeastSquaresConformalMap: %w", ErrNoBoundary)
	}
	if m.Vertex(a).Tex == m.Vertex(b).Tex {
		return fmt.Errorf("LeastSquaresConformalMap: vertices %d and %d: %w", a, b, ErrPinnedCoincide)
	}

	A, err := sparse.NewMatrix(n, d)
	if err != nil {
		return fmt.Errorf("LeastSquaresConformalMap: %w", err)
	}
	for row, t := range tris {
		conformalRows(A, row, m, t)
	}
	rhs := make([]float64, n)
	x := make([]float64, d)
	for i := 0; i < m.VertexCount(); i++ {
		tex := m.Vertex(halfedge.VertexID(i)).Tex
		x[2*i] = tex.X
		x[2*i+1] = tex.Y
	}
	locked := []int{2 * int(a), 2*int(a) + 1, 2 * int(b), 2*int(b) + 1}

	res, err := sparse.LeastSquares(A, rhs, x, locked, cfg.eps, cfg.solver...)
	if err != nil && !errors.Is(err, sparse.ErrNotConverged) {
		return fmt.Errorf("LeastSquaresConformalMap: %w", err)
	}
	for i := 0; i < m.VertexCount(); i++ {
		m.Vertex(halfedge.VertexID(i)).Tex = r2.Vec{X: x[2*i], Y: x[2*i+1]}
	}
	cfg.logger.Debug("conformal map", "vertices", m.VertexCount(), "triangles", len(tris),
		"iterations", res.Iterations, "residual", res.Residual)
	if err != nil {
		return fmt.Errorf("LeastSquaresConformalMap: %w", err)
	}
	return nil
}

// diameterVertices sweeps the boundary along X, Y and Z and returns the
// extreme pair of the longest sweep.
func diameterVertices(m *halfedge.Mesh) (halfedge.VertexID, halfedge.VertexID, bool) {
	var lo, hi [3]halfedge.VertexID
	found := false
	for i := 0; i < m.VertexCount(); i++ {
		v := halfedge.VertexID(i)
		if !m.IsBoundary(v) {
			continue
		}
		if !found {
			lo = [3]halfedge.VertexID{v, v, v}
			hi = lo
			found = true
			continue
		}
		p := m.Vertex(v).Pos
		c := [3]float64{p.X, p.Y, p.Z}
		for k := 0; k < 3; k++ {
			if c[k] < component(m.Vertex(lo[k]).Pos, k) {
				lo[k] = v
			} else if c[k] > component(m.Vertex(hi[k]).Pos, k) {
				hi[k] = v
			}
		}
	}
	if !found {
		return halfedge.NilVertex, halfedge.NilVertex, false
	}
	var l [3]float64
	for k := range l {
		l[k] = r3.Norm(r3.Sub(m.Vertex(lo[k]).Pos, m.Vertex(hi[k]).Pos))
	}
	switch {
	case l[0] > l[1] && l[0] > l[2]:
		return lo[0], hi[0], true
	case l[1] > l[2]:
		return lo[1], hi[1], true
	default:
		return lo[2], hi[2], true
	}
}

func component(p r3.Vec, k int) float64 {
	switch k {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// conformalRows fills rows 2·row and 2·row+1 of A for triangle t.
func conformalRows(A *sparse.Matrix, row int, m *halfedge.Mesh, t [3]halfedge.VertexID) {
	p := [3]r3.Vec{m.Vertex(t[0]).Pos, m.Vertex(t[1]).Pos, m.Vertex(t[2]).Pos}
	var ang [3]float64
	ang[0] = cornerAngle(p[2], p[0], p[1])
	ang[1] = cornerAngle(p[0], p[1], p[2])
	ang[2] = math.Pi - ang[1] - ang[0]
	s := [3]float64{math.Sin(ang[0]), math.Sin(ang[1]), math.Sin(ang[2])}

	// rotate so the largest-sine corner is last
	k := 2
	if s[1] > s[0] && s[1] > s[2] {
		k = 1
	} else if s[0] > s[1] && s[0] > s[2] {
		k = 0
	}
	i0, i1, i2 := (k+1)%3, (k+2)%3, k

	ratio := 1.0
	if s[i2] != 0 {
		ratio = s[i1] / s[i2]
	}
	cosine := math.Cos(ang[i0]) * ratio
	sine := s[i0] * ratio

	u0, v0 := 2*int(t[i0]), 2*int(t[i0])+1
	u1, v1 := 2*int(t[i1]), 2*int(t[i1])+1
	u2, v2 := 2*int(t[i2]), 2*int(t[i2])+1

	re, im := 2*row, 2*row+1
	// indices are in range by construction
	_ = A.Set(re, u0, cosine-1)
	_ = A.Set(re, v0, -sine)
	_ = A.Set(re, u1, -cosine)
	_ = A.Set(re, v1, sine)
	_ = A.Set(re, u2, 1)

	_ = A.Set(im, u0, sine)
	_ = A.Set(im, v0, cosine-1)
	_ = A.Set(im, u1, -sine)
	_ = A.Set(im, v1, -cosine)
	_ = A.Set(im, v2, 1)
}

// cornerAngle returns the angle at b between a−b and c−b.
func cornerAngle(a, b, c r3.Vec) float64 {
	d1 := r3.Sub(a, b)
	d2 := r3.Sub(c, b)
	l := r3.Norm(d1) * r3.Norm(d2)
	if l == 0 {
		return 0
	}
	cos := r3.Dot(d1, d2) / l
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}
