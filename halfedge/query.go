// SPDX-License-Identifier: MIT

package halfedge

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
)

//----------------------------------------------------------------------------//
// Traversal
//----------------------------------------------------------------------------//

// FaceEdges returns the ring of f starting at its first edge. Detached
// faces return nil.
func (m *Mesh) FaceEdges(f FaceID) []EdgeID {
	start := m.faces[f].Edge
	if start == NilEdge {
		return nil
	}
	out := make([]EdgeID, 0, 3)
	cur := start
	for guard := len(m.edges); guard > 0; guard-- {
		out = append(out, cur)
		cur = m.edges[cur].Next
		if cur == start || cur == NilEdge {
			break
		}
	}
	return out
}

// FaceVertices returns the corners of f in ring order, detached faces
// included.
func (m *Mesh) FaceVertices(f FaceID) []VertexID {
	if m.faces[f].Edge == NilEdge {
		return m.detached[f]
	}
	edges := m.FaceEdges(f)
	out := make([]VertexID, len(edges))
	for i, e := range edges {
		out[i] = m.edges[e].Vertex
	}
	return out
}

// FaceEdgeCount returns the number of corners of f.
func (m *Mesh) FaceEdgeCount(f FaceID) int { return len(m.FaceVertices(f)) }

// Edges returns the fan of outgoing edges around v, following
// pair(e).Next from v's edge. The walk stops at a missing twin.
func (m *Mesh) Edges(v VertexID) []EdgeID {
	start := m.verts[v].Edge
	if start == NilEdge || !m.IsLive(start) {
		return nil
	}
	var out []EdgeID
	cur := start
	for guard := len(m.edges); guard > 0; guard-- {
		out = append(out, cur)
		p := m.edges[cur].Pair
		if p == NilEdge {
			break
		}
		cur = m.edges[p].Next
		if cur == start || cur == NilEdge {
			break
		}
	}
	return out
}

// IsSeam reports whether the two sides of e reference different vertex
// records.
func (m *Mesh) IsSeam(e EdgeID) bool {
	ed := &m.edges[e]
	if ed.Pair == NilEdge || ed.Next == NilEdge {
		return false
	}
	pn := m.edges[ed.Pair].Next
	if pn == NilEdge {
		return false
	}
	return ed.Vertex != m.edges[pn].Vertex || m.edges[ed.Next].Vertex != m.edges[ed.Pair].Vertex
}

// IsNormalSeam reports whether the normals differ across e.
func (m *Mesh) IsNormalSeam(e EdgeID) bool {
	a0, a1, b0, b1, ok := m.seamCorners(e)
	return ok && (m.verts[a0].Nor != m.verts[b0].Nor || m.verts[a1].Nor != m.verts[b1].Nor)
}

// IsTextureSeam reports whether the input UVs differ across e.
func (m *Mesh) IsTextureSeam(e EdgeID) bool {
	a0, a1, b0, b1, ok := m.seamCorners(e)
	return ok && (m.verts[a0].Tex != m.verts[b0].Tex || m.verts[a1].Tex != m.verts[b1].Tex)
}

// seamCorners returns the corner records on each side of e: (a0, a1) on
// e's side and (b0, b1) on the twin's side, matched by position.
func (m *Mesh) seamCorners(e EdgeID) (a0, a1, b0, b1 VertexID, ok bool) {
	ed := &m.edges[e]
	if ed.Pair == NilEdge || ed.Next == NilEdge {
		return
	}
	pn := m.edges[ed.Pair].Next
	if pn == NilEdge {
		return
	}
	return ed.Vertex, m.edges[ed.Next].Vertex, m.edges[pn].Vertex, m.edges[ed.Pair].Vertex, true
}

//----------------------------------------------------------------------------//
// Geometry
//----------------------------------------------------------------------------//

// EdgeLength returns |to - from|.
func (m *Mesh) EdgeLength(e EdgeID) float64 {
	to := m.To(e)
	if to == NilVertex {
		return 0
	}
	return r3.Norm(r3.Sub(m.verts[to].Pos, m.verts[m.edges[e].Vertex].Pos))
}

// FaceArea returns the surface area of f as a fan from its first corner.
func (m *Mesh) FaceArea(f FaceID) float64 {
	vs := m.FaceVertices(f)
	if len(vs) < 3 {
		return 0
	}
	p0 := m.verts[vs[0]].Pos
	area := 0.0
	for i := 1; i+1 < len(vs); i++ {
		a := r3.Sub(m.verts[vs[i]].Pos, p0)
		b := r3.Sub(m.verts[vs[i+1]].Pos, p0)
		area += r3.Norm(r3.Cross(a, b))
	}
	return area * 0.5
}

// ParametricArea returns the signed UV area of f as a fan from its first
// corner.
func (m *Mesh) ParametricArea(f FaceID) float64 {
	vs := m.FaceVertices(f)
	if len(vs) < 3 {
		return 0
	}
	t0 := m.verts[vs[0]].Tex
	area := 0.0
	for i := 1; i+1 < len(vs); i++ {
		area += geom.TriangleArea2(t0, m.verts[vs[i]].Tex, m.verts[vs[i+1]].Tex)
	}
	return area * 0.5
}

// FaceNormal returns the unit normal of f from the sum of its fan cross
// products, or +Z for a degenerate face.
func (m *Mesh) FaceNormal(f FaceID) r3.Vec {
	return geom.NormalizeSafe(m.FaceNormalAreaScaled(f), r3.Vec{Z: 1}, 0)
}

// FaceNormalAreaScaled returns the fan cross product sum of f: its normal
// scaled by twice its area.
func (m *Mesh) FaceNormalAreaScaled(f FaceID) r3.Vec {
	vs := m.FaceVertices(f)
	var n r3.Vec
	if len(vs) < 3 {
		return n
	}
	p0 := m.verts[vs[0]].Pos
	for i := 1; i+1 < len(vs); i++ {
		a := r3.Sub(m.verts[vs[i]].Pos, p0)
		b := r3.Sub(m.verts[vs[i+1]].Pos, p0)
		n = r3.Add(n, r3.Cross(a, b))
	}
	return n
}

// FaceCentroid returns the average of the corners of f.
func (m *Mesh) FaceCentroid(f FaceID) r3.Vec {
	vs := m.FaceVertices(f)
	var c r3.Vec
	if len(vs) == 0 {
		return c
	}
	for _, v := range vs {
		c = r3.Add(c, m.verts[v].Pos)
	}
	return r3.Scale(1/float64(len(vs)), c)
}

// FaceCenter returns the average of the edge midpoints of f weighted by
// edge length: a point inside the triangle pulled towards its circumcentre.
func (m *Mesh) FaceCenter(f FaceID) r3.Vec {
	vs := m.FaceVertices(f)
	if len(vs) < 3 {
		return m.FaceCentroid(f)
	}
	var sum r3.Vec
	total := 0.0
	for i := range vs {
		a, b := m.verts[vs[i]].Pos, m.verts[vs[(i+1)%len(vs)]].Pos
		l := r3.Norm(r3.Sub(b, a))
		sum = r3.Add(sum, r3.Scale(0.5*l, r3.Add(a, b)))
		total += l
	}
	if total == 0 {
		return m.FaceCentroid(f)
	}
	return r3.Scale(1/total, sum)
}

// FaceBoundaryLength returns the perimeter of f.
func (m *Mesh) FaceBoundaryLength(f FaceID) float64 {
	vs := m.FaceVertices(f)
	l := 0.0
	for i := range vs {
		l += r3.Norm(r3.Sub(m.verts[vs[(i+1)%len(vs)]].Pos, m.verts[vs[i]].Pos))
	}
	return l
}

// SurfaceArea sums FaceArea over linked faces.
func (m *Mesh) SurfaceArea() float64 {
	area := 0.0
	for i := range m.faces {
		if m.faces[i].Edge != NilEdge {
			area += m.FaceArea(FaceID(i))
		}
	}
	return area
}

// ParametricSurfaceArea sums ParametricArea over linked faces.
func (m *Mesh) ParametricSurfaceArea() float64 {
	area := 0.0
	for i := range m.faces {
		if m.faces[i].Edge != NilEdge {
			area += m.ParametricArea(FaceID(i))
		}
	}
	return area
}

// TexBounds returns the UV bounding box of all vertices.
func (m *Mesh) TexBounds() (lo, hi r2.Vec) {
	lo = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := range m.verts {
		lo = geom.Min2(lo, m.verts[i].Tex)
		hi = geom.Max2(hi, m.verts[i].Tex)
	}
	return lo, hi
}
