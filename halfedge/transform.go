// SPDX-License-Identifier: MIT

package halfedge

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvatlas/geom"
)

// earEpsilon is the minimum doubled area for a point to count as strictly
// inside an ear.
const earEpsilon = 1e-5

// Unify returns a copy of m in which every colocal ring collapses onto its
// first vertex. Only positions are carried over.
//
// Complexity: O(V·r + F·k).
func (m *Mesh) Unify() *Mesh {
	out := New(WithLogger(m.logger), WithEpsilon(m.eps))
	remap := make([]VertexID, len(m.verts))
	for i := range m.verts {
		remap[i] = NilVertex
		if m.IsFirstColocal(VertexID(i)) {
			remap[i] = out.AddVertex(m.verts[i].Pos)
		}
	}
	indices := make([]VertexID, 0, 4)
	for i := range m.faces {
		f := FaceID(i)
		indices = indices[:0]
		for _, v := range m.FaceVertices(f) {
			indices = append(indices, remap[m.FirstColocal(v)])
		}
		out.addOrDetach(indices, m.faces[i].Flags)
	}
	out.LinkBoundary()
	return out
}

// addOrDetach adds a face, storing it detached if it cannot be linked.
func (m *Mesh) addOrDetach(indices []VertexID, flags FaceFlags) FaceID {
	f, err := m.AddFace(indices, flags)
	if err != nil {
		m.logger.Warn("face stored detached", "corners", len(indices), "err", err)
		return m.AddDetachedFace(indices, flags)
	}
	return f
}

// Triangulate returns a triangle-only copy of m. Triangles are copied as
// they are; larger polygons are ear-clipped in the plane of their normal.
// Ears are chosen by smallest interior angle among those that contain no
// other polygon corner; if every ear contains one, the smallest-angle ear
// is clipped anyway.
//
// Complexity: O(k³) per k-gon.
func (m *Mesh) Triangulate() *Mesh {
	out := New(WithLogger(m.logger), WithEpsilon(m.eps))
	for i := range m.verts {
		v := out.AddVertex(m.verts[i].Pos)
		out.verts[v].Nor = m.verts[i].Nor
		out.verts[v].Tex = m.verts[i].Tex
	}

	var (
		poly   []VertexID
		points []r2.Vec
	)
	for i := range m.faces {
		f := FaceID(i)
		flags := m.faces[i].Flags
		corners := m.FaceVertices(f)
		if m.faces[i].Edge == NilEdge {
			if len(corners) > 0 {
				out.AddDetachedFace(corners, flags)
			}
			continue
		}
		if len(corners) == 3 {
			out.addOrDetach(corners, flags)
			continue
		}

		basis := geom.FrameForDirection(m.FaceNormal(f), 0)
		poly = append(poly[:0], corners...)
		points = points[:0]
		for _, v := range poly {
			points = append(points, basis.Project(m.verts[v].Pos))
		}
		for len(poly) > 2 {
			ear := bestEar(points)
			size := len(poly)
			i0, i1, i2 := (ear+size-1)%size, ear, (ear+1)%size
			out.addOrDetach([]VertexID{poly[i0], poly[i1], poly[i2]}, flags)
			poly = append(poly[:i1], poly[i1+1:]...)
			points = append(points[:i1], points[i1+1:]...)
		}
	}
	out.LinkBoundary()
	return out
}

// bestEar returns the index of the corner to clip.
func bestEar(points []r2.Vec) int {
	size := len(points)
	minAngle := 2 * math.Pi
	best := 0
	bestValid := false
	for i := 0; i < size; i++ {
		i0, i1, i2 := i, (i+1)%size, (i+2)%size
		p0, p1, p2 := points[i0], points[i1], points[i2]
		a, b := r2.Sub(p0, p1), r2.Sub(p2, p1)
		den := r2.Norm(a) * r2.Norm(b)
		angle := 0.0
		if den > 0 {
			angle = math.Acos(math.Max(-1, math.Min(1, r2.Dot(a, b)/den)))
		}
		if geom.TriangleArea2(p0, p1, p2) < 0 {
			angle = 2*math.Pi - angle
		}
		if angle >= minAngle && bestValid {
			continue
		}
		valid := true
		for j := 0; j < size; j++ {
			if j == i0 || j == i1 || j == i2 {
				continue
			}
			if pointInTriangle(points[j], p0, p1, p2) {
				valid = false
				break
			}
		}
		if valid || !bestValid {
			minAngle = angle
			best = i1
			bestValid = valid
		}
	}
	return best
}

func pointInTriangle(p, a, b, c r2.Vec) bool {
	return geom.TriangleArea2(a, b, p) >= earEpsilon &&
		geom.TriangleArea2(b, c, p) >= earEpsilon &&
		geom.TriangleArea2(c, a, p) >= earEpsilon
}
