// SPDX-License-Identifier: MIT

package uvatlas

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/halfedge"
)

// IndexFormat selects which index buffer of InputMesh is read.
type IndexFormat int

const (
	IndexUint32 IndexFormat = iota
	IndexUint16
)

// InputMesh is one triangle list. Normals, UVs and FaceIgnore are optional;
// when present they must match Positions (or the face count for
// FaceIgnore). Without normals, area-weighted face normals are used.
// Buffers are copied by AddMesh.
type InputMesh struct {
	Positions   []r3.Vec
	Normals     []r3.Vec
	UVs         []r2.Vec
	IndexFormat IndexFormat
	Indices16   []uint16
	Indices32   []uint32
	FaceIgnore  []bool
}

// AddMeshError is the result code of AddMesh.
type AddMeshError int

const (
	Success AddMeshError = iota
	IndexOutOfRange
	InvalidIndexCount
	AttributeCountMismatch
)

// String returns the code name.
func (e AddMeshError) String() string {
	switch e {
	case Success:
		return "success"
	case IndexOutOfRange:
		return "index out of range"
	case InvalidIndexCount:
		return "invalid index count"
	case AttributeCountMismatch:
		return "attribute count mismatch"
	default:
		return fmt.Sprintf("AddMeshError(%d)", int(e))
	}
}

// indices widens the selected buffer to uint32.
func (in *InputMesh) indices() ([]uint32, AddMeshError) {
	var out []uint32
	switch in.IndexFormat {
	case IndexUint32:
		out = in.Indices32
	case IndexUint16:
		out = make([]uint32, len(in.Indices16))
		for i, x := range in.Indices16 {
			out[i] = uint32(x)
		}
	default:
		return nil, InvalidIndexCount
	}
	if len(out)%3 != 0 {
		return nil, InvalidIndexCount
	}
	return out, Success
}

func (in *InputMesh) validate(indices []uint32) AddMeshError {
	n := len(in.Positions)
	if (in.Normals != nil && len(in.Normals) != n) || (in.UVs != nil && len(in.UVs) != n) {
		return AttributeCountMismatch
	}
	if in.FaceIgnore != nil && len(in.FaceIgnore) != len(indices)/3 {
		return AttributeCountMismatch
	}
	for _, i := range indices {
		if int(i) >= n {
			return IndexOutOfRange
		}
	}
	return Success
}

// degenerate names the reason a triangle cannot be charted, or returns "".
func degenerate(pos []r3.Vec, t [3]uint32) string {
	if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
		return "repeated index"
	}
	a, b, c := pos[t[0]], pos[t[1]], pos[t[2]]
	if a == b || b == c || c == a {
		return "zero length edge"
	}
	if r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) == 0 {
		return "zero area"
	}
	return ""
}

// AddMesh copies in into the atlas. On any code but Success the atlas is
// unchanged. Adding a mesh discards charts and outputs of earlier calls.
//
// Stage 1: validate index count, attribute counts and index range.
// Stage 2: copy vertices and link colocals (exact, welded or none).
// Stage 3: add triangles; degenerate or caller-ignored ones are flagged
// FaceIgnore, and triangles that cannot be linked are stored detached.
// Stage 4: link boundaries and fill in missing normals.
//
// Complexity: O(V log V + F) with welding, O(V + F) otherwise.
func (a *Atlas) AddMesh(in InputMesh, opts ...MeshOption) AddMeshError {
	cfg := gatherMeshOptions(opts)
	id := len(a.meshes)

	// Stage 1
	indices, code := in.indices()
	if code == Success {
		code = in.validate(indices)
	}
	if code != Success {
		a.logger.Warn("mesh rejected", "mesh", id, "code", code)
		return code
	}

	// Stage 2
	m := halfedge.New(halfedge.WithLogger(a.logger))
	for i, p := range in.Positions {
		v := m.Vertex(m.AddVertex(p))
		if in.Normals != nil {
			v.Nor = in.Normals[i]
		}
		if in.UVs != nil {
			v.Tex = in.UVs[i]
		}
	}
	switch {
	case !cfg.colocal:
	case cfg.weldTol > 0:
		m.LinkColocalsWithCanonicalMap(weldCanonical(in.Positions, cfg.weldTol))
	default:
		m.LinkColocals()
	}

	// Stage 3
	ignored := 0
	for f := 0; f < len(indices)/3; f++ {
		t := [3]uint32{indices[3*f], indices[3*f+1], indices[3*f+2]}
		corners := []halfedge.VertexID{halfedge.VertexID(t[0]), halfedge.VertexID(t[1]), halfedge.VertexID(t[2])}
		var flags halfedge.FaceFlags
		if reason := degenerate(in.Positions, t); reason != "" {
			a.logger.Warn("degenerate face", "mesh", id, "face", f, "reason", reason)
			flags |= halfedge.FaceIgnore
		}
		if in.FaceIgnore != nil && in.FaceIgnore[f] {
			flags |= halfedge.FaceIgnore
		}
		if _, err := m.AddFace(corners, flags); err != nil {
			if flags&halfedge.FaceIgnore == 0 {
				a.logger.Warn("face not linked", "mesh", id, "face", f, "err", err)
			}
			m.AddDetachedFace(corners, flags)
		}
		if m.Face(halfedge.FaceID(f)).Ignored() {
			ignored++
		}
	}

	// Stage 4
	m.LinkBoundary()
	if in.Normals == nil {
		faceNormals(m)
	}

	a.reset()
	a.meshes = append(a.meshes, m)
	a.logger.Debug("mesh added", "mesh", id, "vertices", m.VertexCount(), "faces", m.FaceCount(), "ignored", ignored)
	return Success
}

// faceNormals sets each vertex normal to the normalized area-weighted sum
// of the normals of its charted faces, shared across the colocal ring.
func faceNormals(m *halfedge.Mesh) {
	sum := make([]r3.Vec, m.VertexCount())
	for f := 0; f < m.FaceCount(); f++ {
		fid := halfedge.FaceID(f)
		if m.Face(fid).Ignored() || m.IsDetached(fid) {
			continue
		}
		n := m.FaceNormalAreaScaled(fid)
		for _, v := range m.FaceVertices(fid) {
			first := m.FirstColocal(v)
			sum[first] = r3.Add(sum[first], n)
		}
	}
	for v := 0; v < m.VertexCount(); v++ {
		n := sum[m.FirstColocal(halfedge.VertexID(v))]
		if r3.Norm(n) > 0 {
			n = r3.Unit(n)
		}
		m.Vertex(halfedge.VertexID(v)).Nor = n
	}
}
