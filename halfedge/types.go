// SPDX-License-Identifier: MIT

package halfedge

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertexID, EdgeID and FaceID are dense handles into the mesh arenas.
type (
	VertexID int
	EdgeID   int
	FaceID   int
)

// Nil handles.
const (
	NilVertex VertexID = -1
	NilEdge   EdgeID   = -1
	NilFace   FaceID   = -1
)

// Pair returns the handle of the twin slot of e.
func (e EdgeID) Pair() EdgeID { return e ^ 1 }

// FaceFlags is a bit set of per-face markers.
type FaceFlags uint32

const (
	// FaceIgnore excludes a face from charting.
	FaceIgnore FaceFlags = 1 << iota
)

// NoGroup is the group of faces that were never assigned one.
const NoGroup = -1

// Vertex is one vertex record. Next and Prev link the colocal ring; a vertex
// without colocals points at itself.
type Vertex struct {
	ID   VertexID
	Pos  r3.Vec
	Nor  r3.Vec
	Tex  r2.Vec
	Edge EdgeID // one outgoing half-edge
	Next VertexID
	Prev VertexID
}

// Edge is a directed half-edge from Vertex to the origin of its twin.
// A slot whose Vertex is NilVertex is vacant.
type Edge struct {
	ID     EdgeID
	Next   EdgeID
	Prev   EdgeID
	Pair   EdgeID // ID^1 once the twin exists, NilEdge before
	Face   FaceID
	Vertex VertexID
}

// Face is one polygon. Detached faces have Edge == NilEdge and keep their
// corners in the mesh side table.
type Face struct {
	ID    FaceID
	Edge  EdgeID
	Group int
	Flags FaceFlags
}

// Ignored reports whether the face carries FaceIgnore.
func (f *Face) Ignored() bool { return f.Flags&FaceIgnore != 0 }

type edgeKey struct {
	from, to VertexID
}
