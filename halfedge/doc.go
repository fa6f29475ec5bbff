// SPDX-License-Identifier: MIT

// Package halfedge implements an arena-backed half-edge mesh with colocal
// vertex rings.
//
// What:
//
//   - Vertices, half-edges and faces live in dense slices and refer to one
//     another through integer handles (VertexID, EdgeID, FaceID). Nil
//     handles are -1.
//   - Half-edges are allocated in pairs: the twin of e is always e^1. The odd
//     slot of a pair stays vacant until a second face claims the opposite
//     direction or LinkBoundary synthesizes a faceless twin.
//   - Colocal vertices (distinct records sharing one position, typically
//     split by a normal or UV seam) form circular rings so that adjacency
//     queries see through attribute seams.
//   - Faces that cannot be linked (degenerate or conflicting) may be stored
//     "detached": they keep their corner list and FaceIgnore flag but own
//     no half-edges, so face ids stay aligned with the caller's triangles.
//
// Why:
//
//   - Handles instead of pointers make removal a free-list operation and
//     keep a Mesh trivially copyable and safe to discard.
//
// Construction order:
//
//	m := halfedge.New()
//	m.AddVertex(...)            // all vertices first
//	m.LinkColocals()            // optional
//	m.AddFace(...)              // faces
//	m.LinkBoundary()            // always last
//
// Complexity:
//
//   - AddFace: O(k·r²) for a k-gon whose vertices have colocal rings of size r.
//   - LinkBoundary: O(E·d) with d the average vertex degree.
//   - SplitBoundaryEdges: O(Vb·Eb) over boundary vertices and edges.
//   - Triangulate: O(k³) per k-gon, O(F) for triangle meshes.
//
// Errors:
//
//   - ErrDegenerateFace: fewer than three corners or a repeated corner.
//   - ErrEdgeConflict: a directed edge already owned by another face.
//   - ErrVertexOutOfRange: a corner handle outside the vertex arena.
//   - ErrInvariant: CheckInvariants found a broken link.
package halfedge
