// SPDX-License-Identifier: MIT

package halfedge

import "errors"

// Sentinel errors returned by Mesh methods.
var (
	// ErrDegenerateFace indicates a face with fewer than three corners or a
	// repeated corner handle.
	ErrDegenerateFace = errors.New("halfedge: degenerate face")

	// ErrEdgeConflict indicates that a directed edge of the new face is
	// already owned by another face, even after unlinking colocal rings.
	ErrEdgeConflict = errors.New("halfedge: directed edge already has a face")

	// ErrVertexOutOfRange indicates a corner handle outside the vertex arena.
	ErrVertexOutOfRange = errors.New("halfedge: vertex handle out of range")

	// ErrInvariant indicates a broken link found by CheckInvariants.
	ErrInvariant = errors.New("halfedge: invariant violated")
)
