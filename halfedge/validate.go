// SPDX-License-Identifier: MIT

package halfedge

import "fmt"

// CheckInvariants verifies the structural links of m:
//
//   - every paired live edge e has pair(pair(e)) == e and Pair == e^1;
//   - every edge in a linked face's ring points back at that face;
//   - next/prev are mutually consistent inside face rings.
//
// It is a debugging aid; a nil result does not imply the mesh is manifold.
//
// Complexity: O(E + F·k).
func (m *Mesh) CheckInvariants() error {
	for i := range m.edges {
		e := EdgeID(i)
		ed := &m.edges[e]
		if ed.Vertex == NilVertex {
			continue
		}
		if ed.ID != e {
			return fmt.Errorf("CheckInvariants: edge %d stores id %d: %w", e, ed.ID, ErrInvariant)
		}
		if ed.Pair == NilEdge {
			continue
		}
		if ed.Pair != e.Pair() {
			return fmt.Errorf("CheckInvariants: edge %d paired with %d: %w", e, ed.Pair, ErrInvariant)
		}
		if m.edges[ed.Pair].Pair != e {
			return fmt.Errorf("CheckInvariants: pair(pair(%d)) = %d: %w", e, m.edges[ed.Pair].Pair, ErrInvariant)
		}
	}
	for i := range m.faces {
		f := FaceID(i)
		if m.faces[i].Edge == NilEdge {
			continue
		}
		ring := m.FaceEdges(f)
		if len(ring) < 3 {
			return fmt.Errorf("CheckInvariants: face %d has %d edges: %w", f, len(ring), ErrInvariant)
		}
		for _, e := range ring {
			ed := &m.edges[e]
			if ed.Face != f {
				return fmt.Errorf("CheckInvariants: edge %d of face %d points at face %d: %w", e, f, ed.Face, ErrInvariant)
			}
			if ed.Next == NilEdge || m.edges[ed.Next].Prev != e {
				return fmt.Errorf("CheckInvariants: edge %d next/prev mismatch: %w", e, ErrInvariant)
			}
		}
	}
	return nil
}
