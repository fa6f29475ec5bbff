package topology

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/uvatlas/halfedge"
)

// Topology summarises the connectivity of one mesh.
type Topology struct {
	ConnectedCount int
	BoundaryCount  int
	EulerNumber    int
	// Genus is (2 - (EulerNumber + BoundaryCount)) / 2 for connected meshes
	// and -1 otherwise.
	Genus int
}

// IsConnected reports a single face island.
func (t Topology) IsConnected() bool { return t.ConnectedCount == 1 }

// IsClosed reports that no boundary loop exists.
func (t Topology) IsClosed() bool { return t.BoundaryCount == 0 }

// IsDisk reports a connected genus-0 surface with exactly one boundary.
func (t Topology) IsDisk() bool {
	return t.IsConnected() && t.BoundaryCount == 1 && t.Genus == 0
}

// Components groups the linked faces of m into islands. Two faces are
// neighbours when they own the two halves of one edge pair. Components are
// listed in order of their lowest face; faces within one component are in
// breadth-first order.
//
// Time:   O(F·k).
// Memory: O(F) for visited flags and output.
func Components(m *halfedge.Mesh) [][]halfedge.FaceID {
	n := m.FaceCount()
	seen := bitset.New(uint(n))
	var comps [][]halfedge.FaceID

	for i := 0; i < n; i++ {
		f0 := halfedge.FaceID(i)
		if seen.Test(uint(i)) || m.IsDetached(f0) {
			continue
		}
		queue := []halfedge.FaceID{f0}
		seen.Set(uint(i))
		var comp []halfedge.FaceID

		for qi := 0; qi < len(queue); qi++ {
			f := queue[qi]
			comp = append(comp, f)
			for _, e := range m.FaceEdges(f) {
				p := m.Edge(e).Pair
				if p == halfedge.NilEdge {
					continue
				}
				nf := m.Edge(p).Face
				if nf == halfedge.NilFace || seen.Test(uint(nf)) {
					continue
				}
				seen.Set(uint(nf))
				queue = append(queue, nf)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// Analyze computes the Topology of m. LinkBoundary must have been called.
//
// Stage 1: connected components by face flood fill.
// Stage 2: boundary loops.
// Stage 3: Euler number V - E + F over referenced colocal groups, live edge
// pairs and linked faces.
func Analyze(m *halfedge.Mesh) Topology {
	var t Topology
	t.ConnectedCount = len(Components(m))
	t.BoundaryCount = len(m.BoundaryLoops())

	used := bitset.New(uint(m.VertexCount()))
	faces := 0
	for i := 0; i < m.FaceCount(); i++ {
		f := halfedge.FaceID(i)
		if m.IsDetached(f) {
			continue
		}
		faces++
		for _, v := range m.FaceVertices(f) {
			used.Set(uint(m.FirstColocal(v)))
		}
	}
	pairs := 0
	for e := 0; e < m.EdgeCount(); e += 2 {
		id := halfedge.EdgeID(e)
		if (m.IsLive(id) && m.Edge(id).Face != halfedge.NilFace) ||
			(m.IsLive(id.Pair()) && m.Edge(id.Pair()).Face != halfedge.NilFace) {
			pairs++
		}
	}
	t.EulerNumber = int(used.Count()) - pairs + faces

	t.Genus = -1
	if t.IsConnected() {
		t.Genus = (2 - (t.EulerNumber + t.BoundaryCount)) / 2
	}
	return t
}
