// SPDX-License-Identifier: MIT

package halfedge

import (
	"fmt"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
)

// Mesh is an arena of vertices, half-edges and faces.
//
// Pointers returned by Vertex, Edge and Face alias arena storage and are
// invalidated by any call that grows the corresponding arena.
type Mesh struct {
	verts []Vertex
	edges []Edge
	faces []Face

	edgeMap   map[edgeKey]EdgeID
	freePairs []EdgeID // even handles of recycled pairs

	// corners of detached faces
	detached map[FaceID][]VertexID

	eps    float64
	logger *slog.Logger
}

// Option configures a Mesh.
type Option func(*Mesh)

// WithLogger routes diagnostics (duplicate edges, T-junction splits) to l.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mesh) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithEpsilon sets the geometric tolerance used by SplitBoundaryEdges.
// Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(m *Mesh) {
		if eps > 0 {
			m.eps = eps
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// New returns an empty mesh.
func New(opts ...Option) *Mesh {
	m := &Mesh{
		edgeMap:  make(map[edgeKey]EdgeID),
		detached: make(map[FaceID][]VertexID),
		eps:      geom.Epsilon,
		logger:   discardLogger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Logger returns the mesh's diagnostic logger.
func (m *Mesh) Logger() *slog.Logger { return m.logger }

//----------------------------------------------------------------------------//
// Arena access
//----------------------------------------------------------------------------//

// VertexCount returns the number of vertex records.
func (m *Mesh) VertexCount() int { return len(m.verts) }

// EdgeCount returns the number of half-edge slots, vacant ones included.
func (m *Mesh) EdgeCount() int { return len(m.edges) }

// FaceCount returns the number of faces, detached ones included.
func (m *Mesh) FaceCount() int { return len(m.faces) }

// Vertex returns the vertex record for id.
func (m *Mesh) Vertex(id VertexID) *Vertex { return &m.verts[id] }

// Edge returns the half-edge record for id.
func (m *Mesh) Edge(id EdgeID) *Edge { return &m.edges[id] }

// Face returns the face record for id.
func (m *Mesh) Face(id FaceID) *Face { return &m.faces[id] }

// IsLive reports whether slot e holds a half-edge.
func (m *Mesh) IsLive(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges) && m.edges[e].Vertex != NilVertex
}

// EdgePairCount returns the number of pairs with at least one live half.
func (m *Mesh) EdgePairCount() int {
	n := 0
	for e := 0; e < len(m.edges); e += 2 {
		if m.IsLive(EdgeID(e)) || m.IsLive(EdgeID(e+1)) {
			n++
		}
	}
	return n
}

// From returns the origin vertex of e.
func (m *Mesh) From(e EdgeID) VertexID { return m.edges[e].Vertex }

// To returns the destination vertex of e: the origin of its twin, or of the
// next edge in the ring while the twin does not exist yet.
func (m *Mesh) To(e EdgeID) VertexID {
	ed := &m.edges[e]
	if ed.Pair != NilEdge {
		return m.edges[ed.Pair].Vertex
	}
	if ed.Next != NilEdge {
		return m.edges[ed.Next].Vertex
	}
	return NilVertex
}

// SetNext links e → next and next.Prev = e.
func (m *Mesh) SetNext(e, next EdgeID) {
	m.edges[e].Next = next
	if next != NilEdge {
		m.edges[next].Prev = e
	}
}

// SetVertexEdge points every vertex in v's colocal ring at e.
func (m *Mesh) SetVertexEdge(v VertexID, e EdgeID) {
	c := v
	for {
		m.verts[c].Edge = e
		c = m.verts[c].Next
		if c == v {
			return
		}
	}
}

//----------------------------------------------------------------------------//
// Vertices and colocal rings
//----------------------------------------------------------------------------//

// AddVertex appends a vertex at pos and returns its handle.
func (m *Mesh) AddVertex(pos r3.Vec) VertexID {
	id := VertexID(len(m.verts))
	m.verts = append(m.verts, Vertex{ID: id, Pos: pos, Edge: NilEdge, Next: id, Prev: id})
	return id
}

// linkColocal inserts b into a's ring directly after a.
func (m *Mesh) linkColocal(a, b VertexID) {
	va, vb := &m.verts[a], &m.verts[b]
	m.verts[va.Next].Prev = b
	vb.Next = va.Next
	va.Next = b
	vb.Prev = a
}

// UnlinkColocal removes v from its ring, leaving it a ring of one.
func (m *Mesh) UnlinkColocal(v VertexID) {
	vv := &m.verts[v]
	m.verts[vv.Next].Prev = vv.Prev
	m.verts[vv.Prev].Next = vv.Next
	vv.Next, vv.Prev = v, v
}

// LinkColocals rings together vertices with bit-identical positions.
//
// Complexity: O(V) expected.
func (m *Mesh) LinkColocals() {
	first := make(map[r3.Vec]VertexID, len(m.verts))
	for i := range m.verts {
		v := VertexID(i)
		if c, ok := first[m.verts[i].Pos]; ok {
			m.linkColocal(c, v)
			continue
		}
		first[m.verts[i].Pos] = v
	}
	m.logger.Debug("linked colocals", "vertices", len(m.verts), "positions", len(first))
}

// LinkColocalsWithCanonicalMap rings together vertices sharing a canonical
// index. canonical must have one entry per vertex; entries outside
// [0, VertexCount) leave the vertex alone.
func (m *Mesh) LinkColocalsWithCanonicalMap(canonical []int) {
	first := make(map[int]VertexID, len(m.verts))
	for i := range m.verts {
		if i >= len(canonical) {
			break
		}
		key := canonical[i]
		if key < 0 {
			continue
		}
		if c, ok := first[key]; ok {
			m.linkColocal(c, VertexID(i))
			continue
		}
		first[key] = VertexID(i)
	}
}

// Colocals returns v's ring starting at v.
func (m *Mesh) Colocals(v VertexID) []VertexID {
	out := []VertexID{v}
	for c := m.verts[v].Next; c != v; c = m.verts[c].Next {
		out = append(out, c)
	}
	return out
}

// FirstColocal returns the lowest handle in v's ring.
func (m *Mesh) FirstColocal(v VertexID) VertexID {
	best := v
	for c := m.verts[v].Next; c != v; c = m.verts[c].Next {
		if c < best {
			best = c
		}
	}
	return best
}

// IsFirstColocal reports FirstColocal(v) == v.
func (m *Mesh) IsFirstColocal(v VertexID) bool { return m.FirstColocal(v) == v }

// IsColocal reports whether a and b share a ring and a position.
func (m *Mesh) IsColocal(a, b VertexID) bool {
	if a == b {
		return true
	}
	if m.verts[a].Pos != m.verts[b].Pos {
		return false
	}
	for c := m.verts[a].Next; c != a; c = m.verts[c].Next {
		if c == b {
			return true
		}
	}
	return false
}

// ColocalVertexCount counts distinct ring representatives.
func (m *Mesh) ColocalVertexCount() int {
	n := 0
	for i := range m.verts {
		if m.IsFirstColocal(VertexID(i)) {
			n++
		}
	}
	return n
}

// IsBoundary reports whether v's outgoing edge is faceless. Valid after
// LinkBoundary.
func (m *Mesh) IsBoundary(v VertexID) bool {
	e := m.verts[v].Edge
	return e != NilEdge && m.IsLive(e) && m.edges[e].Face == NilFace
}

//----------------------------------------------------------------------------//
// Faces
//----------------------------------------------------------------------------//

// AddEmptyFace appends a face with no edges; callers attach a ring with
// AttachLoop.
func (m *Mesh) AddEmptyFace() FaceID {
	id := FaceID(len(m.faces))
	m.faces = append(m.faces, Face{ID: id, Edge: NilEdge, Group: NoGroup})
	return id
}

// AddDetachedFace appends a face that owns no half-edges. It is flagged
// FaceIgnore and remembers its corners for FaceVertices.
func (m *Mesh) AddDetachedFace(indices []VertexID, flags FaceFlags) FaceID {
	id := m.AddEmptyFace()
	m.faces[id].Flags = flags | FaceIgnore
	m.detached[id] = append([]VertexID(nil), indices...)
	return id
}

// IsDetached reports whether f owns no half-edges.
func (m *Mesh) IsDetached(f FaceID) bool { return m.faces[f].Edge == NilEdge }

// AddFace links a polygon through the given corners.
//
// Stage 1: validate corners (count, range, repeats).
// Stage 2: for each directed edge already owned by a face, unlink the
// colocal rings of both endpoints and retry the lookup.
// Stage 3: create or claim half-edges and close the ring.
//
// On error the mesh is unchanged apart from unlinked colocal rings.
//
// Complexity: O(k·r²).
func (m *Mesh) AddFace(indices []VertexID, flags FaceFlags) (FaceID, error) {
	n := len(indices)
	if n < 3 {
		return NilFace, fmt.Errorf("AddFace: %d corners: %w", n, ErrDegenerateFace)
	}
	for i, v := range indices {
		if v < 0 || int(v) >= len(m.verts) {
			return NilFace, fmt.Errorf("AddFace: corner %d: %w", v, ErrVertexOutOfRange)
		}
		for _, w := range indices[:i] {
			if w == v {
				return NilFace, fmt.Errorf("AddFace: repeated corner %d: %w", v, ErrDegenerateFace)
			}
		}
	}

	for j, i := n-1, 0; i < n; j, i = i, i+1 {
		a, b := indices[j], indices[i]
		if e := m.findEdge(a, b); e != NilEdge && m.edges[e].Face != NilFace {
			m.UnlinkColocal(a)
			m.UnlinkColocal(b)
			if e = m.findEdge(a, b); e != NilEdge && m.edges[e].Face != NilFace {
				m.logger.Warn("duplicate edge", "from", a, "to", b)
				return NilFace, fmt.Errorf("AddFace: edge %d→%d: %w", a, b, ErrEdgeConflict)
			}
		}
	}

	f := FaceID(len(m.faces))
	m.faces = append(m.faces, Face{ID: f, Edge: NilEdge, Group: NoGroup, Flags: flags})

	var first, last EdgeID = NilEdge, NilEdge
	for i := 0; i < n; i++ {
		cur := m.addEdge(indices[i], indices[(i+1)%n])
		m.edges[cur].Face = f
		if last != NilEdge {
			m.SetNext(last, cur)
		} else {
			first = cur
		}
		last = cur
	}
	m.SetNext(last, first)
	m.faces[f].Edge = first
	return f, nil
}

// AttachLoop turns a closed chain of faceless edges into the ring of face f.
func (m *Mesh) AttachLoop(f FaceID, loop []EdgeID) {
	for i, e := range loop {
		m.edges[e].Face = f
		m.SetNext(e, loop[(i+1)%len(loop)])
	}
	m.faces[f].Edge = loop[0]
}

// allocPair returns the even handle of a fresh pair; the odd slot is vacant.
func (m *Mesh) allocPair() EdgeID {
	var e EdgeID
	if n := len(m.freePairs); n > 0 {
		e = m.freePairs[n-1]
		m.freePairs = m.freePairs[:n-1]
	} else {
		e = EdgeID(len(m.edges))
		m.edges = append(m.edges, Edge{}, Edge{})
	}
	m.edges[e] = vacantEdge(e)
	m.edges[e+1] = vacantEdge(e + 1)
	return e
}

func vacantEdge(id EdgeID) Edge {
	return Edge{ID: id, Next: NilEdge, Prev: NilEdge, Pair: NilEdge, Face: NilFace, Vertex: NilVertex}
}

// addEdge creates the half-edge i→j. If the opposite direction exists and
// its twin slot is vacant or holds a faceless placeholder, that slot is
// claimed; otherwise a new pair is allocated.
func (m *Mesh) addEdge(i, j VertexID) EdgeID {
	var e EdgeID = NilEdge
	if p := m.findEdge(j, i); p != NilEdge {
		twin := p.Pair()
		if !m.IsLive(twin) || m.edges[twin].Face == NilFace {
			e = twin
			m.edges[e] = vacantEdge(e)
			m.edges[e].Pair = p
			m.edges[p].Pair = e
			m.SetVertexEdge(m.edges[p].Vertex, p)
		}
	}
	if e == NilEdge {
		e = m.allocPair()
	}
	m.edges[e].Vertex = i
	if m.verts[i].Edge == NilEdge {
		m.SetVertexEdge(i, e)
	}
	key := edgeKey{i, j}
	if _, ok := m.edgeMap[key]; !ok {
		m.edgeMap[key] = e
	}
	return e
}

// findEdge looks up i→j across every colocal combination.
func (m *Mesh) findEdge(i, j VertexID) EdgeID {
	a := i
	for {
		b := j
		for {
			if e, ok := m.edgeMap[edgeKey{a, b}]; ok {
				return e
			}
			b = m.verts[b].Next
			if b == j {
				break
			}
		}
		a = m.verts[a].Next
		if a == i {
			return NilEdge
		}
	}
}

// disconnect unhooks e from the map, its vertex, its face and its ring
// neighbours. The slot itself is left for the caller to recycle.
func (m *Mesh) disconnect(e EdgeID) {
	ed := m.edges[e]
	to := m.To(e)
	if cur, ok := m.edgeMap[edgeKey{ed.Vertex, to}]; ok && cur == e {
		delete(m.edgeMap, edgeKey{ed.Vertex, to})
	}
	if v := ed.Vertex; v != NilVertex && m.verts[v].Edge == e {
		switch {
		case ed.Prev != NilEdge && m.edges[ed.Prev].Pair != NilEdge:
			m.verts[v].Edge = m.edges[ed.Prev].Pair
		case ed.Pair != NilEdge && m.edges[ed.Pair].Next != NilEdge:
			m.verts[v].Edge = m.edges[ed.Pair].Next
		default:
			m.verts[v].Edge = NilEdge
		}
	}
	if ed.Face != NilFace && m.faces[ed.Face].Edge == e {
		switch {
		case ed.Next != NilEdge && ed.Next != e:
			m.faces[ed.Face].Edge = ed.Next
		case ed.Prev != NilEdge && ed.Prev != e:
			m.faces[ed.Face].Edge = ed.Prev
		default:
			m.faces[ed.Face].Edge = NilEdge
		}
	}
	if ed.Prev != NilEdge && m.edges[ed.Prev].Next == e {
		m.edges[ed.Prev].Next = NilEdge
	}
	if ed.Next != NilEdge && m.edges[ed.Next].Prev == e {
		m.edges[ed.Next].Prev = NilEdge
	}
}

// freePair returns a pair to the free list.
func (m *Mesh) freePair(e EdgeID) {
	e &^= 1
	m.edges[e] = vacantEdge(e)
	m.edges[e+1] = vacantEdge(e + 1)
	m.freePairs = append(m.freePairs, e)
}
