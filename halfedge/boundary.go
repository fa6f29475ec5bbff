// SPDX-License-Identifier: MIT

package halfedge

import (
	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
)

// IsBoundaryEdge reports whether e lacks a face on either side.
func (m *Mesh) IsBoundaryEdge(e EdgeID) bool {
	ed := &m.edges[e]
	return !(ed.Face != NilFace && ed.Pair != NilEdge && m.edges[ed.Pair].Face != NilFace)
}

func (m *Mesh) ignoredFace(f FaceID) bool {
	return f != NilFace && m.faces[f].Flags&FaceIgnore != 0
}

// LinkBoundary gives every unpaired half-edge a faceless twin and links the
// twins into boundary loops.
//
// Stage 1: synthesize twins (edges of ignored faces are skipped).
// Stage 2: for each faceless twin, walk the fan around its destination to
// the next faceless edge and link it as the successor.
//
// Complexity: O(E·d).
func (m *Mesh) LinkBoundary() {
	n := len(m.edges)
	created := 0
	for i := 0; i < n; i++ {
		e := EdgeID(i)
		ed := &m.edges[e]
		if ed.Vertex == NilVertex || ed.Pair != NilEdge || m.ignoredFace(ed.Face) {
			continue
		}
		to := m.To(e)
		if to == NilVertex {
			continue
		}
		p := e.Pair()
		m.edges[p] = Edge{ID: p, Next: NilEdge, Prev: NilEdge, Pair: e, Face: NilFace, Vertex: to}
		m.edges[e].Pair = p
		key := edgeKey{to, m.edges[e].Vertex}
		if _, ok := m.edgeMap[key]; !ok {
			m.edgeMap[key] = p
		}
		created++
	}
	for i := 0; i < n; i++ {
		e := EdgeID(i)
		ed := &m.edges[e]
		if ed.Vertex == NilVertex || ed.Face == NilFace || ed.Pair == NilEdge || m.ignoredFace(ed.Face) {
			continue
		}
		if m.edges[ed.Pair].Face == NilFace {
			m.linkBoundaryEdge(ed.Pair)
		}
	}
	m.logger.Debug("linked boundary", "edges", created)
}

// linkBoundaryEdge sets the successor of the faceless edge b.
func (m *Mesh) linkBoundaryEdge(b EdgeID) {
	next := b
	for guard := len(m.edges); guard > 0; guard-- {
		p := m.edges[next].Pair
		if p == NilEdge {
			break
		}
		pf := m.edges[p].Face
		if pf == NilFace || m.ignoredFace(pf) {
			break
		}
		prev := m.edges[p].Prev
		if prev == NilEdge {
			break
		}
		next = prev
	}
	succ := m.edges[next].Pair
	if succ == NilEdge {
		return
	}
	m.SetNext(b, succ)
	m.verts[m.edges[b].Vertex].Edge = b
}

// BoundaryLoops returns one faceless start edge per boundary loop.
//
// Complexity: O(E).
func (m *Mesh) BoundaryLoops() []EdgeID {
	visited := bitset.New(uint(len(m.edges)))
	var loops []EdgeID
	for i := range m.edges {
		e := EdgeID(i)
		if !m.IsLive(e) || m.edges[e].Face != NilFace || visited.Test(uint(e)) {
			continue
		}
		if p := m.edges[e].Pair; p == NilEdge || m.edges[p].Face == NilFace {
			continue
		}
		loops = append(loops, e)
		cur := e
		for guard := len(m.edges); guard > 0 && cur != NilEdge && !visited.Test(uint(cur)); guard-- {
			visited.Set(uint(cur))
			cur = m.edges[cur].Next
		}
	}
	return loops
}

// LoopEdges returns the edges of the loop that starts at e.
func (m *Mesh) LoopEdges(e EdgeID) []EdgeID {
	var out []EdgeID
	cur := e
	for guard := len(m.edges); guard > 0; guard-- {
		out = append(out, cur)
		cur = m.edges[cur].Next
		if cur == e || cur == NilEdge {
			break
		}
	}
	return out
}

// SplitBoundaryEdges repairs T-junctions: every boundary vertex lying on
// the interior of another boundary edge splits that edge, and the new
// vertex joins the colocal ring of the junction vertex. It reports whether
// any split happened; callers repeat until it returns false.
//
// Complexity: O(Vb·E).
func (m *Mesh) SplitBoundaryEdges() bool {
	var boundary []VertexID
	for i := range m.verts {
		if m.IsBoundary(VertexID(i)) {
			boundary = append(boundary, VertexID(i))
		}
	}
	splits := 0
	for _, v := range boundary {
		x0 := m.verts[v].Pos
		for i := 0; i < len(m.edges); i += 2 {
			e := EdgeID(i)
			if !m.IsLive(e) || !m.IsLive(e.Pair()) || !m.IsBoundaryEdge(e) {
				continue
			}
			if m.edges[e].Face == NilFace {
				e = e.Pair()
				if m.edges[e].Face == NilFace {
					continue
				}
			}
			from, to := m.From(e), m.To(e)
			if from == v || to == v {
				continue
			}
			x1, x2 := m.verts[from].Pos, m.verts[to].Pos
			v01 := r3.Sub(x0, x1)
			v21 := r3.Sub(x2, x1)
			l := r3.Norm(v21)
			if l == 0 {
				continue
			}
			d := r3.Norm(r3.Cross(v01, v21)) / l
			if !geom.IsZero(d, m.eps) {
				continue
			}
			t := r3.Dot(v01, v21) / (l * l)
			if t > m.eps && t < 1-m.eps {
				nv := m.splitBoundaryEdge(e, t, x0)
				m.linkColocal(v, nv)
				splits++
			}
		}
	}
	if splits > 0 {
		m.logger.Debug("split boundary edges", "count", splits)
	}
	return splits != 0
}

// splitBoundaryEdge splits the face-owning edge e (whose twin is faceless)
// at parameter t, inserting a vertex at pos with interpolated attributes.
func (m *Mesh) splitBoundaryEdge(e EdgeID, t float64, pos r3.Vec) VertexID {
	edge := m.edges[e]
	pair := m.edges[edge.Pair]
	from, to := edge.Vertex, pair.Vertex

	v := m.AddVertex(pos)
	m.verts[v].Nor = geom.Lerp3(m.verts[from].Nor, m.verts[to].Nor, t)
	m.verts[v].Tex = geom.Lerp2(m.verts[from].Tex, m.verts[to].Tex, t)

	fromEdge := m.verts[from].Edge
	toEdge := m.verts[to].Edge
	m.disconnect(e)
	m.disconnect(edge.Pair)
	m.freePair(e)

	e0 := m.addEdge(from, v)
	p0 := m.addEdge(v, from)
	e1 := m.addEdge(v, to)
	p1 := m.addEdge(to, v)

	m.SetNext(e0, e1)
	m.SetNext(p1, p0)
	if edge.Prev != NilEdge {
		m.SetNext(edge.Prev, e0)
	}
	if edge.Next != NilEdge {
		m.SetNext(e1, edge.Next)
	}
	if pair.Prev != NilEdge {
		m.SetNext(pair.Prev, p1)
	}
	if pair.Next != NilEdge {
		m.SetNext(p0, pair.Next)
	}
	m.edges[e0].Face = edge.Face
	m.edges[e1].Face = edge.Face
	if edge.Face != NilFace && m.faces[edge.Face].Edge == NilEdge {
		m.faces[edge.Face].Edge = e0
	}

	// Pairing inside addEdge repoints vertex edges; keep boundary vertices
	// on their faceless outgoing edge.
	if fromEdge != e && m.IsLive(fromEdge) {
		m.SetVertexEdge(from, fromEdge)
	} else {
		m.SetVertexEdge(from, e0)
	}
	if toEdge == edge.Pair || !m.IsLive(toEdge) {
		m.SetVertexEdge(to, p1)
	} else {
		m.SetVertexEdge(to, toEdge)
	}
	m.verts[v].Edge = p0
	return v
}
