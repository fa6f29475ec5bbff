// SPDX-License-Identifier: MIT

package segment

import (
	"sort"

	"github.com/katalvlaran/uvatlas/halfedge"
)

// Candidate is a face with the cost of adding it to a chart.
type Candidate struct {
	Face halfedge.FaceID
	Cost float64
}

// CandidateQueue keeps candidates ordered by cost. Items are stored from
// worst to best so that Pop is O(1); Push is O(n).
type CandidateQueue struct {
	items   []Candidate
	maxSize int
}

// NewCandidateQueue returns an empty queue holding at most maxSize items;
// maxSize <= 0 means unbounded.
func NewCandidateQueue(maxSize int) *CandidateQueue {
	return &CandidateQueue{maxSize: maxSize}
}

// Len returns the number of queued candidates.
func (q *CandidateQueue) Len() int { return len(q.items) }

// Push inserts f in cost order. When the queue is full the worst item is
// dropped.
func (q *CandidateQueue) Push(f halfedge.FaceID, cost float64) {
	i := sort.Search(len(q.items), func(i int) bool { return q.items[i].Cost <= cost })
	q.items = append(q.items, Candidate{})
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = Candidate{Face: f, Cost: cost}
	if q.maxSize > 0 && len(q.items) > q.maxSize {
		q.items = q.items[1:]
	}
}

// PushUnsorted appends f with cost 0; call Sort once costs are known.
func (q *CandidateQueue) PushUnsorted(f halfedge.FaceID) {
	q.items = append(q.items, Candidate{Face: f})
}

// Pop removes and returns the cheapest candidate.
func (q *CandidateQueue) Pop() (Candidate, bool) {
	n := len(q.items)
	if n == 0 {
		return Candidate{}, false
	}
	c := q.items[n-1]
	q.items = q.items[:n-1]
	return c, true
}

// Best returns the cheapest candidate without removing it.
func (q *CandidateQueue) Best() (Candidate, bool) {
	if len(q.items) == 0 {
		return Candidate{}, false
	}
	return q.items[len(q.items)-1], true
}

// Sort restores cost order after costs were rewritten in place.
func (q *CandidateQueue) Sort() {
	sort.SliceStable(q.items, func(i, j int) bool { return q.items[i].Cost > q.items[j].Cost })
}

// Clear empties the queue.
func (q *CandidateQueue) Clear() { q.items = q.items[:0] }

// Faces returns the queued faces from cheapest to most expensive.
func (q *CandidateQueue) Faces() []halfedge.FaceID {
	out := make([]halfedge.FaceID, len(q.items))
	for i := range q.items {
		out[i] = q.items[len(q.items)-1-i].Face
	}
	return out
}
