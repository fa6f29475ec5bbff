// SPDX-License-Identifier: MIT

package uvatlas

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// weldPoint is one input vertex in the weld tree.
type weldPoint struct {
	id  int
	pos r3.Vec
}

func (p weldPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(weldPoint)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	default:
		return p.pos.Z - q.pos.Z
	}
}

func (p weldPoint) Dims() int { return 3 }

// Distance returns the squared distance.
func (p weldPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(weldPoint)
	return r3.Norm2(r3.Sub(p.pos, q.pos))
}

type weldPoints []weldPoint

func (p weldPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p weldPoints) Len() int                      { return len(p) }
func (p weldPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

func (p weldPoints) Pivot(d kdtree.Dim) int {
	plane := weldPlane{dim: d, points: p}
	return kdtree.Partition(plane, kdtree.MedianOfMedians(plane))
}

type weldPlane struct {
	dim    kdtree.Dim
	points weldPoints
}

func (p weldPlane) Less(i, j int) bool { return p.points[i].Compare(p.points[j], p.dim) < 0 }
func (p weldPlane) Swap(i, j int)      { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p weldPlane) Len() int           { return len(p.points) }
func (p weldPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

// weldCanonical maps every vertex to the smallest canonical index among the
// earlier vertices within tol of it, or to itself. Vertices are visited in
// index order, so the result does not depend on the tree layout.
//
// Complexity: O(n log n) expected for well spread points.
func weldCanonical(pos []r3.Vec, tol float64) []int {
	canonical := make([]int, len(pos))
	if len(pos) == 0 {
		return canonical
	}
	pts := make(weldPoints, len(pos))
	for i, p := range pos {
		pts[i] = weldPoint{id: i, pos: p}
	}
	tree := kdtree.New(pts, false)

	r2 := tol * tol
	for i, p := range pos {
		canonical[i] = i
		keep := kdtree.NewDistKeeper(r2)
		tree.NearestSet(keep, weldPoint{id: i, pos: p})
		for _, cd := range keep.Heap {
			if cd.Comparable == nil || cd.Dist > r2 {
				continue
			}
			j := cd.Comparable.(weldPoint).id
			if j < i {
				canonical[i] = min(canonical[i], canonical[j])
			}
		}
	}
	return canonical
}
