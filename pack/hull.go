// SPDX-License-Identifier: MIT

package pack

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvatlas/geom"
)

// ConvexHull returns the convex hull of points in clockwise order.
// Points closer than eps to a hull edge, duplicates included, are dropped.
// Fewer than three points are returned as given.
//
// Implementation:
//   - Stage 1: sort by x, then y.
//   - Stage 2: sweep left to right keeping right turns (upper chain).
//   - Stage 3: sweep back keeping right turns (lower chain) and drop the
//     repeated first point.
//
// Complexity: O(n log n).
func ConvexHull(points []r2.Vec, eps float64) []r2.Vec {
	pts := slices.Clone(points)
	if len(pts) < 3 {
		return pts
	}
	slices.SortStableFunc(pts, func(a, b r2.Vec) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})

	hull := make([]r2.Vec, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && geom.TriangleArea2(hull[len(hull)-2], hull[len(hull)-1], p) >= -eps {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	top := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= top && geom.TriangleArea2(hull[len(hull)-2], hull[len(hull)-1], p) >= -eps {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Box is an oriented rectangle: points p map to box coordinates
// (Axis·p, Minor()·p), which lie in [Min, Max].
type Box struct {
	Axis     r2.Vec
	Min, Max r2.Vec
}

// Minor returns Axis rotated by 90 degrees counter-clockwise.
func (b Box) Minor() r2.Vec { return r2.Vec{X: -b.Axis.Y, Y: b.Axis.X} }

// Extents returns the side lengths.
func (b Box) Extents() r2.Vec { return r2.Sub(b.Max, b.Min) }

// Area returns the box area.
func (b Box) Area() float64 {
	e := b.Extents()
	return e.X * e.Y
}

// Local maps p into box coordinates relative to Min.
func (b Box) Local(p r2.Vec) r2.Vec {
	return r2.Vec{X: r2.Dot(b.Axis, p) - b.Min.X, Y: r2.Dot(b.Minor(), p) - b.Min.Y}
}

func (b *Box) include(p r2.Vec) {
	x, y := r2.Dot(b.Axis, p), r2.Dot(b.Minor(), p)
	b.Min.X, b.Max.X = math.Min(b.Min.X, x), math.Max(b.Max.X, x)
	b.Min.Y, b.Max.Y = math.Min(b.Min.Y, y), math.Max(b.Max.Y, y)
}

func emptyBox(axis r2.Vec) Box {
	return Box{
		Axis: axis,
		Min:  r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max:  r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// OrientedBox returns the minimum-area box whose major axis follows one of
// the edges of hull, then widens it to contain every point of all, so that
// interior points of malformed charts stay inside. When hull has no usable
// edge the box is axis aligned.
//
// Complexity: O(h² + n) for h hull points and n points.
func OrientedBox(hull, all []r2.Vec) Box {
	best := emptyBox(r2.Vec{X: 1})
	bestArea := math.Inf(1)
	for i, j := 0, len(hull)-1; i < len(hull); j, i = i, i+1 {
		if hull[i] == hull[j] {
			continue
		}
		b := emptyBox(geom.Normalize2(r2.Sub(hull[i], hull[j])))
		for _, p := range hull {
			b.include(p)
		}
		if a := b.Area(); a < bestArea {
			best, bestArea = b, a
		}
	}
	for _, p := range hull {
		best.include(p)
	}
	for _, p := range all {
		best.include(p)
	}
	if len(hull) == 0 && len(all) == 0 {
		best.Min, best.Max = r2.Vec{}, r2.Vec{}
	}
	return best
}
