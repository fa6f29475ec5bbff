// SPDX-License-Identifier: MIT

package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ClippedTriangle is a triangle progressively clipped by axis-aligned
// planes. A triangle clipped by four planes has at most seven vertices.
type ClippedTriangle struct {
	verts    []r2.Vec
	area     float64
	centroid r2.Vec
}

// NewClippedTriangle starts from the unclipped triangle abc.
func NewClippedTriangle(a, b, c r2.Vec) *ClippedTriangle {
	ct := &ClippedTriangle{verts: make([]r2.Vec, 3, 8)}
	ct.verts[0], ct.verts[1], ct.verts[2] = a, b, c
	ct.computeAreaCentroid()
	return ct
}

// Vertices returns the current polygon.
func (ct *ClippedTriangle) Vertices() []r2.Vec { return ct.verts }

// Area returns the unsigned area of the current polygon.
func (ct *ClippedTriangle) Area() float64 { return ct.area }

// Centroid returns the area centroid, or the origin when the area is zero.
func (ct *ClippedTriangle) Centroid() r2.Vec { return ct.centroid }

// ClipAABox keeps the part inside [x0, x1] × [y0, y1] and refreshes the
// area and centroid.
func (ct *ClippedTriangle) ClipAABox(x0, y0, x1, y1 float64) {
	ct.clip(func(p r2.Vec) float64 { return p.X - x0 })
	ct.clip(func(p r2.Vec) float64 { return p.Y - y0 })
	ct.clip(func(p r2.Vec) float64 { return x1 - p.X })
	ct.clip(func(p r2.Vec) float64 { return y1 - p.Y })
	ct.computeAreaCentroid()
}

// clip keeps the part of the polygon where dist >= 0.
func (ct *ClippedTriangle) clip(dist func(r2.Vec) float64) {
	n := len(ct.verts)
	if n == 0 {
		return
	}
	out := make([]r2.Vec, 0, n+1)
	for k := 0; k < n; k++ {
		a, b := ct.verts[k], ct.verts[(k+1)%n]
		da, db := dist(a), dist(b)
		ain, bin := da >= 0, db >= 0
		if ain {
			out = append(out, a)
		}
		if ain != bin {
			t := da / (da - db)
			out = append(out, r2.Add(a, r2.Scale(t, r2.Sub(b, a))))
		}
	}
	ct.verts = out
}

func (ct *ClippedTriangle) computeAreaCentroid() {
	n := len(ct.verts)
	var area, cx, cy float64
	for k := 0; k < n; k++ {
		a, b := ct.verts[k], ct.verts[(k+1)%n]
		f := a.X*b.Y - b.X*a.Y
		area += f
		cx += f * (a.X + b.X)
		cy += f * (a.Y + b.Y)
	}
	// centroid uses the signed area so orientation cancels
	signed := 0.5 * area
	ct.area = math.Abs(signed)
	if signed == 0 {
		ct.centroid = r2.Vec{}
		return
	}
	ct.centroid = r2.Vec{X: cx / (6 * signed), Y: cy / (6 * signed)}
}
