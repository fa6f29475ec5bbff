// SPDX-License-Identifier: MIT

package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mode selects the scan conversion rule.
type Mode int

const (
	// ModeNearest visits pixels whose centre is inside the triangle, using
	// the top-left fill convention.
	ModeNearest Mode = iota
	// ModeAntialiased also visits pixels the triangle only partially covers
	// and reports the covered fraction.
	ModeAntialiased
)

// SampleFunc receives one covered pixel, the barycentric coordinates of the
// sample, their per-pixel derivatives and the covered fraction in (0, 1].
// Returning false stops the traversal.
type SampleFunc func(x, y int, bar, dx, dy r3.Vec, coverage float64) bool

const blockSize = 8

// DrawTriangle scan-converts v and calls fn for every covered pixel. It
// returns false if fn stopped the traversal. Degenerate triangles produce
// no samples.
//
// Implementation:
//   - Stage 1: orient the triangle front-facing and derive barycentric
//     gradients; a singular basis means a degenerate triangle.
//   - Stage 2: walk 8×8 blocks of the (scissored) bounding box, skipping
//     blocks outside an edge and accepting fully covered blocks whole.
//   - Stage 3: test partially covered blocks pixel by pixel.
func DrawTriangle(mode Mode, extents r2.Vec, scissor bool, v [3]r2.Vec, fn SampleFunc) bool {
	t, ok := newTriangle(v[0], v[1], v[2])
	if !ok {
		return true
	}
	d := &drawer{t: t, fn: fn, scissor: scissor, w: int(extents.X), h: int(extents.Y)}
	if mode == ModeAntialiased {
		return d.drawAA(extents)
	}
	return d.drawNearest(extents)
}

type triangle struct {
	v1, v2, v3 r2.Vec
	n1, n2, n3 r2.Vec // unit inward edge normals
	t1, t2, t3 r3.Vec
	dx, dy     r3.Vec
}

func newTriangle(a, b, c r2.Vec) (triangle, bool) {
	t := triangle{
		v1: a, v2: c, v3: b,
		t1: r3.Vec{X: 1}, t2: r3.Vec{Z: 1}, t3: r3.Vec{Y: 1},
	}
	// make every triangle front facing
	if (t.v3.X-t.v1.X)*(t.v2.Y-t.v1.Y)-(t.v3.Y-t.v1.Y)*(t.v2.X-t.v1.X) < 0 {
		t.v1, t.v2 = t.v2, t.v1
		t.t1, t.t2 = t.t2, t.t1
	}

	e0 := r2.Sub(t.v3, t.v1)
	e1 := r2.Sub(t.v2, t.v1)
	de0 := r3.Sub(t.t3, t.t1)
	de1 := r3.Sub(t.t2, t.t1)
	denom := 1 / (e0.Y*e1.X - e1.Y*e0.X)
	if math.IsInf(denom, 0) || math.IsNaN(denom) {
		return t, false
	}
	l1, l2 := -e1.Y*denom, e0.Y*denom
	l3, l4 := e1.X*denom, -e0.X*denom
	t.dx = r3.Add(r3.Scale(l1, de0), r3.Scale(l2, de1))
	t.dy = r3.Add(r3.Scale(l3, de0), r3.Scale(l4, de1))

	t.n1 = inwardNormal(t.v1, t.v2)
	t.n2 = inwardNormal(t.v2, t.v3)
	t.n3 = inwardNormal(t.v3, t.v1)
	return t, true
}

func inwardNormal(a, b r2.Vec) r2.Vec {
	d := r2.Sub(a, b)
	n := r2.Vec{X: -d.Y, Y: d.X}
	return r2.Scale(1/r2.Norm(n), n)
}

// bar returns the barycentric coordinates at (x, y).
func (t *triangle) bar(x, y float64) r3.Vec {
	return r3.Add(t.t1, r3.Add(r3.Scale(x-t.v1.X, t.dx), r3.Scale(y-t.v1.Y, t.dy)))
}

type drawer struct {
	t       triangle
	fn      SampleFunc
	scissor bool
	w, h    int
}

func (d *drawer) emit(x, y int, bar r3.Vec, coverage float64) bool {
	if d.scissor && (x < 0 || y < 0 || x >= d.w || y >= d.h) {
		return true
	}
	return d.fn(x, y, bar, d.t.dx, d.t.dy, coverage)
}

func min3i(a, b, c int) int { return min(a, min(b, c)) }
func max3i(a, b, c int) int { return max(a, max(b, c)) }

func (d *drawer) drawNearest(extents r2.Vec) bool {
	t := &d.t
	// 28.4 fixed point
	y1 := int(math.Round(16 * t.v1.Y))
	y2 := int(math.Round(16 * t.v2.Y))
	y3 := int(math.Round(16 * t.v3.Y))
	x1 := int(math.Round(16 * t.v1.X))
	x2 := int(math.Round(16 * t.v2.X))
	x3 := int(math.Round(16 * t.v3.X))

	dx12, dx23, dx31 := x1-x2, x2-x3, x3-x1
	dy12, dy23, dy31 := y1-y2, y2-y3, y3-y1
	fdx12, fdx23, fdx31 := dx12<<4, dx23<<4, dx31<<4
	fdy12, fdy23, fdy31 := dy12<<4, dy23<<4, dy31<<4

	lox, loy := min3i(x1, x2, x3), min3i(y1, y2, y3)
	hix, hiy := max3i(x1, x2, x3), max3i(y1, y2, y3)
	if d.scissor {
		lox, loy = max(lox, 0), max(loy, 0)
		hix, hiy = min(hix, int(extents.X)<<4), min(hiy, int(extents.Y)<<4)
	}
	minx, miny := (lox+0xF)>>4, (loy+0xF)>>4
	maxx, maxy := (hix+0xF)>>4, (hiy+0xF)>>4
	minx &^= blockSize - 1
	miny &^= blockSize - 1

	c1 := dy12*x1 - dx12*y1
	c2 := dy23*x2 - dx23*y2
	c3 := dy31*x3 - dx31*y3
	// top-left fill convention
	if dy12 < 0 || (dy12 == 0 && dx12 > 0) {
		c1++
	}
	if dy23 < 0 || (dy23 == 0 && dx23 > 0) {
		c2++
	}
	if dy31 < 0 || (dy31 == 0 && dx31 > 0) {
		c3++
	}

	corners := func(c, dx, dy, bx0, bx1, by0, by1 int) int {
		m := 0
		if c+dx*by0-dy*bx0 > 0 {
			m |= 1
		}
		if c+dx*by0-dy*bx1 > 0 {
			m |= 2
		}
		if c+dx*by1-dy*bx0 > 0 {
			m |= 4
		}
		if c+dx*by1-dy*bx1 > 0 {
			m |= 8
		}
		return m
	}

	for y := miny; y < maxy; y += blockSize {
		for x := minx; x < maxx; x += blockSize {
			bx0, bx1 := x<<4, (x+blockSize-1)<<4
			by0, by1 := y<<4, (y+blockSize-1)<<4
			a := corners(c1, dx12, dy12, bx0, bx1, by0, by1)
			b := corners(c2, dx23, dy23, bx0, bx1, by0, by1)
			c := corners(c3, dx31, dy31, bx0, bx1, by0, by1)
			if a == 0 || b == 0 || c == 0 {
				continue
			}
			full := a == 0xF && b == 0xF && c == 0xF
			cy1 := c1 + dx12*by0 - dy12*bx0
			cy2 := c2 + dx23*by0 - dy23*bx0
			cy3 := c3 + dx31*by0 - dy31*bx0
			for iy := y; iy < y+blockSize; iy++ {
				cx1, cx2, cx3 := cy1, cy2, cy3
				for ix := x; ix < x+blockSize; ix++ {
					if full || (cx1 > 0 && cx2 > 0 && cx3 > 0) {
						if !d.emit(ix, iy, t.bar(float64(ix), float64(iy)), 1) {
							return false
						}
					}
					cx1 -= fdy12
					cx2 -= fdy23
					cx3 -= fdy31
				}
				cy1 += fdx12
				cy2 += fdx23
				cy3 += fdx31
			}
		}
	}
	return true
}

func (d *drawer) drawAA(extents r2.Vec) bool {
	t := &d.t
	pxInside := 1 / math.Sqrt2
	pxOutside := -pxInside
	bkInside := math.Sqrt(blockSize * blockSize / 2.0)
	bkOutside := -bkInside

	lox := math.Min(t.v1.X, math.Min(t.v2.X, t.v3.X))
	loy := math.Min(t.v1.Y, math.Min(t.v2.Y, t.v3.Y))
	hix := math.Max(t.v1.X, math.Max(t.v2.X, t.v3.X))
	hiy := math.Max(t.v1.Y, math.Max(t.v2.Y, t.v3.Y))
	if d.scissor {
		lox, loy = math.Max(lox, 0), math.Max(loy, 0)
		hix, hiy = math.Min(hix, extents.X-1), math.Min(hiy, extents.Y-1)
	}
	// sample at texel centres
	minx, miny := math.Floor(lox)+0.5, math.Floor(loy)+0.5
	maxx, maxy := math.Ceil(hix)+0.5, math.Ceil(hiy)+0.5

	c1 := -(t.n1.X*t.v1.X + t.n1.Y*t.v1.Y)
	c2 := -(t.n2.X*t.v2.X + t.n2.Y*t.v2.Y)
	c3 := -(t.n3.X*t.v3.X + t.n3.Y*t.v3.Y)

	for y0 := miny; y0 <= maxy; y0 += blockSize {
		for x0 := minx; x0 <= maxx; x0 += blockSize {
			xc := x0 + (blockSize-1)/2.0
			yc := y0 + (blockSize-1)/2.0
			ac := c1 + t.n1.X*xc + t.n1.Y*yc
			bc := c2 + t.n2.X*xc + t.n2.Y*yc
			cc := c3 + t.n3.X*xc + t.n3.Y*yc
			if ac <= bkOutside || bc <= bkOutside || cc <= bkOutside {
				continue
			}
			full := ac >= bkInside && bc >= bkInside && cc >= bkInside
			cy1 := c1 + t.n1.X*x0 + t.n1.Y*y0
			cy2 := c2 + t.n2.X*x0 + t.n2.Y*y0
			cy3 := c3 + t.n3.X*x0 + t.n3.Y*y0
			for y := y0; y < y0+blockSize; y++ {
				cx1, cx2, cx3 := cy1, cy2, cy3
				for x := x0; x < x0+blockSize; x++ {
					ix, iy := int(math.Floor(x)), int(math.Floor(y))
					switch {
					case full || (cx1 >= pxInside && cx2 >= pxInside && cx3 >= pxInside):
						if !d.emit(ix, iy, t.bar(x, y), 1) {
							return false
						}
					case cx1 >= pxOutside && cx2 >= pxOutside && cx3 >= pxOutside:
						p := r2.Vec{X: x, Y: y}
						ct := NewClippedTriangle(r2.Sub(t.v1, p), r2.Sub(t.v2, p), r2.Sub(t.v3, p))
						ct.ClipAABox(-0.5, -0.5, 0.5, 0.5)
						if area := ct.Area(); area > 0 {
							cen := ct.Centroid()
							if !d.emit(ix, iy, t.bar(x+cen.X, y+cen.Y), area) {
								return false
							}
						}
					}
					cx1 += t.n1.X
					cx2 += t.n2.X
					cx3 += t.n3.X
				}
				cy1 += t.n1.Y
				cy2 += t.n2.Y
				cy3 += t.n3.Y
			}
		}
	}
	return true
}
