// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Epsilon is the default tolerance for geometric comparisons.
	Epsilon = 1e-4

	// NormalEpsilon is the tolerance used when checking unit length.
	NormalEpsilon = 1e-3
)

// Equal reports whether a and b agree within eps, scaled by their magnitude
// once it exceeds one.
func Equal(a, b, eps float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= eps*scale
}

// IsZero reports |f| <= eps.
func IsZero(f, eps float64) bool {
	return math.Abs(f) <= eps
}

// NormalizeSafe returns v scaled to unit length, or fallback when |v| <= eps.
func NormalizeSafe(v, fallback r3.Vec, eps float64) r3.Vec {
	l := r3.Norm(v)
	if IsZero(l, eps) {
		return fallback
	}
	return r3.Scale(1/l, v)
}

// Normalize2 returns v scaled to unit length; the zero vector is returned
// unchanged.
func Normalize2(v r2.Vec) r2.Vec {
	l := r2.Norm(v)
	if l == 0 {
		return v
	}
	return r2.Scale(1/l, v)
}

// Lerp3 interpolates between a and b.
func Lerp3(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(r3.Scale(1-t, a), r3.Scale(t, b))
}

// Lerp2 interpolates between a and b.
func Lerp2(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(r2.Scale(1-t, a), r2.Scale(t, b))
}

// Min2 and Max2 return component-wise extrema.
func Min2(a, b r2.Vec) r2.Vec { return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)} }

// Max2 returns the component-wise maximum of a and b.
func Max2(a, b r2.Vec) r2.Vec { return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)} }

// TriangleArea2 returns twice the signed area of triangle abc; positive for
// counter-clockwise winding. Edge vectors are formed relative to c before
// the cross product so small triangles far from the origin stay accurate.
func TriangleArea2(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(a, c), r2.Sub(b, c))
}

// Basis is an orthonormal frame.
type Basis struct {
	Tangent   r3.Vec
	Bitangent r3.Vec
	Normal    r3.Vec
}

// FrameForDirection builds a Basis whose normal is the unit vector d. The
// tangent is seeded from the axis least aligned with d, then the frame is
// rotated around the normal by angle radians.
//
// Complexity: O(1).
func FrameForDirection(d r3.Vec, angle float64) Basis {
	var b Basis
	b.Normal = d
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)
	switch {
	case ax < ay && ax < az:
		b.Tangent = r3.Vec{X: 1}
	case ay < az:
		b.Tangent = r3.Vec{Y: 1}
	default:
		b.Tangent = r3.Vec{Z: 1}
	}
	// Gram-Schmidt against the normal.
	b.Tangent = r3.Sub(b.Tangent, r3.Scale(r3.Dot(d, b.Tangent), d))
	b.Tangent = r3.Unit(b.Tangent)
	b.Bitangent = r3.Cross(d, b.Tangent)

	if angle != 0 {
		c, s := math.Cos(angle), math.Sin(angle)
		t := r3.Sub(r3.Scale(c, b.Tangent), r3.Scale(s, b.Bitangent))
		b.Bitangent = r3.Add(r3.Scale(s, b.Tangent), r3.Scale(c, b.Bitangent))
		b.Tangent = t
	}
	return b
}

// Project returns the 2D coordinates of p in the tangent plane of b.
func (b Basis) Project(p r3.Vec) r2.Vec {
	return r2.Vec{X: r3.Dot(b.Tangent, p), Y: r3.Dot(b.Bitangent, p)}
}

// NextPowerOfTwo returns the smallest power of two >= x; 0 maps to 1.
func NextPowerOfTwo(x int) int {
	p := 1
	for p < x {
		p <<= 1
	}
	return p
}

// Align rounds x up to a multiple of a.
func Align(x, a int) int {
	return (x + a - 1) / a * a
}
