// SPDX-License-Identifier: MIT

package param

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvatlas/geom"
	"github.com/katalvlaran/uvatlas/halfedge"
)

// Quality summarizes the distortion of a parameterization.
//
// A triangle is flipped when its UV orientation disagrees with the
// reference orientation. When every measured triangle is flipped or has
// zero UV area, the whole map is a mirror image and none is counted as
// flipped.
type Quality struct {
	TotalTriangles    int
	FlippedTriangles  int
	ZeroAreaTriangles int
	ParametricArea    float64
	GeometricArea     float64

	stretch    float64 // Σ rms² · area
	maxStretch float64 // max σ₂
	conformal  float64 // Σ σ₂/σ₁ · area
	authalic   float64 // Σ σ₁σ₂ · area
}

// MeasureQuality evaluates every linked face of m as a fan of triangles.
//
// Complexity: O(T).
func MeasureQuality(m *halfedge.Mesh) Quality {
	var q Quality
	for f := 0; f < m.FaceCount(); f++ {
		fid := halfedge.FaceID(f)
		if m.IsDetached(fid) {
			continue
		}
		vs := m.FaceVertices(fid)
		v0 := m.Vertex(vs[0])
		for i := 1; i+1 < len(vs); i++ {
			v1, v2 := m.Vertex(vs[i]), m.Vertex(vs[i+1])
			q.addTriangle(
				[3]r3.Vec{v0.Pos, v1.Pos, v2.Pos},
				[3]r2.Vec{v0.Tex, v1.Tex, v2.Tex},
			)
		}
	}
	if q.FlippedTriangles+q.ZeroAreaTriangles == q.TotalTriangles {
		q.FlippedTriangles = 0
	}
	return q
}

func (q *Quality) addTriangle(pos [3]r3.Vec, uv [3]r2.Vec) {
	q.TotalTriangles++
	t1, s1 := uv[0].X, uv[0].Y
	t2, s2 := uv[1].X, uv[1].Y
	t3, s3 := uv[2].X, uv[2].Y

	geo := r3.Norm(r3.Cross(r3.Sub(pos[1], pos[0]), r3.Sub(pos[2], pos[0]))) / 2
	par := ((s2-s1)*(t3-t1) - (s3-s1)*(t2-t1)) / 2
	if geom.IsZero(par, geom.Epsilon) {
		q.ZeroAreaTriangles++
		return
	}

	// partial derivatives of the 3D position along s and t
	ss := r3.Scale(1/(2*par), r3.Add(r3.Add(
		r3.Scale(t2-t3, pos[0]),
		r3.Scale(t3-t1, pos[1])),
		r3.Scale(t1-t2, pos[2])))
	st := r3.Scale(1/(2*par), r3.Add(r3.Add(
		r3.Scale(s3-s2, pos[0]),
		r3.Scale(s1-s3, pos[1])),
		r3.Scale(s2-s1, pos[2])))
	a := r3.Dot(ss, ss)
	b := r3.Dot(ss, st)
	c := r3.Dot(st, st)

	root := math.Sqrt((a-c)*(a-c) + 4*b*b)
	sigma1 := math.Sqrt(0.5 * math.Max(0, a+c-root))
	sigma2 := math.Sqrt(0.5 * math.Max(0, a+c+root))
	rms := math.Sqrt((a + c) * 0.5)

	if par < 0 {
		q.FlippedTriangles++
		par = -par
	}
	q.stretch += rms * rms * geo
	q.maxStretch = math.Max(q.maxStretch, sigma2)
	if !geom.IsZero(sigma1, 1e-6) {
		q.conformal += sigma2 / sigma1 * geo
	}
	q.authalic += sigma1 * sigma2 * geo
	q.GeometricArea += geo
	q.ParametricArea += par
}

// IsValid reports whether no triangle is flipped.
func (q Quality) IsValid() bool { return q.FlippedTriangles == 0 }

// RMSStretch is the area-weighted L2 stretch normalized by the ratio of
// parametric to geometric area; 1 for an isometry.
func (q Quality) RMSStretch() float64 {
	if q.GeometricArea == 0 {
		return 0
	}
	return math.Sqrt(q.stretch/q.GeometricArea) * math.Sqrt(q.ParametricArea/q.GeometricArea)
}

// MaxStretch is the largest singular value, normalized like RMSStretch.
func (q Quality) MaxStretch() float64 {
	if q.GeometricArea == 0 {
		return 0
	}
	return q.maxStretch * math.Sqrt(q.ParametricArea/q.GeometricArea)
}

// RMSConformal is the area-weighted mean of σ₂/σ₁ (square-rooted); 1 for a
// conformal map.
func (q Quality) RMSConformal() float64 {
	if q.GeometricArea == 0 {
		return 0
	}
	return math.Sqrt(q.conformal / q.GeometricArea)
}

// MaxAuthalic is the area-weighted mean of σ₁σ₂ (square-rooted); 1 for an
// area-preserving map.
func (q Quality) MaxAuthalic() float64 {
	if q.GeometricArea == 0 {
		return 0
	}
	return math.Sqrt(q.authalic / q.GeometricArea)
}

// Add accumulates o into q. Maximums combine with max, everything else sums.
func (q *Quality) Add(o Quality) {
	q.TotalTriangles += o.TotalTriangles
	q.FlippedTriangles += o.FlippedTriangles
	q.ZeroAreaTriangles += o.ZeroAreaTriangles
	q.ParametricArea += o.ParametricArea
	q.GeometricArea += o.GeometricArea
	q.stretch += o.stretch
	q.maxStretch = math.Max(q.maxStretch, o.maxStretch)
	q.conformal += o.conformal
	q.authalic += o.authalic
}
