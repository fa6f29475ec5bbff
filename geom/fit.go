// SPDX-License-Identifier: MIT

package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrEigenFailed is returned when the covariance eigen decomposition does
// not converge or the point set is empty.
var ErrEigenFailed = errors.New("geom: eigen decomposition failed")

// Centroid returns the arithmetic mean of pts; the zero vector for an empty set.
func Centroid(pts []r3.Vec) r3.Vec {
	var c r3.Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(pts)), c)
}

// Covariance returns the 3×3 covariance of pts about their centroid.
//
// Complexity: O(n).
func Covariance(pts []r3.Vec) (*mat.SymDense, r3.Vec) {
	c := Centroid(pts)
	var xx, xy, xz, yy, yz, zz float64
	for _, p := range pts {
		d := r3.Sub(p, c)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}
	return mat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	}), c
}

// Axes is the result of a principal component analysis of a point set.
type Axes struct {
	Centroid r3.Vec
	// Values are the eigenvalues in descending order.
	Values [3]float64
	// Vectors[i] is the unit eigenvector for Values[i].
	Vectors [3]r3.Vec
}

// Normal is the direction of least variance.
func (a Axes) Normal() r3.Vec { return a.Vectors[2] }

// PrincipalAxes decomposes the covariance of pts with a symmetric eigen
// solve and returns the axes sorted by decreasing variance.
//
// Stage 1: accumulate covariance about the centroid.
// Stage 2: mat.EigenSym (ascending values, column eigenvectors).
// Stage 3: reverse into descending order.
//
// Complexity: O(n) + O(1) for the 3×3 solve.
func PrincipalAxes(pts []r3.Vec) (Axes, error) {
	var a Axes
	if len(pts) == 0 {
		return a, ErrEigenFailed
	}
	cov, c := Covariance(pts)
	a.Centroid = c

	var es mat.EigenSym
	if !es.Factorize(cov, true) {
		return a, ErrEigenFailed
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	for i := 0; i < 3; i++ {
		j := 2 - i
		a.Values[i] = vals[j]
		a.Vectors[i] = r3.Vec{X: vecs.At(0, j), Y: vecs.At(1, j), Z: vecs.At(2, j)}
	}
	return a, nil
}

// IsPlanar reports whether pts lie on a plane: the smallest covariance
// eigenvalue is below eps. Fewer than four points are always planar.
func IsPlanar(pts []r3.Vec, eps float64) bool {
	if len(pts) < 4 {
		return true
	}
	a, err := PrincipalAxes(pts)
	if err != nil {
		return false
	}
	return math.Abs(a.Values[2]) < eps
}
