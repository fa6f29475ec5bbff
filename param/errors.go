// SPDX-License-Identifier: MIT

package param

import "errors"

var (
	// ErrNoBoundary is returned by LeastSquaresConformalMap for a closed mesh.
	ErrNoBoundary = errors.New("param: mesh has no boundary")

	// ErrPinnedCoincide is returned when the two pinned vertices share a UV,
	// which leaves the conformal system without scale.
	ErrPinnedCoincide = errors.New("param: pinned vertices coincide in UV space")

	// ErrUnderdetermined is returned when there are fewer equations than free
	// unknowns.
	ErrUnderdetermined = errors.New("param: conformal system is underdetermined")

	// ErrDegenerate is returned when the vertex covariance is zero, so no
	// projection plane exists.
	ErrDegenerate = errors.New("param: degenerate vertex distribution")

	// ErrNotDisk reports a chart parameterized with the Unsupported fallback.
	ErrNotDisk = errors.New("param: chart is not a topological disk")

	// ErrNotTriangle is returned when SingleFaceMap gets a mesh that is not a
	// single linked face.
	ErrNotTriangle = errors.New("param: expected exactly one face")
)
