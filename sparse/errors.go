// SPDX-License-Identifier: MIT

package sparse

import "errors"

// Every message is prefixed with "sparse: ". Callers match with errors.Is.
var (
	// ErrBadShape is returned when a requested shape has a non-positive side.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrNilMatrix indicates a nil *Matrix argument.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("sparse: matrix is not square")

	// ErrDimensionMismatch indicates vectors whose length does not match the
	// matrix they are multiplied with.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrUnderdetermined is returned by LeastSquares when there are fewer
	// equations than free unknowns.
	ErrUnderdetermined = errors.New("sparse: system is underdetermined")

	// ErrNotConverged is returned when the iteration cap is reached before
	// the residual tolerance. The partial solution is still written to x.
	ErrNotConverged = errors.New("sparse: solver did not converge")
)
