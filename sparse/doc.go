// SPDX-License-Identifier: MIT

// Package sparse provides a row-compressed sparse matrix and the iterative
// solvers used by the conformal parameterizer.
//
// What:
//
//   - Matrix stores, for every row, a short list of (column, value)
//     coefficients. It supports coefficient access, transposition,
//     matrix-vector products in both orientations and the normal-equation
//     product AᵀA.
//   - JacobiPreconditioner scales by 1/sqrt(|diag|), with 1 on empty
//     diagonal entries (zero-area triangles leave them empty).
//   - ConjugateGradient solves symmetric positive (semi)definite systems.
//   - LeastSquares minimizes ‖Ax − b‖ with some unknowns held fixed.
//
// Why:
//
//   - LSCM systems have two rows per triangle and a handful of non-zeros per
//     row; dense storage would be quadratic in the vertex count.
//
// Complexity:
//
//   - At/Set/Add: O(k) for a row with k coefficients.
//   - MulVec: O(nnz).
//   - MulTranspose: O(Σ k_r²) over rows r.
//   - ConjugateGradient: O(iter · nnz), iter ≤ 4·D by default.
//
// Options:
//
//   - WithMaxIterations(n): cap on CG iterations (default 4·D).
//   - WithResidualRecompute(k): recompute r = b − Ax from scratch every k
//     iterations to limit drift (default 32).
//
// Errors:
//
//   - ErrBadShape, ErrOutOfRange, ErrNilMatrix, ErrNonSquare,
//     ErrDimensionMismatch, ErrUnderdetermined, ErrNotConverged.
//
// Vector kernels (dot, axpy, scale, element-wise products) come from
// gonum.org/v1/gonum/floats.
package sparse
