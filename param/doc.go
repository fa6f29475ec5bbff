// SPDX-License-Identifier: MIT

// Package param computes 2D parameterizations of chart meshes and measures
// their distortion.
//
// What:
//
//   - Strategy is the tagged choice made once per chart by Classify:
//     SingleFace (basis from the first edge), Conformal (orthogonal
//     projection refined by least squares conformal maps), Unsupported
//     (non-disk topology: projection only, reported invalid) and Skip
//     (vertex-mapped charts keep their UVs).
//   - Parameterize dispatches on the strategy and returns a Quality.
//   - Quality accumulates the stretch metric of Sander et al. and the
//     conformal and authalic ratios of the singular values of the
//     per-triangle Jacobian.
//
// Why:
//
//   - LSCM on a disk with two pinned boundary vertices is a linear least
//     squares problem, solved with the sparse package.
//
// Complexity:
//
//   - SingleFaceMap: O(k) for a k-gon.
//   - OrthogonalProjection: O(V).
//   - LeastSquaresConformalMap: O(T) to assemble plus the CG solve.
//   - MeasureQuality: O(T).
//
// Errors:
//
//   - ErrNoBoundary, ErrPinnedCoincide, ErrUnderdetermined, ErrDegenerate,
//     ErrNotDisk, ErrNotTriangle.
package param
