// SPDX-License-Identifier: MIT

// Package geom collects the small geometric kernels shared by the atlas
// pipeline: tolerance comparisons, orthonormal frames, signed 2D areas and
// least-squares plane fitting.
//
// What:
//
//   - Equal / IsZero: relative and absolute tolerance tests (Epsilon = 1e-4).
//   - Basis: an orthonormal tangent frame built around a direction.
//   - TriangleArea2: twice the signed area of a 2D triangle, computed from
//     edge vectors for stability far from the origin.
//   - Centroid / Covariance / PrincipalAxes / IsPlanar: point cloud fitting
//     backed by gonum's symmetric eigen decomposition.
//
// Complexity:
//
//   - Every helper is O(1) except the fitting routines, which are O(n) in
//     the number of points plus a constant 3×3 eigen solve.
//
// Vectors are gonum's r3.Vec and r2.Vec throughout the module.
package geom
