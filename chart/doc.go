// SPDX-License-Identifier: MIT

// Package chart extracts one chart of faces from a half-edge mesh and
// prepares it for parameterization.
//
// What:
//
//   - Build copies the chosen faces into two meshes. The chart mesh keeps
//     every attribute-distinct vertex and remembers its original vertex.
//     The unified mesh merges colocal vertices, repairs T-junctions on its
//     boundary, closes every hole but the longest boundary and is
//     triangulated, so that a topological disk can be flattened.
//   - BuildVertexMap holds faces that are excluded from charting. Its
//     vertices are disconnected and keep UV (0,0).
//   - TransferParameterization copies unified UVs back to chart vertices.
//
// Complexity:
//
//   - Build: O(F·k) for the copy plus O(Vb·E) per boundary split pass and
//     O(H·L²) for H holes of length L.
//
// Errors:
//
//   - ErrNoFaces, ErrFaceOutOfRange.
package chart
