// SPDX-License-Identifier: MIT

// Package builder provides deterministic procedural triangle meshes for
// tests, examples and benchmarks of the atlas pipeline.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildMesh(opts, cons...): resolves options once and applies every
//     Constructor in order, each appending a disjoint part to one Mesh.
//   - Constructors:
//     – PlatonicSolid(name): shared-vertex closed shells (Tetrahedron,
//     Cube, Octahedron, Icosahedron).
//     – SeamCube(): a 24-vertex cube with per-face normals and UVs, so
//     every cube edge is a normal and texture seam.
//     – Grid(rows, cols): a planar quad grid in XY, two triangles per cell.
//     – Wheel(n): a triangle fan around a central hub (disk topology).
//     – Tube(segments, rings): an open cylinder with a duplicated UV seam.
//     – Degenerate(): one triangle with a repeated index.
//   - Options:
//     – WithSeed / WithRand: RNG for WithJitter.
//     – WithScale / WithOffset: affine placement of subsequent parts.
//     – WithJitter(sigma): Gaussian position noise.
//
// Guarantees:
//
//   - Determinism: the same options, seed and constructor order produce
//     identical buffers.
//   - Option constructors panic on meaningless values; constructors return
//     sentinel errors and never panic.
//
// Complexity is linear in the size of the generated mesh for every
// constructor.
package builder
