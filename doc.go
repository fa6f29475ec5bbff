// SPDX-License-Identifier: MIT

// Package uvatlas generates texture atlases for triangle meshes: it cuts
// every mesh into charts, flattens each chart into the plane and packs all
// charts into one rectangle of texels.
//
// What:
//
//   - AddMesh copies an indexed triangle list. Vertices at one position are
//     linked as colocals (exactly, within a weld tolerance, or not at all).
//     Degenerate triangles are flagged ignore and kept.
//   - GenerateCharts grows charts from seeds with a cost mixing plane fit,
//     roundness, straightness and seam crossings, then parameterizes every
//     disk chart with a least squares conformal map.
//   - PackCharts places the charts and builds one OutputMesh per input mesh.
//
// Options:
//
//   - WithSeed, WithRand: the parent seed of the segmentation and packing
//     streams. Equal meshes, options and seeds give equal atlases.
//   - WithLogger: structured diagnostics; discarded by default.
//   - ChartOptions, PackOptions: the segment and pack options, with
//     DefaultChartOptions and DefaultPackOptions.
//
// Outputs:
//
//   - Width, Height, Utilization, ChartCount and Quality describe the atlas.
//   - Meshes returns vertices with texel UVs and the index of their input
//     vertex, indices mirroring the input one to one, and per-chart index
//     lists with a validity flag.
//
// Subpackages:
//
//	geom/      epsilons, 2D helpers and best-fit planes
//	halfedge/  arena half-edge mesh with colocal rings
//	topology/  connectivity, boundaries, genus
//	chart/     chart and unified meshes, hole closing
//	segment/   chart growing, merging and seed relocation
//	sparse/    sparse matrices and preconditioned conjugate gradient
//	param/     single-face maps, projection, LSCM and quality
//	raster/    occupancy bitmaps and triangle scan conversion
//	pack/      oriented boxes and chart placement
//	builder/   procedural meshes for tests and benchmarks
//
// Errors:
//
//   - AddMesh returns an AddMeshError code.
//   - ErrNoMeshes, ErrNotCharted, ErrInvalidOptions.
//
// An Atlas is not safe for concurrent use.
package uvatlas
