// SPDX-License-Identifier: MIT

// Package pack places parameterized charts into one rectangular atlas.
//
// What:
//
//   - Every chart is rotated into the frame of the minimum-area box around
//     the convex hull of its boundary, scaled from world units to texels
//     and snapped to whole texels (optionally 4-texel blocks).
//   - Each chart is rasterized into its own occupancy bitmap with a margin
//     so that bilinear filtering does not bleed between neighbours.
//   - Charts are placed largest perimeter first into a growing canvas,
//     trying two orientations at aligned positions, keeping the placement
//     that grows the canvas least.
//
// Methods:
//
//   - TexelArea: texels per world unit is Options.TexelArea.
//   - ApproximateResolution: texels per unit is estimated so that the
//     charts fill about 75% of a Resolution² atlas.
//   - ExactResolution: the estimate is refined over up to
//     MaxExactIterations passes until the atlas fits Resolution².
//
// Options:
//
//   - Options.Quality selects brute force (0) or the number of random
//     placement trials (1..4).
//   - WithRand supplies the random source for placement trials; WithLogger
//     receives per-pass diagnostics.
//
// Complexity:
//
//   - Rasterization: O(texels) per chart.
//   - Placement: O(positions · chart texels) per chart for brute force,
//     O(trials · chart texels) for random trials.
//
// Errors:
//
//   - ErrInvalidOptions, ErrNilChart.
package pack
