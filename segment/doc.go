// SPDX-License-Identifier: MIT

// Package segment partitions the faces of a half-edge mesh into charts by
// greedy region growing.
//
// What:
//
//   - Builder tracks, for every face, whether it is unassigned, excluded
//     from charting or assigned to a chart, plus per-chart proxies (plane
//     normal and centroid), area, boundary length and candidate queues.
//   - The cost of adding a face to a chart is a weighted sum of proxy fit,
//     roundness, straightness, normal seam and texture seam terms, with
//     hard caps on chart area and boundary length.
//   - Run drives the loop: place seeds, merge, relocate seeds, then grow all
//     charts in parallel, fill holes, merge and relocate until the seeds
//     settle or the iteration cap is reached.
//
// Why:
//
//   - Every random choice draws from the caller's *rand.Rand, so a fixed
//     seed reproduces the same partition.
//
// Options:
//
//   - Options carries the weights and limits; DefaultOptions returns the
//     Default* constants and Validate rejects NaN or negative values.
//
// Complexity:
//
//   - Each face addition re-evaluates the chart's candidates: O(C·k) for C
//     candidates. MergeCharts is O(F·k + K²) for K charts.
//
// Errors:
//
//   - ErrInvalidOptions, ErrFaceOutOfRange, ErrChartOutOfRange.
package segment
