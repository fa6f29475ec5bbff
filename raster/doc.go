// SPDX-License-Identifier: MIT

// Package raster scan-converts 2D triangles into occupancy bitmaps.
//
// What:
//
//   - Bitmap is a width×height bit grid backed by
//     github.com/bits-and-blooms/bitset, with resize, population count and
//     8-neighbourhood dilation.
//   - DrawTriangle visits the pixels covered by a triangle in 8×8 blocks.
//     ModeNearest uses 28.4 fixed-point half-space tests and reports full
//     coverage; ModeAntialiased samples texel centres and clips partially
//     covered pixels against the pixel box to report fractional coverage.
//   - ClippedTriangle is the Sutherland–Hodgman clip used for coverage.
//
// Conventions:
//
//   - Pixel (x, y) covers [x, x+1) × [y, y+1); its sample point is the
//     centre (x+0.5, y+0.5).
//   - With scissoring enabled, no callback receives a pixel outside
//     [0, extents.X) × [0, extents.Y).
//
// Complexity:
//
//   - DrawTriangle: O(A) for a triangle covering A pixels, plus O(P) clips
//     for P boundary pixels in antialiased mode.
//   - Dilate: O(rounds · w · h).
package raster
