// SPDX-License-Identifier: MIT

package uvatlas

import "math/rand"

// defaultRNGSeed replaces a zero seed.
const defaultRNGSeed int64 = 1

// Stream identifiers. Segmentation of mesh i uses segmentStream+i.
const (
	packStream    uint64 = 1
	segmentStream uint64 = 1 << 32
)

// deriveSeed mixes a parent seed and a stream identifier with the
// SplitMix64 finalizer.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// streamRNG returns the generator of one stream under parent. The same
// parent and stream always give the same sequence.
func streamRNG(parent int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}
