// SPDX-License-Identifier: MIT

package raster

import "github.com/bits-and-blooms/bitset"

// Bitmap is a row-major occupancy grid.
type Bitmap struct {
	w, h int
	bits *bitset.BitSet
}

// NewBitmap returns a cleared w×h bitmap. Negative sizes are treated as 0.
func NewBitmap(w, h int) *Bitmap {
	w, h = max(w, 0), max(h, 0)
	return &Bitmap{w: w, h: h, bits: bitset.New(uint(w * h))}
}

// Width returns the number of columns.
func (b *Bitmap) Width() int { return b.w }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.h }

func (b *Bitmap) index(x, y int) uint { return uint(y*b.w + x) }

// Contains reports whether (x, y) lies inside the bitmap.
func (b *Bitmap) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.w && y < b.h
}

// Bit returns the bit at (x, y); false outside the bitmap.
func (b *Bitmap) Bit(x, y int) bool {
	return b.Contains(x, y) && b.bits.Test(b.index(x, y))
}

// SetBit sets the bit at (x, y) and reports whether it was inside.
func (b *Bitmap) SetBit(x, y int) bool {
	if !b.Contains(x, y) {
		return false
	}
	b.bits.Set(b.index(x, y))
	return true
}

// ClearAll resets every bit.
func (b *Bitmap) ClearAll() { b.bits.ClearAll() }

// Resize changes the dimensions, keeping the bits of the overlapping region.
// Bits outside the old area take initValue.
//
// Complexity: O(w·h).
func (b *Bitmap) Resize(w, h int, initValue bool) {
	w, h = max(w, 0), max(h, 0)
	next := bitset.New(uint(w * h))
	if initValue && w*h > 0 {
		next.FlipRange(0, uint(w*h))
	}
	for y := 0; y < min(h, b.h); y++ {
		for x := 0; x < min(w, b.w); x++ {
			next.SetTo(uint(y*w+x), b.bits.Test(b.index(x, y)))
		}
	}
	b.w, b.h, b.bits = w, h, next
}

// Count returns the number of set bits.
func (b *Bitmap) Count() int { return int(b.bits.Count()) }

// ForEach calls fn with the coordinates of every set bit in row-major
// order. Returning false stops the walk.
func (b *Bitmap) ForEach(fn func(x, y int) bool) {
	if b.w == 0 {
		return
	}
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		if !fn(int(i)%b.w, int(i)/b.w) {
			return
		}
	}
}

// CountRect returns the number of set bits in [0, w) × [0, h).
func (b *Bitmap) CountRect(w, h int) int {
	w, h = min(w, b.w), min(h, b.h)
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.bits.Test(b.index(x, y)) {
				n++
			}
		}
	}
	return n
}

// Dilate grows the set region by one pixel in all eight directions, rounds
// times.
//
// Complexity: O(rounds · w · h).
func (b *Bitmap) Dilate(rounds int) {
	if b.w == 0 || b.h == 0 {
		return
	}
	tmp := bitset.New(uint(b.w * b.h))
	for r := 0; r < rounds; r++ {
		tmp.ClearAll()
		for y := 0; y < b.h; y++ {
			for x := 0; x < b.w; x++ {
				if b.bits.Test(b.index(x, y)) || b.anyNeighbour(x, y) {
					tmp.Set(b.index(x, y))
				}
			}
		}
		b.bits, tmp = tmp, b.bits
	}
}

func (b *Bitmap) anyNeighbour(x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && b.Bit(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}
