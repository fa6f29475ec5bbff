// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
)

// Coefficient is one stored entry of a matrix row.
type Coefficient struct {
	Col   int
	Value float64
}

// Matrix is a row-compressed sparse matrix. Each row keeps its non-zero
// coefficients in insertion order; lookups scan the row.
type Matrix struct {
	width int
	rows  [][]Coefficient
}

// NewMatrix returns an empty rows×cols matrix.
//
// Errors:
//   - ErrBadShape if rows <= 0 or cols <= 0.
//
// Complexity: O(rows).
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewMatrix(%d, %d): %w", rows, cols, ErrBadShape)
	}
	return &Matrix{width: cols, rows: make([][]Coefficient, rows)}, nil
}

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *Matrix) Height() int { return len(m.rows) }

// NonZeros returns the number of stored coefficients.
func (m *Matrix) NonZeros() int {
	n := 0
	for _, r := range m.rows {
		n += len(r)
	}
	return n
}

func (m *Matrix) inRange(row, col int) bool {
	return row >= 0 && row < len(m.rows) && col >= 0 && col < m.width
}

// At returns the coefficient at (row, col); missing entries read as zero.
func (m *Matrix) At(row, col int) (float64, error) {
	if !m.inRange(row, col) {
		return 0, fmt.Errorf("At(%d, %d): %w", row, col, ErrOutOfRange)
	}
	return m.at(row, col), nil
}

// Set stores v at (row, col). Setting zero on a missing entry stores nothing;
// setting zero on an existing entry keeps the slot with a zero value.
func (m *Matrix) Set(row, col int, v float64) error {
	if !m.inRange(row, col) {
		return fmt.Errorf("Set(%d, %d): %w", row, col, ErrOutOfRange)
	}
	m.set(row, col, v)
	return nil
}

// Add accumulates v into (row, col).
func (m *Matrix) Add(row, col int, v float64) error {
	if !m.inRange(row, col) {
		return fmt.Errorf("Add(%d, %d): %w", row, col, ErrOutOfRange)
	}
	m.add(row, col, v)
	return nil
}

// Row returns the stored coefficients of row r, or nil when r is out of
// range. The slice aliases matrix storage and must not be modified.
func (m *Matrix) Row(r int) []Coefficient {
	if r < 0 || r >= len(m.rows) {
		return nil
	}
	return m.rows[r]
}

func (m *Matrix) at(row, col int) float64 {
	for _, c := range m.rows[row] {
		if c.Col == col {
			return c.Value
		}
	}
	return 0
}

func (m *Matrix) set(row, col int, v float64) {
	r := m.rows[row]
	for i := range r {
		if r[i].Col == col {
			r[i].Value = v
			return
		}
	}
	if v != 0 {
		m.rows[row] = append(r, Coefficient{Col: col, Value: v})
	}
}

func (m *Matrix) add(row, col int, v float64) {
	r := m.rows[row]
	for i := range r {
		if r[i].Col == col {
			r[i].Value += v
			return
		}
	}
	if v != 0 {
		m.rows[row] = append(r, Coefficient{Col: col, Value: v})
	}
}

// Transpose returns a new cols×rows matrix Aᵀ.
//
// Complexity: O(nnz).
func (m *Matrix) Transpose() *Matrix {
	t := &Matrix{width: len(m.rows), rows: make([][]Coefficient, m.width)}
	for y, row := range m.rows {
		for _, c := range row {
			t.rows[c.Col] = append(t.rows[c.Col], Coefficient{Col: y, Value: c.Value})
		}
	}
	return t
}

// MulVec computes dst = A·x, or dst = Aᵀ·x when transposed is true.
// dst is overwritten.
//
// Errors:
//   - ErrDimensionMismatch when len(x) or len(dst) do not fit the
//     requested orientation.
//
// Complexity: O(nnz).
func (m *Matrix) MulVec(dst, x []float64, transposed bool) error {
	if transposed {
		if len(x) != len(m.rows) || len(dst) != m.width {
			return fmt.Errorf("MulVec(transposed): dst %d, x %d for %dx%d: %w",
				len(dst), len(x), len(m.rows), m.width, ErrDimensionMismatch)
		}
		m.mulTrans(dst, x)
		return nil
	}
	if len(x) != m.width || len(dst) != len(m.rows) {
		return fmt.Errorf("MulVec: dst %d, x %d for %dx%d: %w",
			len(dst), len(x), len(m.rows), m.width, ErrDimensionMismatch)
	}
	m.mul(dst, x)
	return nil
}

func (m *Matrix) mul(dst, x []float64) {
	for y, row := range m.rows {
		var sum float64
		for _, c := range row {
			sum += c.Value * x[c.Col]
		}
		dst[y] = sum
	}
}

func (m *Matrix) mulTrans(dst, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for y, row := range m.rows {
		xi := x[y]
		if xi == 0 {
			continue
		}
		for _, c := range row {
			dst[c.Col] += xi * c.Value
		}
	}
}

// MulTranspose returns the width×width normal matrix AᵀA.
//
// Implementation:
//   - Stage 1: for every row, every ordered pair (i, j) of its
//     coefficients contributes a_i·a_j to (AᵀA)[i][j].
//   - Stage 2: nothing else; rows of the result are never re-sorted.
//
// Complexity: O(Σ k_r²) over rows r with k_r coefficients.
func (m *Matrix) MulTranspose() *Matrix {
	out := &Matrix{width: m.width, rows: make([][]Coefficient, m.width)}
	for _, row := range m.rows {
		for _, ci := range row {
			for _, cj := range row {
				out.add(ci.Col, cj.Col, ci.Value*cj.Value)
			}
		}
	}
	return out
}

// IsSymmetric reports whether the matrix is square and |a_ij − a_ji| <= eps
// for every stored coefficient.
func (m *Matrix) IsSymmetric(eps float64) bool {
	if m.width != len(m.rows) {
		return false
	}
	for y, row := range m.rows {
		for _, c := range row {
			if math.Abs(c.Value-m.at(c.Col, y)) > eps {
				return false
			}
		}
	}
	return true
}
