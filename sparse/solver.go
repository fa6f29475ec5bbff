// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Preconditioner applies an approximation of A⁻¹: dst = M⁻¹·src.
type Preconditioner interface {
	Apply(dst, src []float64)
}

// JacobiPreconditioner is the symmetric diagonal scaling 1/sqrt(|a_ii|).
type JacobiPreconditioner struct {
	inv []float64
}

// NewJacobiPreconditioner builds the preconditioner for the square matrix a.
// Empty diagonal entries map to 1.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
func NewJacobiPreconditioner(a *Matrix) (*JacobiPreconditioner, error) {
	if a == nil {
		return nil, fmt.Errorf("NewJacobiPreconditioner: %w", ErrNilMatrix)
	}
	if a.width != len(a.rows) {
		return nil, fmt.Errorf("NewJacobiPreconditioner: %dx%d: %w", len(a.rows), a.width, ErrNonSquare)
	}
	inv := make([]float64, a.width)
	for i := range inv {
		d := a.at(i, i)
		if d != 0 {
			inv[i] = 1 / math.Sqrt(math.Abs(d))
		} else {
			inv[i] = 1
		}
	}
	return &JacobiPreconditioner{inv: inv}, nil
}

// Apply computes dst = diag(inv)·src.
func (j *JacobiPreconditioner) Apply(dst, src []float64) {
	floats.MulTo(dst, j.inv, src)
}

type identity struct{}

func (identity) Apply(dst, src []float64) { copy(dst, src) }

// Result describes the outcome of an iterative solve.
type Result struct {
	Iterations int
	Residual   float64 // ‖b − Ax‖₂ at exit
	Converged  bool
}

// ConjugateGradient solves the symmetric system A·x = b in place, starting
// from the values already in x.
//
// Implementation:
//   - Stage 1: r = b − A·x, p = M⁻¹·r, δ₀ = r·p.
//   - Stage 2: standard PCG updates while δ > eps²·δ₀ and the iteration
//     cap is not reached; every k-th iteration r is recomputed from b − A·x.
//   - Stage 3: report the residual norm and convergence.
//
// A nil preconditioner means identity. A zero initial residual converges in
// zero iterations.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch.
//   - ErrNotConverged (x still holds the last iterate).
//
// Complexity: O(iter · nnz) time, O(D) extra space.
func ConjugateGradient(a *Matrix, b, x []float64, pre Preconditioner, eps float64, opts ...Option) (Result, error) {
	if a == nil {
		return Result{}, fmt.Errorf("ConjugateGradient: %w", ErrNilMatrix)
	}
	d := a.width
	if d != len(a.rows) {
		return Result{}, fmt.Errorf("ConjugateGradient: %dx%d: %w", len(a.rows), d, ErrNonSquare)
	}
	if len(b) != d || len(x) != d {
		return Result{}, fmt.Errorf("ConjugateGradient: b %d, x %d for D=%d: %w", len(b), len(x), d, ErrDimensionMismatch)
	}
	if pre == nil {
		pre = identity{}
	}
	o := gatherOptions(d, opts)

	r := make([]float64, d)
	p := make([]float64, d)
	q := make([]float64, d)
	s := make([]float64, d)

	residual := func() {
		a.mul(r, x)
		floats.SubTo(r, b, r)
	}

	residual()
	pre.Apply(p, r)
	deltaNew := floats.Dot(r, p)
	delta0 := deltaNew
	tol := eps * eps * delta0

	i := 0
	for i < o.maxIter && deltaNew > tol {
		i++
		a.mul(q, p)
		pq := floats.Dot(p, q)
		if pq == 0 {
			break
		}
		alpha := deltaNew / pq
		floats.AddScaled(x, alpha, p)
		if i%o.recompute == 0 {
			residual()
		} else {
			floats.AddScaled(r, -alpha, q)
		}
		pre.Apply(s, r)
		deltaOld := deltaNew
		deltaNew = floats.Dot(r, s)
		beta := deltaNew / deltaOld
		floats.Scale(beta, p)
		floats.Add(p, s)
	}

	res := Result{Iterations: i, Residual: floats.Norm(r, 2), Converged: deltaNew <= tol}
	if !res.Converged {
		return res, fmt.Errorf("ConjugateGradient: %d iterations, residual %g: %w", i, res.Residual, ErrNotConverged)
	}
	return res, nil
}

// LeastSquares minimizes ‖A·x − b‖₂ over the unknowns not listed in locked.
// Locked unknowns keep the values already in x; the other entries of x are
// the initial guess and receive the solution.
//
// Implementation:
//   - Stage 1: move locked columns to the right-hand side, b' = b − A_l·x_l.
//   - Stage 2: compact the free columns into A_f and solve the normal
//     equations A_fᵀA_f·x_f = A_fᵀb' with Jacobi-preconditioned CG.
//   - Stage 3: scatter x_f back into x (also when CG did not converge).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrOutOfRange (locked index).
//   - ErrUnderdetermined when Height() is smaller than the free count.
//   - ErrNotConverged from the inner solve.
//
// Complexity: O(nnz + Σ k_r² + iter·nnz(AᵀA)).
func LeastSquares(a *Matrix, b, x []float64, locked []int, eps float64, opts ...Option) (Result, error) {
	if a == nil {
		return Result{}, fmt.Errorf("LeastSquares: %w", ErrNilMatrix)
	}
	if len(b) != len(a.rows) || len(x) != a.width {
		return Result{}, fmt.Errorf("LeastSquares: b %d, x %d for %dx%d: %w",
			len(b), len(x), len(a.rows), a.width, ErrDimensionMismatch)
	}
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	// column → compact free index, -1 when locked
	free := make([]int, a.width)
	lockedSorted := append([]int(nil), locked...)
	sort.Ints(lockedSorted)
	for _, c := range lockedSorted {
		if c < 0 || c >= a.width {
			return Result{}, fmt.Errorf("LeastSquares: locked column %d: %w", c, ErrOutOfRange)
		}
		free[c] = -1
	}
	dim := 0
	for c := range free {
		if free[c] == -1 {
			continue
		}
		free[c] = dim
		dim++
	}
	if dim == 0 {
		return Result{Converged: true}, nil
	}
	if len(a.rows) < dim {
		return Result{}, fmt.Errorf("LeastSquares: %d equations for %d unknowns: %w", len(a.rows), dim, ErrUnderdetermined)
	}

	rhs := append([]float64(nil), b...)
	af := &Matrix{width: dim, rows: make([][]Coefficient, len(a.rows))}
	for y, row := range a.rows {
		for _, c := range row {
			if j := free[c.Col]; j >= 0 {
				af.rows[y] = append(af.rows[y], Coefficient{Col: j, Value: c.Value})
			} else {
				rhs[y] -= x[c.Col] * c.Value
			}
		}
	}

	xf := make([]float64, dim)
	for c, j := range free {
		if j >= 0 {
			xf[j] = x[c]
		}
	}

	ata := af.MulTranspose()
	atb := make([]float64, dim)
	af.mulTrans(atb, rhs)
	pre, err := NewJacobiPreconditioner(ata)
	if err != nil {
		return Result{}, fmt.Errorf("LeastSquares: %w", err)
	}
	res, err := ConjugateGradient(ata, atb, xf, pre, eps, opts...)

	for c, j := range free {
		if j >= 0 {
			x[c] = xf[j]
		}
	}
	if err != nil {
		return res, fmt.Errorf("LeastSquares: %w", err)
	}
	return res, nil
}
