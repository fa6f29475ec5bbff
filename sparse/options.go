// SPDX-License-Identifier: MIT

package sparse

// Defaults (single source of truth).
const (
	// DefaultIterationFactor bounds CG at DefaultIterationFactor·D iterations
	// for a D×D system. Convergence is linear in theory but not always in
	// floating point.
	DefaultIterationFactor = 4

	// DefaultResidualRecompute is the period, in iterations, at which the
	// residual is recomputed from b − Ax.
	DefaultResidualRecompute = 32

	// DefaultEpsilon is the relative residual tolerance used by LeastSquares
	// when the caller passes a non-positive eps.
	DefaultEpsilon = 1e-5
)

const (
	panicMaxIterations     = "sparse: WithMaxIterations: n must be > 0"
	panicResidualRecompute = "sparse: WithResidualRecompute: k must be > 0"
)

// Option configures ConjugateGradient and LeastSquares.
type Option func(*solverOptions)

type solverOptions struct {
	maxIter   int // 0 ⇒ DefaultIterationFactor·D
	recompute int
}

// WithMaxIterations caps the number of CG iterations.
// Panics if n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}
	return func(o *solverOptions) { o.maxIter = n }
}

// WithResidualRecompute sets how often the residual is recomputed exactly.
// Panics if k <= 0.
func WithResidualRecompute(k int) Option {
	if k <= 0 {
		panic(panicResidualRecompute)
	}
	return func(o *solverOptions) { o.recompute = k }
}

func gatherOptions(dim int, opts []Option) solverOptions {
	o := solverOptions{recompute: DefaultResidualRecompute}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.maxIter == 0 {
		o.maxIter = DefaultIterationFactor * dim
	}
	return o
}
