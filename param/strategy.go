// SPDX-License-Identifier: MIT

package param

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/uvatlas/halfedge"
	"github.com/katalvlaran/uvatlas/sparse"
)

// Strategy selects how a chart is parameterized.
type Strategy int

const (
	// Skip leaves the mesh untouched (vertex-mapped charts).
	Skip Strategy = iota
	// SingleFace maps a lone face isometrically into the plane.
	SingleFace
	// Conformal projects on the best-fit plane, then solves LSCM.
	Conformal
	// Unsupported projects on the best-fit plane and reports ErrNotDisk.
	Unsupported
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Skip:
		return "skip"
	case SingleFace:
		return "single-face"
	case Conformal:
		return "conformal"
	case Unsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Classify picks the strategy for a chart with the given face count and
// topology.
func Classify(faceCount int, isDisk, isVertexMapped bool) Strategy {
	switch {
	case isVertexMapped:
		return Skip
	case !isDisk:
		return Unsupported
	case faceCount == 1:
		return SingleFace
	default:
		return Conformal
	}
}

// DefaultSolverEpsilon is the relative residual tolerance of the LSCM solve.
const DefaultSolverEpsilon = 1e-6

const panicSolverEpsilon = "param: WithSolverEpsilon: eps must be > 0"

// Option configures Parameterize.
type Option func(*config)

type config struct {
	logger *slog.Logger
	eps    float64
	solver []sparse.Option
}

// WithLogger sets the diagnostics logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSolverEpsilon overrides DefaultSolverEpsilon. Panics if eps <= 0.
func WithSolverEpsilon(eps float64) Option {
	if !(eps > 0) {
		panic(panicSolverEpsilon)
	}
	return func(c *config) { c.eps = eps }
}

// WithSolverOptions forwards options to the sparse least squares solve.
func WithSolverOptions(opts ...sparse.Option) Option {
	return func(c *config) { c.solver = append(c.solver, opts...) }
}

func gather(opts []Option) config {
	c := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		eps:    DefaultSolverEpsilon,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Parameterize writes UVs into m according to s and returns the quality of
// the result.
//
// Behavior:
//   - Skip: no change, zero Quality.
//   - SingleFace: SingleFaceMap.
//   - Conformal: OrthogonalProjection, then LeastSquaresConformalMap. When
//     LSCM cannot run, the projection is kept. A solve that stops at the
//     iteration cap keeps its last iterate.
//   - Unsupported: OrthogonalProjection, then ErrNotDisk together with the
//     measured quality.
//
// Complexity: see the individual maps.
func Parameterize(m *halfedge.Mesh, s Strategy, opts ...Option) (Quality, error) {
	cfg := gather(opts)
	switch s {
	case Skip:
		return Quality{}, nil

	case SingleFace:
		if err := SingleFaceMap(m); err != nil {
			return Quality{}, fmt.Errorf("Parameterize: %w", err)
		}

	case Conformal:
		if err := OrthogonalProjection(m); err != nil {
			cfg.logger.Debug("orthogonal projection failed", "err", err)
		}
		err := lscm(m, cfg)
		switch {
		case err == nil:
		case errors.Is(err, sparse.ErrNotConverged):
			cfg.logger.Debug("conformal solve hit iteration cap", "err", err)
		default:
			cfg.logger.Debug("conformal map skipped, keeping projection", "err", err)
		}

	case Unsupported:
		if err := OrthogonalProjection(m); err != nil {
			cfg.logger.Debug("orthogonal projection failed", "err", err)
		}
		return MeasureQuality(m), fmt.Errorf("Parameterize: %w", ErrNotDisk)

	default:
		return Quality{}, fmt.Errorf("Parameterize: %v: %w", s, ErrNotDisk)
	}

	q := MeasureQuality(m)
	if !q.IsValid() {
		cfg.logger.Warn("invalid parameterization", "strategy", s.String(), "flipped", q.FlippedTriangles)
	}
	return q, nil
}
