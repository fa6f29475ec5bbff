// SPDX-License-Identifier: MIT

package uvatlas

import (
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/uvatlas/pack"
	"github.com/katalvlaran/uvatlas/segment"
)

// ChartOptions configures GenerateCharts. See segment.Options.
type ChartOptions = segment.Options

// PackOptions configures PackCharts. See pack.Options.
type PackOptions = pack.Options

// PackMethod selects how PackCharts derives the texel scale.
type PackMethod = pack.Method

// Packing methods.
const (
	ApproximateResolution = pack.ApproximateResolution
	ExactResolution       = pack.ExactResolution
	TexelArea             = pack.TexelArea
)

// DefaultChartOptions returns the segmentation defaults.
func DefaultChartOptions() ChartOptions { return segment.DefaultOptions() }

// DefaultPackOptions returns the packing defaults.
func DefaultPackOptions() PackOptions { return pack.DefaultOptions() }

// Option configures New.
type Option func(*Atlas)

// WithSeed fixes the parent seed of every random stream. Zero selects the
// default seed.
func WithSeed(seed int64) Option {
	return func(a *Atlas) {
		if seed == 0 {
			seed = defaultRNGSeed
		}
		a.seed = seed
	}
}

// WithRand draws the parent seed from r once, at construction. A nil r is
// ignored.
func WithRand(r *rand.Rand) Option {
	return func(a *Atlas) {
		if r != nil {
			a.seed = r.Int63()
		}
	}
}

// WithLogger routes diagnostics of every stage to l. A nil logger is
// ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *Atlas) {
		if l != nil {
			a.logger = l
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MeshOption configures AddMesh.
type MeshOption func(*meshConfig)

type meshConfig struct {
	colocal bool
	weldTol float64
}

func gatherMeshOptions(opts []MeshOption) meshConfig {
	cfg := meshConfig{colocal: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithColocalVertices toggles colocal detection. When disabled, vertices
// that share a position but not an index are unrelated, so attribute seams
// become mesh boundaries.
func WithColocalVertices(on bool) MeshOption {
	return func(c *meshConfig) { c.colocal = on }
}

// WithWeldTolerance treats vertices closer than eps as colocal. Zero keeps
// exact matching.
//
// Panics if eps is negative, NaN or infinite.
func WithWeldTolerance(eps float64) MeshOption {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic("uvatlas: WithWeldTolerance: eps must be finite and >= 0")
	}
	return func(c *meshConfig) { c.weldTol = eps }
}
