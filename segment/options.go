// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"math"
)

// Default weights and limits of the chart cost function.
const (
	DefaultProxyFitWeight     = 2.0
	DefaultRoundnessWeight    = 0.01
	DefaultStraightnessWeight = 6.0
	DefaultNormalSeamWeight   = 4.0
	DefaultTextureSeamWeight  = 0.5
	DefaultMaxChartArea       = math.MaxFloat32
	DefaultMaxBoundaryLength  = math.MaxFloat32
	DefaultMaxThreshold       = 2.0
	DefaultGrowFaceCount      = 32
	DefaultMaxIterations      = 4
)

// SharpEdgeWeight is the normal seam weight from which any candidate that
// crosses a normal seam is rejected outright.
const SharpEdgeWeight = 1000

// BestSeedCandidates is the number of best-fitting faces RelocateSeeds
// chooses the new seed from.
const BestSeedCandidates = 10

// Options configures segmentation.
//   - ProxyFitWeight: weight of 1 - dot(face normal, chart normal).
//   - RoundnessWeight: weight of the boundary²/area growth penalty.
//   - StraightnessWeight: weight of the gap closing reward.
//   - NormalSeamWeight: weight of crossing normal seams; at SharpEdgeWeight
//     or above, normal seams are never crossed.
//   - TextureSeamWeight: weight of crossing texture seams.
//   - MaxChartArea, MaxBoundaryLength: hard caps per chart.
//   - MaxThreshold: cost above which a chart stops growing.
//   - GrowFaceCount: faces added per global growth step.
//   - MaxIterations: number of reseed rounds.
type Options struct {
	ProxyFitWeight     float64
	RoundnessWeight    float64
	StraightnessWeight float64
	NormalSeamWeight   float64
	TextureSeamWeight  float64
	MaxChartArea       float64
	MaxBoundaryLength  float64
	MaxThreshold       float64
	GrowFaceCount      int
	MaxIterations      int
}

// DefaultOptions returns Options with the Default* constants.
func DefaultOptions() Options {
	return Options{
		ProxyFitWeight:     DefaultProxyFitWeight,
		RoundnessWeight:    DefaultRoundnessWeight,
		StraightnessWeight: DefaultStraightnessWeight,
		NormalSeamWeight:   DefaultNormalSeamWeight,
		TextureSeamWeight:  DefaultTextureSeamWeight,
		MaxChartArea:       DefaultMaxChartArea,
		MaxBoundaryLength:  DefaultMaxBoundaryLength,
		MaxThreshold:       DefaultMaxThreshold,
		GrowFaceCount:      DefaultGrowFaceCount,
		MaxIterations:      DefaultMaxIterations,
	}
}

// Validate reports the first NaN or negative field, wrapping ErrInvalidOptions.
func (o Options) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"ProxyFitWeight", o.ProxyFitWeight},
		{"RoundnessWeight", o.RoundnessWeight},
		{"StraightnessWeight", o.StraightnessWeight},
		{"NormalSeamWeight", o.NormalSeamWeight},
		{"TextureSeamWeight", o.TextureSeamWeight},
		{"MaxChartArea", o.MaxChartArea},
		{"MaxBoundaryLength", o.MaxBoundaryLength},
		{"MaxThreshold", o.MaxThreshold},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || f.v < 0 {
			return fmt.Errorf("Validate: %s=%v: %w", f.name, f.v, ErrInvalidOptions)
		}
	}
	if o.GrowFaceCount < 1 {
		return fmt.Errorf("Validate: GrowFaceCount=%d: %w", o.GrowFaceCount, ErrInvalidOptions)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("Validate: MaxIterations=%d: %w", o.MaxIterations, ErrInvalidOptions)
	}
	return nil
}
