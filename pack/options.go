// SPDX-License-Identifier: MIT

package pack

import (
	"fmt"
	"math"
)

// Method selects how the texel density is chosen.
type Method int

const (
	// ApproximateResolution estimates the density from the total surface
	// area and Options.Resolution.
	ApproximateResolution Method = iota
	// ExactResolution iterates the estimate until the atlas fits
	// Options.Resolution².
	ExactResolution
	// TexelArea uses Options.TexelArea texels per world unit.
	TexelArea
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case ApproximateResolution:
		return "approximate-resolution"
	case ExactResolution:
		return "exact-resolution"
	case TexelArea:
		return "texel-area"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Defaults (single source of truth).
const (
	DefaultMethod     = ApproximateResolution
	DefaultQuality    = 1
	DefaultTexelArea  = 8
	DefaultResolution = 512
	DefaultPadding    = 0
)

// Packing constants.
const (
	// MaxChartExtent caps the larger side of a chart, in texels.
	MaxChartExtent = 1024

	// BlockSize is the alignment of block-aligned extents and positions.
	BlockSize = 4

	// HullEpsilon drops near-collinear and duplicate hull points.
	HullEpsilon = 1e-5

	// TargetUtilization is the fill ratio assumed by the texel density
	// estimate.
	TargetUtilization = 0.75

	// MaxExactIterations bounds the passes of ExactResolution.
	MaxExactIterations = 16

	// RelaxationIteration is the first ExactResolution pass after which the
	// density is lowered by a further 10% per pass.
	RelaxationIteration = 8

	// MinTrials is the random trial budget for Quality above 4.
	MinTrials = 256
)

// trials maps Quality to the number of random placement trials.
var trials = [...]int{0, 4096, 2048, 1024, 512}

// Options configures Pack.
//
// Quality 0 always searches positions exhaustively; 1..4 use brute force
// only while the canvas has fewer cells than the trial budget, then random
// trials (4096 for 1 down to 512 for 4, MinTrials above).
//
// Padding applies to Conservative rasterization only; the default
// rasterization already surrounds every chart with about one texel.
type Options struct {
	Method       Method
	Quality      int
	TexelArea    float64
	Resolution   int
	BlockAlign   bool
	Conservative bool
	Padding      int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Method:     DefaultMethod,
		Quality:    DefaultQuality,
		TexelArea:  DefaultTexelArea,
		Resolution: DefaultResolution,
		Padding:    DefaultPadding,
	}
}

// Validate reports the first unusable field.
func (o Options) Validate() error {
	switch {
	case o.Method < ApproximateResolution || o.Method > TexelArea:
		return fmt.Errorf("Validate: method %d: %w", int(o.Method), ErrInvalidOptions)
	case o.Quality < 0:
		return fmt.Errorf("Validate: quality %d: %w", o.Quality, ErrInvalidOptions)
	case o.Method == TexelArea && !(o.TexelArea > 0 && !math.IsInf(o.TexelArea, 0)):
		return fmt.Errorf("Validate: texel area %v: %w", o.TexelArea, ErrInvalidOptions)
	case o.Method != TexelArea && o.Resolution <= 0:
		return fmt.Errorf("Validate: resolution %d: %w", o.Resolution, ErrInvalidOptions)
	case o.Padding < 0:
		return fmt.Errorf("Validate: padding %d: %w", o.Padding, ErrInvalidOptions)
	}
	return nil
}

func (o Options) attempts() int {
	if o.Quality < len(trials) {
		return trials[o.Quality]
	}
	return MinTrials
}
