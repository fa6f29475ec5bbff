// SPDX-License-Identifier: MIT

package builder

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// BuilderOption customizes builderConfig before construction.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a deterministic RNG from seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithScale multiplies generated positions by s. Panics unless s is a
// positive finite number.
func WithScale(s float64) BuilderOption {
	if !(s > 0) || math.IsInf(s, 0) {
		panic("builder: WithScale requires a positive finite scale")
	}
	return func(c *builderConfig) { c.scale = s }
}

// WithOffset translates generated positions by o.
func WithOffset(o r3.Vec) BuilderOption {
	return func(c *builderConfig) { c.offset = o }
}

// WithJitter adds N(0, sigma²) noise to every coordinate. Requires an RNG.
// Panics on negative or NaN sigma.
func WithJitter(sigma float64) BuilderOption {
	if !(sigma >= 0) {
		panic("builder: WithJitter requires sigma >= 0")
	}
	return func(c *builderConfig) { c.jitter = sigma }
}
