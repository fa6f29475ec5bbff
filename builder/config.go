// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// builderConfig aggregates all knobs used by constructors. It is passed by
// value.
type builderConfig struct {
	rng    *rand.Rand
	scale  float64
	offset r3.Vec
	jitter float64
}

// newBuilderConfig applies options over deterministic defaults; later
// options override earlier ones.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		scale:  DefaultScale,
		jitter: DefaultJitter,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// place maps a unit-space position into the configured frame.
func (c builderConfig) place(p r3.Vec) r3.Vec {
	p = r3.Add(r3.Scale(c.scale, p), c.offset)
	if c.jitter > 0 && c.rng != nil {
		p.X += c.rng.NormFloat64() * c.jitter
		p.Y += c.rng.NormFloat64() * c.jitter
		p.Z += c.rng.NormFloat64() * c.jitter
	}
	return p
}

func (c builderConfig) check(method string) error {
	if c.jitter > 0 && c.rng == nil {
		return wrap(method, ErrNeedRandSource)
	}
	return nil
}
