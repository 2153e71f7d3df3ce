// SPDX-License-Identifier: MIT
// Package: maxclique/builder
//
// options.go — functional options and their resolved configuration.
//
// Option constructors panic on meaningless input; graph constructors never
// panic. Randomness only enters through WithSeed or WithRand, so a fixture
// built twice from the same options is the same graph.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/maxclique/internal/rng"
)

// BuilderOption customizes constructors by mutating builderConfig before
// construction begins.
type BuilderOption func(*builderConfig)

// builderConfig is the resolved, read-only view constructors receive.
type builderConfig struct {
	// rng drives RandomSparse; nil means deterministic constructors only.
	rng *rand.Rand
}

// newBuilderConfig applies opts in order; the last option wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRand hands stochastic constructors an explicit source. The source is
// consumed, so sharing it between builds changes both. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed seeds a fresh source. Seed 0 selects rng.DefaultSeed, matching
// the heuristic and the relaxation model.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rng.FromSeed(seed) }
}
