package relax

import (
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/maxclique/coloring"
	"github.com/katalvlaran/maxclique/internal/rng"
)

// Defaults for cut generation.
const (
	DefaultCutTrials  = 50
	DefaultMinCutSize = 3
)

// DefaultCutStrategies are the coloring strategies used for independent-set
// cuts unless WithCutStrategies overrides them.
var DefaultCutStrategies = []coloring.Strategy{
	coloring.LargestFirst,
	coloring.RandomSequential,
	coloring.IndependentSet,
	coloring.ConnectedSequentialBFS,
	coloring.ConnectedSequentialDFS,
	coloring.SaturationLargestFirst,
}

type modelConfig struct {
	integer    bool
	cuts       bool
	strategies []coloring.Strategy
	trials     int
	minSize    int
	rng        *rand.Rand
	colorer    coloring.Colorer
	log        logrus.FieldLogger
}

func defaultModelConfig() modelConfig {
	return modelConfig{
		cuts:       true,
		strategies: append([]coloring.Strategy(nil), DefaultCutStrategies...),
		trials:     DefaultCutTrials,
		minSize:    DefaultMinCutSize,
		colorer:    coloring.Default,
		log:        discardLogger(),
	}
}

// ModelOption configures a Model before Build.
type ModelOption func(*modelConfig)

// WithIntegerVariables declares every variable binary instead of [0,1].
func WithIntegerVariables() ModelOption {
	return func(c *modelConfig) { c.integer = true }
}

// WithCutStrategies replaces the coloring strategies used for cuts.
// Panics if none are given.
func WithCutStrategies(s ...coloring.Strategy) ModelOption {
	if len(s) == 0 {
		panic("relax: WithCutStrategies needs at least one strategy")
	}
	s = append([]coloring.Strategy(nil), s...)

	return func(c *modelConfig) { c.strategies = s }
}

// WithCutTrials sets how many times randomized strategies are repeated.
// Panics if n < 1.
func WithCutTrials(n int) ModelOption {
	if n < 1 {
		panic("relax: WithCutTrials(n) requires n ≥ 1")
	}

	return func(c *modelConfig) { c.trials = n }
}

// WithMinCutSize sets the smallest color class turned into a cut.
// Panics if k < 2.
func WithMinCutSize(k int) ModelOption {
	if k < 2 {
		panic("relax: WithMinCutSize(k) requires k ≥ 2")
	}

	return func(c *modelConfig) { c.minSize = k }
}

// WithoutCuts disables independent-set cuts; only complement-edge
// constraints are generated.
func WithoutCuts() ModelOption {
	return func(c *modelConfig) { c.cuts = false }
}

// WithSeed seeds randomized coloring strategies (seed 0 uses the default seed).
func WithSeed(seed int64) ModelOption {
	return func(c *modelConfig) { c.rng = rng.FromSeed(seed) }
}

// WithColorer replaces the coloring oracle. Panics on nil.
func WithColorer(col coloring.Colorer) ModelOption {
	if col == nil {
		panic("relax: WithColorer(nil)")
	}

	return func(c *modelConfig) { c.colorer = col }
}

// WithLogger sets the logger used for build summaries. Panics on nil.
func WithLogger(l logrus.FieldLogger) ModelOption {
	if l == nil {
		panic("relax: WithLogger(nil)")
	}

	return func(c *modelConfig) { c.log = l }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
