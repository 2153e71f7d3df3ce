package heuristic

import (
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/maxclique/coloring"
	"github.com/katalvlaran/maxclique/internal/rng"
)

// Defaults for the randomized passes.
const (
	DefaultTopK   = 5
	DefaultTrials = 50
)

type config struct {
	rng        *rand.Rand
	topK       int
	trials     int
	strategies []coloring.Strategy
	colorer    coloring.Colorer
	log        logrus.FieldLogger
}

func defaultConfig() config {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return config{
		topK:       DefaultTopK,
		trials:     DefaultTrials,
		strategies: coloring.AllStrategies(),
		colorer:    coloring.Default,
		log:        l,
	}
}

// Option configures FindClique.
type Option func(*config)

// WithSeed sets a deterministic random source (seed 0 uses the default seed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.FromSeed(seed) }
}

// WithRand uses r as the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("heuristic: WithRand(nil)")
	}

	return func(c *config) { c.rng = r }
}

// WithTopK sets how many leading candidates a randomized pick chooses from.
// Panics if k < 1.
func WithTopK(k int) Option {
	if k < 1 {
		panic("heuristic: WithTopK(k) requires k ≥ 1")
	}

	return func(c *config) { c.topK = k }
}

// WithTrials sets the number of randomized repetitions per pass.
// Panics if n < 1.
func WithTrials(n int) Option {
	if n < 1 {
		panic("heuristic: WithTrials(n) requires n ≥ 1")
	}

	return func(c *config) { c.trials = n }
}

// WithStrategies sets the colorings used by the coloring-ordered pass.
// No strategies disables that pass.
func WithStrategies(s ...coloring.Strategy) Option {
	s = append([]coloring.Strategy(nil), s...)

	return func(c *config) { c.strategies = s }
}

// WithColorer replaces the coloring oracle. Panics on nil.
func WithColorer(col coloring.Colorer) Option {
	if col == nil {
		panic("heuristic: WithColorer(nil)")
	}

	return func(c *config) { c.colorer = col }
}

// WithLogger sets the logger for per-pass results. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("heuristic: WithLogger(nil)")
	}

	return func(c *config) { c.log = l }
}
