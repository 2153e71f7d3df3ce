package bnb

import (
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/maxclique/internal/rng"
)

// Defaults.
const (
	DefaultTolerance     = 1e-4
	DefaultProgressEvery = 1000
)

type options struct {
	tol           float64
	timeLimit     time.Duration
	log           logrus.FieldLogger
	observer      Observer
	randomProb    float64
	rng           *rand.Rand
	progressEvery int
}

func defaultOptions() options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return options{
		tol:           DefaultTolerance,
		log:           l,
		observer:      nopObserver{},
		progressEvery: DefaultProgressEvery,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithTolerance sets the absolute tolerance for integrality and the bound
// check. Panics unless 0 ≤ tol < 0.5.
func WithTolerance(tol float64) Option {
	if tol < 0 || tol >= 0.5 {
		panic("bnb: WithTolerance requires 0 ≤ tol < 0.5")
	}

	return func(o *options) { o.tol = tol }
}

// WithTimeLimit bounds the wall-clock time of Run. Zero means no limit.
// Panics on a negative duration.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic("bnb: WithTimeLimit requires d ≥ 0")
	}

	return func(o *options) { o.timeLimit = d }
}

// WithLogger sets the logger for progress and incumbent lines. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("bnb: WithLogger(nil)")
	}

	return func(o *options) { o.log = l }
}

// WithObserver installs search hooks. Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("bnb: WithObserver(nil)")
	}

	return func(o *options) { o.observer = obs }
}

// WithRandomBranching makes the branching variable, with probability prob,
// a random unconstrained vertex weighted by how rarely it has been branched
// on so far. Off by default. Panics unless 0 ≤ prob ≤ 1.
func WithRandomBranching(prob float64, seed int64) Option {
	if prob < 0 || prob > 1 {
		panic("bnb: WithRandomBranching requires 0 ≤ prob ≤ 1")
	}

	return func(o *options) {
		o.randomProb = prob
		o.rng = rng.FromSeed(seed)
	}
}

// WithProgressEvery logs a progress line every n calls. n = 0 disables it.
// Panics on negative n.
func WithProgressEvery(n int) Option {
	if n < 0 {
		panic("bnb: WithProgressEvery requires n ≥ 0")
	}

	return func(o *options) { o.progressEvery = n }
}
