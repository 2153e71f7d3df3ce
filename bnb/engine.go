// Package bnb: Engine, the exact depth-first branch and bound.
//
// Rationale:
//  1. Bound. The relaxation value is an upper bound on any clique reachable
//     under the current fixings. Clique sizes are integers, so a node is
//     pruned when floor(obj + tol) does not beat the incumbent.
//  2. Leaves. An integral relaxation point is checked with core.IsClique;
//     a larger clique replaces the incumbent, anything else closes the node.
//  3. Branching. The unconstrained vertex whose value is closest to 1 is
//     fixed, first index on ties. The child nearest to its current value
//     goes first (x ≥ 0.5 tries 1), then its complement. With random
//     branching a seeded pick weighted towards rarely branched vertices may
//     replace it.
//  4. Scoped fixings. Every branching row is removed before the frame that
//     added it returns, on every exit path, so the model is unchanged after
//     Run whatever the outcome.
//  5. Stopping. The time limit becomes a context deadline. It is checked at
//     the top of every call, passed into the relaxation so a long solve is
//     cut short, and rechecked before branching. Timeout and cancellation
//     unwind as outcomes, never as panics, and the incumbent survives both.
//
// Complexity:
//   - Worst case exponential in n (exact search); depth ≤ n.
//   - Per node: one relaxation solve, O(n) to pick the branching vertex,
//     O(k²) to validate an integral point with k selected vertices.
//   - Memory: O(n) engine state plus the recursion stack.

package bnb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/maxclique/core"
	"github.com/katalvlaran/maxclique/relax"
)

// Relaxation is what the engine needs from a relaxation model. *relax.Model
// implements it.
type Relaxation interface {
	Solve(ctx context.Context) (float64, error)
	CurrentSolution() ([]float64, error)
	AddEqualityConstraint(varName, name string, rhs float64) error
	RemoveConstraint(name string) error
	VariableName(v int) string
}

// outcome is how a subtree search ended. Aborts unwind every frame through
// the return value; each frame still retracts its branching constraint.
type outcome uint8

const (
	done outcome = iota
	timedOut
	canceled
)

// Engine is a depth-first branch-and-bound search for a maximum clique over
// a relaxation model. It owns the model for the duration of Run: every
// branching constraint it adds is removed before the frame that added it
// returns, on every exit path.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	model Relaxation
	g     *core.Graph
	n     int
	opts  options

	initial      []float64
	initialValue int

	// Incumbent.
	bestValue    int
	bestSolution []float64

	// Node state, pushed and popped in lock-step with the model.
	constrained []bool
	active      int
	depth       int
	bounds      []float64 // relaxation values from the root to the current node
	budget      []int     // random-branching weights

	start time.Time
	stats Stats
}

// New prepares an engine for g. initial seeds the incumbent; it must be nil
// (empty incumbent) or a 0/1 vector of length g.VertexCount() describing a
// clique. The model must already be built for g.
func New(model Relaxation, g *core.Graph, initial []float64, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := g.VertexCount()
	if initial == nil {
		initial = make([]float64, n)
	}
	if len(initial) != n || !isIntegral(initial, o.tol) {
		return nil, fmt.Errorf("%w: length %d for %d vertices", ErrBadInitialSolution, len(initial), n)
	}
	selected := core.SelectedVertices(initial, o.tol)
	if !core.IsClique(g, selected) {
		return nil, fmt.Errorf("%w: vertices %v", ErrBadInitialSolution, selected)
	}

	return &Engine{
		model:        model,
		g:            g,
		n:            n,
		opts:         o,
		initial:      core.Indicator(selected, n),
		initialValue: len(selected),
	}, nil
}

// Run searches for a clique larger than the incumbent until the tree is
// exhausted, the time limit elapses or ctx is canceled.
//
// On timeout the Result carries the incumbent with TimedOut set and the
// error is a *TimeoutError (errors.Is(err, ErrSearchTimedOut)). On
// cancellation the Result carries the incumbent and the error wraps
// ctx.Err(). Relaxation infeasibility is never returned; it prunes.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.reset()
	parent := ctx
	if e.opts.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadlineCause(ctx, e.start.Add(e.opts.timeLimit), ErrSearchTimedOut)
		defer cancel()
	}
	e.opts.log.WithFields(logrus.Fields{
		"vertices":   e.n,
		"incumbent":  e.bestValue,
		"time_limit": e.opts.timeLimit,
	}).Debug("branch-and-bound started")

	out, err := e.search(ctx)
	res := e.result(out)

	switch {
	case err != nil:
		searchesTotal.WithLabelValues("error").Inc()
		return res, err
	case out == timedOut:
		searchesTotal.WithLabelValues("timeout").Inc()
		e.opts.log.WithField("incumbent", res.Value).Warn("branch-and-bound timed out")
		return res, &TimeoutError{Incumbent: res.Clique, Value: res.Value, Elapsed: res.Stats.Elapsed}
	case out == canceled:
		searchesTotal.WithLabelValues("canceled").Inc()
		return res, fmt.Errorf("bnb: search canceled: %w", parent.Err())
	}

	searchesTotal.WithLabelValues("complete").Inc()
	e.opts.log.WithFields(logrus.Fields{
		"clique":    res.Value,
		"calls":     res.Stats.Calls,
		"max_depth": res.Stats.MaxDepth,
		"elapsed":   res.Stats.Elapsed,
	}).Debug("branch-and-bound finished")

	return res, nil
}

func (e *Engine) reset() {
	e.bestValue = e.initialValue
	e.bestSolution = append([]float64(nil), e.initial...)
	e.constrained = make([]bool, e.n)
	e.active, e.depth = 0, 0
	e.bounds = e.bounds[:0]
	e.stats = Stats{}
	if e.opts.rng != nil {
		e.budget = make([]int, e.n)
		for i := range e.budget {
			e.budget[i] = e.n
		}
	}
	e.start = time.Now()
}

func (e *Engine) result(out outcome) Result {
	e.stats.Elapsed = time.Since(e.start)
	clique := core.SelectedVertices(e.bestSolution, e.opts.tol)

	return Result{
		Clique:   clique,
		Value:    e.bestValue,
		Solution: append(make([]float64, 0, len(e.bestSolution)), e.bestSolution...),
		TimedOut: out == timedOut,
		Stats:    e.stats,
	}
}

// search is one node: deadline, solve, bound, integrality, deadline, branch.
func (e *Engine) search(ctx context.Context) (outcome, error) {
	e.stats.Calls++
	call := e.stats.Calls
	nodesTotal.Inc()
	if e.opts.progressEvery > 0 && call%e.opts.progressEvery == 0 {
		e.opts.log.WithFields(logrus.Fields{
			"calls":       call,
			"max_depth":   e.stats.MaxDepth,
			"constraints": e.active,
			"incumbent":   e.bestValue,
		}).Debug("branch-and-bound progress")
	}

	if out, stop := e.stopped(ctx); stop {
		e.node(call, 0, NodeAborted)
		return out, nil
	}

	t0 := time.Now()
	obj, err := e.model.Solve(ctx)
	relaxationDuration.Observe(time.Since(t0).Seconds())
	if err != nil {
		if errors.Is(err, relax.ErrRelaxationInfeasible) {
			e.stats.InfeasiblePrunes++
			prunesTotal.WithLabelValues("infeasible").Inc()
			e.node(call, 0, NodeInfeasible)
			return done, nil
		}
		if out, stop := e.stopped(ctx); stop && errors.Is(err, relax.ErrInterrupted) {
			e.node(call, 0, NodeAborted)
			return out, nil
		}
		return done, fmt.Errorf("bnb: node %d: %w", call, err)
	}
	e.bounds = append(e.bounds, obj)
	defer func() { e.bounds = e.bounds[:len(e.bounds)-1] }()

	// Clique sizes are integers, so the relaxation value rounds down.
	if int(math.Floor(obj+e.opts.tol)) <= e.bestValue {
		e.stats.BoundPrunes++
		prunesTotal.WithLabelValues("bound").Inc()
		e.node(call, obj, NodeBoundPruned)
		return done, nil
	}

	x, err := e.model.CurrentSolution()
	if err != nil {
		return done, fmt.Errorf("bnb: node %d: %w", call, err)
	}

	if isIntegral(x, e.opts.tol) {
		selected := core.SelectedVertices(x, e.opts.tol)
		if !core.IsClique(e.g, selected) {
			e.stats.NonCliqueLeaves++
			prunesTotal.WithLabelValues("non_clique").Inc()
			e.node(call, obj, NodeNonClique)
			return done, nil
		}
		if len(selected) > e.bestValue {
			e.improve(call, selected)
			e.node(call, obj, NodeIncumbent)
			return done, nil
		}
		e.node(call, obj, NodeIntegral)
		return done, nil
	}

	// An integral node reached at the deadline has already been recorded.
	if out, stop := e.stopped(ctx); stop {
		e.node(call, obj, NodeAborted)
		return out, nil
	}

	k := e.branchingVar(x)
	if k < 0 {
		e.node(call, obj, NodeExhausted)
		return done, nil
	}
	e.node(call, obj, NodeBranched)

	// Favored value first: round(x_k), then its complement.
	first := 0.0
	if x[k] >= 0.5 {
		first = 1
	}
	for _, val := range [2]float64{first, 1 - first} {
		out, err := e.branch(ctx, call, k, val)
		if err != nil || out != done {
			return out, err
		}
	}
	if e.budget != nil && e.budget[k] > 0 {
		e.budget[k]--
	}

	return done, nil
}

// stopped reports whether the search must unwind, and as which outcome.
// The deadline installed by Run carries ErrSearchTimedOut as its cause;
// any other end of ctx is a cancellation.
func (e *Engine) stopped(ctx context.Context) (outcome, bool) {
	if e.opts.timeLimit > 0 && time.Since(e.start) > e.opts.timeLimit {
		return timedOut, true
	}
	if ctx.Err() == nil {
		return done, false
	}
	if errors.Is(context.Cause(ctx), ErrSearchTimedOut) {
		return timedOut, true
	}

	return canceled, true
}

// branch fixes vertex k+1 to val, searches the subtree and retracts the
// fixing before returning, whatever the subtree's outcome.
func (e *Engine) branch(ctx context.Context, call, k int, val float64) (out outcome, err error) {
	varName := e.model.VariableName(k + 1)
	name := fmt.Sprintf("C%d_branch%d_%s", call, int(val), varName)
	if aerr := e.model.AddEqualityConstraint(varName, name, val); aerr != nil {
		return done, fmt.Errorf("%w: add %s: %w", ErrInvariantViolated, name, aerr)
	}
	e.constrained[k] = true
	e.active++
	e.depth++
	if e.depth > e.stats.MaxDepth {
		e.stats.MaxDepth = e.depth
	}

	defer func() {
		e.constrained[k] = false
		e.active--
		e.depth--
		if rerr := e.model.RemoveConstraint(name); rerr != nil && err == nil {
			err = fmt.Errorf("%w: remove %s: %w", ErrInvariantViolated, name, rerr)
		}
	}()

	return e.search(ctx)
}

// branchingVar returns the unconstrained index whose value is closest to 1,
// first occurrence on ties, or -1 when every vertex is constrained. With
// random branching enabled, a weighted random pick may take precedence.
func (e *Engine) branchingVar(x []float64) int {
	if e.opts.rng != nil && e.opts.randomProb > 0 && e.opts.rng.Float64() < e.opts.randomProb {
		if k := e.randomVar(); k >= 0 {
			return k
		}
	}

	best, bestDiff := -1, math.Inf(1)
	for i, v := range x {
		if e.constrained[i] {
			continue
		}
		if d := math.Abs(1 - v); d < bestDiff {
			best, bestDiff = i, d
		}
	}

	return best
}

// randomVar samples an index with probability proportional to its budget
// and accepts it only if it is unconstrained with budget left.
func (e *Engine) randomVar() int {
	total := 0
	for _, b := range e.budget {
		total += b
	}
	if total == 0 {
		return -1
	}
	r := e.opts.rng.Intn(total)
	for i, b := range e.budget {
		if r < b {
			if !e.constrained[i] {
				return i
			}
			return -1
		}
		r -= b
	}

	return -1
}

func (e *Engine) improve(call int, selected []int) {
	prev := e.bestValue
	e.bestValue = len(selected)
	e.bestSolution = core.Indicator(selected, e.n)
	e.stats.IncumbentUpdates++
	incumbentUpdatesTotal.Inc()

	e.opts.log.WithFields(logrus.Fields{
		"call":   call,
		"size":   e.bestValue,
		"clique": selected,
	}).Info("new incumbent")
	e.opts.observer.OnIncumbent(IncumbentEvent{
		Call:     call,
		Previous: prev,
		Value:    e.bestValue,
		Clique:   append([]int(nil), selected...),
		Bounds:   append([]float64(nil), e.bounds...),
	})
}

func (e *Engine) node(call int, obj float64, o NodeOutcome) {
	e.opts.observer.OnNode(NodeEvent{
		Call:        call,
		Depth:       e.depth,
		Objective:   obj,
		Incumbent:   e.bestValue,
		Constrained: e.active,
		Outcome:     o,
	})
}

// isIntegral reports whether every entry is within tol of 0 or 1.
func isIntegral(x []float64, tol float64) bool {
	for _, v := range x {
		if math.Abs(v) > tol && math.Abs(v-1) > tol {
			return false
		}
	}

	return true
}
