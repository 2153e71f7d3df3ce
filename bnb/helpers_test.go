package bnb_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxclique/bnb"
	"github.com/katalvlaran/maxclique/core"
	"github.com/katalvlaran/maxclique/heuristic"
	"github.com/katalvlaran/maxclique/relax"
)

// solveFunc answers a stub relaxation given the currently fixed variables.
type solveFunc func(fixed map[string]float64) (float64, []float64, error)

type heldRow struct{ name, varName string }

// stubModel is a scripted Relaxation that records every add/remove.
type stubModel struct {
	solve solveFunc

	fixed  map[string]float64
	held   []heldRow
	adds   []string
	events []string // "+name" / "-name" in call order

	failAdd    bool
	failRemove bool

	last   []float64
	solved bool
}

func newStub(f solveFunc) *stubModel {
	return &stubModel{solve: f, fixed: map[string]float64{}}
}

func (s *stubModel) Solve(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", relax.ErrInterrupted, err)
	}
	obj, x, err := s.solve(s.fixed)
	if err != nil {
		return 0, err
	}
	s.last, s.solved = x, true

	return obj, nil
}

func (s *stubModel) CurrentSolution() ([]float64, error) {
	if !s.solved {
		return nil, relax.ErrNotSolved
	}

	return append([]float64(nil), s.last...), nil
}

func (s *stubModel) AddEqualityConstraint(varName, name string, rhs float64) error {
	if s.failAdd {
		return relax.ErrDuplicateConstraint
	}
	if slices.ContainsFunc(s.held, func(h heldRow) bool { return h.name == name }) {
		return relax.ErrDuplicateConstraint
	}
	s.fixed[varName] = rhs
	s.held = append(s.held, heldRow{name: name, varName: varName})
	s.adds = append(s.adds, name)
	s.events = append(s.events, "+"+name)

	return nil
}

func (s *stubModel) RemoveConstraint(name string) error {
	if s.failRemove {
		return relax.ErrConstraintNotFound
	}
	if len(s.held) == 0 {
		return relax.ErrConstraintNotFound
	}
	top := s.held[len(s.held)-1]
	if top.name != name {
		return fmt.Errorf("%w: %s is not the most recent constraint", relax.ErrConstraintNotFound, name)
	}
	s.held = s.held[:len(s.held)-1]
	delete(s.fixed, top.varName)
	s.events = append(s.events, "-"+name)

	return nil
}

func (s *stubModel) VariableName(v int) string { return fmt.Sprintf("x%d", v) }

// halves always answers a fractional point: every entry 0.5, objective n/2.
func halves(n int) solveFunc {
	return func(map[string]float64) (float64, []float64, error) {
		x := make([]float64, n)
		for i := range x {
			x[i] = 0.5
		}
		return float64(n) / 2, x, nil
	}
}

// realModel builds a relax.Model over the gonum oracle for g.
func realModel(t *testing.T, g *core.Graph, opts ...relax.ModelOption) *relax.Model {
	t.Helper()
	m := relax.NewModel(relax.NewSimplexOracle(), append([]relax.ModelOption{relax.WithSeed(1)}, opts...)...)
	require.NoError(t, m.Build(g))

	return m
}

// seeded runs the heuristic and returns its incumbent vector.
func seeded(t *testing.T, g *core.Graph) []float64 {
	t.Helper()
	c, err := heuristic.FindClique(g, heuristic.WithSeed(1))
	require.NoError(t, err)

	return heuristic.Solution(c, g.VertexCount())
}

// recorder collects observer callbacks.
type recorder struct {
	nodes      []bnb.NodeEvent
	incumbents []bnb.IncumbentEvent
}

func (r *recorder) OnNode(e bnb.NodeEvent)           { r.nodes = append(r.nodes, e) }
func (r *recorder) OnIncumbent(e bnb.IncumbentEvent) { r.incumbents = append(r.incumbents, e) }

var errBoom = errors.New("boom")

// slowModel is a stub whose every solve takes delay unless ctx ends first.
type slowModel struct {
	*stubModel
	delay time.Duration
}

func (s slowModel) Solve(ctx context.Context) (float64, error) {
	select {
	case <-time.After(s.delay):
		return s.stubModel.Solve(ctx)
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %w", relax.ErrInterrupted, context.Cause(ctx))
	}
}
