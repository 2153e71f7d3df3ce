package relax_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxclique/builder"
	"github.com/katalvlaran/maxclique/coloring"
	"github.com/katalvlaran/maxclique/core"
	"github.com/katalvlaran/maxclique/relax"
)

func TestModel_NotBuilt(t *testing.T) {
	t.Parallel()

	m := relax.NewModel(relax.NewSimplexOracle())
	assert.False(t, m.Built())

	assert.ErrorIs(t, m.AddEqualityConstraint("x1", "b", 1), relax.ErrModelNotBuilt)
	assert.ErrorIs(t, m.RemoveConstraint("b"), relax.ErrModelNotBuilt)
	_, err := m.Solve(context.Background())
	assert.ErrorIs(t, err, relax.ErrModelNotBuilt)
	_, err = m.CurrentSolution()
	assert.ErrorIs(t, err, relax.ErrModelNotBuilt)
}

func TestModel_BuildNamesAndCounts(t *testing.T) {
	t.Parallel()

	// Empty(4): one cut {1,2,3,4} then six complement pairs.
	g := builder.MustBuild(nil, builder.Empty(4))
	m := relax.NewModel(relax.NewSimplexOracle(), relax.WithSeed(1))
	require.NoError(t, m.Build(g))

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, relax.Stats{Variables: 4, Cuts: 1, ComplementEdges: 6}, m.Stats())
	assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}, m.ConstraintNames())

	p := m.Program()
	require.Len(t, p.Constraints, 7)
	assert.Equal(t, []int{0, 1, 2, 3}, p.Constraints[0].Vars)
	assert.Equal(t, []int{0, 1}, p.Constraints[1].Vars)
	assert.Equal(t, []int{2, 3}, p.Constraints[6].Vars)
	assert.Equal(t, "x3", m.VariableName(3))
}

func TestModel_WithoutCutsOnlyComplementEdges(t *testing.T) {
	t.Parallel()

	g := builder.MustBuild(nil, builder.Cycle(5))
	m := relax.NewModel(relax.NewSimplexOracle(), relax.WithoutCuts())
	require.NoError(t, m.Build(g))
	assert.Equal(t, relax.Stats{Variables: 5, ComplementEdges: 5}, m.Stats())

	v, err := m.Solve(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-7)
}

func TestModel_SolveScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ctors []builder.Constructor
		want  float64
	}{
		{"K4 is integral at the root", []builder.Constructor{builder.Complete(4)}, 4},
		{"empty graph collapses to one cut", []builder.Constructor{builder.Empty(6)}, 1},
		{"single vertex", []builder.Constructor{builder.Complete(1)}, 1},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := builder.MustBuild(nil, tc.ctors...)
			m := relax.NewModel(relax.NewSimplexOracle(), relax.WithSeed(3))
			require.NoError(t, m.Build(g))
			v, err := m.Solve(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, tc.want, v, 1e-7)

			x, err := m.CurrentSolution()
			require.NoError(t, err)
			assert.Len(t, x, g.VertexCount())
		})
	}
}

func TestModel_EqualityConstraintLifecycle(t *testing.T) {
	t.Parallel()

	g := builder.MustBuild(nil, builder.Cycle(5))
	m := relax.NewModel(relax.NewSimplexOracle())
	require.NoError(t, m.Build(g))

	before := m.ConstraintNames()
	beforeProgram := m.Program()

	require.NoError(t, m.AddEqualityConstraint("x1", "C1_branch1_x0", 1))
	assert.True(t, m.HasConstraint("C1_branch1_x0"))
	assert.Equal(t, 1, m.Stats().Branching)

	v, err := m.Solve(context.Background())
	require.NoError(t, err)
	// x1 = 1 forces x3 = x4 = 0; best is x1 + one of its neighbors.
	assert.InDelta(t, 2.0, v, 1e-7)
	x, err := m.CurrentSolution()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x[0], 1e-9)

	require.NoError(t, m.RemoveConstraint("C1_branch1_x0"))
	assert.False(t, m.HasConstraint("C1_branch1_x0"))
	assert.Equal(t, before, m.ConstraintNames())
	assert.Empty(t, cmp.Diff(beforeProgram, m.Program()))
	assert.Zero(t, m.Stats().Branching)
}

func TestModel_AddErrors(t *testing.T) {
	t.Parallel()

	g := builder.MustBuild(nil, builder.Path(3))
	m := relax.NewModel(relax.NewSimplexOracle())
	require.NoError(t, m.Build(g))

	assert.ErrorIs(t, m.AddEqualityConstraint("x9", "b", 1), relax.ErrUnknownVariable)
	assert.ErrorIs(t, m.AddEqualityConstraint("y1", "b", 1), relax.ErrUnknownVariable)
	assert.ErrorIs(t, m.AddEqualityConstraint("x01", "b", 1), relax.ErrUnknownVariable)
	assert.ErrorIs(t, m.AddEqualityConstraint("x1", "b", 0.5), relax.ErrBadRHS)
	assert.ErrorIs(t, m.AddEqualityConstraint("x1", "c1", 1), relax.ErrDuplicateConstraint)

	require.NoError(t, m.AddEqualityConstraint("x1", "b", 1))
	assert.ErrorIs(t, m.AddEqualityConstraint("x2", "b", 0), relax.ErrDuplicateConstraint)
	assert.ErrorIs(t, m.RemoveConstraint("nope"), relax.ErrConstraintNotFound)
}

func TestModel_ContradictoryFixingsAreInfeasible(t *testing.T) {
	t.Parallel()

	g := builder.MustBuild(nil, builder.Empty(2))
	m := relax.NewModel(relax.NewSimplexOracle())
	require.NoError(t, m.Build(g))
	require.NoError(t, m.AddEqualityConstraint("x1", "a", 1))
	require.NoError(t, m.AddEqualityConstraint("x2", "b", 1))

	_, err := m.Solve(context.Background())
	assert.ErrorIs(t, err, relax.ErrRelaxationInfeasible)
}

func TestModel_OracleFailures(t *testing.T) {
	t.Parallel()

	g := builder.MustBuild(nil, builder.Complete(3))
	boom := errors.New("boom")

	m := relax.NewModel(relax.OracleFunc(func(context.Context, *relax.Program) (relax.Solution, error) {
		return relax.Solution{}, boom
	}))
	require.NoError(t, m.Build(g))
	_, err := m.Solve(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, relax.ErrRelaxationInfeasible)
	_, err = m.CurrentSolution()
	assert.ErrorIs(t, err, relax.ErrNotSolved)

	short := relax.NewModel(relax.OracleFunc(func(context.Context, *relax.Program) (relax.Solution, error) {
		return relax.Solution{Objective: 1, X: []float64{1}}, nil
	}))
	require.NoError(t, short.Build(g))
	_, err = short.Solve(context.Background())
	assert.ErrorIs(t, err, relax.ErrMalformedProgram)
}

func TestModel_IntegerModeNeedsIntegerOracle(t *testing.T) {
	t.Parallel()

	g := builder.MustBuild(nil, builder.Complete(3))
	m := relax.NewModel(relax.NewSimplexOracle(), relax.WithIntegerVariables())
	require.NoError(t, m.Build(g))
	assert.True(t, m.Program().Integer)

	_, err := m.Solve(context.Background())
	assert.ErrorIs(t, err, relax.ErrIntegralityUnsupported)
}

func TestModel_BuildErrors(t *testing.T) {
	t.Parallel()

	m := relax.NewModel(relax.NewSimplexOracle())
	assert.ErrorIs(t, m.Build(nil), core.ErrNilGraph)

	failing := relax.NewModel(relax.NewSimplexOracle(),
		relax.WithColorer(coloring.ColorerFunc(func(*core.Graph, coloring.Strategy, *rand.Rand) (map[int]int, error) {
			return nil, coloring.ErrUnknownStrategy
		})))
	assert.ErrorIs(t, failing.Build(builder.MustBuild(nil, builder.Empty(3))), coloring.ErrUnknownStrategy)

	assert.Panics(t, func() { relax.NewModel(nil) })
	assert.Panics(t, func() { relax.WithCutTrials(0) })
	assert.Panics(t, func() { relax.WithMinCutSize(1) })
	assert.Panics(t, func() { relax.WithCutStrategies() })
	assert.Panics(t, func() { relax.WithColorer(nil) })
	assert.Panics(t, func() { relax.WithLogger(nil) })
}

func TestIndependentSets(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(1))

	// Every strategy yields the same single class on an edgeless graph.
	sets, err := relax.IndependentSets(builder.MustBuild(nil, builder.Empty(5)), coloring.Default, relax.DefaultCutStrategies, 5, 3, r)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, sets)

	// Complete graphs have no independent set of size ≥ 2.
	sets, err = relax.IndependentSets(builder.MustBuild(nil, builder.Complete(6)), coloring.Default, relax.DefaultCutStrategies, 5, 2, r)
	require.NoError(t, err)
	assert.Empty(t, sets)

	// Star(4): the four leaves form the only class of size ≥ 3.
	sets, err = relax.IndependentSets(builder.MustBuild(nil, builder.Star(4)), coloring.Default, relax.DefaultCutStrategies, 5, 3, r)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 3, 4, 5}}, sets)

	_, err = relax.IndependentSets(nil, coloring.Default, relax.DefaultCutStrategies, 1, 3, r)
	assert.ErrorIs(t, err, core.ErrNilGraph)
}

func TestIndependentSets_SortedAndIndependent(t *testing.T) {
	t.Parallel()

	g := builder.MustBuild([]builder.BuilderOption{builder.WithSeed(5)}, builder.RandomSparse(25, 0.2))
	sets, err := relax.IndependentSets(g, coloring.Default, relax.DefaultCutStrategies, 10, 3, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, s := range sets {
		assert.GreaterOrEqual(t, len(s), 3)
		for a := 0; a < len(s); a++ {
			for b := a + 1; b < len(s); b++ {
				assert.Less(t, s[a], s[b])
				assert.False(t, g.HasEdge(s[a], s[b]))
			}
		}
		key := fmt.Sprint(s)
		assert.False(t, seen[key], "duplicate set %v", s)
		seen[key] = true
		if i > 0 {
			assert.False(t, cmp.Equal(sets[i-1], s))
		}
	}
}

func TestModel_InterruptedSolveKeepsLastSolution(t *testing.T) {
	t.Parallel()

	m := relax.NewModel(relax.NewSimplexOracle(), relax.WithSeed(1))
	require.NoError(t, m.Build(builder.MustBuild(nil, builder.Cycle(5))))
	v, err := m.Solve(context.Background())
	require.NoError(t, err)
	before, err := m.CurrentSolution()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Solve(ctx)
	assert.ErrorIs(t, err, relax.ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)

	after, err := m.CurrentSolution()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.InDelta(t, 2.5, v, 1e-9)
}
