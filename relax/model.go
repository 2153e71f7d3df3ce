package relax

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/maxclique/core"
	"github.com/katalvlaran/maxclique/internal/rng"
)

type rowKind uint8

const (
	kindCut rowKind = iota
	kindComplement
	kindBranching
)

// Stats counts the constraints a Model currently holds, by kind.
type Stats struct {
	Variables       int
	Cuts            int
	ComplementEdges int
	Branching       int
}

// Model is the clique relaxation of a graph: one variable x<v> ∈ [0,1] per
// vertex, maximize Σ x_v, subject to independent-set cuts, complement-edge
// constraints and any branching equalities currently added.
//
// A Model is not safe for concurrent use.
type Model struct {
	oracle Oracle
	cfg    modelConfig

	built bool
	n     int

	// rows holds constraints in insertion order, kinds runs parallel to it
	// and index maps name → position.
	rows  []Constraint
	kinds []rowKind
	index map[string]int

	cuts, complement, branching int

	solved   bool
	solution []float64
}

// NewModel returns an unbuilt Model that solves through oracle.
// Panics if oracle is nil.
func NewModel(oracle Oracle, opts ...ModelOption) *Model {
	if oracle == nil {
		panic("relax: NewModel(nil oracle)")
	}
	cfg := defaultModelConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Model{oracle: oracle, cfg: cfg}
}

// Build formulates the relaxation for g, discarding any previous state.
//
// Constraints are named c1..cm: independent-set cuts first (in the order
// IndependentSets returns them), then one complement-edge constraint per
// non-adjacent pair i<j in lexicographic order. Complement edges are always
// emitted, even when a cut already covers the pair.
func (m *Model) Build(g *core.Graph) error {
	if g == nil {
		return fmt.Errorf("relax: Build: %w", core.ErrNilGraph)
	}

	var sets [][]int
	if m.cfg.cuts {
		var err error
		sets, err = IndependentSets(g, m.cfg.colorer, m.cfg.strategies, m.cfg.trials, m.cfg.minSize, rng.Or(m.cfg.rng))
		if err != nil {
			return fmt.Errorf("relax: Build: %w", err)
		}
	}
	nonEdges := g.ComplementEdges()

	m.n = g.VertexCount()
	m.rows = make([]Constraint, 0, len(sets)+len(nonEdges))
	m.kinds = make([]rowKind, 0, cap(m.rows))
	m.index = make(map[string]int, cap(m.rows))
	m.cuts, m.complement, m.branching = len(sets), len(nonEdges), 0
	m.solved, m.solution = false, nil

	for _, set := range sets {
		vars := make([]int, len(set))
		for i, v := range set {
			vars[i] = v - 1
		}
		m.push(Constraint{Vars: vars, Coefs: ones(len(vars)), Sense: LessEqual, RHS: 1}, kindCut)
	}
	for _, e := range nonEdges {
		m.push(Constraint{Vars: []int{e.U - 1, e.V - 1}, Coefs: ones(2), Sense: LessEqual, RHS: 1}, kindComplement)
	}
	m.built = true

	m.cfg.log.WithFields(logrus.Fields{
		"vertices":   m.n,
		"cuts":       m.cuts,
		"complement": m.complement,
		"integer":    m.cfg.integer,
	}).Debug("relaxation model built")

	return nil
}

// push appends a build-time constraint named c<k>.
func (m *Model) push(c Constraint, kind rowKind) {
	c.Name = "c" + strconv.Itoa(len(m.rows)+1)
	m.index[c.Name] = len(m.rows)
	m.rows = append(m.rows, c)
	m.kinds = append(m.kinds, kind)
}

// VariableName returns the name of vertex v's variable.
func (m *Model) VariableName(v int) string { return "x" + strconv.Itoa(v) }

// variableIndex parses a variable name back into a 0-based column.
func (m *Model) variableIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, "x") {
		return 0, false
	}
	v, err := strconv.Atoi(name[1:])
	if err != nil || v < 1 || v > m.n || m.VariableName(v) != name {
		return 0, false
	}

	return v - 1, true
}

// AddEqualityConstraint adds varName = rhs under the given unique name.
//
// Errors: ErrModelNotBuilt, ErrUnknownVariable, ErrDuplicateConstraint,
// ErrBadRHS (rhs must be 0 or 1).
func (m *Model) AddEqualityConstraint(varName, name string, rhs float64) error {
	if !m.built {
		return fmt.Errorf("relax: add %q: %w", name, ErrModelNotBuilt)
	}
	j, ok := m.variableIndex(varName)
	if !ok {
		return fmt.Errorf("relax: add %q on %q: %w", name, varName, ErrUnknownVariable)
	}
	if rhs != 0 && rhs != 1 {
		return fmt.Errorf("relax: add %q = %v: %w", name, rhs, ErrBadRHS)
	}
	if _, dup := m.index[name]; dup {
		return fmt.Errorf("relax: add %q: %w", name, ErrDuplicateConstraint)
	}

	m.index[name] = len(m.rows)
	m.rows = append(m.rows, Constraint{Name: name, Vars: []int{j}, Coefs: ones(1), Sense: Equal, RHS: rhs})
	m.kinds = append(m.kinds, kindBranching)
	m.branching++

	return nil
}

// RemoveConstraint deletes the named constraint. The relative order of the
// remaining constraints is preserved, so removing the most recent addition
// restores the model exactly. Removing the last row is O(1).
//
// Errors: ErrModelNotBuilt, ErrConstraintNotFound.
func (m *Model) RemoveConstraint(name string) error {
	if !m.built {
		return fmt.Errorf("relax: remove %q: %w", name, ErrModelNotBuilt)
	}
	pos, ok := m.index[name]
	if !ok {
		return fmt.Errorf("relax: remove %q: %w", name, ErrConstraintNotFound)
	}

	kind := m.kinds[pos]
	delete(m.index, name)
	m.rows = append(m.rows[:pos], m.rows[pos+1:]...)
	m.kinds = append(m.kinds[:pos], m.kinds[pos+1:]...)
	for i := pos; i < len(m.rows); i++ {
		m.index[m.rows[i].Name] = i
	}

	switch kind {
	case kindBranching:
		m.branching--
	case kindComplement:
		m.complement--
	default:
		m.cuts--
	}

	return nil
}

// Solve runs the oracle on the current program and stores its solution.
// ctx bounds the oracle call; an interrupted solve leaves the previous
// solution in place.
//
// Errors: ErrModelNotBuilt; ErrRelaxationInfeasible when the oracle reports
// infeasibility; ErrInterrupted when ctx ended first; any other oracle error
// is wrapped.
func (m *Model) Solve(ctx context.Context) (float64, error) {
	if !m.built {
		return 0, fmt.Errorf("relax: solve: %w", ErrModelNotBuilt)
	}
	sol, err := m.oracle.Solve(ctx, m.Program())
	if err != nil {
		if errors.Is(err, ErrInfeasible) {
			return 0, fmt.Errorf("relax: solve: %w", ErrRelaxationInfeasible)
		}
		return 0, fmt.Errorf("relax: solve: %w", err)
	}
	if len(sol.X) != m.n || math.IsNaN(sol.Objective) {
		return 0, fmt.Errorf("relax: solve: %w: oracle returned %d values for %d variables", ErrMalformedProgram, len(sol.X), m.n)
	}

	m.solution = append(m.solution[:0], sol.X...)
	m.solved = true

	return sol.Objective, nil
}

// CurrentSolution returns a copy of the last solution, in vertex order.
func (m *Model) CurrentSolution() ([]float64, error) {
	if !m.built {
		return nil, fmt.Errorf("relax: solution: %w", ErrModelNotBuilt)
	}
	if !m.solved {
		return nil, fmt.Errorf("relax: solution: %w", ErrNotSolved)
	}

	return append([]float64(nil), m.solution...), nil
}

// Program returns the current linear program. Constraint slices are shared
// with the model and must not be modified.
func (m *Model) Program() *Program {
	p := &Program{
		Objective:   ones(m.n),
		Lower:       make([]float64, m.n),
		Upper:       ones(m.n),
		Integer:     m.cfg.integer,
		Constraints: append([]Constraint(nil), m.rows...),
	}

	return p
}

// VertexCount returns the number of variables.
func (m *Model) VertexCount() int { return m.n }

// ConstraintCount returns the number of constraints currently held.
func (m *Model) ConstraintCount() int { return len(m.rows) }

// HasConstraint reports whether a constraint with this name is held.
func (m *Model) HasConstraint(name string) bool {
	_, ok := m.index[name]

	return ok
}

// ConstraintNames lists held constraint names in insertion order.
func (m *Model) ConstraintNames() []string {
	out := make([]string, len(m.rows))
	for i, c := range m.rows {
		out[i] = c.Name
	}

	return out
}

// Stats returns the current constraint counts.
func (m *Model) Stats() Stats {
	return Stats{Variables: m.n, Cuts: m.cuts, ComplementEdges: m.complement, Branching: m.branching}
}

// Built reports whether Build has completed.
func (m *Model) Built() bool { return m.built }

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
