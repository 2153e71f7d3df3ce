// Package relax: SimplexOracle, the pure-Go LP oracle behind the model.
//
// Rationale:
//  1. Fixings first. Branching equalities on a single column are substituted
//     out before the LP is assembled, so a node deep in the tree solves a
//     program with fewer columns than the root.
//  2. Presolve. A ≤ row whose coefficients are covered, column by column, by
//     another ≤ row with no larger right-hand side is implied by it (all
//     columns are non-negative) and is dropped. Independent-set cuts imply
//     every complement-edge row inside their set and the column bounds they
//     touch, so the clique LP usually loses most of its rows here.
//  3. Slack basis. Every ≤ row gets a slack. With non-negative right-hand
//     sides the slacks are a feasible starting basis and gonum skips phase one.
//  4. Interruption. gonum's lp.Simplex cannot be stopped mid-pivot. With a
//     cancellable context the pivoting runs on its own goroutine and Solve
//     returns ErrInterrupted as soon as the context ends; the abandoned
//     goroutine finishes its current solve and its answer is discarded.
//
// Complexity:
//   - Presolve: O(Σ_r |r| · k), k the shortest column list touched by row r.
//   - Simplex: each pivot factorizes an m×m basis, O(m³); the pivot count is
//     exponential in the worst case and small in practice.
//   - Memory: O(m·(n+m)) for the dense standard-form matrix.

package relax

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// DefaultSimplexTol is the pivot tolerance passed to lp.Simplex when
// SimplexOracle.Tol is zero.
const DefaultSimplexTol = 1e-10

// SimplexOracle solves continuous programs with gonum's simplex method.
//
// The general-form program is brought into the standard form gonum expects
// (minimize cᵀy, Ay = b, y ≥ 0):
//
//   - columns are shifted by their lower bounds, y_j = x_j − Lower[j];
//   - single-column equality rows fix their column, which is substituted
//     out of every other row (a branching constraint never reaches the LP);
//   - each ≤ row and each finite upper bound gets its own slack column.
//
// Every remaining row owns a slack, so A has full row rank by construction
// and, when all right-hand sides are non-negative, the slacks form a
// feasible starting basis.
type SimplexOracle struct {
	Tol float64
}

// NewSimplexOracle returns a SimplexOracle with DefaultSimplexTol.
func NewSimplexOracle() SimplexOracle {
	return SimplexOracle{Tol: DefaultSimplexTol}
}

type stdRow struct {
	cols  []int
	coefs []float64
	slack bool
	rhs   float64
}

// Solve implements Oracle.
func (o SimplexOracle) Solve(ctx context.Context, p *Program) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
	}
	if p == nil {
		return Solution{}, fmt.Errorf("%w: nil program", ErrMalformedProgram)
	}
	if err := p.Validate(); err != nil {
		return Solution{}, err
	}
	if p.Integer {
		return Solution{}, ErrIntegralityUnsupported
	}
	tol := o.Tol
	if tol <= 0 {
		tol = DefaultSimplexTol
	}

	n := p.NumVars()
	if n == 0 {
		return Solution{Objective: 0, X: []float64{}}, nil
	}

	fixed, fixing, err := collectFixings(p, tol)
	if err != nil {
		return Solution{}, err
	}

	// Column map: free columns are renumbered densely, fixed ones get -1.
	x := make([]float64, n)
	col := make([]int, n)
	free := 0
	for j := 0; j < n; j++ {
		if v, ok := fixed[j]; ok {
			x[j] = v
			col[j] = -1
			continue
		}
		x[j] = p.Lower[j]
		col[j] = free
		free++
	}

	rows := make([]stdRow, 0, len(p.Constraints)+free)
	for i, c := range p.Constraints {
		if fixing[i] {
			continue
		}
		r := stdRow{slack: c.Sense == LessEqual, rhs: c.RHS}
		for k, j := range c.Vars {
			r.rhs -= c.Coefs[k] * x[j]
			if col[j] >= 0 && c.Coefs[k] != 0 {
				r.cols = append(r.cols, col[j])
				r.coefs = append(r.coefs, c.Coefs[k])
			}
		}
		if len(r.cols) == 0 {
			// Row fully determined by the fixings.
			if (c.Sense == LessEqual && r.rhs < -tol) || (c.Sense == Equal && math.Abs(r.rhs) > tol) {
				return Solution{}, fmt.Errorf("%w: constraint %q", ErrInfeasible, c.Name)
			}
			continue
		}
		if r.rhs < -tol && allNonNegative(r.coefs) {
			return Solution{}, fmt.Errorf("%w: constraint %q", ErrInfeasible, c.Name)
		}
		rows = append(rows, r)
	}
	for j := 0; j < n; j++ {
		if col[j] < 0 || math.IsInf(p.Upper[j], 1) {
			continue
		}
		rows = append(rows, stdRow{
			cols:  []int{col[j]},
			coefs: []float64{1},
			slack: true,
			rhs:   p.Upper[j] - p.Lower[j],
		})
	}

	if free == 0 {
		return Solution{Objective: dot(p.Objective, x), X: x}, nil
	}
	if len(rows) == 0 {
		for j := 0; j < n; j++ {
			if col[j] >= 0 && p.Objective[j] > 0 {
				return Solution{}, ErrUnbounded
			}
		}
		return Solution{Objective: dot(p.Objective, x), X: x}, nil
	}

	rows = dropDominated(rows, free)
	y, err := o.solveStandard(ctx, p, rows, col, free, tol)
	if err != nil {
		return Solution{}, err
	}
	for j := 0; j < n; j++ {
		if col[j] >= 0 {
			x[j] = p.Lower[j] + y[col[j]]
		}
	}

	return Solution{Objective: dot(p.Objective, x), X: x}, nil
}

// solveStandard assembles A, b, c and calls lp.Simplex. It returns the
// values of the free columns.
func (o SimplexOracle) solveStandard(ctx context.Context, p *Program, rows []stdRow, col []int, free int, tol float64) ([]float64, error) {
	slacks := 0
	for _, r := range rows {
		if r.slack {
			slacks++
		}
	}
	m, cols := len(rows), free+slacks

	a := mat.NewDense(m, cols, nil)
	b := make([]float64, m)
	c := make([]float64, cols)
	for j, k := range col {
		if k >= 0 {
			c[k] = -p.Objective[j]
		}
	}

	basic := make([]int, 0, m)
	feasibleBasis := true
	next := free
	for i, r := range rows {
		for k, cj := range r.cols {
			a.Set(i, cj, a.At(i, cj)+r.coefs[k])
		}
		b[i] = r.rhs
		if !r.slack {
			feasibleBasis = false
			continue
		}
		a.Set(i, next, 1)
		basic = append(basic, next)
		next++
		if r.rhs < 0 {
			feasibleBasis = false
		}
	}

	var initial []int
	if feasibleBasis {
		initial = basic
	} else {
		// Phase one runs inside gonum; keep b non-negative for it.
		for i := range b {
			if b[i] < 0 {
				b[i] = -b[i]
				for j := 0; j < cols; j++ {
					a.Set(i, j, -a.At(i, j))
				}
			}
		}
	}

	y, err := pivot(ctx, c, a, b, tol, initial)
	switch {
	case err == nil:
		return y[:free], nil
	case errors.Is(err, ErrInterrupted):
		return nil, err
	case errors.Is(err, lp.ErrInfeasible):
		return nil, ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return nil, ErrUnbounded
	default:
		return nil, fmt.Errorf("relax: simplex: %w", err)
	}
}

// pivot runs lp.Simplex, on a separate goroutine when ctx can be canceled.
// The goroutine owns c, a and b once started.
func pivot(ctx context.Context, c []float64, a *mat.Dense, b []float64, tol float64, initial []int) ([]float64, error) {
	if ctx.Done() == nil {
		return simplex(c, a, b, tol, initial)
	}

	type answer struct {
		y   []float64
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		y, err := simplex(c, a, b, tol, initial)
		ch <- answer{y: y, err: err}
	}()

	select {
	case ans := <-ch:
		return ans.y, ans.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
	}
}

func simplex(c []float64, a *mat.Dense, b []float64, tol float64, initial []int) ([]float64, error) {
	_, y, err := lp.Simplex(c, a, b, tol, initial)
	if err != nil && initial != nil && !errors.Is(err, lp.ErrInfeasible) && !errors.Is(err, lp.ErrUnbounded) {
		// Degenerate pivoting from the slack basis can stall; retry with phase one.
		_, y, err = lp.Simplex(c, a, b, tol, nil)
	}

	return y, err
}

// dropDominated removes the ≤ rows implied by another ≤ row. Rows with a
// negative coefficient never imply or get implied. Of two identical rows the
// later one goes. Equality rows are kept as they are.
func dropDominated(rows []stdRow, free int) []stdRow {
	candidate := make([]bool, len(rows))
	dense := make([][]float64, len(rows))
	byCol := make([][]int, free)
	for i, r := range rows {
		if !r.slack || !allNonNegative(r.coefs) {
			continue
		}
		candidate[i] = true
		dense[i] = make([]float64, free)
		for k, j := range r.cols {
			dense[i][j] += r.coefs[k]
		}
		for j, v := range dense[i] {
			if v > 0 {
				byCol[j] = append(byCol[j], i)
			}
		}
	}

	covers := func(s, r int) bool {
		if rows[s].rhs > rows[r].rhs {
			return false
		}
		for _, j := range rows[r].cols {
			if dense[s][j] < dense[r][j] {
				return false
			}
		}
		return true
	}

	out := rows[:0:0]
	for r := range rows {
		if !candidate[r] || !implied(r, rows[r].cols, byCol, covers) {
			out = append(out, rows[r])
		}
	}

	return out
}

// implied reports whether some other row covers row r and wins the
// tie-break: a mutual cover (identical rows) only counts from an earlier row.
func implied(r int, cols []int, byCol [][]int, covers func(s, r int) bool) bool {
	shortest := -1
	for _, j := range cols {
		if shortest < 0 || len(byCol[j]) < len(byCol[shortest]) {
			shortest = j
		}
	}
	if shortest < 0 {
		return false
	}
	for _, s := range byCol[shortest] {
		if s != r && covers(s, r) && (s < r || !covers(r, s)) {
			return true
		}
	}

	return false
}

// collectFixings returns the value forced on each column by single-column
// equality rows, and marks those rows as consumed. Conflicting or
// out-of-bounds fixings are infeasible.
func collectFixings(p *Program, tol float64) (map[int]float64, []bool, error) {
	fixed := make(map[int]float64)
	consumed := make([]bool, len(p.Constraints))
	for i, c := range p.Constraints {
		if c.Sense != Equal || len(c.Vars) != 1 || c.Coefs[0] == 0 {
			continue
		}
		j, v := c.Vars[0], c.RHS/c.Coefs[0]
		if v < p.Lower[j]-tol || v > p.Upper[j]+tol {
			return nil, nil, fmt.Errorf("%w: constraint %q fixes column %d outside its bounds", ErrInfeasible, c.Name, j)
		}
		if prev, ok := fixed[j]; ok && math.Abs(prev-v) > tol {
			return nil, nil, fmt.Errorf("%w: constraint %q conflicts on column %d", ErrInfeasible, c.Name, j)
		}
		fixed[j] = v
		consumed[i] = true
	}

	return fixed, consumed, nil
}

func allNonNegative(a []float64) bool {
	for _, v := range a {
		if v < 0 {
			return false
		}
	}

	return true
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}
