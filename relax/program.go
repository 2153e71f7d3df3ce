package relax

import (
	"context"
	"fmt"
	"math"
)

// Sense is the relation of a linear constraint.
type Sense int8

const (
	// LessEqual is Σ a_j x_j ≤ rhs.
	LessEqual Sense = iota
	// Equal is Σ a_j x_j = rhs.
	Equal
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Sense(%d)", int8(s))
	}
}

// Constraint is one named linear row. Vars holds 0-based column indices and
// Coefs the matching coefficients.
type Constraint struct {
	Name  string
	Vars  []int
	Coefs []float64
	Sense Sense
	RHS   float64
}

// Program is a linear program in general form:
//
//	maximize   Σ Objective[j]·x_j
//	subject to every Constraint
//	           Lower[j] ≤ x_j ≤ Upper[j]
//
// Integer marks every variable binary. Upper may be +Inf; Lower must be finite.
type Program struct {
	Objective   []float64
	Lower       []float64
	Upper       []float64
	Integer     bool
	Constraints []Constraint
}

// NumVars returns the number of columns.
func (p *Program) NumVars() int { return len(p.Objective) }

// Validate checks dimensions, index ranges and bound consistency.
func (p *Program) Validate() error {
	n := p.NumVars()
	if len(p.Lower) != n || len(p.Upper) != n {
		return fmt.Errorf("%w: bounds length %d/%d, want %d", ErrMalformedProgram, len(p.Lower), len(p.Upper), n)
	}
	for j := 0; j < n; j++ {
		if math.IsInf(p.Lower[j], 0) || math.IsNaN(p.Lower[j]) || math.IsNaN(p.Upper[j]) {
			return fmt.Errorf("%w: bad bounds on column %d", ErrMalformedProgram, j)
		}
		if p.Upper[j] < p.Lower[j] {
			return fmt.Errorf("%w: column %d has upper < lower", ErrInfeasible, j)
		}
	}
	for _, c := range p.Constraints {
		if len(c.Vars) == 0 || len(c.Vars) != len(c.Coefs) {
			return fmt.Errorf("%w: constraint %q has %d vars, %d coefs", ErrMalformedProgram, c.Name, len(c.Vars), len(c.Coefs))
		}
		for _, j := range c.Vars {
			if j < 0 || j >= n {
				return fmt.Errorf("%w: constraint %q references column %d", ErrMalformedProgram, c.Name, j)
			}
		}
		if c.Sense != LessEqual && c.Sense != Equal {
			return fmt.Errorf("%w: constraint %q has %v", ErrMalformedProgram, c.Name, c.Sense)
		}
	}

	return nil
}

// Solution is an oracle's answer: the optimal objective value and the point
// attaining it, one entry per column.
type Solution struct {
	Objective float64
	X         []float64
}

// Oracle solves a Program. Implementations report infeasibility with an
// error matching ErrInfeasible, and return an error matching ErrInterrupted
// once ctx ends mid-solve.
type Oracle interface {
	Solve(ctx context.Context, p *Program) (Solution, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, p *Program) (Solution, error)

// Solve implements Oracle.
func (f OracleFunc) Solve(ctx context.Context, p *Program) (Solution, error) { return f(ctx, p) }
