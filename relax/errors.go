package relax

import "errors"

// Model errors.
var (
	// ErrModelNotBuilt indicates an operation on a Model before Build.
	ErrModelNotBuilt = errors.New("relax: model not built")

	// ErrConstraintNotFound indicates RemoveConstraint was given an unknown name.
	ErrConstraintNotFound = errors.New("relax: constraint not found")

	// ErrRelaxationInfeasible indicates the oracle found the current model infeasible.
	ErrRelaxationInfeasible = errors.New("relax: relaxation infeasible")

	// ErrDuplicateConstraint indicates a constraint name already held by the model.
	ErrDuplicateConstraint = errors.New("relax: duplicate constraint name")

	// ErrUnknownVariable indicates a variable name that does not belong to the model.
	ErrUnknownVariable = errors.New("relax: unknown variable")

	// ErrBadRHS indicates a branching right-hand side other than 0 or 1.
	ErrBadRHS = errors.New("relax: right-hand side must be 0 or 1")

	// ErrNotSolved indicates CurrentSolution before any successful Solve.
	ErrNotSolved = errors.New("relax: model not solved")
)

// Oracle errors.
var (
	// ErrInfeasible is returned by an Oracle when the program has no feasible point.
	ErrInfeasible = errors.New("relax: program infeasible")

	// ErrUnbounded is returned by an Oracle when the objective is unbounded.
	ErrUnbounded = errors.New("relax: program unbounded")

	// ErrIntegralityUnsupported is returned by an Oracle that cannot honor binary variables.
	ErrIntegralityUnsupported = errors.New("relax: integer variables not supported by oracle")

	// ErrMalformedProgram indicates inconsistent Program dimensions or indices.
	ErrMalformedProgram = errors.New("relax: malformed program")

	// ErrInterrupted is returned by an Oracle that gave up because its
	// context ended. The error also wraps the context's cause.
	ErrInterrupted = errors.New("relax: solve interrupted")
)
