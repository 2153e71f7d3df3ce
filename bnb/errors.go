package bnb

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors.
var (
	// ErrSearchTimedOut indicates the configured time limit elapsed. The
	// concrete error is a *TimeoutError carrying the incumbent.
	ErrSearchTimedOut = errors.New("bnb: search timed out")

	// ErrNilModel indicates New was given a nil Relaxation.
	ErrNilModel = errors.New("bnb: relaxation model is nil")

	// ErrNilGraph indicates New was given a nil graph.
	ErrNilGraph = errors.New("bnb: graph is nil")

	// ErrBadInitialSolution indicates an initial vector of the wrong length,
	// with fractional entries, or not describing a clique.
	ErrBadInitialSolution = errors.New("bnb: initial solution is not an integral clique")

	// ErrInvariantViolated indicates a branching constraint could not be
	// added or removed: add/remove pairing is broken.
	ErrInvariantViolated = errors.New("bnb: search invariant violated")
)

// TimeoutError is returned by Run when the time limit elapses. The best
// clique found so far is preserved in it and in the accompanying Result.
type TimeoutError struct {
	Incumbent []int
	Value     int
	Elapsed   time.Duration
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("bnb: search timed out after %s with incumbent of size %d", e.Elapsed, e.Value)
}

// Is makes errors.Is(err, ErrSearchTimedOut) succeed.
func (e *TimeoutError) Is(target error) bool { return target == ErrSearchTimedOut }
