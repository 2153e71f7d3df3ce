package bnb

import "time"

// Result is the outcome of Run. On timeout or cancellation it holds the best
// clique found before the search stopped.
type Result struct {
	// Clique lists the incumbent's vertices in ascending order.
	Clique []int
	// Value is the incumbent size, len(Clique).
	Value int
	// Solution is the incumbent as a 0/1 vector in vertex order.
	Solution []float64
	// TimedOut is set when the time limit stopped the search.
	TimedOut bool
	Stats    Stats
}

// Stats are search diagnostics.
type Stats struct {
	Calls            int
	MaxDepth         int
	BoundPrunes      int
	InfeasiblePrunes int
	NonCliqueLeaves  int
	IncumbentUpdates int
	Elapsed          time.Duration
}

// NodeOutcome classifies how a search node ended.
type NodeOutcome uint8

// Node outcomes.
const (
	NodeInfeasible NodeOutcome = iota
	NodeBoundPruned
	NodeNonClique
	NodeIncumbent
	NodeIntegral // integral clique that does not beat the incumbent
	NodeBranched
	NodeExhausted // no unconstrained vertex left to branch on
	NodeAborted   // time limit or cancellation
)

var nodeOutcomeNames = [...]string{
	"infeasible", "bound", "non_clique", "incumbent", "integral", "branched", "exhausted", "aborted",
}

// String implements fmt.Stringer.
func (o NodeOutcome) String() string {
	if int(o) < len(nodeOutcomeNames) {
		return nodeOutcomeNames[o]
	}

	return "unknown"
}

// NodeEvent describes one visited node.
type NodeEvent struct {
	Call        int
	Depth       int
	Objective   float64 // zero for infeasible nodes
	Incumbent   int     // incumbent value when the node was classified
	Constrained int     // active branching constraints
	Outcome     NodeOutcome
}

// IncumbentEvent describes an incumbent improvement.
type IncumbentEvent struct {
	Call     int
	Previous int
	Value    int
	Clique   []int
	// Bounds holds the relaxation values from the root down to the node
	// that produced the clique.
	Bounds []float64
}

// Observer receives search callbacks synchronously from the search goroutine.
type Observer interface {
	OnNode(NodeEvent)
	OnIncumbent(IncumbentEvent)
}

// ObserverFuncs adapts optional functions to Observer.
type ObserverFuncs struct {
	Node      func(NodeEvent)
	Incumbent func(IncumbentEvent)
}

// OnNode implements Observer.
func (f ObserverFuncs) OnNode(e NodeEvent) {
	if f.Node != nil {
		f.Node(e)
	}
}

// OnIncumbent implements Observer.
func (f ObserverFuncs) OnIncumbent(e IncumbentEvent) {
	if f.Incumbent != nil {
		f.Incumbent(e)
	}
}

type nopObserver struct{}

func (nopObserver) OnNode(NodeEvent)           {}
func (nopObserver) OnIncumbent(IncumbentEvent) {}
