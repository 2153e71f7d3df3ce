// Package coloring produces proper vertex colorings of a core.Graph under a
// named strategy. It is the coloring oracle used by the relaxation model
// (independent-set cuts) and by the greedy clique heuristic.
//
// Strategies backed by gonum.org/v1/gonum/graph/coloring:
//
//	LargestFirst            Welsh–Powell (greedy by descending degree)
//	IndependentSet          Recursive Largest First
//	SaturationLargestFirst  DSatur
//
// Strategies implemented here as greedy sequential coloring over an order:
//
//	RandomSequential        uniformly shuffled order (needs an rng)
//	SmallestLast            smallest-last degeneracy order
//	ConnectedSequentialBFS  breadth-first order per component
//	ConnectedSequentialDFS  depth-first order per component
//
// Colors are 0-based. Every coloring returned is proper.
package coloring

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/maxclique/core"
)

// Strategy names a coloring strategy. The string values double as config
// and CLI tags.
type Strategy string

// Supported strategies.
const (
	LargestFirst           Strategy = "largest_first"
	RandomSequential       Strategy = "random_sequential"
	SmallestLast           Strategy = "smallest_last"
	IndependentSet         Strategy = "independent_set"
	ConnectedSequentialBFS Strategy = "connected_sequential_bfs"
	ConnectedSequentialDFS Strategy = "connected_sequential_dfs"
	SaturationLargestFirst Strategy = "saturation_largest_first"
)

// Sentinel errors.
var (
	// ErrUnknownStrategy indicates an unsupported Strategy tag.
	ErrUnknownStrategy = errors.New("coloring: unknown strategy")

	// ErrNeedRandSource indicates RandomSequential was requested without an rng.
	ErrNeedRandSource = errors.New("coloring: rng is required")
)

// AllStrategies lists every supported strategy in a stable order.
func AllStrategies() []Strategy {
	return []Strategy{
		LargestFirst,
		RandomSequential,
		SmallestLast,
		IndependentSet,
		ConnectedSequentialBFS,
		ConnectedSequentialDFS,
		SaturationLargestFirst,
	}
}

// ParseStrategy validates a strategy tag.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range AllStrategies() {
		if string(st) == s {
			return st, nil
		}
	}

	return "", ErrUnknownStrategy
}

// IsRandomized reports whether the strategy consumes randomness, i.e.
// whether repeating it can yield different colorings.
func (s Strategy) IsRandomized() bool {
	return s == RandomSequential
}

// Colorer is the coloring oracle: it returns a proper coloring of g as a
// map vertex → color index. rng may be nil for deterministic strategies.
type Colorer interface {
	Color(g *core.Graph, s Strategy, rng *rand.Rand) (map[int]int, error)
}

// ColorerFunc adapts a function to the Colorer interface.
type ColorerFunc func(g *core.Graph, s Strategy, rng *rand.Rand) (map[int]int, error)

// Color implements Colorer.
func (f ColorerFunc) Color(g *core.Graph, s Strategy, rng *rand.Rand) (map[int]int, error) {
	return f(g, s, rng)
}

// Default is the package's own Colorer.
var Default Colorer = ColorerFunc(Color)
