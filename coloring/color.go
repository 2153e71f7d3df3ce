package coloring

import (
	"fmt"
	"math/rand"
	"sort"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/coloring"

	"github.com/katalvlaran/maxclique/core"
)

// Color returns a proper coloring of g under strategy s.
//
// Errors:
//   - core.ErrNilGraph for a nil graph.
//   - ErrUnknownStrategy for an unsupported tag.
//   - ErrNeedRandSource for RandomSequential with a nil rng.
func Color(g *core.Graph, s Strategy, rng *rand.Rand) (map[int]int, error) {
	if g == nil {
		return nil, core.ErrNilGraph
	}
	if g.VertexCount() == 0 {
		if _, err := ParseStrategy(string(s)); err != nil {
			return nil, fmt.Errorf("coloring: %q: %w", s, err)
		}

		return map[int]int{}, nil
	}

	gg := view{g}
	var (
		colors map[int64]int
		err    error
	)
	switch s {
	case LargestFirst:
		_, colors, err = coloring.WelshPowell(gg, nil)
	case IndependentSet:
		_, colors = coloring.RecursiveLargestFirst(gg)
	case SaturationLargestFirst:
		_, colors, err = coloring.Dsatur(gg, nil)
	case RandomSequential:
		if rng == nil {
			return nil, fmt.Errorf("coloring: %q: %w", s, ErrNeedRandSource)
		}
		_, colors, err = coloring.Randomized(gg, nil, xrand.NewSource(uint64(rng.Int63())))
	case SmallestLast:
		return greedySequential(g, smallestLastOrder(gg)), nil
	case ConnectedSequentialBFS:
		return greedySequential(g, bfsOrder(gg)), nil
	case ConnectedSequentialDFS:
		return greedySequential(g, dfsOrder(gg)), nil
	default:
		return nil, fmt.Errorf("coloring: %q: %w", s, ErrUnknownStrategy)
	}
	if err != nil {
		return nil, fmt.Errorf("coloring: %q: %w", s, err)
	}

	return fromGonum(colors), nil
}

// greedySequential colors vertices in the given order, assigning each the
// smallest color not used by an already colored neighbor. gonum runs the same
// pass inside its colorings but does not export it for a caller-chosen order.
//
// Complexity: O(n + m).
func greedySequential(g *core.Graph, order []int) map[int]int {
	colors := make(map[int]int, len(order))
	used := make(map[int]bool)
	for _, v := range order {
		nbs, _ := g.Neighbors(v)
		clear(used)
		for _, u := range nbs {
			if c, ok := colors[u]; ok {
				used[c] = true
			}
		}
		c := 0
		for used[c] {
			c++
		}
		colors[v] = c
	}

	return colors
}

// Classes groups a coloring into its color classes. Classes are returned in
// ascending color order and each class lists vertices in ascending order.
func Classes(colors map[int]int) [][]int {
	asGonum := make(map[int64]int, len(colors))
	for v, c := range colors {
		asGonum[int64(v)] = c
	}
	sets := coloring.Sets(asGonum)

	keys := make([]int, 0, len(sets))
	for c := range sets {
		keys = append(keys, c)
	}
	sort.Ints(keys)

	out := make([][]int, 0, len(keys))
	for _, c := range keys {
		class := make([]int, 0, len(sets[c]))
		for _, id := range sets[c] {
			class = append(class, int(id))
		}
		sort.Ints(class)
		out = append(out, class)
	}

	return out
}

// IsProper reports whether colors assigns every vertex of g a color and no
// edge joins two vertices of the same color.
func IsProper(g *core.Graph, colors map[int]int) bool {
	for _, v := range g.Vertices() {
		if _, ok := colors[v]; !ok {
			return false
		}
	}
	for _, e := range g.Edges() {
		if colors[e.U] == colors[e.V] {
			return false
		}
	}

	return true
}

func fromGonum(colors map[int64]int) map[int]int {
	out := make(map[int]int, len(colors))
	for id, c := range colors {
		out[int(id)] = c
	}

	return out
}
