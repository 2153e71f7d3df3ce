package relax

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/maxclique/coloring"
	"github.com/katalvlaran/maxclique/core"
)

// IndependentSets collects the distinct color classes of size ≥ minSize
// over every strategy. Randomized strategies are run trials times with r;
// deterministic ones once. Each class is an independent set of g, so
// Σ x_v ≤ 1 over it is a valid clique cut.
//
// Sets are canonicalized by sorting their vertex ids and deduplicated on
// that tuple. The result is sorted lexicographically.
func IndependentSets(g *core.Graph, col coloring.Colorer, strategies []coloring.Strategy, trials, minSize int, r *rand.Rand) ([][]int, error) {
	if g == nil {
		return nil, core.ErrNilGraph
	}
	seen := make(map[string]struct{})
	var out [][]int

	for _, s := range strategies {
		runs := 1
		if s.IsRandomized() {
			runs = trials
		}
		for t := 0; t < runs; t++ {
			colors, err := col.Color(g, s, r)
			if err != nil {
				return nil, fmt.Errorf("relax: cuts with %s: %w", s, err)
			}
			for _, class := range coloring.Classes(colors) {
				if len(class) < minSize {
					continue
				}
				slices.Sort(class)
				key := tupleKey(class)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, class)
			}
		}
	}
	slices.SortFunc(out, func(a, b []int) int { return slices.Compare(a, b) })

	return out, nil
}

func tupleKey(vs []int) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}

	return sb.String()
}
