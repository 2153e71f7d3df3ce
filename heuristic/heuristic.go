// Package heuristic finds a large clique quickly to seed the exact search
// with a good incumbent.
//
// FindClique runs several greedy passes and keeps the largest clique:
//
//   - degree order, always taking the first candidate;
//   - degree order, taking a uniform pick among the top-k candidates,
//     repeated for a number of trials;
//   - for each coloring strategy, vertices ordered by descending color
//     index, with the same randomized top-k pick and trial count.
//
// Every pass is the same procedure: pick a candidate, add it to the clique,
// keep only the candidates adjacent to it, repeat until none remain. A pass
// costs O(n·Δ); the whole heuristic is polynomial.
package heuristic

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/maxclique/core"
	"github.com/katalvlaran/maxclique/internal/rng"
)

// ErrNilGraph indicates FindClique was called with a nil graph.
var ErrNilGraph = errors.New("heuristic: graph is nil")

// FindClique returns the largest clique found by the greedy passes, as
// ascending vertex ids. An empty graph yields an empty clique. Ties between
// passes keep the earlier pass.
func FindClique(g *core.Graph, opts ...Option) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	r := rng.Or(cfg.rng)

	best := []int{}
	consider := func(pass string, c []int) {
		if len(c) > len(best) && core.IsClique(g, c) {
			best = c
			cfg.log.WithFields(logrus.Fields{"pass": pass, "size": len(c)}).Debug("heuristic improved")
		}
	}

	byDegree := g.VerticesByDegree()
	consider("degree", greedy(g, byDegree, 1, nil))
	for t := 0; t < cfg.trials; t++ {
		consider("degree-random", greedy(g, byDegree, cfg.topK, r))
	}

	for _, s := range cfg.strategies {
		colors, err := cfg.colorer.Color(g, s, r)
		if err != nil {
			return nil, fmt.Errorf("heuristic: coloring %s: %w", s, err)
		}
		order := byColorDesc(colors)
		for t := 0; t < cfg.trials; t++ {
			consider(string(s), greedy(g, order, cfg.topK, r))
		}
	}

	sort.Ints(best)

	return best, nil
}

// Solution converts a clique into a 1.0/0.0 vector of length n in vertex order.
func Solution(clique []int, n int) []float64 {
	return core.Indicator(clique, n)
}

// greedy grows a clique from order. With k == 1 (or r == nil) it always
// takes the first candidate; otherwise it picks uniformly among the first k.
func greedy(g *core.Graph, order []int, k int, r *rand.Rand) []int {
	cand := append([]int(nil), order...)
	clique := make([]int, 0)
	for len(cand) > 0 {
		idx := 0
		if k > 1 && r != nil {
			idx = r.Intn(min(k, len(cand)))
		}
		v := cand[idx]
		clique = append(clique, v)

		next := cand[:0]
		for i, u := range cand {
			if i != idx && g.HasEdge(u, v) {
				next = append(next, u)
			}
		}
		cand = next
	}

	return clique
}

// byColorDesc orders vertices by descending color index, ties by id.
func byColorDesc(colors map[int]int) []int {
	order := make([]int, 0, len(colors))
	for v := range colors {
		order = append(order, v)
	}
	sort.Slice(order, func(i, j int) bool {
		ci, cj := colors[order[i]], colors[order[j]]
		if ci != cj {
			return ci > cj
		}

		return order[i] < order[j]
	})

	return order
}
