// File: methods_adjacent.go
// Role: Neighborhood queries and the complement edge set.
// Determinism:
//   - Neighbors() and ComplementEdges() return ascending ids.

package core

import "sort"

// Neighbors returns the neighbors of v in ascending order.
//
// Errors:
//   - ErrVertexNotFound if v is not in 1..n.
//
// Complexity: O(d·log d).
func (g *Graph) Neighbors(v int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasVertex(v) {
		return nil, ErrVertexNotFound
	}

	return sortedKeys(g.adjacency[v]), nil
}

// NeighborSet returns a copy of the neighbor set of v, or nil for an
// unknown vertex. Useful for repeated membership tests.
func (g *Graph) NeighborSet(v int) map[int]struct{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasVertex(v) {
		return nil
	}
	out := make(map[int]struct{}, len(g.adjacency[v]))
	for u := range g.adjacency[v] {
		out[u] = struct{}{}
	}

	return out
}

// ComplementEdges returns every non-adjacent pair {i, j} with i < j, in
// lexicographic order. These are exactly the edges of the complement graph.
//
// Complexity: O(n²).
func (g *Graph) ComplementEdges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := len(g.adjacency) - 1
	out := make([]Edge, 0, n*(n-1)/2-g.edgeCount)
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if _, ok := g.adjacency[i][j]; !ok {
				out = append(out, Edge{U: i, V: j})
			}
		}
	}

	return out
}

// sortedKeys returns the keys of set in ascending order.
func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)

	return out
}
