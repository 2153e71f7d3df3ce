// File: view.go
// Role: Non-mutating graph views.
// Determinism:
//   - InducedSubgraph renumbers kept vertices 1..k in ascending original id order.
// Concurrency:
//   - Read lock on the source; the result is a fresh graph instance.

package core

import "sort"

// InducedSubgraph returns the subgraph of g induced by keep, together with
// the original id of every new vertex (mapping[i-1] is the source id of
// vertex i). Duplicate and unknown ids in keep are ignored. The input graph
// is not mutated.
//
// Complexity: O(k²) with O(1) adjacency.
func InducedSubgraph(g *Graph, keep []int) (*Graph, []int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	mapping := make([]int, 0, len(keep))
	seen := make(map[int]struct{}, len(keep))
	for _, v := range keep {
		if !g.hasVertex(v) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		mapping = append(mapping, v)
	}
	sort.Ints(mapping)

	out := NewGraphN(len(mapping))
	for i := 0; i < len(mapping); i++ {
		for j := i + 1; j < len(mapping); j++ {
			if g.hasEdge(mapping[i], mapping[j]) {
				// Both endpoints are in range by construction.
				out.adjacency[i+1][j+1] = struct{}{}
				out.adjacency[j+1][i+1] = struct{}{}
				out.edgeCount++
			}
		}
	}

	return out, mapping
}

// Complement returns the complement graph of g on the same vertex ids.
func Complement(g *Graph) *Graph {
	out := NewGraphN(g.VertexCount())
	for _, e := range g.ComplementEdges() {
		out.adjacency[e.U][e.V] = struct{}{}
		out.adjacency[e.V][e.U] = struct{}{}
		out.edgeCount++
	}

	return out
}
