// File: clique.go
// Role: Clique validation and solution-vector decoding.

package core

import "math"

// IsClique reports whether vertices form a clique of g.
//
// It builds the induced subgraph on the given set and compares its edge
// count with k(k−1)/2, where k is the number of distinct known vertices.
// Any unknown id makes the set invalid. The empty set and singletons are
// cliques. IsClique is pure: it never mutates g.
//
// Complexity: O(k²) with O(1) adjacency tests.
func IsClique(g *Graph, vertices []int) bool {
	if g == nil {
		return false
	}
	for _, v := range vertices {
		if !g.HasVertex(v) {
			return false
		}
	}
	sub, mapping := InducedSubgraph(g, vertices)
	k := len(mapping)

	return sub.EdgeCount() == k*(k-1)/2
}

// SelectedVertices decodes a solution vector into the 1-based ids of every
// entry within tol of 1.
func SelectedVertices(solution []float64, tol float64) []int {
	out := make([]int, 0)
	for i, x := range solution {
		if math.Abs(x-1) <= tol {
			out = append(out, i+1)
		}
	}

	return out
}

// Indicator is the inverse of SelectedVertices: a vector of length n with
// 1.0 at every listed vertex and 0.0 elsewhere. Out-of-range ids are ignored.
func Indicator(vertices []int, n int) []float64 {
	out := make([]float64, n)
	for _, v := range vertices {
		if v >= 1 && v <= n {
			out[v-1] = 1
		}
	}

	return out
}
