// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns ids in ascending order (1..n).
//
// Concurrency:
//   - All methods take g.mu; queries use the read lock.

package core

import "sort"

// AddVertex appends a new isolated vertex and returns its id.
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.adjacency = append(g.adjacency, make(map[int]struct{}))

	return len(g.adjacency) - 1
}

// AddVertices appends k isolated vertices and returns the id of the first
// one, or 0 when k <= 0. The new ids are first..first+k-1.
//
// Complexity: O(k) amortized.
func (g *Graph) AddVertices(k int) int {
	if k <= 0 {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	first := len(g.adjacency)
	for i := 0; i < k; i++ {
		g.adjacency = append(g.adjacency, make(map[int]struct{}))
	}

	return first
}

// HasVertex reports whether v is a vertex of g.
func (g *Graph) HasVertex(v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasVertex(v)
}

// hasVertex is HasVertex without locking; callers hold g.mu.
func (g *Graph) hasVertex(v int) bool {
	return v >= 1 && v < len(g.adjacency)
}

// VertexCount returns n.
// Complexity: O(1).
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency) - 1
}

// Vertices returns 1..n in ascending order.
func (g *Graph) Vertices() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0, len(g.adjacency)-1)
	for v := 1; v < len(g.adjacency); v++ {
		out = append(out, v)
	}

	return out
}

// Degree returns the number of neighbors of v.
//
// Errors:
//   - ErrVertexNotFound if v is not in 1..n.
func (g *Graph) Degree(v int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasVertex(v) {
		return 0, ErrVertexNotFound
	}

	return len(g.adjacency[v]), nil
}

// Degrees returns deg(v) for every vertex, indexed by vertex id (slot 0 unused).
func (g *Graph) Degrees() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, len(g.adjacency))
	for v := 1; v < len(g.adjacency); v++ {
		out[v] = len(g.adjacency[v])
	}

	return out
}

// VerticesByDegree returns all vertices sorted by descending degree.
// Ties keep ascending id order so the result is deterministic.
func (g *Graph) VerticesByDegree() []int {
	deg := g.Degrees()
	vs := g.Vertices()
	sort.SliceStable(vs, func(i, j int) bool {
		return deg[vs[i]] > deg[vs[j]]
	})

	return vs
}
