// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns pairs sorted by (U, V) ascending with U < V.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import "fmt"

// AddEdge inserts the undirected edge {u, v}.
//
// Adding an existing edge is a no-op unless the graph was built
// WithStrictEdges, in which case ErrDuplicateEdge is returned.
//
// Errors:
//   - ErrVertexNotFound if u or v is outside 1..n.
//   - ErrLoopNotAllowed if u == v.
//   - ErrDuplicateEdge (strict mode only).
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v int) error {
	if u == v {
		return fmt.Errorf("core: AddEdge(%d,%d): %w", u, v, ErrLoopNotAllowed)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasVertex(u) || !g.hasVertex(v) {
		return fmt.Errorf("core: AddEdge(%d,%d): %w", u, v, ErrVertexNotFound)
	}
	if _, ok := g.adjacency[u][v]; ok {
		if g.strict {
			return fmt.Errorf("core: AddEdge(%d,%d): %w", u, v, ErrDuplicateEdge)
		}

		return nil
	}
	g.adjacency[u][v] = struct{}{}
	g.adjacency[v][u] = struct{}{}
	g.edgeCount++

	return nil
}

// HasEdge reports whether {u, v} is an edge. Unknown vertices yield false.
// Complexity: O(1).
func (g *Graph) HasEdge(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasEdge(u, v)
}

// hasEdge is HasEdge without locking; callers hold g.mu.
func (g *Graph) hasEdge(u, v int) bool {
	if !g.hasVertex(u) || !g.hasVertex(v) {
		return false
	}
	_, ok := g.adjacency[u][v]

	return ok
}

// EdgeCount returns |E|.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Edges returns every edge once, normalized to U < V, in ascending order.
// Complexity: O(n²) worst case (scan of the upper triangle by adjacency).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	for u := 1; u < len(g.adjacency); u++ {
		for _, v := range sortedKeys(g.adjacency[u]) {
			if v > u {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}

	return out
}
