// Package core provides the thread-safe, in-memory undirected Graph used by
// every maxclique package, plus the clique validator.
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Vertices are the integers 1..n. New vertices are appended with
//     AddVertex / AddVertices, so components built one after another stay
//     disjoint.
//   - Edges are undirected, loop-free and simple; AddEdge on an existing
//     pair is a no-op (or ErrDuplicateEdge with WithStrictEdges).
//   - Adjacency is a per-vertex hash set, so HasEdge is O(1), which keeps
//     clique validation O(k²).
//   - A single sync.RWMutex guards the graph; queries take the read lock.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex() int                 // O(1)
//	AddVertices(k int) int          // O(k)
//	HasVertex(v int) bool           // O(1)
//	Degree(v int) (int, error)      // O(1)
//
//	// Edge lifecycle
//	AddEdge(u, v int) error         // O(1)
//	HasEdge(u, v int) bool          // O(1)
//	Edges() []Edge                  // O(n + m log Δ)
//	ComplementEdges() []Edge        // O(n²)
//
//	// Views and validation
//	InducedSubgraph(g, keep)        // O(k²)
//	Complement(g)                   // O(n²)
//	IsClique(g, vertices) bool      // O(k²)
//	SelectedVertices(x, tol) []int  // O(n)
//
// Deterministic iteration: Vertices, Neighbors, Edges and ComplementEdges
// always return ascending ids.
package core
