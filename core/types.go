// Package core defines the undirected simple Graph the clique solver runs on,
// together with the sentinel errors for building and querying it.
//
// Vertices are the integers 1..n in insertion order. Edges are undirected,
// with no self-loops and no parallel edges. Adjacency is stored per vertex
// in a hash set, so HasEdge is O(1).
//
// Errors:
//
//	ErrNilGraph        - a nil *Graph was passed to a package function.
//	ErrVertexNotFound  - a vertex id outside 1..n was referenced.
//	ErrLoopNotAllowed  - an edge from a vertex to itself was requested.
//	ErrDuplicateEdge   - AddEdge was called twice for the same pair in strict mode.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrNilGraph indicates that a nil *Graph was supplied.
	ErrNilGraph = errors.New("core: graph is nil")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates a repeated edge in a graph built WithStrictEdges.
	ErrDuplicateEdge = errors.New("core: duplicate edge")
)

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithStrictEdges makes AddEdge reject an already present pair with
// ErrDuplicateEdge instead of treating it as a no-op.
func WithStrictEdges() GraphOption {
	return func(g *Graph) { g.strict = true }
}

// WithCapacity preallocates adjacency storage for n vertices.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.adjacency = make([]map[int]struct{}, 1, n+1)
		}
	}
}

// Graph is an undirected simple graph over the vertices 1..n.
//
// mu guards adjacency and edgeCount. adjacency[v] holds the neighbor set of
// vertex v; slot 0 is unused so that vertex ids index the slice directly.
type Graph struct {
	mu sync.RWMutex

	strict bool // reject duplicate edges

	adjacency []map[int]struct{}
	edgeCount int
}

// NewGraph creates an empty Graph with the given options.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	if g.adjacency == nil {
		g.adjacency = make([]map[int]struct{}, 1)
	}

	return g
}

// NewGraphN is shorthand for NewGraph followed by AddVertices(n).
func NewGraphN(n int, opts ...GraphOption) *Graph {
	g := NewGraph(append([]GraphOption{WithCapacity(n)}, opts...)...)
	g.AddVertices(n)

	return g
}

// Edge is an unordered vertex pair, normalized so that U < V.
type Edge struct {
	U, V int
}
