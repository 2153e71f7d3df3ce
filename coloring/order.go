package coloring

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// bfsOrder returns a breadth-first visit order covering every component.
// Components start at their smallest unvisited vertex.
//
// Complexity: O(n + m).
func bfsOrder(g graph.Undirected) []int {
	order := make([]int, 0, g.Nodes().Len())
	var bf traverse.BreadthFirst
	bf.WalkAll(g, nil, nil, func(n graph.Node) { order = append(order, int(n.ID())) })

	return order
}

// dfsOrder returns a depth-first preorder covering every component.
//
// Complexity: O(n + m).
func dfsOrder(g graph.Undirected) []int {
	order := make([]int, 0, g.Nodes().Len())
	var df traverse.DepthFirst
	df.WalkAll(g, nil, nil, func(n graph.Node) { order = append(order, int(n.ID())) })

	return order
}

// smallestLastOrder repeatedly removes a minimum-degree vertex of the
// remaining graph; the order lists the last removed vertex first. gonum's
// degeneracy ordering is exactly that sequence.
//
// Complexity: O(n + m·Δ).
func smallestLastOrder(g graph.Undirected) []int {
	order, _ := topo.DegeneracyOrdering(g)

	return ids(order)
}
