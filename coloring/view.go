package coloring

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/maxclique/core"
)

// view exposes a core.Graph as a gonum graph.Undirected with node id equal
// to vertex id. Nodes and neighbors iterate in ascending id order, so every
// gonum algorithm run over a view visits vertices in the same order on
// every call.
type view struct{ g *core.Graph }

var _ graph.Undirected = view{}

func (v view) Node(id int64) graph.Node {
	if !v.g.HasVertex(int(id)) {
		return nil
	}

	return simple.Node(id)
}

func (v view) Nodes() graph.Nodes { return orderedNodes(v.g.Vertices()) }

func (v view) From(id int64) graph.Nodes {
	nbs, err := v.g.Neighbors(int(id))
	if err != nil || len(nbs) == 0 {
		return graph.Empty
	}

	return orderedNodes(nbs)
}

func (v view) HasEdgeBetween(xid, yid int64) bool { return v.g.HasEdge(int(xid), int(yid)) }

func (v view) Edge(uid, vid int64) graph.Edge { return v.EdgeBetween(uid, vid) }

func (v view) EdgeBetween(xid, yid int64) graph.Edge {
	if !v.g.HasEdge(int(xid), int(yid)) {
		return nil
	}

	return simple.Edge{F: simple.Node(xid), T: simple.Node(yid)}
}

func orderedNodes(ids []int) graph.Nodes {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = simple.Node(id)
	}

	return iterator.NewOrderedNodes(nodes)
}

// ids flattens gonum nodes back to vertex ids, keeping their order.
func ids(nodes []graph.Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = int(n.ID())
	}

	return out
}
