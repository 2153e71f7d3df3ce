// Package builder provides deterministic, composable graph constructors for
// fixtures, benchmarks and the `generate` command.
//
// Every Constructor appends fresh vertices to the graph under construction,
// so a BuildGraph call with several constructors produces their disjoint
// union:
//
//	g, err := builder.BuildGraph(nil, builder.Complete(3), builder.Complete(3))
//	// two disjoint triangles on vertices 1..6
//
// Constructors:
//
//   - Complete(n)         K_n,            O(n²)
//   - Empty(n)            n isolated,     O(n)
//   - Cycle(n)            C_n, n ≥ 3,     O(n)
//   - Path(n)             P_n,            O(n)
//   - Star(k)             K_{1,k},        O(k)
//   - RandomSparse(n, p)  G(n,p),         O(n²), needs WithSeed/WithRand for 0<p<1
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Sentinel errors wrapped with constructor context for invalid build parameters.
//   - Same seed and constructor order ⇒ identical graph.
package builder
