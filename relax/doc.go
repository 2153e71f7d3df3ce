// Package relax formulates the linear relaxation of the maximum-clique
// integer program and solves it through an Oracle.
//
// For a graph with vertices 1..n the Model holds
//
//	maximize    Σ x_v
//	subject to  Σ_{v∈S} x_v ≤ 1     for each independent-set cut S (|S| ≥ 3)
//	            x_i + x_j ≤ 1       for each non-adjacent pair i<j
//	            x_k = 0 | 1         for each active branching constraint
//	            0 ≤ x_v ≤ 1
//
// Cuts come from the color classes of several colorings (package coloring)
// and are deduplicated by their sorted vertex tuple. Complement-edge rows are
// always present; they alone make every integral point a clique.
//
// Branching constraints are added and removed by name. Removal restores the
// model to its exact prior state, which is what the branch-and-bound engine
// relies on when it backtracks.
//
// SimplexOracle is the production Oracle, built on gonum's lp.Simplex. It
// handles continuous programs only; binary variables (WithIntegerVariables)
// need an Oracle with integer support.
package relax
