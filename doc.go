// Package maxclique finds maximum cliques in undirected graphs with an exact
// LP-based branch and bound.
//
// 🚀 How a graph is solved
//
//	1. heuristic/  greedy coloring-ordered passes give a starting clique
//	2. relax/      the clique LP, one variable per vertex, complement-edge
//	               rows and independent-set cuts from colorings
//	3. bnb/        depth-first branch and bound over the relaxation,
//	               fixing one vertex per level to 1 or 0
//	4. core/       every answer is checked with core.IsClique
//
// ✨ Around the engine
//
//   - coloring/ – seven coloring strategies, some backed by gonum
//   - dimacs/   – DIMACS .clq reader and writer
//   - builder/  – deterministic synthetic graphs (complete, cycle, random…)
//   - solver/   – the whole pipeline for one graph, traced with OpenTelemetry
//   - bench/    – catalogued DIMACS instances with known optima, run in parallel
//   - report/   – per-run records as CSV, JSON or a short summary
//   - config/   – YAML file + MAXCLIQUE_* environment configuration
//
// Quick ASCII example:
//
//	    1───2
//	    │ ╲ │
//	    4───3
//
//	has two maximum cliques, {1, 2, 3} and {1, 3, 4}.
//
//	go install github.com/katalvlaran/maxclique/cmd/maxclique@latest
//	maxclique solve brock200_2.clq --time-limit 10m
package maxclique
