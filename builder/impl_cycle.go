// SPDX-License-Identifier: MIT
// Package: maxclique/builder
//
// impl_cycle.go — Cycle(n), Path(n) and Star(k) constructors.
//
// Contract:
//   • Cycle: n ≥ 3; Path: n ≥ 1; Star: k ≥ 1 leaves.
//   • Appends vertices in ascending id order; edges follow the index order
//     (i, i+1), with Cycle closing (n-1, 0) and Star linking hub→leaf.

package builder

import (
	"fmt"

	"github.com/katalvlaran/maxclique/core"
)

const (
	methodCycle   = "Cycle"
	methodPath    = "Path"
	methodStar    = "Star"
	minCycleNodes = 3
	minPathNodes  = 1
	minStarLeaves = 1
)

// Cycle returns a Constructor that appends an n-vertex simple cycle C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		first := g.AddVertices(n)
		for i := 0; i < n; i++ {
			u, v := first+i, first+(i+1)%n
			if err := g.AddEdge(u, v); err != nil {
				return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodCycle, u, v, err)
			}
		}

		return nil
	}
}

// Path returns a Constructor that appends an n-vertex simple path P_n.
func Path(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		first := g.AddVertices(n)
		for i := 0; i+1 < n; i++ {
			if err := g.AddEdge(first+i, first+i+1); err != nil {
				return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodPath, first+i, first+i+1, err)
			}
		}

		return nil
	}
}

// Star returns a Constructor that appends a hub followed by k leaves.
func Star(k int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if k < minStarLeaves {
			return fmt.Errorf("%s: k=%d < min=%d: %w", methodStar, k, minStarLeaves, ErrTooFewVertices)
		}
		hub := g.AddVertices(k + 1)
		for leaf := hub + 1; leaf <= hub+k; leaf++ {
			if err := g.AddEdge(hub, leaf); err != nil {
				return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodStar, hub, leaf, err)
			}
		}

		return nil
	}
}
