// SPDX-License-Identifier: MIT
// Package: maxclique/builder
//
// impl_complete.go — Complete(n) and Empty(n) constructors.
//
// Contract:
//   • Complete: n ≥ 1 (else ErrTooFewVertices); Empty: n ≥ 0.
//   • Appends n vertices in ascending id order.
//   • Complete emits each unordered pair {i,j}, i<j, exactly once.
//
// Complexity:
//   • Complete: O(n²) edges. Empty: O(n).

package builder

import (
	"fmt"

	"github.com/katalvlaran/maxclique/core"
)

const (
	methodComplete   = "Complete"
	methodEmpty      = "Empty"
	minCompleteNodes = 1
	minEmptyNodes    = 0
)

// Complete returns a Constructor that appends the complete graph K_n.
func Complete(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		first := g.AddVertices(n)
		for i := first; i < first+n; i++ {
			for j := i + 1; j < first+n; j++ {
				if err := g.AddEdge(i, j); err != nil {
					return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodComplete, i, j, err)
				}
			}
		}

		return nil
	}
}

// Empty returns a Constructor that appends n isolated vertices.
func Empty(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if n < minEmptyNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodEmpty, n, minEmptyNodes, ErrTooFewVertices)
		}
		g.AddVertices(n)

		return nil
	}
}
