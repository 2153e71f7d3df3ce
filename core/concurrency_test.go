// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxclique/core"
)

// TestConcurrentAddEdge ensures that concurrent AddEdge calls on a star
// are safe and every leaf appears as a neighbor of the hub.
func TestConcurrentAddEdge(t *testing.T) {
	const num = 200
	g := core.NewGraphN(num + 1)
	var wg sync.WaitGroup
	wg.Add(num)

	for i := 0; i < num; i++ {
		go func(leaf int) {
			defer wg.Done()
			require.NoError(t, g.AddEdge(1, leaf))
		}(i + 2)
	}
	wg.Wait()

	nbs, err := g.Neighbors(1)
	require.NoError(t, err)
	require.Len(t, nbs, num)
	require.Equal(t, num, g.EdgeCount())
}

// TestConcurrentReadersAndValidator validates that concurrent readers and
// clique checks do not race with vertex growth.
func TestConcurrentReadersAndValidator(t *testing.T) {
	g := core.NewGraphN(4)
	for u := 1; u <= 4; u++ {
		for v := u + 1; v <= 4; v++ {
			require.NoError(t, g.AddEdge(u, v))
		}
	}

	const readers = 50
	var wg sync.WaitGroup
	wg.Add(readers + 1)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			require.True(t, core.IsClique(g, []int{1, 2, 3, 4}))
		}()
	}
	go func() {
		defer wg.Done()
		g.AddVertices(10)
	}()
	wg.Wait()

	require.Equal(t, 14, g.VertexCount())
}
