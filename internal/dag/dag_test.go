package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Equal(t, 0, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode(1)
	assert.Len(t, g.nodes, 1)
	n, ok := g.nodes[1]
	require.True(t, ok)
	assert.Equal(t, 1, n.id)

	g.AddNode(1) // idempotent
	assert.Len(t, g.nodes, 1)

	g.AddNode(2)
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has(2))
	assert.False(t, g.Has(3))
	assert.Equal(t, []int{1, 2}, g.order)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode(1)
		g.AddNode(2)

		require.NoError(t, g.AddEdge(1, 2)) // 2 depends on 1
		require.NoError(t, g.AddEdge(1, 2)) // duplicate is a no-op

		deps, err := g.Dependencies(2)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, deps)

		dependents, err := g.Dependents(1)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode(1)
		g.AddNode(2)

		assert.ErrorContains(t, g.AddEdge(99, 1), "source node not found")
		assert.ErrorContains(t, g.AddEdge(1, 99), "destination node not found")
		assert.ErrorContains(t, g.AddEdge(1, 1), "self-referential edge")

		_, err := g.Dependencies(99)
		assert.ErrorContains(t, err, "node not found")
		_, err = g.Dependents(99)
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New().DetectCycles())
	})

	t.Run("chain has no cycles", func(t *testing.T) {
		g := New()
		for _, id := range []int{1, 2, 3} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge(1, 2))
		require.NoError(t, g.AddEdge(2, 3))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("cycle is reported with its path", func(t *testing.T) {
		g := New()
		for _, id := range []int{1, 2, 3} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge(1, 2))
		require.NoError(t, g.AddEdge(2, 3))
		require.NoError(t, g.AddEdge(3, 1))

		err := g.DetectCycles()
		var cycleErr *CycleError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, []int{1, 2, 3, 1}, cycleErr.Path)
		assert.EqualError(t, err, "cycle detected: 1 -> 2 -> 3 -> 1")
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("respects dependencies and insertion order", func(t *testing.T) {
		g := New()
		for _, id := range []int{30, 10, 20, 40} {
			g.AddNode(id)
		}
		// 30 depends on 10 and 20; 40 depends on 30.
		require.NoError(t, g.AddEdge(10, 30))
		require.NoError(t, g.AddEdge(20, 30))
		require.NoError(t, g.AddEdge(30, 40))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []int{10, 20, 30, 40}, order)
	})

	t.Run("fails on cycle", func(t *testing.T) {
		g := New()
		g.AddNode(1)
		g.AddNode(2)
		require.NoError(t, g.AddEdge(1, 2))
		require.NoError(t, g.AddEdge(2, 1))

		_, err := g.TopologicalOrder()
		var cycleErr *CycleError
		assert.ErrorAs(t, err, &cycleErr)
	})
}
