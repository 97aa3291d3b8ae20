package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pybundle/pybundle/depgraph"
)

func TestTopologicalOrder_Chain(t *testing.T) {
	g := depgraph.DependencyGraph{
		"a.py": {"b.py"},
		"b.py": {"c.py"},
		"c.py": nil,
	}

	ordering, cycles := depgraph.TopologicalOrder(g, []string{"a.py", "b.py", "c.py"})

	assert.Empty(t, cycles)
	assert.Equal(t, []string{"c.py", "b.py", "a.py"}, ordering)
}

func TestTopologicalOrder_DependenciesPrecedeDependents(t *testing.T) {
	g := depgraph.DependencyGraph{
		"main.py":   {"a.py", "b.py"},
		"a.py":      {"shared.py"},
		"b.py":      {"shared.py"},
		"shared.py": nil,
	}

	ordering, cycles := depgraph.TopologicalOrder(g, []string{"main.py", "a.py", "b.py", "shared.py"})

	assert.Empty(t, cycles)
	require.Len(t, ordering, 4)

	index := make(map[string]int, len(ordering))
	for i, f := range ordering {
		index[f] = i
	}
	for node, deps := range g {
		for _, dep := range deps {
			assert.Less(t, index[dep], index[node], "%s must precede %s", dep, node)
		}
	}
}

func TestTopologicalOrder_TwoNodeCycle(t *testing.T) {
	g := depgraph.DependencyGraph{
		"a.py": {"b.py"},
		"b.py": {"a.py"},
	}

	ordering, cycles := depgraph.TopologicalOrder(g, []string{"a.py", "b.py"})

	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"a.py", "b.py"}, cycles[0].Files)

	// Every node appears exactly once despite the cycle.
	assert.ElementsMatch(t, []string{"a.py", "b.py"}, ordering)
}

func TestTopologicalOrder_CycleChainIsReported(t *testing.T) {
	g := depgraph.DependencyGraph{
		"a.py": {"b.py"},
		"b.py": {"c.py"},
		"c.py": {"a.py"},
	}

	ordering, cycles := depgraph.TopologicalOrder(g, []string{"a.py", "b.py", "c.py"})

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.py", "b.py", "c.py"}, cycles[0].Files)
	assert.Len(t, ordering, 3)
}

func TestTopologicalOrder_DeterministicTieBreak(t *testing.T) {
	// z sorts after b alphabetically; discovery order must win.
	g := depgraph.DependencyGraph{
		"main.py": {"z.py", "b.py"},
		"z.py":    nil,
		"b.py":    nil,
	}

	for i := 0; i < 10; i++ {
		ordering, cycles := depgraph.TopologicalOrder(g, []string{"main.py", "z.py", "b.py"})
		assert.Empty(t, cycles)
		assert.Equal(t, []string{"z.py", "b.py", "main.py"}, ordering)
	}
}

func TestTopologicalOrder_Empty(t *testing.T) {
	ordering, cycles := depgraph.TopologicalOrder(depgraph.DependencyGraph{}, nil)

	assert.Empty(t, ordering)
	assert.Empty(t, cycles)
}
