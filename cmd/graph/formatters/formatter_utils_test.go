package formatters

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/pybundle/pybundle/depgraph"
)

func annotatedGraph(t *testing.T, adjacency map[string][]string) depgraph.AnnotatedGraph {
	t.Helper()
	g, err := depgraph.NewAnnotatedGraph(depgraph.DependencyGraph(adjacency))
	require.NoError(t, err)
	return g
}

func formatterGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}
