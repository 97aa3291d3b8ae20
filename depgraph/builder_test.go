package depgraph_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pybundle/pybundle/depgraph"
	"github.com/pybundle/pybundle/depgraph/python"
)

func writeFixture(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestBuilder(root string, sink depgraph.EventSink) *depgraph.Builder {
	resolver := python.NewResolver(root, python.StdlibModules())
	return depgraph.NewBuilder(root, resolver, depgraph.FilesystemContentReader(), sink)
}

func TestBuild_TransitiveChain(t *testing.T) {
	root := t.TempDir()
	a := writeFixture(t, root, "a.py", "import b\n")
	b := writeFixture(t, root, "b.py", "import c\n")
	c := writeFixture(t, root, "c.py", "x = 1\n")

	graph, order, err := newTestBuilder(root, nil).Build(context.Background(), a)

	require.NoError(t, err)
	require.Len(t, graph, 3)
	assert.Equal(t, []string{b}, graph[a])
	assert.Equal(t, []string{c}, graph[b])
	assert.Empty(t, graph[c])
	assert.Equal(t, []string{a, b, c}, order)
}

func TestBuild_FromImportModuleFile(t *testing.T) {
	root := t.TempDir()
	main := writeFixture(t, root, "main.py", "from utils.helpers import helper_function\n")
	helpers := writeFixture(t, root, "utils/helpers.py", "def helper_function():\n    return 1\n")

	graph, order, err := newTestBuilder(root, nil).Build(context.Background(), main)

	require.NoError(t, err)
	require.Len(t, graph, 2)
	assert.Equal(t, []string{helpers}, graph[main])
	assert.Equal(t, []string{main, helpers}, order)
}

func TestBuild_RelativeSiblingImport(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "pkg/__init__.py", "")
	sibling := writeFixture(t, root, "pkg/sibling.py", "")
	mod := writeFixture(t, root, "pkg/mod.py", "from . import sibling\n")

	graph, _, err := newTestBuilder(root, nil).Build(context.Background(), mod)

	require.NoError(t, err)
	assert.Contains(t, graph[mod], sibling)
}

func TestBuild_StdlibAndThirdPartyProduceNoEdges(t *testing.T) {
	root := t.TempDir()
	main := writeFixture(t, root, "main.py", "import os\nimport sys\nimport requests\n")

	var warnings []depgraph.UnresolvedImport
	sink := func(e depgraph.Event) {
		if w, ok := e.(depgraph.UnresolvedImport); ok {
			warnings = append(warnings, w)
		}
	}

	graph, _, err := newTestBuilder(root, sink).Build(context.Background(), main)

	require.NoError(t, err)
	assert.Empty(t, graph[main])
	// "requests" looks local but resolves to nothing; stdlib names are silent.
	require.Len(t, warnings, 1)
	assert.Equal(t, "requests", warnings[0].Reference)
}

func TestBuild_ParseFailureIsLeafNode(t *testing.T) {
	root := t.TempDir()
	main := writeFixture(t, root, "main.py", "import broken\nimport fine\n")
	broken := writeFixture(t, root, "broken.py", "def oops(:\n    pass\n")
	fine := writeFixture(t, root, "fine.py", "x = 1\n")

	var parseErrors []depgraph.ParseError
	sink := func(e depgraph.Event) {
		if pe, ok := e.(depgraph.ParseError); ok {
			parseErrors = append(parseErrors, pe)
		}
	}

	graph, _, err := newTestBuilder(root, sink).Build(context.Background(), main)

	require.NoError(t, err)
	require.Len(t, graph, 3)
	assert.Empty(t, graph[broken])
	assert.Empty(t, graph[fine])

	require.Len(t, parseErrors, 1)
	assert.Equal(t, broken, parseErrors[0].File)
	assert.Greater(t, parseErrors[0].Line, 0)
}

func TestBuild_UnreadableFileIsLeafNode(t *testing.T) {
	root := t.TempDir()
	main := writeFixture(t, root, "main.py", "import gone\n")
	gone := writeFixture(t, root, "gone.py", "x = 1\n")

	// The dependency vanishes between discovery and read.
	read := func(path string) ([]byte, error) {
		if path == gone {
			return nil, errors.New("file vanished")
		}
		return os.ReadFile(path)
	}

	var parseErrors []depgraph.ParseError
	sink := func(e depgraph.Event) {
		if pe, ok := e.(depgraph.ParseError); ok {
			parseErrors = append(parseErrors, pe)
		}
	}

	resolver := python.NewResolver(root, python.StdlibModules())
	builder := depgraph.NewBuilder(root, resolver, read, sink)
	graph, _, err := builder.Build(context.Background(), main)

	require.NoError(t, err)
	assert.Empty(t, graph[gone])
	require.Len(t, parseErrors, 1)
	assert.Equal(t, gone, parseErrors[0].File)
	assert.Zero(t, parseErrors[0].Line)
}

func TestBuild_DiscoveredEventsInTraversalOrder(t *testing.T) {
	root := t.TempDir()
	a := writeFixture(t, root, "a.py", "import b\nimport c\n")
	b := writeFixture(t, root, "b.py", "")
	c := writeFixture(t, root, "c.py", "")

	var discovered []string
	sink := func(e depgraph.Event) {
		if d, ok := e.(depgraph.Discovered); ok {
			discovered = append(discovered, d.File)
		}
	}

	_, _, err := newTestBuilder(root, sink).Build(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, discovered)
}

func TestBuild_CancelledContext(t *testing.T) {
	root := t.TempDir()
	main := writeFixture(t, root, "main.py", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestBuilder(root, nil).Build(ctx, main)

	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_SharedDependencyVisitedOnce(t *testing.T) {
	root := t.TempDir()
	a := writeFixture(t, root, "a.py", "import b\nimport c\n")
	writeFixture(t, root, "b.py", "import c\n")
	writeFixture(t, root, "c.py", "")

	graph, order, err := newTestBuilder(root, nil).Build(context.Background(), a)

	require.NoError(t, err)
	assert.Len(t, graph, 3)
	assert.Len(t, order, 3)
}
