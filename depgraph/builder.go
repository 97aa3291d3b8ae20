package depgraph

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pybundle/pybundle/depgraph/python"
)

// Builder performs the reachability traversal from an entry file,
// extracting and resolving imports per visited file. It owns the graph for
// the duration of one Build call; the finished value is immutable to it
// afterwards.
type Builder struct {
	projectRoot string
	resolver    *python.Resolver
	read        ContentReader
	sink        EventSink
}

// NewBuilder creates a builder confined to projectRoot. sink may be nil.
func NewBuilder(projectRoot string, resolver *python.Resolver, read ContentReader, sink EventSink) *Builder {
	return &Builder{
		projectRoot: filepath.Clean(projectRoot),
		resolver:    resolver,
		read:        read,
		sink:        sink,
	}
}

// Build walks the import graph breadth-first from entryFile and returns the
// dependency graph together with the discovery order of its nodes. File-local
// failures (unreadable or unparseable files, unresolved imports) become
// events and leave the affected node without outgoing edges; only context
// cancellation aborts the traversal.
func (b *Builder) Build(ctx context.Context, entryFile string) (DependencyGraph, []string, error) {
	entry, err := filepath.Abs(entryFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve entry path %s: %w", entryFile, err)
	}

	graph := make(DependencyGraph)
	var order []string
	visited := make(map[string]bool)
	queue := []string{entry}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		if !b.withinRoot(current) {
			continue
		}
		visited[current] = true
		order = append(order, current)
		b.sink.Emit(Discovered{File: current})

		graph[current] = b.dependenciesOf(current)

		for _, dep := range graph[current] {
			if !visited[dep] {
				queue = append(queue, dep)
			}
		}
	}

	return graph, order, nil
}

// dependenciesOf extracts and resolves the imports of one file. Any failure
// localized to the file yields an empty dependency list.
func (b *Builder) dependenciesOf(file string) []string {
	content, err := b.read(file)
	if err != nil {
		b.sink.Emit(ParseError{File: file, Message: fmt.Sprintf("failed to read file: %v", err)})
		return nil
	}

	refs, err := python.ParseImports(file, content)
	if err != nil {
		var parseErr *python.ParseError
		if errors.As(err, &parseErr) {
			b.sink.Emit(ParseError{File: file, Line: parseErr.Line, Message: parseErr.Message})
		} else {
			b.sink.Emit(ParseError{File: file, Message: err.Error()})
		}
		return nil
	}

	var deps []string
	for _, ref := range refs {
		paths, err := b.resolver.Resolve(ref, file)
		if err != nil {
			var unresolved *python.UnresolvedImportError
			if errors.As(err, &unresolved) {
				b.sink.Emit(UnresolvedImport{File: file, Reference: unresolved.Spelling()})
			}
			continue
		}
		for _, p := range paths {
			if p != file {
				deps = append(deps, p)
			}
		}
	}

	return deduplicatePaths(deps)
}

func (b *Builder) withinRoot(path string) bool {
	rel, err := filepath.Rel(b.projectRoot, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
