package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pybundle/pybundle/depgraph"
	"github.com/pybundle/pybundle/depgraph/python"
)

// Options are the fully resolved inputs of one bundling run. ProjectRoot
// must be set; the commands resolve it (and the config file) before calling
// in.
type Options struct {
	EntryFile      string
	OutputPath     string
	ProjectRoot    string
	ExcludeModules []string
}

// Analysis is the immutable outcome of the discovery and ordering stages.
type Analysis struct {
	ProjectRoot string
	Graph       depgraph.DependencyGraph
	Discovery   []string
	Ordering    []string
	Cycles      []depgraph.Cycle
}

// Analyze runs root-confined discovery and ordering for the entry file. The
// entry file itself is placed last in the ordering, matching where a reader
// expects the program's top level. An unreadable entry file is fatal; every
// other failure is localized and reported through sink.
func Analyze(ctx context.Context, opts Options, sink depgraph.EventSink) (*Analysis, error) {
	entry, err := filepath.Abs(opts.EntryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry path %s: %w", opts.EntryFile, err)
	}
	if _, err := os.Stat(entry); err != nil {
		return nil, fmt.Errorf("entry file not readable: %w", err)
	}

	nonLocal := append(python.StdlibModules(), opts.ExcludeModules...)
	resolver := python.NewResolver(opts.ProjectRoot, nonLocal)
	builder := depgraph.NewBuilder(opts.ProjectRoot, resolver, depgraph.FilesystemContentReader(), sink)

	graph, discovery, err := builder.Build(ctx, entry)
	if err != nil {
		return nil, err
	}

	ordering, cycles := depgraph.TopologicalOrder(graph, discovery)
	for _, cycle := range cycles {
		sink.Emit(depgraph.CycleDetected{Files: cycle.Files})
	}

	ordering = moveToEnd(ordering, entry)

	return &Analysis{
		ProjectRoot: opts.ProjectRoot,
		Graph:       graph,
		Discovery:   discovery,
		Ordering:    ordering,
		Cycles:      cycles,
	}, nil
}

// Run executes the whole pipeline and writes the bundle. The terminal
// Completed or Failed event mirrors the returned error.
func Run(ctx context.Context, opts Options, sink depgraph.EventSink) (*Analysis, error) {
	analysis, err := Analyze(ctx, opts, sink)
	if err != nil {
		sink.Emit(depgraph.Failed{Reason: err})
		return nil, err
	}

	if err := Write(analysis.Ordering, opts.ProjectRoot, opts.OutputPath, depgraph.FilesystemContentReader()); err != nil {
		sink.Emit(depgraph.Failed{Reason: err})
		return nil, err
	}

	sink.Emit(depgraph.Completed{OutputPath: opts.OutputPath})
	return analysis, nil
}

// moveToEnd moves file to the end of ordering when present.
func moveToEnd(ordering []string, file string) []string {
	result := make([]string, 0, len(ordering))
	found := false
	for _, f := range ordering {
		if f == file {
			found = true
			continue
		}
		result = append(result, f)
	}
	if found {
		result = append(result, file)
	}
	return result
}
