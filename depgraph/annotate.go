package depgraph

import (
	"errors"
	"path/filepath"
	"sort"

	graphlib "github.com/dominikbraun/graph"

	"github.com/pybundle/pybundle/depgraph/python"
)

// AnnotatedGraph wraps a dependency graph with per-file and per-edge
// metadata for the formatters.
type AnnotatedGraph struct {
	Graph DependencyGraph
	Meta  GraphMetadata
}

// GraphMetadata contains metadata keyed by file and edge.
type GraphMetadata struct {
	Files  map[string]FileMetadata
	Edges  map[FileEdge]EdgeMetadata
	Cycles []Cycle
}

// FileMetadata holds metadata for a single file node.
type FileMetadata struct {
	IsTest    bool
	Extension string
}

// FileEdge identifies a directed edge between two files.
type FileEdge struct {
	From string
	To   string
}

// EdgeMetadata holds metadata for a graph edge.
type EdgeMetadata struct {
	InCycle bool
}

// ToDirected converts the dependency graph to a directed graph value, the
// representation the cycle analysis and DOT rendering work against.
func ToDirected(g DependencyGraph) (graphlib.Graph[string, string], error) {
	directed := graphlib.New(graphlib.StringHash, graphlib.Directed())

	nodes := make([]string, 0, len(g))
	for node := range g {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		if err := directed.AddVertex(node); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, err
		}
	}
	for _, node := range nodes {
		for _, dep := range g[node] {
			if err := directed.AddEdge(node, dep); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}

	return directed, nil
}

// NewAnnotatedGraph computes file metadata and cycle membership for a
// finished dependency graph. Cycle sets are the strongly connected
// components with more than one member; an edge is in a cycle when both its
// endpoints share such a component.
func NewAnnotatedGraph(g DependencyGraph) (AnnotatedGraph, error) {
	directed, err := ToDirected(g)
	if err != nil {
		return AnnotatedGraph{}, err
	}

	components, err := graphlib.StronglyConnectedComponents(directed)
	if err != nil {
		return AnnotatedGraph{}, err
	}

	componentOf := make(map[string]int)
	var cycles []Cycle
	for _, component := range components {
		if len(component) < 2 {
			continue
		}
		sort.Strings(component)
		id := len(cycles)
		for _, node := range component {
			componentOf[node] = id
		}
		cycles = append(cycles, Cycle{Files: component})
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Files[0] < cycles[j].Files[0]
	})

	files := make(map[string]FileMetadata, len(g))
	edges := make(map[FileEdge]EdgeMetadata)
	for node, deps := range g {
		files[node] = FileMetadata{
			IsTest:    python.IsTestFile(node),
			Extension: filepath.Ext(filepath.Base(node)),
		}
		for _, dep := range deps {
			fromID, fromOK := componentOf[node]
			toID, toOK := componentOf[dep]
			edges[FileEdge{From: node, To: dep}] = EdgeMetadata{
				InCycle: fromOK && toOK && fromID == toID,
			}
		}
	}

	return AnnotatedGraph{
		Graph: g,
		Meta: GraphMetadata{
			Files:  files,
			Edges:  edges,
			Cycles: cycles,
		},
	}, nil
}
