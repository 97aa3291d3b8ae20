package formatters

import (
	"encoding/json"

	"github.com/pybundle/pybundle/depgraph"
)

// JSONFormatter formats dependency graphs as JSON.
type JSONFormatter struct{}

// jsonGraph is the serialized shape: sorted adjacency plus cycle sets.
type jsonGraph struct {
	Files  map[string][]string `json:"files"`
	Cycles [][]string          `json:"cycles,omitempty"`
}

// Format converts the dependency graph to JSON.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(g depgraph.AnnotatedGraph, opts FormatOptions) (string, error) {
	out := jsonGraph{Files: depgraph.AdjacencyList(g.Graph)}
	for _, cycle := range g.Meta.Cycles {
		out.Cycles = append(out.Cycles, cycle.Files)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
