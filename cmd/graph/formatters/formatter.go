package formatters

import (
	"fmt"

	"github.com/pybundle/pybundle/depgraph"
)

// FormatOptions contains optional parameters for formatting dependency graphs.
type FormatOptions struct {
	// Label is an optional title or label for the graph
	Label string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts an annotated dependency graph to a formatted string.
	Format(g depgraph.AnnotatedGraph, opts FormatOptions) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
// Supported formats: "dot", "json", "mermaid"
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "dot":
		return &DOTFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "mermaid":
		return &MermaidFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: dot, json, mermaid)", format)
	}
}
