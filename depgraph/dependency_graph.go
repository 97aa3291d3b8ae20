package depgraph

import "sort"

// DependencyGraph maps a file path to the project files it imports. Edge
// direction is importer to imported. Values preserve discovery order.
type DependencyGraph map[string][]string

// AdjacencyList returns a copy of the graph with dependency lists sorted,
// for consumers that need deterministic output independent of discovery
// order (formatters).
func AdjacencyList(g DependencyGraph) map[string][]string {
	adjacency := make(map[string][]string, len(g))
	for node, deps := range g {
		sorted := make([]string, len(deps))
		copy(sorted, deps)
		sort.Strings(sorted)
		adjacency[node] = sorted
	}
	return adjacency
}

// deduplicatePaths removes duplicate entries while preserving insertion order.
func deduplicatePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
