package formatters

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pybundle/pybundle/depgraph"
)

// MermaidFormatter formats dependency graphs as Mermaid.js flowcharts.
type MermaidFormatter struct{}

// Format converts the dependency graph to Mermaid.js flowchart format.
func (f *MermaidFormatter) Format(g depgraph.AnnotatedGraph, opts FormatOptions) (string, error) {
	adjacency := depgraph.AdjacencyList(g.Graph)

	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	cycleNodes := make(map[string]bool)
	for i, cycle := range g.Meta.Cycles {
		var cycleParts []string
		for _, node := range cycle.Files {
			cycleParts = append(cycleParts, filepath.Base(node))
			cycleNodes[node] = true
		}
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(cycleParts, " <-> ")))
	}

	filePaths := make([]string, 0, len(adjacency))
	for source := range adjacency {
		filePaths = append(filePaths, source)
	}
	sort.Strings(filePaths)
	nodeNames := BuildNodeNames(filePaths)

	// Mermaid node IDs can't have dots or slashes; map each path to n<i>.
	nodeIDs := make(map[string]string, len(filePaths))
	for i, source := range filePaths {
		nodeIDs[source] = fmt.Sprintf("n%d", i)
	}

	for _, source := range filePaths {
		label := strings.ReplaceAll(nodeNames[source], "\"", "#quot;")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[source], label))
	}

	var edgesSB strings.Builder
	var cycleEdgeIndices []int
	edgeIndex := 0
	for _, source := range filePaths {
		for _, dep := range adjacency[source] {
			edgesSB.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[source], nodeIDs[dep]))
			if g.Meta.Edges[depgraph.FileEdge{From: source, To: dep}].InCycle {
				cycleEdgeIndices = append(cycleEdgeIndices, edgeIndex)
			}
			edgeIndex++
		}
	}
	if edgesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(edgesSB.String())
	}

	var stylesSB strings.Builder
	var testNodes []string
	for _, source := range filePaths {
		if md, ok := g.Meta.Files[source]; ok && md.IsTest {
			testNodes = append(testNodes, nodeIDs[source])
		}
	}
	if len(testNodes) > 0 {
		stylesSB.WriteString("    classDef testFile fill:#90EE90,stroke:#228B22,color:#000000\n")
		stylesSB.WriteString(fmt.Sprintf("    class %s testFile\n", strings.Join(testNodes, ",")))
	}
	for _, source := range filePaths {
		if cycleNodes[source] {
			stylesSB.WriteString(fmt.Sprintf("    style %s stroke:#d62728,stroke-width:3px\n", nodeIDs[source]))
		}
	}
	for _, idx := range cycleEdgeIndices {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:#d62728,stroke-width:3px,stroke-dasharray: 5 5\n", idx))
	}
	if stylesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(stylesSB.String())
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
