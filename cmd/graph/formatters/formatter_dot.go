package formatters

import (
	"sort"
	"strings"

	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/pybundle/pybundle/depgraph"
)

// DOTFormatter formats dependency graphs as Graphviz DOT.
type DOTFormatter struct{}

// Format converts the dependency graph to Graphviz DOT format. Test files
// are filled green; nodes and edges on an import cycle are drawn red.
func (f *DOTFormatter) Format(g depgraph.AnnotatedGraph, opts FormatOptions) (string, error) {
	adjacency := depgraph.AdjacencyList(g.Graph)

	filePaths := make([]string, 0, len(adjacency))
	for source := range adjacency {
		filePaths = append(filePaths, source)
	}
	sort.Strings(filePaths)
	nodeNames := BuildNodeNames(filePaths)

	cycleNodes := make(map[string]bool)
	for _, cycle := range g.Meta.Cycles {
		for _, node := range cycle.Files {
			cycleNodes[node] = true
		}
	}

	directed := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, source := range filePaths {
		attrs := []func(*graphlib.VertexProperties){
			graphlib.VertexAttribute("label", nodeNames[source]),
			graphlib.VertexAttribute("shape", "box"),
		}
		if md, ok := g.Meta.Files[source]; ok && md.IsTest {
			attrs = append(attrs,
				graphlib.VertexAttribute("style", "filled"),
				graphlib.VertexAttribute("fillcolor", "palegreen"))
		}
		if cycleNodes[source] {
			attrs = append(attrs,
				graphlib.VertexAttribute("color", "red"),
				graphlib.VertexAttribute("penwidth", "2"))
		}
		if err := directed.AddVertex(source, attrs...); err != nil {
			return "", err
		}
	}

	for _, source := range filePaths {
		for _, dep := range adjacency[source] {
			var attrs []func(*graphlib.EdgeProperties)
			if g.Meta.Edges[depgraph.FileEdge{From: source, To: dep}].InCycle {
				attrs = append(attrs,
					graphlib.EdgeAttribute("color", "red"),
					graphlib.EdgeAttribute("style", "dashed"))
			}
			if err := directed.AddEdge(source, dep, attrs...); err != nil {
				return "", err
			}
		}
	}

	var sb strings.Builder
	var err error
	if opts.Label != "" {
		err = draw.DOT(directed, &sb,
			draw.GraphAttribute("rankdir", "LR"),
			draw.GraphAttribute("label", opts.Label),
			draw.GraphAttribute("labelloc", "t"))
	} else {
		err = draw.DOT(directed, &sb, draw.GraphAttribute("rankdir", "LR"))
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
