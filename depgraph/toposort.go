package depgraph

// Cycle is a chain of files found on the active traversal path when a
// back-edge was encountered, listed dependency-first.
type Cycle struct {
	Files []string
}

const (
	colorWhite = iota // unvisited
	colorGray         // in progress, on the active path
	colorBlack        // done
)

// TopologicalOrder linearizes the graph dependency-first. Nodes are visited
// in discoveryOrder and dependencies in insertion order, so the result is
// stable across runs for the same input. Back-edges are reported as cycles
// and treated as satisfied, which keeps the order total: every node appears
// exactly once, and only edges inside a broken cycle may be violated.
func TopologicalOrder(g DependencyGraph, discoveryOrder []string) ([]string, []Cycle) {
	ordering := make([]string, 0, len(g))
	var cycles []Cycle

	color := make(map[string]int, len(g))
	var path []string // gray nodes, root to current

	type frame struct {
		node string
		next int
	}
	var stack []frame

	pushNode := func(node string) {
		color[node] = colorGray
		path = append(path, node)
		stack = append(stack, frame{node: node})
	}

	for _, root := range discoveryOrder {
		if color[root] != colorWhite {
			continue
		}
		pushNode(root)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g[top.node]

			if top.next < len(deps) {
				child := deps[top.next]
				top.next++

				switch color[child] {
				case colorWhite:
					pushNode(child)
				case colorGray:
					// Back-edge: the in-progress chain from the
					// re-encountered node to the current one is a cycle.
					// The edge counts as satisfied so traversal completes.
					cycles = append(cycles, Cycle{Files: pathFrom(path, child)})
				}
			} else {
				color[top.node] = colorBlack
				ordering = append(ordering, top.node)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}

	return ordering, cycles
}

func pathFrom(path []string, node string) []string {
	for i, p := range path {
		if p == node {
			chain := make([]string, len(path)-i)
			copy(chain, path[i:])
			return chain
		}
	}
	return []string{node}
}
