package graph

import "github.com/OFFIS-RIT/wikigraph/pkg/common"

// ConnectedComponents partitions g into maximal sets of mutually reachable
// nodes. Components are discovered by breadth-first search starting from
// nodes in insertion order; ids within a component are in discovery order.
func ConnectedComponents(g *common.Graph) [][]string {
	visited := make(map[string]bool, g.NodeCount())
	components := make([][]string, 0)

	for _, startID := range g.NodeIDs() {
		if visited[startID] {
			continue
		}

		component := make([]string, 0)
		queue := []string{startID}
		visited[startID] = true

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			component = append(component, curr)

			for _, nid := range g.Neighbors(curr) {
				if !visited[nid] {
					visited[nid] = true
					queue = append(queue, nid)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// LargestConnectedComponent returns an independent copy of the component
// with the most nodes. Among equally sized components the first discovered
// wins. An empty graph yields an empty graph.
func LargestConnectedComponent(g *common.Graph) *common.Graph {
	var largest []string
	for _, component := range ConnectedComponents(g) {
		if len(component) > len(largest) {
			largest = component
		}
	}
	return g.Subgraph(largest)
}
