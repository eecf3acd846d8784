package common

import "slices"

// Graph is an undirected simple graph of entities. It holds at most one edge
// per unordered pair of nodes and no self-loops. Nodes, edges and neighbors
// are enumerated in insertion order.
//
// A Graph is not safe for concurrent mutation. Once fully built it may be
// read from multiple goroutines.
type Graph struct {
	nodes     map[string]*Node
	order     []string
	neighbors map[string][]string
	adjacent  map[string]map[string]struct{}
	edges     []Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		neighbors: make(map[string][]string),
		adjacent:  make(map[string]map[string]struct{}),
	}
}

// AddNode inserts node if no node with the same ID exists. It reports
// whether the node was added; an existing node is left untouched.
func (g *Graph) AddNode(node Node) bool {
	if _, ok := g.nodes[node.ID]; ok {
		return false
	}
	if node.Aliases == nil {
		node.Aliases = []string{}
	} else {
		node.Aliases = slices.Clone(node.Aliases)
	}
	g.nodes[node.ID] = &node
	g.order = append(g.order, node.ID)
	g.adjacent[node.ID] = make(map[string]struct{})
	return true
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return cloneNode(n), true
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, cloneNode(g.nodes[id]))
	}
	return nodes
}

// NodeIDs returns all node ids in insertion order.
func (g *Graph) NodeIDs() []string {
	return slices.Clone(g.order)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// AddEdge connects source and target. Both nodes must exist. It reports
// whether a new edge was created; self-loops and duplicates in either
// direction are ignored.
func (g *Graph) AddEdge(source, target string) bool {
	if source == target || !g.HasNode(source) || !g.HasNode(target) {
		return false
	}
	if g.HasEdge(source, target) {
		return false
	}
	g.adjacent[source][target] = struct{}{}
	g.adjacent[target][source] = struct{}{}
	g.neighbors[source] = append(g.neighbors[source], target)
	g.neighbors[target] = append(g.neighbors[target], source)
	g.edges = append(g.edges, Edge{Source: source, Target: target})
	return true
}

// HasEdge reports whether an edge exists between a and b in either direction.
func (g *Graph) HasEdge(a, b string) bool {
	adj, ok := g.adjacent[a]
	if !ok {
		return false
	}
	_, ok = adj[b]
	return ok
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Neighbors returns the ids adjacent to id in the order the edges were added.
func (g *Graph) Neighbors(id string) []string {
	return slices.Clone(g.neighbors[id])
}

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id string) int {
	return len(g.neighbors[id])
}

// Subgraph returns an independent graph induced by ids. Nodes keep their
// relative insertion order and unknown ids are ignored.
func (g *Graph) Subgraph(ids []string) *Graph {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if g.HasNode(id) {
			keep[id] = struct{}{}
		}
	}

	sub := NewGraph()
	for _, id := range g.order {
		if _, ok := keep[id]; ok {
			sub.AddNode(*g.nodes[id])
		}
	}
	for _, e := range g.edges {
		_, okSource := keep[e.Source]
		_, okTarget := keep[e.Target]
		if okSource && okTarget {
			sub.AddEdge(e.Source, e.Target)
		}
	}
	return sub
}

func cloneNode(n *Node) Node {
	c := *n
	c.Aliases = slices.Clone(n.Aliases)
	return c
}
