package report

import "github.com/OFFIS-RIT/wikigraph/pkg/common"

// HopPalette is the Spectral4 palette used to color nodes by hop.
var HopPalette = []string{"#2b83ba", "#abdda4", "#fdae61", "#d7191c"}

// HopColor returns the palette color for hop. Hops beyond the palette share
// its last color.
func HopColor(hop int) string {
	if hop < 0 {
		hop = 0
	}
	if hop >= len(HopPalette) {
		hop = len(HopPalette) - 1
	}
	return HopPalette[hop]
}

// ExportNode is a node as consumed by visualization clients.
type ExportNode struct {
	common.Node
	Color string `json:"color"`
}

// ExportGraph is the node-link representation of a graph.
type ExportGraph struct {
	Nodes []ExportNode  `json:"nodes"`
	Edges []common.Edge `json:"edges"`
}

// Export converts g to its node-link representation.
func Export(g *common.Graph) ExportGraph {
	out := ExportGraph{
		Nodes: make([]ExportNode, 0, g.NodeCount()),
		Edges: g.Edges(),
	}
	if out.Edges == nil {
		out.Edges = []common.Edge{}
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, ExportNode{Node: n, Color: HopColor(n.Hop)})
	}
	return out
}
