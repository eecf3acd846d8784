package graph

import (
	"reflect"
	"testing"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
)

func addPath(g *common.Graph, ids ...string) {
	for _, id := range ids {
		g.AddNode(common.Node{ID: id, Hop: 1})
	}
	for i := 1; i < len(ids); i++ {
		g.AddEdge(ids[i-1], ids[i])
	}
}

func TestLargestConnectedComponent(t *testing.T) {
	g := common.NewGraph()
	addPath(g, "a1", "a2", "a3")
	addPath(g, "b1", "b2", "b3", "b4", "b5")

	lcc := LargestConnectedComponent(g)
	if got, want := lcc.NodeIDs(), []string{"b1", "b2", "b3", "b4", "b5"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("largest component = %v, want %v", got, want)
	}
	if lcc.EdgeCount() != 4 {
		t.Fatalf("expected 4 edges, got %d", lcc.EdgeCount())
	}

	lcc.AddNode(common.Node{ID: "extra"})
	if g.HasNode("extra") {
		t.Fatal("component shares state with the original graph")
	}
}

func TestLargestConnectedComponentTie(t *testing.T) {
	g := common.NewGraph()
	addPath(g, "x1", "x2")
	addPath(g, "y1", "y2")

	if got := LargestConnectedComponent(g).NodeIDs(); !reflect.DeepEqual(got, []string{"x1", "x2"}) {
		t.Fatalf("tie should pick first discovered component, got %v", got)
	}
}

func TestLargestConnectedComponentEmpty(t *testing.T) {
	lcc := LargestConnectedComponent(common.NewGraph())
	if lcc.NodeCount() != 0 {
		t.Fatalf("expected empty graph, got %d nodes", lcc.NodeCount())
	}
}

func TestConnectedComponents(t *testing.T) {
	g := common.NewGraph()
	addPath(g, "a", "b")
	g.AddNode(common.Node{ID: "iso"})
	addPath(g, "c", "d", "e")
	g.AddEdge("e", "a")

	got := ConnectedComponents(g)
	want := [][]string{{"a", "b", "e", "d", "c"}, {"iso"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("components = %v, want %v", got, want)
	}
}
