package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
)

func TestHopColor(t *testing.T) {
	tests := []struct {
		hop  int
		want string
	}{
		{-1, HopPalette[0]},
		{0, HopPalette[0]},
		{2, HopPalette[2]},
		{3, HopPalette[3]},
		{7, HopPalette[3]},
	}
	for _, tt := range tests {
		if got := HopColor(tt.hop); got != tt.want {
			t.Fatalf("HopColor(%d) = %s, want %s", tt.hop, got, tt.want)
		}
	}
}

func TestExport(t *testing.T) {
	g := common.NewGraph()
	g.AddNode(common.Node{ID: "Q1", Label: "one", Hop: 0})
	g.AddNode(common.Node{ID: "Q2", Label: "two", Hop: 1})
	g.AddEdge("Q1", "Q2")

	out := Export(g)
	if len(out.Nodes) != 2 || out.Nodes[1].Color != HopPalette[1] {
		t.Fatalf("unexpected nodes: %+v", out.Nodes)
	}

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, key := range []string{`"id":"Q2"`, `"color":"#abdda4"`, `"hop":1`, `"edges":[{`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in %s", key, data)
		}
	}
}

func TestExportEmpty(t *testing.T) {
	data, err := json.Marshal(Export(common.NewGraph()))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"nodes":[],"edges":[]}` {
		t.Fatalf("unexpected output: %s", data)
	}
}
