package centrality

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
)

const epsilon = 1e-6

func newGraph(nodes []string, edges [][2]string) *common.Graph {
	g := common.NewGraph()
	for _, id := range nodes {
		g.AddNode(common.Node{ID: id})
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// star returns a graph with center "c" connected to leaves l1..l4.
func star() *common.Graph {
	return newGraph(
		[]string{"c", "l1", "l2", "l3", "l4"},
		[][2]string{{"c", "l1"}, {"c", "l2"}, {"c", "l3"}, {"c", "l4"}},
	)
}

func path() *common.Graph {
	return newGraph([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDegree(t *testing.T) {
	scores := Degree(star())
	if !almostEqual(scores["c"], 1) {
		t.Fatalf("center degree = %f, want 1", scores["c"])
	}
	if !almostEqual(scores["l1"], 0.25) {
		t.Fatalf("leaf degree = %f, want 0.25", scores["l1"])
	}

	single := Degree(newGraph([]string{"x"}, nil))
	if single["x"] != 1 {
		t.Fatalf("single node degree = %f, want 1", single["x"])
	}
}

func TestBetweenness(t *testing.T) {
	tests := []struct {
		name  string
		graph *common.Graph
		want  map[string]float64
	}{
		{
			name:  "path",
			graph: path(),
			want:  map[string]float64{"a": 0, "b": 1, "c": 0},
		},
		{
			name:  "star",
			graph: star(),
			want:  map[string]float64{"c": 1, "l1": 0, "l2": 0, "l3": 0, "l4": 0},
		},
		{
			name:  "square",
			graph: newGraph([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}}),
			want:  map[string]float64{"a": 1.0 / 6, "b": 1.0 / 6, "c": 1.0 / 6, "d": 1.0 / 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Betweenness(tt.graph)
			for id, want := range tt.want {
				if !almostEqual(got[id], want) {
					t.Fatalf("betweenness[%s] = %f, want %f", id, got[id], want)
				}
			}
		})
	}
}

func TestCloseness(t *testing.T) {
	scores := Closeness(path())
	if !almostEqual(scores["b"], 1) {
		t.Fatalf("closeness[b] = %f, want 1", scores["b"])
	}
	if !almostEqual(scores["a"], 2.0/3) {
		t.Fatalf("closeness[a] = %f, want 0.666667", scores["a"])
	}

	isolated := Closeness(newGraph([]string{"a", "b"}, nil))
	if isolated["a"] != 0 {
		t.Fatalf("isolated closeness = %f, want 0", isolated["a"])
	}
}

func TestPageRankSumsToOne(t *testing.T) {
	g := newGraph(
		[]string{"a", "b", "c", "d", "iso"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}},
	)
	scores := PageRank(g)

	total := 0.0
	for _, s := range scores {
		total += s
	}
	if !almostEqual(total, 1) {
		t.Fatalf("pagerank sum = %f, want 1", total)
	}
	if scores["c"] <= scores["a"] || scores["a"] <= scores["d"] {
		t.Fatalf("unexpected ordering: %v", scores)
	}
}

func TestPageRankSymmetricStar(t *testing.T) {
	scores := PageRank(star())
	for _, leaf := range []string{"l2", "l3", "l4"} {
		if !almostEqual(scores["l1"], scores[leaf]) {
			t.Fatalf("leaves differ: l1=%f %s=%f", scores["l1"], leaf, scores[leaf])
		}
	}
	if scores["c"] <= scores["l1"] {
		t.Fatalf("center should outrank leaves: %v", scores)
	}
}

func TestEigenvector(t *testing.T) {
	scores := Eigenvector(star())
	if scores["c"] <= scores["l1"] {
		t.Fatalf("center should outrank leaves: %v", scores)
	}

	norm := 0.0
	for _, s := range scores {
		norm += s * s
	}
	if !almostEqual(norm, 1) {
		t.Fatalf("expected unit norm, got %f", norm)
	}

	if len(Eigenvector(common.NewGraph())) != 0 {
		t.Fatal("expected no scores for empty graph")
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		if _, err := ByName(name); err != nil {
			t.Fatalf("ByName(%q) failed: %v", name, err)
		}
	}
	if _, err := ByName("katz"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("expected ErrUnknownAlgorithm, got %v", err)
	}

	want := []string{"betweenness", "closeness", "degree", "eigenvector", "pagerank"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}
