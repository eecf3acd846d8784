package report

import (
	"context"
	"errors"
	"testing"

	"github.com/OFFIS-RIT/wikigraph/pkg/centrality"
	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"
)

func testFetcher() *wikidata.MapFetcher {
	return wikidata.NewMapFetcher(map[string]*wikidata.Entity{
		"Q1": wikidata.NewEntity("Q1", "en", "one", "").AddReferences("P31", "Q2", "Q3"),
		"Q2": wikidata.NewEntity("Q2", "en", "two", "").AddReferences("P279", "Q4"),
		"Q3": wikidata.NewEntity("Q3", "en", "three", ""),
		"Q4": wikidata.NewEntity("Q4", "en", "four", ""),
		"Q5": wikidata.NewEntity("Q5", "en", "five", ""),
	})
}

func seeds(ids ...string) []common.Seed {
	out := make([]common.Seed, 0, len(ids))
	for _, id := range ids {
		out = append(out, common.NewSeed("seed "+id, wikidata.EntityURI(id)))
	}
	return out
}

func TestGenerate(t *testing.T) {
	r, err := Generate(context.Background(), testFetcher(), Params{
		Seeds:      seeds("Q1"),
		Algorithms: []string{"pagerank", "degree", "betweenness"},
		TopN:       2,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(r.ID) != 21 {
		t.Fatalf("expected a 21 character id, got %q", r.ID)
	}
	if r.MaxHops != graph.DefaultMaxHops {
		t.Fatalf("MaxHops = %d, want %d", r.MaxHops, graph.DefaultMaxHops)
	}
	if len(r.Graph.Nodes) != 4 || len(r.Graph.Edges) != 3 {
		t.Fatalf("unexpected graph size: %d nodes, %d edges", len(r.Graph.Nodes), len(r.Graph.Edges))
	}
	if r.Components != 1 {
		t.Fatalf("Components = %d, want 1", r.Components)
	}

	want := []string{"pagerank", "degree", "betweenness"}
	if len(r.Rankings) != len(want) {
		t.Fatalf("expected %d rankings, got %d", len(want), len(r.Rankings))
	}
	for i, ranking := range r.Rankings {
		if ranking.Algorithm != want[i] {
			t.Fatalf("ranking %d is %s, want %s", i, ranking.Algorithm, want[i])
		}
		if len(ranking.Results) != 2 {
			t.Fatalf("%s: expected 2 results, got %d", ranking.Algorithm, len(ranking.Results))
		}
		for _, res := range ranking.Results {
			if res.Node.ID == "Q1" {
				t.Fatalf("%s: seed node must not be ranked", ranking.Algorithm)
			}
		}
	}
	if top := r.Rankings[2].Results[0].Node.ID; top != "Q2" {
		t.Fatalf("betweenness top = %s, want Q2", top)
	}
}

func TestGenerateDefaults(t *testing.T) {
	r, err := Generate(context.Background(), testFetcher(), Params{Seeds: seeds("Q1")})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(r.Rankings) != 1 || r.Rankings[0].Algorithm != DefaultAlgorithm {
		t.Fatalf("expected a single %s ranking, got %+v", DefaultAlgorithm, r.Rankings)
	}
	if len(r.Rankings[0].Results) != 3 {
		t.Fatalf("expected every non-seed node ranked, got %d", len(r.Rankings[0].Results))
	}
}

func TestGenerateUnknownAlgorithm(t *testing.T) {
	f := testFetcher()
	_, err := Generate(context.Background(), f, Params{
		Seeds:      seeds("Q1"),
		Algorithms: []string{"degree", "katz"},
	})
	if !errors.Is(err, centrality.ErrUnknownAlgorithm) {
		t.Fatalf("expected ErrUnknownAlgorithm, got %v", err)
	}
	if f.TotalCalls() != 0 {
		t.Fatalf("expected no fetches, got %d", f.TotalCalls())
	}
}

func TestGenerateLargestComponent(t *testing.T) {
	r, err := Generate(context.Background(), testFetcher(), Params{
		Seeds:            seeds("Q1", "Q5"),
		LargestComponent: true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if r.Components != 2 {
		t.Fatalf("Components = %d, want 2", r.Components)
	}
	for _, n := range r.Graph.Nodes {
		if n.ID == "Q5" {
			t.Fatal("isolated seed should not be in the largest component")
		}
	}
	if len(r.Graph.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(r.Graph.Nodes))
	}
}

func TestGenerateFetchFailure(t *testing.T) {
	f := testFetcher()
	f.FailWith("Q2", &wikidata.FetchError{ID: "Q2", StatusCode: 503})

	_, err := Generate(context.Background(), f, Params{Seeds: seeds("Q1")})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsFetchFailure(err) {
		t.Fatalf("expected fetch failure, got %v", err)
	}

	r, err := Generate(context.Background(), f, Params{
		Seeds:          seeds("Q1"),
		BuilderOptions: []graph.Option{graph.WithFailurePolicy(graph.SkipOnError)},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(r.Stats.FailedFetches) != 1 || r.Stats.FailedFetches[0] != "Q2" {
		t.Fatalf("unexpected failed fetches: %v", r.Stats.FailedFetches)
	}
}

func TestIsFetchFailure(t *testing.T) {
	if IsFetchFailure(errors.New("boom")) {
		t.Fatal("plain error is not a fetch failure")
	}
	if IsFetchFailure(nil) {
		t.Fatal("nil is not a fetch failure")
	}
}
