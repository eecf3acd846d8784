package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/wikigraph/pkg/report"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"
)

func TestBuildCommandOffline(t *testing.T) {
	dir := t.TempDir()
	dump := map[string]any{
		"entities": map[string]*wikidata.Entity{
			"Q146":   wikidata.NewEntity("Q146", "en", "house cat", "domesticated feline").AddReferences("P279", "Q35120"),
			"Q35120": wikidata.NewEntity("Q35120", "en", "entity", "anything that exists"),
		},
	}
	data, err := json.Marshal(dump)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	dumpPath := filepath.Join(dir, "dump.json")
	if err := os.WriteFile(dumpPath, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{
		"build",
		"--seed", "house cat=Q146",
		"--seed", "unlinked",
		"--entities-file", dumpPath,
		"--max-hops", "1",
		"--algorithm", "degree,pagerank",
		"--quiet",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v (stderr %s)", err, stderr.String())
	}

	var rep report.Report
	if err := json.Unmarshal(stdout.Bytes(), &rep); err != nil {
		t.Fatalf("output is not a report: %v", err)
	}
	if len(rep.Seeds) != 2 || rep.Seeds[1].URI != nil {
		t.Fatalf("unexpected seeds: %+v", rep.Seeds)
	}
	if len(rep.Graph.Nodes) != 2 || len(rep.Graph.Edges) != 1 {
		t.Fatalf("unexpected graph: %+v", rep.Graph)
	}
	if len(rep.Rankings) != 2 || rep.Rankings[1].Algorithm != "pagerank" {
		t.Fatalf("unexpected rankings: %+v", rep.Rankings)
	}
	if rep.Rankings[0].Results[0].Node.ID != "Q35120" {
		t.Fatalf("unexpected top node: %+v", rep.Rankings[0].Results)
	}
}
