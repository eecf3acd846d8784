package main

import "testing"

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in        string
		wantLabel string
		wantURI   string
	}{
		{"house cat=http://www.wikidata.org/entity/Q146", "house cat", "http://www.wikidata.org/entity/Q146"},
		{"house cat = Q146", "house cat", "http://www.wikidata.org/entity/Q146"},
		{"Q146", "Q146", "http://www.wikidata.org/entity/Q146"},
		{"unlinked term", "unlinked term", ""},
		{"unlinked=", "unlinked", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			seed := parseSeed(tt.in)
			if seed.Label != tt.wantLabel {
				t.Fatalf("label = %q, want %q", seed.Label, tt.wantLabel)
			}
			if tt.wantURI == "" {
				if seed.URI != nil {
					t.Fatalf("expected nil uri, got %q", *seed.URI)
				}
				return
			}
			if seed.URI == nil || *seed.URI != tt.wantURI {
				t.Fatalf("uri = %v, want %q", seed.URI, tt.wantURI)
			}
		})
	}
}
