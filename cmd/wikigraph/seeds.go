package main

import (
	"regexp"
	"strings"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"
)

var entityIDPattern = regexp.MustCompile(`^Q[0-9]+$`)

// parseSeed reads a --seed value. "label=uri" links the label to an entity,
// a bare entity id such as "Q146" links to itself, and any other value is an
// unlinked label.
func parseSeed(value string) common.Seed {
	value = strings.TrimSpace(value)
	if label, uri, ok := strings.Cut(value, "="); ok {
		label, uri = strings.TrimSpace(label), strings.TrimSpace(uri)
		if uri == "" {
			return common.Seed{Label: label}
		}
		if entityIDPattern.MatchString(uri) {
			uri = wikidata.EntityURI(uri)
		}
		return common.NewSeed(label, uri)
	}
	if entityIDPattern.MatchString(value) {
		return common.NewSeed(value, wikidata.EntityURI(value))
	}
	return common.Seed{Label: value}
}

func parseSeeds(values []string) []common.Seed {
	seeds := make([]common.Seed, 0, len(values))
	for _, v := range values {
		seeds = append(seeds, parseSeed(v))
	}
	return seeds
}
