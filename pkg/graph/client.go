package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"
)

const (
	DefaultMaxHops = 2

	// DefaultSentinelID is the Wikimedia category class. Visiting it would
	// pull large unrelated category trees into the graph.
	DefaultSentinelID = "Q4167836"
)

var ErrInvalidMaxHops = errors.New("max hops must not be negative")

// DefaultExpansionProperties returns the base set of properties whose
// referenced entities are followed. Each call returns a fresh slice.
func DefaultExpansionProperties() []string {
	return []string{
		"P31",   // instance of
		"P279",  // subclass of
		"P301",  // category's main topic
		"P361",  // part of
		"P366",  // use
		"P527",  // has part
		"P910",  // topic's main category
		"P921",  // main subject
		"P2578", // studies
		"P2579", // studied by
	}
}

// RevisitPolicy controls what happens when the crawl reaches an entity that
// already has a node.
type RevisitPolicy int

const (
	// ReexpandVisited fetches and expands the entity again on every visit.
	// Only node creation is skipped. Fetch counts grow with the number of
	// paths to a node, bounded by max hops and the branching factor.
	ReexpandVisited RevisitPolicy = iota
	// SkipVisited adds the edge from the predecessor and stops.
	SkipVisited
)

func (p RevisitPolicy) String() string {
	switch p {
	case ReexpandVisited:
		return "reexpand"
	case SkipVisited:
		return "skip"
	default:
		return fmt.Sprintf("RevisitPolicy(%d)", int(p))
	}
}

// FailurePolicy controls how a failed fetch affects the build.
type FailurePolicy int

const (
	// AbortOnError stops the build and returns no graph.
	AbortOnError FailurePolicy = iota
	// SkipOnError drops the failed visit and continues the crawl.
	SkipOnError
)

func (p FailurePolicy) String() string {
	switch p {
	case AbortOnError:
		return "abort"
	case SkipOnError:
		return "skip"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// Builder crawls entities from seed terms into a common.Graph.
//
// A Builder should be created using NewBuilder. It keeps no state between
// builds and may be reused, but a single Build call is not safe to share
// across goroutines.
type Builder struct {
	fetcher    wikidata.EntityFetcher
	maxHops    int
	properties []string
	expand     map[string]struct{}
	sentinelID string
	language   string
	revisit    RevisitPolicy
	failure    FailurePolicy
}

type builderConfig struct {
	maxHops    int
	additional []string
	sentinelID string
	language   string
	revisit    RevisitPolicy
	failure    FailurePolicy
}

// Option configures a Builder.
type Option func(*builderConfig)

// WithMaxHops sets the maximum traversal depth from any seed.
func WithMaxHops(hops int) Option {
	return func(c *builderConfig) { c.maxHops = hops }
}

// WithAdditionalProperties adds properties to the base expansion set.
func WithAdditionalProperties(props ...string) Option {
	return func(c *builderConfig) { c.additional = append(c.additional, props...) }
}

// WithSentinelID replaces the id whose visits are ignored.
func WithSentinelID(id string) Option {
	return func(c *builderConfig) { c.sentinelID = id }
}

// WithLanguage sets the language used for labels, descriptions and aliases.
func WithLanguage(lang string) Option {
	return func(c *builderConfig) { c.language = lang }
}

// WithRevisitPolicy sets the RevisitPolicy.
func WithRevisitPolicy(p RevisitPolicy) Option {
	return func(c *builderConfig) { c.revisit = p }
}

// WithFailurePolicy sets the FailurePolicy.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(c *builderConfig) { c.failure = p }
}

// NewBuilder creates a Builder using fetcher.
//
// Example:
//
//	b, err := graph.NewBuilder(client,
//		graph.WithMaxHops(1),
//		graph.WithAdditionalProperties("P101"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	g, err := b.Build(ctx, seeds)
func NewBuilder(fetcher wikidata.EntityFetcher, opts ...Option) (*Builder, error) {
	if fetcher == nil {
		return nil, errors.New("entity fetcher is required")
	}

	cfg := builderConfig{
		maxHops:    DefaultMaxHops,
		sentinelID: DefaultSentinelID,
		language:   wikidata.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxHops < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxHops, cfg.maxHops)
	}

	b := &Builder{
		fetcher:    fetcher,
		maxHops:    cfg.maxHops,
		expand:     make(map[string]struct{}),
		sentinelID: cfg.sentinelID,
		language:   cfg.language,
		revisit:    cfg.revisit,
		failure:    cfg.failure,
	}
	for _, p := range append(DefaultExpansionProperties(), cfg.additional...) {
		if _, ok := b.expand[p]; ok {
			continue
		}
		b.expand[p] = struct{}{}
		b.properties = append(b.properties, p)
	}

	return b, nil
}

// MaxHops returns the configured traversal depth.
func (b *Builder) MaxHops() int {
	return b.maxHops
}

// Properties returns a copy of the expansion properties.
func (b *Builder) Properties() []string {
	return slices.Clone(b.properties)
}
