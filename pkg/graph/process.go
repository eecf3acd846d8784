package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("wikigraph/graph")

// BuildStats summarizes a build.
type BuildStats struct {
	Visits          int      `json:"visits"`
	Fetches         int      `json:"fetches"`
	Nodes           int      `json:"nodes"`
	Edges           int      `json:"edges"`
	FailedFetches   []string `json:"failed_fetches,omitempty"`
	MissingEntities []string `json:"missing_entities,omitempty"`
	MalformedClaims int      `json:"malformed_claims"`
}

type visit struct {
	id          string
	predecessor string
	hop         int
}

// Build crawls every seed with a URI into one shared graph.
//
// With AbortOnError any fetch failure returns a nil graph together with the
// error; no partial graph is exposed. Context cancellation always aborts.
func (b *Builder) Build(ctx context.Context, seeds []common.Seed) (*common.Graph, error) {
	g, _, err := b.BuildWithStats(ctx, seeds)
	return g, err
}

// BuildWithStats is Build and additionally reports crawl statistics. The
// statistics are returned even when the build fails.
func (b *Builder) BuildWithStats(ctx context.Context, seeds []common.Seed) (*common.Graph, BuildStats, error) {
	ctx, span := tracer.Start(ctx, "graph.Builder.Build",
		trace.WithAttributes(
			attribute.Int("seed_count", len(seeds)),
			attribute.Int("max_hops", b.maxHops),
			attribute.String("revisit_policy", b.revisit.String()),
			attribute.String("failure_policy", b.failure.String()),
		),
	)
	defer span.End()

	logger.Info("[Graph] Started building graph", "seeds", len(seeds), "max_hops", b.maxHops)

	g := common.NewGraph()
	var stats BuildStats

	for _, seed := range seeds {
		logger.Debug("[Graph] Seed term", "label", seed.Label)
		if seed.URI == nil {
			continue
		}
		id := wikidata.EntityIDFromURI(*seed.URI)
		if err := b.crawl(ctx, g, id, &stats); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error("[Graph] Build aborted", "seed", seed.Label, "err", err)
			return nil, stats, err
		}
	}

	span.SetAttributes(
		attribute.Int("node_count", stats.Nodes),
		attribute.Int("edge_count", stats.Edges),
		attribute.Int("fetch_count", stats.Fetches),
	)
	logger.Info("[Graph] Finished building graph", "nodes", stats.Nodes, "edges", stats.Edges, "fetches", stats.Fetches)

	return g, stats, nil
}

// crawl processes the worklist rooted at a seed. Children are pushed in
// reverse so they are visited in claim order, depth first.
func (b *Builder) crawl(ctx context.Context, g *common.Graph, seedID string, stats *BuildStats) error {
	stack := []visit{{id: seedID, hop: 0}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := b.visit(ctx, g, v, stats)
		if err != nil {
			return err
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}

func (b *Builder) visit(ctx context.Context, g *common.Graph, v visit, stats *BuildStats) ([]visit, error) {
	stats.Visits++
	logger.Debug("[Graph] Visiting entity", "id", v.id, "hop", v.hop)

	if v.hop > b.maxHops || v.id == b.sentinelID {
		return nil, nil
	}

	if b.revisit == SkipVisited && g.HasNode(v.id) {
		b.link(g, v, stats)
		return nil, nil
	}

	stats.Fetches++
	entity, err := b.fetcher.FetchEntity(ctx, v.id)
	if err != nil {
		return nil, b.handleFetchError(ctx, v, err, stats)
	}

	if g.AddNode(common.Node{
		ID:          v.id,
		Label:       entity.Label(b.language),
		Description: entity.Description(b.language),
		Aliases:     entity.AliasValues(b.language),
		Hop:         v.hop,
	}) {
		stats.Nodes++
	}
	b.link(g, v, stats)

	return b.expandClaims(entity, v, stats), nil
}

func (b *Builder) link(g *common.Graph, v visit, stats *BuildStats) {
	if v.predecessor == "" || g.HasEdge(v.predecessor, v.id) {
		return
	}
	if g.AddEdge(v.predecessor, v.id) {
		stats.Edges++
	}
}

func (b *Builder) handleFetchError(ctx context.Context, v visit, err error, stats *BuildStats) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, wikidata.ErrEntityNotFound) {
		logger.Warn("[Graph] Skipping dangling reference", "id", v.id, "from", v.predecessor)
		stats.MissingEntities = append(stats.MissingEntities, v.id)
		return nil
	}
	if b.failure == SkipOnError {
		logger.Warn("[Graph] Skipping entity after failed fetch", "id", v.id, "err", err)
		stats.FailedFetches = append(stats.FailedFetches, v.id)
		return nil
	}
	return fmt.Errorf("failed to fetch entity %s: %w", v.id, err)
}

func (b *Builder) expandClaims(entity *wikidata.Entity, v visit, stats *BuildStats) []visit {
	if entity.Claims == nil {
		return nil
	}

	var children []visit
	for pair := entity.Claims.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := b.expand[pair.Key]; !ok {
			continue
		}
		for _, statement := range pair.Value {
			if statement.IsEmpty() {
				continue
			}
			ref, err := statement.EntityID()
			if err != nil {
				logger.Warn("[Graph] Skipping malformed claim", "id", v.id, "property", pair.Key, "err", err)
				stats.MalformedClaims++
				continue
			}
			children = append(children, visit{id: ref, predecessor: v.id, hop: v.hop + 1})
		}
	}
	return children
}
