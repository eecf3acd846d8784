package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/wikigraph/pkg/centrality"
	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopN             = 10
	DefaultParallelRankings = 4
	DefaultAlgorithm        = "degree"
)

var tracer = otel.Tracer("wikigraph/report")

// Params configures a report run.
//
// Algorithms are names from centrality.Names; an empty list selects
// DefaultAlgorithm. TopN <= 0 selects DefaultTopN.
type Params struct {
	Seeds            []common.Seed
	BuilderOptions   []graph.Option
	Algorithms       []string
	StopIDs          []string
	TopN             int
	LargestComponent bool
	ParallelRankings int
}

// Ranking is the result of one centrality algorithm.
type Ranking struct {
	Algorithm string             `json:"algorithm"`
	Results   []graph.RankedNode `json:"results"`
}

// Report is the outcome of building and analyzing one graph.
type Report struct {
	ID               string           `json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	Seeds            []common.Seed    `json:"seeds"`
	MaxHops          int              `json:"max_hops"`
	Stats            graph.BuildStats `json:"stats"`
	Components       int              `json:"components"`
	LargestComponent bool             `json:"largest_component"`
	Graph            ExportGraph      `json:"graph"`
	Rankings         []Ranking        `json:"rankings"`
}

// Generate builds a graph from params.Seeds and ranks its nodes with every
// requested algorithm. Rankings run concurrently on the finished graph.
func Generate(ctx context.Context, fetcher wikidata.EntityFetcher, params Params) (*Report, error) {
	ctx, span := tracer.Start(ctx, "report.Generate",
		trace.WithAttributes(attribute.Int("seed_count", len(params.Seeds))),
	)
	defer span.End()

	names := params.Algorithms
	if len(names) == 0 {
		names = []string{DefaultAlgorithm}
	}
	algorithms := make([]centrality.Algorithm, len(names))
	for i, name := range names {
		alg, err := centrality.ByName(name)
		if err != nil {
			return nil, err
		}
		algorithms[i] = alg
	}

	topN := params.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	parallel := params.ParallelRankings
	if parallel <= 0 {
		parallel = DefaultParallelRankings
	}

	builder, err := graph.NewBuilder(fetcher, params.BuilderOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph builder: %w", err)
	}

	g, stats, err := builder.BuildWithStats(ctx, params.Seeds)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}

	components := len(graph.ConnectedComponents(g))
	if params.LargestComponent {
		g = graph.LargestConnectedComponent(g)
		logger.Info("[Report] Using largest connected component", "nodes", g.NodeCount(), "components", components)
	}

	rankings := make([]Ranking, len(names))
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i := range names {
		eg.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			rankings[i] = Ranking{
				Algorithm: names[i],
				Results:   graph.Rank(g, algorithms[i], params.StopIDs, topN),
			}
			logger.Debug("[Report] Ranking computed", "algorithm", names[i], "results", len(rankings[i].Results))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute rankings: %w", err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report id: %w", err)
	}

	return &Report{
		ID:               id,
		CreatedAt:        time.Now().UTC(),
		Seeds:            params.Seeds,
		MaxHops:          builder.MaxHops(),
		Stats:            stats,
		Components:       components,
		LargestComponent: params.LargestComponent,
		Graph:            Export(g),
		Rankings:         rankings,
	}, nil
}

// IsFetchFailure reports whether err was caused by the entity data source.
func IsFetchFailure(err error) bool {
	var fe *wikidata.FetchError
	return errors.As(err, &fe)
}
