package setup

import (
	"time"

	"github.com/OFFIS-RIT/wikigraph/internal/util"
	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
	"github.com/OFFIS-RIT/wikigraph/pkg/report"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"
)

// DefaultRequestTimeout bounds a synchronous graph request.
const DefaultRequestTimeout = 2 * time.Minute

// Config holds the crawl and ranking settings shared by all entry points.
type Config struct {
	WikidataURL string
	Language    string
	UserAgent   string
	Timeout     time.Duration
	MaxRetries  int

	MaxHops          int
	ExpandProperties []string
	StopIDs          []string
	TopN             int
	Algorithms       []string
	LargestComponent bool
	SkipVisited      bool
	SkipFailed       bool
	ParallelRankings int

	RequestTimeout time.Duration
}

// FromEnv reads a Config from the environment.
func FromEnv() Config {
	return Config{
		WikidataURL: util.GetEnvString("WIKIDATA_URL", wikidata.DefaultBaseURL),
		Language:    util.GetEnvString("WIKIDATA_LANGUAGE", wikidata.DefaultLanguage),
		UserAgent:   util.GetEnvString("WIKIDATA_USER_AGENT", wikidata.DefaultUserAgent),
		Timeout:     time.Duration(util.GetEnvInt("WIKIDATA_TIMEOUT_SECONDS", int(wikidata.DefaultTimeout/time.Second))) * time.Second,
		MaxRetries:  util.GetEnvInt("WIKIDATA_MAX_RETRIES", 1),

		MaxHops:          util.GetEnvInt("MAX_HOPS", graph.DefaultMaxHops),
		ExpandProperties: util.GetEnvList("EXPAND_PROPERTIES"),
		StopIDs:          util.GetEnvList("STOP_IDS"),
		TopN:             util.GetEnvInt("TOP_N", report.DefaultTopN),
		Algorithms:       util.GetEnvList("ALGORITHMS"),
		LargestComponent: util.GetEnvBool("LARGEST_COMPONENT", false),
		SkipVisited:      util.GetEnvBool("SKIP_VISITED", false),
		SkipFailed:       util.GetEnvBool("SKIP_FAILED_FETCHES", false),
		ParallelRankings: util.GetEnvInt("PARALLEL_RANKINGS", report.DefaultParallelRankings),

		RequestTimeout: time.Duration(util.GetEnvInt("GRAPH_TIMEOUT_SECONDS", int(DefaultRequestTimeout/time.Second))) * time.Second,
	}
}

// Client returns a Wikidata client for c.
func (c Config) Client() *wikidata.Client {
	return wikidata.NewClient(wikidata.NewClientParams{
		BaseURL:    c.WikidataURL,
		Language:   c.Language,
		UserAgent:  c.UserAgent,
		Timeout:    c.Timeout,
		MaxRetries: c.MaxRetries,
		RetryDelay: time.Second,
	})
}

// BuilderOptions translates c into graph.Builder options.
func (c Config) BuilderOptions() []graph.Option {
	opts := []graph.Option{
		graph.WithMaxHops(c.MaxHops),
		graph.WithAdditionalProperties(c.ExpandProperties...),
	}
	if c.Language != "" {
		opts = append(opts, graph.WithLanguage(c.Language))
	}
	if c.SkipVisited {
		opts = append(opts, graph.WithRevisitPolicy(graph.SkipVisited))
	}
	if c.SkipFailed {
		opts = append(opts, graph.WithFailurePolicy(graph.SkipOnError))
	}
	return opts
}

// ReportParams returns the report parameters for seeds under c.
func (c Config) ReportParams(seeds []common.Seed) report.Params {
	return report.Params{
		Seeds:            seeds,
		BuilderOptions:   c.BuilderOptions(),
		Algorithms:       c.Algorithms,
		StopIDs:          c.StopIDs,
		TopN:             c.TopN,
		LargestComponent: c.LargestComponent,
		ParallelRankings: c.ParallelRankings,
	}
}
