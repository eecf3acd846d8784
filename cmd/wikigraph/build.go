package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/OFFIS-RIT/wikigraph/internal/setup"
	"github.com/OFFIS-RIT/wikigraph/internal/storage"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/report"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"

	"github.com/spf13/cobra"
)

var (
	buildSeeds        []string
	buildMaxHops      int
	buildProperties   []string
	buildStopIDs      []string
	buildTopN         int
	buildAlgorithms   []string
	buildLargest      bool
	buildSkipVisited  bool
	buildSkipFailed   bool
	buildLanguage     string
	buildEntitiesFile string
	buildOutput       string
	buildUpload       bool
	buildTimeout      time.Duration
	buildQuiet        bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Crawl a graph from seed concepts and rank its nodes",
	Long: `Crawl Wikidata from the given seeds and write a JSON report containing
the graph (nodes colored by hop) and one ranking per algorithm.

Seeds:
  --seed "house cat=http://www.wikidata.org/entity/Q146"   label linked to an entity
  --seed Q146                                             entity id
  --seed "unlinked term"                                  ignored during the crawl

Examples:
  wikigraph build --seed Q146 --max-hops 1
  wikigraph build --seed Q146 --algorithm pagerank --algorithm betweenness --top 5
  wikigraph build --seed Q146 --entities-file dump.json --output report.json`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringArrayVarP(&buildSeeds, "seed", "s", nil, "Seed as label=uri, an entity id or a bare label (repeatable)")
	f.IntVar(&buildMaxHops, "max-hops", 2, "Maximum hop distance from any seed")
	f.StringSliceVar(&buildProperties, "prop", nil, "Additional properties to expand")
	f.StringSliceVar(&buildStopIDs, "stop", nil, "Entity ids excluded from rankings")
	f.IntVar(&buildTopN, "top", report.DefaultTopN, "Number of ranked nodes per algorithm")
	f.StringSliceVarP(&buildAlgorithms, "algorithm", "a", nil, "Centrality algorithm (repeatable)")
	f.BoolVar(&buildLargest, "largest-component", false, "Rank only the largest connected component")
	f.BoolVar(&buildSkipVisited, "skip-visited", false, "Do not expand entities that already have a node")
	f.BoolVar(&buildSkipFailed, "skip-failed", false, "Continue when an entity cannot be fetched")
	f.StringVar(&buildLanguage, "language", wikidata.DefaultLanguage, "Language of labels and descriptions")
	f.StringVar(&buildEntitiesFile, "entities-file", "", "Read entities from a wbgetentities JSON dump instead of the API")
	f.StringVarP(&buildOutput, "output", "o", "", "Write the report to a file instead of stdout")
	f.BoolVar(&buildUpload, "upload", false, "Upload the report to the configured S3 bucket")
	f.DurationVar(&buildTimeout, "timeout", 0, "Abort the build after this duration")
	f.BoolVarP(&buildQuiet, "quiet", "q", false, "Do not print the ranking summary")

	_ = buildCmd.MarkFlagRequired("seed")
}

// buildConfig applies the flags that were set on top of cfg.
func buildConfig(cmd *cobra.Command, cfg setup.Config) setup.Config {
	f := cmd.Flags()
	if f.Changed("max-hops") {
		cfg.MaxHops = buildMaxHops
	}
	if f.Changed("prop") {
		cfg.ExpandProperties = append(cfg.ExpandProperties, buildProperties...)
	}
	if f.Changed("stop") {
		cfg.StopIDs = append(cfg.StopIDs, buildStopIDs...)
	}
	if f.Changed("top") {
		cfg.TopN = buildTopN
	}
	if f.Changed("algorithm") {
		cfg.Algorithms = buildAlgorithms
	}
	if f.Changed("largest-component") {
		cfg.LargestComponent = buildLargest
	}
	if f.Changed("skip-visited") {
		cfg.SkipVisited = buildSkipVisited
	}
	if f.Changed("skip-failed") {
		cfg.SkipFailed = buildSkipFailed
	}
	if f.Changed("language") {
		cfg.Language = buildLanguage
	}
	return cfg
}

func loadFetcher(cfg setup.Config) (wikidata.EntityFetcher, error) {
	if buildEntitiesFile == "" {
		return cfg.Client(), nil
	}
	file, err := os.Open(buildEntitiesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open entities file: %w", err)
	}
	defer file.Close()
	return wikidata.LoadMapFetcher(file)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if buildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, buildTimeout)
		defer cancel()
	}

	cfg := buildConfig(cmd, setup.FromEnv())
	fetcher, err := loadFetcher(cfg)
	if err != nil {
		return err
	}

	rep, err := report.Generate(ctx, fetcher, cfg.ReportParams(parseSeeds(buildSeeds)))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("build timed out after %s: %w", buildTimeout, err)
		}
		return err
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if buildUpload {
		if !storage.Enabled() {
			return errors.New("--upload requires AWS_BUCKET")
		}
		client, err := storage.NewS3Client(ctx)
		if err != nil {
			return err
		}
		key, err := storage.PutReport(ctx, client, rep.ID, data)
		if err != nil {
			return err
		}
		logger.Info("[CLI] Uploaded report", "key", key)
	}

	if buildOutput != "" {
		if err := os.WriteFile(buildOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("[CLI] Wrote report", "path", buildOutput, "id", rep.ID)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if !buildQuiet {
		printSummary(cmd.ErrOrStderr(), rep)
	}
	return nil
}

func printSummary(w io.Writer, rep *report.Report) {
	fmt.Fprintf(w, "\n%d nodes, %d edges, %d fetches\n", rep.Stats.Nodes, rep.Stats.Edges, rep.Stats.Fetches)
	for _, ranking := range rep.Rankings {
		fmt.Fprintf(w, "\n%s\n", ranking.Algorithm)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for i, r := range ranking.Results {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.6f\n", i+1, r.Node.ID, r.Node.Label, r.Score)
		}
		tw.Flush()
	}
}
