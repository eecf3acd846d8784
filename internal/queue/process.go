package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/wikigraph/internal/setup"
	"github.com/OFFIS-RIT/wikigraph/internal/storage"
	"github.com/OFFIS-RIT/wikigraph/internal/timing"
	"github.com/OFFIS-RIT/wikigraph/internal/util"
	"github.com/OFFIS-RIT/wikigraph/pkg/centrality"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/report"
	"github.com/OFFIS-RIT/wikigraph/pkg/wikidata"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/validator"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrInvalidMessage marks messages that can never succeed. The worker
// dead-letters them without retrying.
var ErrInvalidMessage = errors.New("invalid message")

var validate = validator.New()

const (
	uploadAttempts  = 3
	publishAttempts = 3
)

// Deps are the collaborators of ProcessCrawlMessage. S3 and Notify are
// optional.
type Deps struct {
	Fetcher wikidata.EntityFetcher
	Config  setup.Config
	S3      *awss3.Client
	Publish func(queueName string, data []byte) error
	Notify  func(topic string, data []byte) error
}

// DecodeCrawlJob parses and validates a crawl_queue message body.
func DecodeCrawlJob(msg string) (*CrawlJob, error) {
	job := new(CrawlJob)
	if err := json.Unmarshal([]byte(msg), job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := validate.Struct(job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if job.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate job id: %w", err)
		}
		job.ID = id
	}
	return job, nil
}

// ProcessCrawlMessage runs one crawl job and publishes its ReportMsg.
func ProcessCrawlMessage(ctx context.Context, deps Deps, msg string) error {
	sw := timing.NewStopwatch()

	job, err := DecodeCrawlJob(msg)
	if err != nil {
		return err
	}
	logger.Info("[Queue] Processing crawl job", "job_id", job.ID, "seeds", len(job.Seeds))

	cfg := deps.Config.Apply(job.Request)
	rep, err := report.Generate(ctx, deps.Fetcher, cfg.ReportParams(job.Seeds))
	sw.Lap("generate")
	if err != nil {
		if !isPermanent(err) {
			return fmt.Errorf("failed to generate report for job %s: %w", job.ID, err)
		}
		result := ReportMsg{JobID: job.ID, Status: StatusFailed, Error: err.Error(), Timings: sw.Laps()}
		if pubErr := publishResult(ctx, deps, result); pubErr != nil {
			return pubErr
		}
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	result := ReportMsg{
		JobID:    job.ID,
		Status:   StatusCompleted,
		ReportID: rep.ID,
		Nodes:    len(rep.Graph.Nodes),
		Edges:    len(rep.Graph.Edges),
	}

	if deps.S3 != nil {
		data, err := json.Marshal(rep)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		key, err := util.RetryWithContext(ctx, uploadAttempts, func(ctx context.Context) (string, error) {
			return storage.PutReport(ctx, deps.S3, rep.ID, data)
		})
		if err != nil {
			return err
		}
		sw.Lap("upload")
		result.Key = key
	} else {
		result.Report = rep
	}

	result.Timings = sw.Laps()
	if err := publishResult(ctx, deps, result); err != nil {
		return err
	}

	logger.Info("[Queue] Finished crawl job", "job_id", job.ID, "report_id", rep.ID, "nodes", result.Nodes, "edges", result.Edges)
	return nil
}

// isPermanent reports whether err would recur on every retry of a job.
func isPermanent(err error) bool {
	if errors.Is(err, centrality.ErrUnknownAlgorithm) || errors.Is(err, graph.ErrInvalidMaxHops) {
		return true
	}
	var fe *wikidata.FetchError
	return errors.As(err, &fe) && !fe.Temporary()
}

// PublishFailure publishes a failed ReportMsg for a message that is given up
// on. The job id is read from msg when it decodes.
func PublishFailure(ctx context.Context, deps Deps, msg string, cause error) error {
	var job struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal([]byte(msg), &job)
	return publishResult(ctx, deps, ReportMsg{JobID: job.ID, Status: StatusFailed, Error: cause.Error()})
}

func publishResult(ctx context.Context, deps Deps, result ReportMsg) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal report message: %w", err)
	}
	if deps.Publish != nil {
		err := util.RetryErrWithContext(ctx, publishAttempts, func(context.Context) error {
			return deps.Publish(ReportQueue, data)
		})
		if err != nil {
			return fmt.Errorf("failed to publish report message: %w", err)
		}
	}
	if deps.Notify != nil {
		if err := deps.Notify("crawl."+result.Status, data); err != nil {
			logger.Warn("[Queue] Failed to publish status event", "job_id", result.JobID, "err", err)
		}
	}
	return nil
}
