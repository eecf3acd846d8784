package queue

import (
	"github.com/OFFIS-RIT/wikigraph/internal/setup"
	"github.com/OFFIS-RIT/wikigraph/pkg/report"
)

// CrawlJob is the body of a crawl_queue message.
type CrawlJob struct {
	ID string `json:"id"`
	setup.Request
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ReportMsg is published to report_queue once a job finishes. Report is
// inlined when no S3 bucket is configured.
type ReportMsg struct {
	JobID    string           `json:"job_id"`
	Status   string           `json:"status"`
	ReportID string           `json:"report_id,omitempty"`
	Key      string           `json:"key,omitempty"`
	Nodes    int              `json:"nodes"`
	Edges    int              `json:"edges"`
	Error    string           `json:"error,omitempty"`
	Timings  map[string]int64 `json:"timings_ms,omitempty"`
	Report   *report.Report   `json:"report,omitempty"`
}
