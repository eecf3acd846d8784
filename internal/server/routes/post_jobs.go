package routes

import (
	"encoding/json"
	"net/http"

	"github.com/OFFIS-RIT/wikigraph/internal/queue"
	"github.com/OFFIS-RIT/wikigraph/internal/server/middleware"
	"github.com/OFFIS-RIT/wikigraph/internal/setup"
	"github.com/OFFIS-RIT/wikigraph/pkg/centrality"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type createJobResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}

// CreateJobHandler enqueues a crawl for the worker.
func CreateJobHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if app.Enqueue == nil {
		return c.JSON(http.StatusServiceUnavailable, createJobResponse{
			Message: "Job queue not configured",
		})
	}

	data := new(setup.Request)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createJobResponse{
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createJobResponse{
			Message: "Invalid request body",
		})
	}

	for _, name := range data.Algorithms {
		if _, err := centrality.ByName(name); err != nil {
			return c.JSON(http.StatusBadRequest, createJobResponse{
				Message: err.Error(),
			})
		}
	}

	id, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createJobResponse{
			Message: "Internal server error",
		})
	}

	msg, err := json.Marshal(queue.CrawlJob{ID: id, Request: *data})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createJobResponse{
			Message: "Internal server error",
		})
	}

	if err := app.Enqueue(queue.CrawlQueue, msg); err != nil {
		logger.Error("[Server] Failed to enqueue crawl job", "job_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, createJobResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, createJobResponse{
		Message: "Job queued",
		JobID:   id,
	})
}
