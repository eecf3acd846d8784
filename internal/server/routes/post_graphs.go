package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/wikigraph/internal/server/middleware"
	"github.com/OFFIS-RIT/wikigraph/internal/setup"
	"github.com/OFFIS-RIT/wikigraph/pkg/centrality"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/report"

	"github.com/labstack/echo/v4"
)

type createGraphResponse struct {
	Message string         `json:"message"`
	Report  *report.Report `json:"report,omitempty"`
}

// CreateGraphHandler builds a graph and its rankings within the request.
func CreateGraphHandler(c echo.Context) error {
	data := new(setup.Request)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createGraphResponse{
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createGraphResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	cfg := app.Config.Apply(*data)

	ctx := c.Request().Context()
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}

	rep, err := report.Generate(ctx, app.Fetcher, cfg.ReportParams(data.Seeds))
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("[Server] Graph request timed out", "timeout", cfg.RequestTimeout)
			return c.JSON(http.StatusGatewayTimeout, createGraphResponse{
				Message: "Graph request timed out",
			})
		case errors.Is(err, centrality.ErrUnknownAlgorithm), errors.Is(err, graph.ErrInvalidMaxHops):
			return c.JSON(http.StatusBadRequest, createGraphResponse{
				Message: err.Error(),
			})
		case report.IsFetchFailure(err):
			logger.Warn("[Server] Entity source failed", "err", err)
			return c.JSON(http.StatusBadGateway, createGraphResponse{
				Message: "Failed to fetch entities",
			})
		default:
			logger.Error("[Server] Failed to generate report", "err", err)
			return c.JSON(http.StatusInternalServerError, createGraphResponse{
				Message: "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusOK, createGraphResponse{
		Message: "Graph created successfully",
		Report:  rep,
	})
}

// GetAlgorithmsHandler lists the available centrality algorithms.
func GetAlgorithmsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"algorithms": centrality.Names()})
}
