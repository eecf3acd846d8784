package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/wikigraph/internal/server/middleware"
	"github.com/OFFIS-RIT/wikigraph/internal/storage"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

type reportParams struct {
	ID string `param:"id" validate:"required,max=64,excludesall=/."`
}

type reportResponse struct {
	Message string   `json:"message"`
	IDs     []string `json:"ids,omitempty"`
	URL     string   `json:"url,omitempty"`
}

func storageUnavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, reportResponse{
		Message: "Report storage not configured",
	})
}

func bindReportParams(c echo.Context) (*reportParams, error) {
	params := new(reportParams)
	if err := c.Bind(params); err != nil {
		return nil, err
	}
	if err := c.Validate(params); err != nil {
		return nil, err
	}
	return params, nil
}

// GetReportsHandler lists stored report ids.
func GetReportsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if app.S3 == nil {
		return storageUnavailable(c)
	}

	ids, err := storage.ListReports(c.Request().Context(), app.S3)
	if err != nil {
		logger.Error("[Server] Failed to list reports", "err", err)
		return c.JSON(http.StatusInternalServerError, reportResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, reportResponse{
		Message: "Reports retrieved successfully",
		IDs:     ids,
	})
}

// GetReportHandler returns a stored report as written by the worker.
func GetReportHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if app.S3 == nil {
		return storageUnavailable(c)
	}

	params, err := bindReportParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, reportResponse{
			Message: "Invalid report id",
		})
	}

	data, err := storage.GetReport(c.Request().Context(), app.S3, params.ID)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, reportResponse{
				Message: "Report not found",
			})
		}
		logger.Error("[Server] Failed to get report", "id", params.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, reportResponse{
			Message: "Internal server error",
		})
	}

	return c.JSONBlob(http.StatusOK, data)
}

// GetReportLinkHandler returns a presigned download link for a report.
func GetReportLinkHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if app.S3 == nil {
		return storageUnavailable(c)
	}

	params, err := bindReportParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, reportResponse{
			Message: "Invalid report id",
		})
	}

	url, err := storage.GenerateDownloadLink(c.Request().Context(), app.S3, params.ID)
	if err != nil {
		logger.Error("[Server] Failed to generate download link", "id", params.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, reportResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, reportResponse{
		Message: "Download link generated",
		URL:     url,
	})
}
