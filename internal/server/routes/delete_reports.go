package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/wikigraph/internal/server/middleware"
	"github.com/OFFIS-RIT/wikigraph/internal/storage"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeleteReportHandler removes a stored report.
func DeleteReportHandler(c echo.Context) error {
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

	if err := storage.DeleteReport(c.Request().Context(), app.S3, params.ID); err != nil {
		logger.Error("[Server] Failed to delete report", "id", params.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, reportResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, reportResponse{
		Message: "Report deleted successfully",
	})
}
