package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"civictrack/internal/errors"
	"civictrack/internal/service"
)

// StatsHandler handles the aggregate stats endpoint.
type StatsHandler struct {
	issueService service.IssueService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(issueService service.IssueService) *StatsHandler {
	return &StatsHandler{issueService: issueService}
}

// GetStats godoc
// @Summary Aggregate issue statistics
// @Tags stats
// @Produce json
// @Success 200 {object} service.Stats
// @Router /stats [get]
func (h *StatsHandler) GetStats(c echo.Context) error {
	stats, err := h.issueService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
