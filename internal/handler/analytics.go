package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/treinofacil/trainsheet-api/internal/service"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Handles GET /admin/analytics/summary?from=&to=
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	summary, err := h.service.GetSummary(ctx, from, to)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	respond(c, http.StatusOK, summary)
}

// Handles DELETE /admin/analytics/logs?retention_days= — prunes request
// logs older than the retention window (default 30 days).
func (h *AnalyticsHandler) CleanupLogs(c *gin.Context) {
	retentionDays, err := strconv.Atoi(c.DefaultQuery("retention_days", "30"))
	if err != nil || retentionDays < 1 {
		respondError(c, http.StatusBadRequest, "Invalid retention_days")
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.service.CleanupOldLogs(ctx, retentionDays)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to clean up logs")
		return
	}

	respond(c, http.StatusOK, gin.H{"deleted": deleted})
}

// Defaults to the last 24 hours when no range is supplied.
func parseTimeRange(c *gin.Context) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' timestamp, expected RFC3339")
		}
		from = parsed
	}

	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' timestamp, expected RFC3339")
		}
		to = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("'to' must be after 'from'")
	}

	return from, to, nil
}
