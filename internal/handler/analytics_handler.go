package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
	"github.com/hrdesk/review-api/pkg/response"
)

type analyticsService interface {
	SalarySummary(ctx context.Context) ([]models.SalarySummary, bool, error)
}

// AnalyticsHandler serves aggregated reporting endpoints.
type AnalyticsHandler struct {
	analytics analyticsService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(analytics analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// SalarySummary godoc
// @Summary Salary summary by designation
// @Description Returns average, minimum and maximum salary per designation
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /analytics/salary-summary [get]
func (h *AnalyticsHandler) SalarySummary(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	summaries, cached, err := h.analytics.SalarySummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"cached":             cached,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, summaries, meta)
}
