package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/service"
	"github.com/dreamstars/feedback-api/pkg/response"
)

// AnalyticsHandler wires HTTP endpoints to the analytics projections.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// Scores godoc
// @Summary Parent score series
// @Description Chronological submission scores for the trend chart
// @Tags Analytics
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/analytics/parents/{studentId}/scores [get]
func (h *AnalyticsHandler) Scores(c *gin.Context) {
	points, err := h.service.ScoreSeries(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, points, nil)
}

// History godoc
// @Summary Parent score history
// @Description Submissions newest first for the detail table
// @Tags Analytics
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/analytics/parents/{studentId}/history [get]
func (h *AnalyticsHandler) History(c *gin.Context) {
	points, err := h.service.History(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, points, nil, map[string]interface{}{
		"total_submissions": summary.TotalSubmissions,
		"last_active":       summary.LastActive,
	})
}
