package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/service"
	"github.com/dreamstars/feedback-api/internal/store"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	store   *store.Store
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, st *store.Store) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, store: st}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the store finished loading its collections.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.store == nil || !h.store.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
