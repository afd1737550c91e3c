package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/middleware"
	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/service"
)

// RouterDeps bundles everything route registration needs.
type RouterDeps struct {
	APIPrefix string

	Auth      *AuthHandler
	Questions *QuestionHandler
	Parents   *ParentHandler
	Feedback  *FeedbackHandler
	Analytics *AnalyticsHandler
	Exports   *ExportHandler
	Metrics   *MetricsHandler

	AuthService *service.AuthService
}

// RegisterRoutes mounts the API surface on the engine.
func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	r.GET("/health", deps.Metrics.Health)
	r.GET("/ready", deps.Metrics.Ready)
	r.GET("/metrics", deps.Metrics.Prometheus)

	prefix := strings.TrimRight(deps.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)

	auth := api.Group("/auth")
	auth.POST("/admin-login", deps.Auth.AdminLogin)
	auth.POST("/parent-login", deps.Auth.ParentLogin)

	// Download links are pre-signed, no token needed.
	api.GET("/export/:token", deps.Exports.Download)

	authed := api.Group("", middleware.JWT(deps.AuthService))
	authed.GET("/questions", deps.Questions.Active)
	authed.POST("/feedback", middleware.RequireRole(models.RoleParent), deps.Feedback.Submit)

	admin := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.GET("/questions", deps.Questions.List)
	admin.POST("/questions", deps.Questions.Create)
	admin.PATCH("/questions/:id/toggle", deps.Questions.Toggle)

	admin.GET("/parents", deps.Parents.List)
	admin.POST("/parents", deps.Parents.Register)
	admin.DELETE("/parents/:studentId", deps.Parents.Delete)

	admin.GET("/feedback", deps.Feedback.List)

	admin.GET("/analytics/parents/:studentId/scores", deps.Analytics.Scores)
	admin.GET("/analytics/parents/:studentId/history", deps.Analytics.History)

	admin.POST("/exports", deps.Exports.Generate)
}
