package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/service"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
	"github.com/dreamstars/feedback-api/pkg/response"
)

// FeedbackHandler wires HTTP endpoints to the feedback service.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler creates a new handler.
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Submit godoc
// @Summary Submit feedback
// @Description Record the authenticated parent's answers for today's form
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body models.SubmitFeedbackRequest true "Answers payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), claims.UserID, claims.FullName, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, submission)
}

// List godoc
// @Summary List submissions
// @Description One page of feedback submissions, newest first
// @Tags Feedback
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	items, pagination, err := h.service.List(c.Request.Context(), c.Query("search"), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, items, &pagination)
}
