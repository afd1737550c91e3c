package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/service"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
	"github.com/dreamstars/feedback-api/pkg/response"
)

// QuestionHandler wires HTTP endpoints to the question service.
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler creates a new handler.
func NewQuestionHandler(svc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// Active godoc
// @Summary List active questions
// @Description Questions currently shown on the feedback form
// @Tags Questions
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /questions [get]
func (h *QuestionHandler) Active(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Active(c.Request.Context()), nil)
}

// List godoc
// @Summary List all questions
// @Description One page of questions, active or disabled, for the admin manager
// @Tags Questions
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/questions [get]
func (h *QuestionHandler) List(c *gin.Context) {
	items, pagination, err := h.service.List(c.Request.Context(), c.Query("search"), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, items, &pagination)
}

// Create godoc
// @Summary Add a question
// @Description Append a new active question to the feedback form
// @Tags Questions
// @Accept json
// @Produce json
// @Param payload body models.CreateQuestionRequest true "Question payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid question payload"))
		return
	}

	question, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, question)
}

// Toggle godoc
// @Summary Toggle a question
// @Description Flip a question's active flag
// @Tags Questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/questions/{id}/toggle [patch]
func (h *QuestionHandler) Toggle(c *gin.Context) {
	question, err := h.service.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, question, nil)
}
