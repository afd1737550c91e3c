package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/service"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
	"github.com/dreamstars/feedback-api/pkg/response"
)

// ParentHandler wires HTTP endpoints to the parent roster service.
type ParentHandler struct {
	service *service.ParentService
}

// NewParentHandler creates a new handler.
func NewParentHandler(svc *service.ParentService) *ParentHandler {
	return &ParentHandler{service: svc}
}

// List godoc
// @Summary List registered parents
// @Description One page of the roster with submission summaries
// @Tags Parents
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/parents [get]
func (h *ParentHandler) List(c *gin.Context) {
	items, pagination, err := h.service.List(c.Request.Context(), c.Query("search"), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, items, &pagination)
}

// Register godoc
// @Summary Register a parent
// @Description Add a parent/student pair to the roster
// @Tags Parents
// @Accept json
// @Produce json
// @Param payload body models.RegisterParentRequest true "Parent payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/parents [post]
func (h *ParentHandler) Register(c *gin.Context) {
	var req models.RegisterParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid parent payload"))
		return
	}

	parent, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, parent)
}

// Delete godoc
// @Summary Delete a parent
// @Description Remove a parent from the roster; unknown ids are a no-op
// @Tags Parents
// @Param studentId path string true "Student ID"
// @Success 204
// @Security BearerAuth
// @Router /admin/parents/{studentId} [delete]
func (h *ParentHandler) Delete(c *gin.Context) {
	h.service.Delete(c.Request.Context(), c.Param("studentId"))
	response.NoContent(c)
}
