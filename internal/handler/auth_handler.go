package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/service"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
	"github.com/dreamstars/feedback-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// AdminLogin godoc
// @Summary Authenticate administrator
// @Description Authenticate the admin account by email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.AdminLoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/admin-login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// ParentLogin godoc
// @Summary Authenticate parent
// @Description Authenticate a parent by student id and phone number
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ParentLoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/parent-login [post]
func (h *AuthHandler) ParentLogin(c *gin.Context) {
	var req models.ParentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.ParentLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
