package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/service"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
	"github.com/dreamstars/feedback-api/pkg/response"
)

// ExportHandler wires HTTP endpoints to the export service.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Generate godoc
// @Summary Generate an export
// @Description Render a report and return a signed download URL
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body models.ExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/exports [post]
func (h *ExportHandler) Generate(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export request"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Download godoc
// @Summary Download an export
// @Description Stream a previously generated export by signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	_, relPath, _, err := h.service.ParseToken(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download token"))
		return
	}

	file, err := h.service.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export file not found"))
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export file"))
		return
	}

	filename := filepath.Base(relPath)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.DataFromReader(http.StatusOK, info.Size(), contentTypeFor(filename), file, nil)
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
