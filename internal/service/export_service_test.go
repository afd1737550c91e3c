package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
	"github.com/dreamstars/feedback-api/pkg/storage"
)

func newExportService(t *testing.T) (*ExportService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	analytics := NewAnalyticsService(st, disabledCache(), zap.NewNop())
	return NewExportService(st, analytics, files, signer, nil, zap.NewNop(), ExportConfig{APIPrefix: "/api/v1"}), st
}

func TestGenerateParentsCSV(t *testing.T) {
	svc, _ := newExportService(t)

	result, err := svc.Generate(context.Background(), models.ExportRequest{
		Type:   models.ReportTypeParents,
		Format: models.ReportFormatCSV,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ExportID)
	assert.True(t, strings.HasPrefix(result.Filename, "parents_export_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/export/"))

	// The signed token resolves back to the stored file.
	token := strings.TrimPrefix(result.URL, "/api/v1/export/")
	_, relPath, _, err := svc.ParseToken(token)
	require.NoError(t, err)

	file, err := svc.Open(relPath)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Student ID,Parent Name,Phone Number")
	assert.Contains(t, string(content), "DSV1234,Demo Parent,0911223344")
}

func TestGenerateScoresPDF(t *testing.T) {
	svc, st := newExportService(t)

	st.RecordSubmission(context.Background(), models.FeedbackSubmission{
		ID:         "s1",
		ParentID:   "DSV1234",
		ParentName: "Demo Parent",
		Date:       time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Responses: []models.SubmissionResponse{
			{QuestionID: "q1", QuestionText: "question", Answer: models.AnswerWellDone},
		},
	})

	result, err := svc.Generate(context.Background(), models.ExportRequest{
		Type:      models.ReportTypeScores,
		Format:    models.ReportFormatPDF,
		StudentID: "dsv1234",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Filename, "scores_DSV1234_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))

	file, err := svc.Open(result.Filename)
	require.NoError(t, err)
	defer file.Close()

	header := make([]byte, 4)
	_, err = io.ReadFull(file, header)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(header))
}

func TestGenerateScoresRequiresStudentID(t *testing.T) {
	svc, _ := newExportService(t)

	_, err := svc.Generate(context.Background(), models.ExportRequest{
		Type:   models.ReportTypeScores,
		Format: models.ReportFormatCSV,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	svc, _ := newExportService(t)

	_, err := svc.Generate(context.Background(), models.ExportRequest{
		Type:   "grades",
		Format: models.ReportFormatCSV,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
