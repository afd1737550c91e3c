package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
	"github.com/dreamstars/feedback-api/pkg/export"
	"github.com/dreamstars/feedback-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export generation.
type ExportConfig struct {
	APIPrefix string
}

// ExportService builds report datasets and persists rendered files behind
// signed download URLs.
type ExportService struct {
	store     *store.Store
	analytics *AnalyticsService
	storage   fileStorage
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(st *store.Store, analytics *AnalyticsService, files fileStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, cfg ExportConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ExportService{
		store:     st,
		analytics: analytics,
		storage:   files,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		signer:    signer,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate renders the requested report, stores the file and returns a
// signed download URL.
func (s *ExportService) Generate(ctx context.Context, req models.ExportRequest) (*models.ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}

	dataset, title, filename, err := s.buildDataset(ctx, req)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch req.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", req.Format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	exportID := uuid.NewString()
	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export generated",
		zap.String("export_id", exportID),
		zap.String("type", string(req.Type)),
		zap.String("format", string(req.Format)))

	return &models.ExportResult{
		ExportID:  exportID,
		Filename:  filename,
		Format:    req.Format,
		URL:       fmt.Sprintf("%s/export/%s", prefix, token),
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string) (exportID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, false)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

func (s *ExportService) buildDataset(ctx context.Context, req models.ExportRequest) (export.Dataset, string, string, error) {
	switch req.Type {
	case models.ReportTypeParents:
		dataset := s.buildParentsDataset()
		filename := fmt.Sprintf("parents_export_%s.%s", time.Now().UTC().Format("2006-01-02"), req.Format)
		return dataset, "Registered Parents", filename, nil
	case models.ReportTypeScores:
		studentID := NormalizeStudentID(req.StudentID)
		if studentID == "" {
			return export.Dataset{}, "", "", appErrors.Clone(appErrors.ErrValidation, "student_id is required for the scores report")
		}
		dataset, err := s.buildScoresDataset(ctx, studentID)
		if err != nil {
			return export.Dataset{}, "", "", err
		}
		filename := fmt.Sprintf("scores_%s_%s.%s", studentID, time.Now().UTC().Format("2006-01-02"), req.Format)
		return dataset, fmt.Sprintf("Score History %s", studentID), filename, nil
	default:
		return export.Dataset{}, "", "", appErrors.Clone(appErrors.ErrValidation, "unsupported report type")
	}
}

func (s *ExportService) buildParentsDataset() export.Dataset {
	parents := s.store.Parents()
	rows := make([][]string, 0, len(parents))
	for _, p := range parents {
		rows = append(rows, []string{p.StudentID, p.ParentName, p.ParentPhone})
	}
	return export.Dataset{
		Headers: []string{"Student ID", "Parent Name", "Phone Number"},
		Rows:    rows,
	}
}

func (s *ExportService) buildScoresDataset(ctx context.Context, studentID string) (export.Dataset, error) {
	points, err := s.analytics.History(ctx, studentID)
	if err != nil {
		return export.Dataset{}, err
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Timestamp.Format("2006-01-02"),
			strconv.Itoa(p.Score),
			strconv.Itoa(p.Submission.WellDoneCount()),
			strconv.Itoa(len(p.Submission.Responses)),
		})
	}
	return export.Dataset{
		Headers: []string{"Date", "Score (%)", "Well Done", "Total Answered"},
		Rows:    rows,
	}, nil
}
