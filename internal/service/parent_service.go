package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/listview"
	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// NormalizeStudentID trims and uppercases a raw student id so lookups and
// duplicate checks are case-insensitive.
func NormalizeStudentID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ParentConfig tunes parent roster validation and listing.
type ParentConfig struct {
	PageSize        int
	StudentIDPrefix string
}

// ParentService manages the registered parents roster.
type ParentService struct {
	store     *store.Store
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
	idPrefix  string
	idPattern *regexp.Regexp
}

// NewParentService constructs a ParentService instance.
func NewParentService(st *store.Store, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cfg ParentConfig) *ParentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 5
	}
	if cfg.StudentIDPrefix == "" {
		cfg.StudentIDPrefix = "DSV"
	}
	prefix := strings.ToUpper(cfg.StudentIDPrefix)
	idPattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\d+$`)
	return &ParentService{store: st, cache: cache, validator: validate, logger: logger, pageSize: cfg.PageSize, idPrefix: prefix, idPattern: idPattern}
}

// Register validates and adds a parent to the roster. Student ids are stored
// normalized so DSV1234 and dsv1234 collide.
func (s *ParentService) Register(ctx context.Context, req models.RegisterParentRequest) (models.RegisteredParent, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.RegisteredParent{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid parent payload")
	}

	studentID := NormalizeStudentID(req.StudentID)
	if !s.idPattern.MatchString(studentID) {
		return models.RegisteredParent{}, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("student id must start with %s followed by digits", s.idPrefix))
	}

	phone := strings.TrimSpace(req.ParentPhone)
	if !phonePattern.MatchString(phone) {
		return models.RegisteredParent{}, appErrors.Clone(appErrors.ErrValidation, "phone number must be exactly 10 digits")
	}

	parent := models.RegisteredParent{
		StudentID:   studentID,
		ParentName:  strings.TrimSpace(req.ParentName),
		ParentPhone: phone,
	}
	if err := s.store.RegisterParent(ctx, parent); err != nil {
		return models.RegisteredParent{}, err
	}

	s.logger.Info("parent registered", zap.String("student_id", parent.StudentID))
	return parent, nil
}

// Delete removes a parent from the roster and drops any cached analytics for
// the student id, so the analytics endpoints stop serving stale series after
// the roster entry is gone. Deleting an absent id is a no-op.
func (s *ParentService) Delete(ctx context.Context, studentID string) {
	id := NormalizeStudentID(studentID)
	s.store.DeleteParent(ctx, id)

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, AnalyticsPattern(id)); err != nil {
			s.logger.Warn("failed to invalidate analytics cache", zap.String("parent_id", id), zap.Error(err))
		}
	}
}

// List returns one page of the roster filtered by the search term, each entry
// decorated with its submission summary. The requested page is clamped so a
// shrinking result set never yields an empty page.
func (s *ParentService) List(ctx context.Context, search string, page int) ([]models.ParentOverview, models.Pagination, error) {
	filtered := listview.Filter(s.store.Parents(), search, func(p models.RegisteredParent) []string {
		return []string{p.StudentID, p.ParentName, p.ParentPhone}
	})

	totalPages := (len(filtered) + s.pageSize - 1) / s.pageSize
	pg := listview.Paginate(filtered, listview.ClampPage(page, totalPages), s.pageSize)

	items := make([]models.ParentOverview, 0, len(pg.Items))
	for _, parent := range pg.Items {
		summary := summarize(s.store.SubmissionsByParent(parent.StudentID))
		items = append(items, models.ParentOverview{
			RegisteredParent: parent,
			TotalSubmissions: summary.TotalSubmissions,
			LastActive:       summary.LastActive,
		})
	}

	return items, models.Pagination{
		Page:       pg.Page,
		PageSize:   pg.PageSize,
		TotalPages: pg.TotalPages,
		TotalCount: pg.TotalCount,
	}, nil
}

// summarize reduces a parent's submissions to the overview counters. The
// submissions slice arrives newest first, so the first entry is the most
// recent activity.
func summarize(subs []models.FeedbackSubmission) models.ParentSummary {
	if len(subs) == 0 {
		return models.ParentSummary{TotalSubmissions: 0, LastActive: models.LastActiveNever}
	}
	return models.ParentSummary{
		TotalSubmissions: len(subs),
		LastActive:       subs[0].Date.Format("1/2/2006"),
	}
}
