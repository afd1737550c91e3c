package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/listview"
	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

// FeedbackService records completed feedback forms.
type FeedbackService struct {
	store     *store.Store
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(st *store.Store, cache *CacheService, validate *validator.Validate, logger *zap.Logger, pageSize int) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if pageSize <= 0 {
		pageSize = 5
	}
	return &FeedbackService{store: st, cache: cache, validator: validate, logger: logger, pageSize: pageSize}
}

// Submit records one feedback form for the authenticated parent. Every active
// question must be answered or nothing is recorded. Each response snapshots
// the question's Amharic text at submission time.
func (s *FeedbackService) Submit(ctx context.Context, parentID, parentName string, req models.SubmitFeedbackRequest) (*models.FeedbackSubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}
	for _, answer := range req.Answers {
		if !answer.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "answers must be well_done or not_done")
		}
	}

	active := s.store.ActiveQuestions()
	if len(req.Answers) != len(active) {
		return nil, appErrors.Clone(appErrors.ErrIncompleteSubmission, "please answer all questions before submitting")
	}

	submission := models.FeedbackSubmission{
		ID:         uuid.NewString(),
		ParentID:   parentID,
		ParentName: parentName,
		Date:       time.Now().UTC(),
		Responses:  s.buildResponses(active, req.Answers),
	}
	s.store.RecordSubmission(ctx, submission)

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, AnalyticsPattern(parentID)); err != nil {
			s.logger.Warn("failed to invalidate analytics cache", zap.String("parent_id", parentID), zap.Error(err))
		}
	}

	s.logger.Info("feedback submitted",
		zap.String("submission_id", submission.ID),
		zap.String("parent_id", parentID),
		zap.Int("score", submission.Score()))
	return &submission, nil
}

// List returns one page of submissions for the admin dashboard, newest first,
// optionally filtered by parent name or student id.
func (s *FeedbackService) List(ctx context.Context, search string, page int) ([]models.FeedbackSubmission, models.Pagination, error) {
	filtered := listview.Filter(s.store.Submissions(), search, func(sub models.FeedbackSubmission) []string {
		return []string{sub.ParentID, sub.ParentName}
	})

	totalPages := (len(filtered) + s.pageSize - 1) / s.pageSize
	pg := listview.Paginate(filtered, listview.ClampPage(page, totalPages), s.pageSize)

	return pg.Items, models.Pagination{
		Page:       pg.Page,
		PageSize:   pg.PageSize,
		TotalPages: pg.TotalPages,
		TotalCount: pg.TotalCount,
	}, nil
}

// buildResponses pairs answers with their question text snapshots. Responses
// follow the active question order; answers referencing other ids come last
// in key order with their text resolved from the full question list, falling
// back to the unknown question sentinel.
func (s *FeedbackService) buildResponses(active []models.Question, answers map[string]models.Answer) []models.SubmissionResponse {
	responses := make([]models.SubmissionResponse, 0, len(answers))
	seen := make(map[string]bool, len(answers))

	for _, q := range active {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		seen[q.ID] = true
		responses = append(responses, models.SubmissionResponse{
			QuestionID:   q.ID,
			QuestionText: q.TextAm,
			Answer:       answer,
		})
	}

	extras := make([]string, 0)
	for id := range answers {
		if !seen[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	for _, id := range extras {
		text := models.UnknownQuestionText
		if q, ok := s.store.FindQuestion(id); ok {
			text = q.TextAm
		}
		responses = append(responses, models.SubmissionResponse{
			QuestionID:   id,
			QuestionText: text,
			Answer:       answers[id],
		})
	}
	return responses
}
