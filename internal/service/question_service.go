package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/listview"
	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

// QuestionService manages the feedback form questions.
type QuestionService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewQuestionService constructs a QuestionService instance.
func NewQuestionService(st *store.Store, validate *validator.Validate, logger *zap.Logger, pageSize int) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if pageSize <= 0 {
		pageSize = 5
	}
	return &QuestionService{store: st, validator: validate, logger: logger, pageSize: pageSize}
}

// Active returns the questions currently shown on the feedback form.
func (s *QuestionService) Active(ctx context.Context) []models.Question {
	return s.store.ActiveQuestions()
}

// All returns every question, active or not, for the admin manager view.
func (s *QuestionService) All(ctx context.Context) []models.Question {
	return s.store.Questions()
}

// List returns one page of questions filtered by the search term over both
// language texts.
func (s *QuestionService) List(ctx context.Context, search string, page int) ([]models.Question, models.Pagination, error) {
	filtered := listview.Filter(s.store.Questions(), search, func(q models.Question) []string {
		return []string{q.TextAm, q.TextEn}
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

// Create validates and appends a new active question.
func (s *QuestionService) Create(ctx context.Context, req models.CreateQuestionRequest) (models.Question, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Question{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid question payload")
	}

	textAm := strings.TrimSpace(req.TextAm)
	textEn := strings.TrimSpace(req.TextEn)
	if textAm == "" || textEn == "" {
		return models.Question{}, appErrors.Clone(appErrors.ErrValidation, "question text cannot be blank")
	}

	question := s.store.AddQuestion(ctx, textAm, textEn)
	s.logger.Info("question created", zap.String("id", question.ID))
	return question, nil
}

// Toggle flips a question's active flag. Unknown ids yield a not found error
// rather than a silent no-op so the admin UI can surface it.
func (s *QuestionService) Toggle(ctx context.Context, id string) (models.Question, error) {
	question, ok := s.store.ToggleQuestion(ctx, id)
	if !ok {
		return models.Question{}, appErrors.Clone(appErrors.ErrNotFound, "question not found")
	}
	return question, nil
}
