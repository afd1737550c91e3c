package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

// AnalyticsService projects submissions onto per-parent score views. The
// projections are pure reads over the store; cached copies are invalidated
// whenever the parent submits again.
type AnalyticsService struct {
	store  *store.Store
	cache  *CacheService
	logger *zap.Logger
}

// NewAnalyticsService constructs an AnalyticsService instance.
func NewAnalyticsService(st *store.Store, cache *CacheService, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{store: st, cache: cache, logger: logger}
}

// ScoreSeries returns a parent's submission scores in chronological order,
// shaped for the trend chart.
func (s *AnalyticsService) ScoreSeries(ctx context.Context, studentID string) ([]models.ScorePoint, error) {
	studentID = NormalizeStudentID(studentID)
	key := AnalyticsKey(studentID, "scores")

	var cached []models.ScorePoint
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	points, err := s.project(studentID)
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	if err := s.cache.Set(ctx, key, points, 0); err != nil {
		s.logger.Warn("failed to cache score series", zap.String("student_id", studentID), zap.Error(err))
	}
	return points, nil
}

// History returns a parent's submissions newest first, shaped for the
// detail table.
func (s *AnalyticsService) History(ctx context.Context, studentID string) ([]models.ScorePoint, error) {
	studentID = NormalizeStudentID(studentID)
	key := AnalyticsKey(studentID, "history")

	var cached []models.ScorePoint
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	points, err := s.project(studentID)
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(i, j int) bool {
		return points[j].Timestamp.Before(points[i].Timestamp)
	})

	if err := s.cache.Set(ctx, key, points, 0); err != nil {
		s.logger.Warn("failed to cache score history", zap.String("student_id", studentID), zap.Error(err))
	}
	return points, nil
}

// Summary aggregates a parent's activity counters.
func (s *AnalyticsService) Summary(ctx context.Context, studentID string) (models.ParentSummary, error) {
	studentID = NormalizeStudentID(studentID)
	if _, ok := s.store.FindParent(studentID); !ok {
		return models.ParentSummary{}, appErrors.Clone(appErrors.ErrNotFound, "parent not found")
	}
	return summarize(s.store.SubmissionsByParent(studentID)), nil
}

func (s *AnalyticsService) project(studentID string) ([]models.ScorePoint, error) {
	if _, ok := s.store.FindParent(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "parent not found")
	}

	subs := s.store.SubmissionsByParent(studentID)
	points := make([]models.ScorePoint, 0, len(subs))
	for _, sub := range subs {
		points = append(points, models.ScorePoint{
			DateLabel:  sub.Date.Format("1/2"),
			Timestamp:  sub.Date,
			Score:      sub.Score(),
			Submission: sub,
		})
	}
	return points, nil
}
