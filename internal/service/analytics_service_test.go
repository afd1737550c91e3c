package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

func newAnalyticsService(t *testing.T) (*AnalyticsService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewAnalyticsService(st, disabledCache(), zap.NewNop()), st
}

func recordScored(t *testing.T, st *store.Store, date time.Time, answers ...models.Answer) {
	t.Helper()
	responses := make([]models.SubmissionResponse, 0, len(answers))
	for _, a := range answers {
		responses = append(responses, models.SubmissionResponse{
			QuestionID:   "q1",
			QuestionText: "question",
			Answer:       a,
		})
	}
	st.RecordSubmission(context.Background(), models.FeedbackSubmission{
		ID:         date.Format(time.RFC3339),
		ParentID:   "DSV1234",
		ParentName: "Demo Parent",
		Date:       date,
		Responses:  responses,
	})
}

func TestScoreSeriesAscending(t *testing.T) {
	svc, st := newAnalyticsService(t)

	older := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	recordScored(t, st, older, models.AnswerWellDone, models.AnswerWellDone)
	recordScored(t, st, newer, models.AnswerWellDone, models.AnswerNotDone)

	points, err := svc.ScoreSeries(context.Background(), "dsv1234")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "3/5", points[0].DateLabel)
	assert.Equal(t, 100, points[0].Score)
	assert.Equal(t, "3/12", points[1].DateLabel)
	assert.Equal(t, 50, points[1].Score)
}

func TestHistoryDescending(t *testing.T) {
	svc, st := newAnalyticsService(t)

	older := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	recordScored(t, st, older, models.AnswerNotDone)
	recordScored(t, st, newer, models.AnswerWellDone)

	points, err := svc.History(context.Background(), "DSV1234")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, newer, points[0].Timestamp)
	assert.Equal(t, 100, points[0].Score)
	assert.Equal(t, older, points[1].Timestamp)
	assert.Equal(t, 0, points[1].Score)
}

func TestScoreSeriesUnknownParent(t *testing.T) {
	svc, _ := newAnalyticsService(t)

	_, err := svc.ScoreSeries(context.Background(), "DSV9999")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSummaryCounts(t *testing.T) {
	svc, st := newAnalyticsService(t)

	summary, err := svc.Summary(context.Background(), "DSV1234")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSubmissions)
	assert.Equal(t, models.LastActiveNever, summary.LastActive)

	recordScored(t, st, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC), models.AnswerWellDone)

	summary, err = svc.Summary(context.Background(), "DSV1234")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalSubmissions)
	assert.Equal(t, "4/1/2026", summary.LastActive)
}
