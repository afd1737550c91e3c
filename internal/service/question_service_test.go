package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/models"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

func newQuestionService(t *testing.T) *QuestionService {
	t.Helper()
	return NewQuestionService(newTestStore(t), nil, zap.NewNop(), 5)
}

func TestCreateQuestionAppends(t *testing.T) {
	svc := newQuestionService(t)

	question, err := svc.Create(context.Background(), models.CreateQuestionRequest{
		TextAm: "  አዲስ ጥያቄ ",
		TextEn: " New question ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, question.ID)
	assert.Equal(t, "አዲስ ጥያቄ", question.TextAm)
	assert.Equal(t, "New question", question.TextEn)
	assert.True(t, question.Active)

	all := svc.All(context.Background())
	require.Len(t, all, 3)
	assert.Equal(t, question.ID, all[2].ID)
}

func TestCreateQuestionBlankText(t *testing.T) {
	svc := newQuestionService(t)

	_, err := svc.Create(context.Background(), models.CreateQuestionRequest{TextAm: "   ", TextEn: "text"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestToggleQuestionHidesFromActive(t *testing.T) {
	svc := newQuestionService(t)

	toggled, err := svc.Toggle(context.Background(), "q1")
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	active := svc.Active(context.Background())
	require.Len(t, active, 1)
	assert.Equal(t, "q2", active[0].ID)

	// Toggling back restores it.
	toggled, err = svc.Toggle(context.Background(), "q1")
	require.NoError(t, err)
	assert.True(t, toggled.Active)
	assert.Len(t, svc.Active(context.Background()), 2)
}

func TestListQuestionsSearchBothTexts(t *testing.T) {
	svc := newQuestionService(t)

	_, err := svc.Create(context.Background(), models.CreateQuestionRequest{
		TextAm: "የቤት ስራ",
		TextEn: "Homework review",
	})
	require.NoError(t, err)

	// English text matches.
	items, pagination, err := svc.List(context.Background(), "homework", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Homework review", items[0].TextEn)
	assert.Equal(t, 1, pagination.TotalCount)

	// Amharic text matches too.
	items, _, err = svc.List(context.Background(), "የቤት", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Disabled questions remain listed for the admin manager.
	_, err = svc.Toggle(context.Background(), items[0].ID)
	require.NoError(t, err)
	items, _, err = svc.List(context.Background(), "homework", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Active)
}

func TestToggleQuestionNotFound(t *testing.T) {
	svc := newQuestionService(t)

	_, err := svc.Toggle(context.Background(), "missing")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
