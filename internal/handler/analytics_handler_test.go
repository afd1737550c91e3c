package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamstars/feedback-api/internal/models"
)

func TestAnalyticsScoresEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/feedback", env.parentToken(t), map[string]interface{}{
		"answers": map[string]string{
			"q1": "well_done",
			"q2": "not_done",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/admin/analytics/parents/DSV1234/scores", env.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var points []models.ScorePoint
	decodeData(t, w, &points)
	require.Len(t, points, 1)
	assert.Equal(t, 50, points[0].Score)
}

func TestAnalyticsHistoryIncludesSummaryMeta(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/admin/analytics/parents/DSV1234/history", env.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var points []models.ScorePoint
	envelope := decodeData(t, w, &points)
	assert.Empty(t, points)
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, models.LastActiveNever, envelope.Meta["last_active"])
}

func TestAnalyticsUnknownParent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/admin/analytics/parents/DSV9999/scores", env.adminToken(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
