package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/repository"
	"github.com/dreamstars/feedback-api/internal/service"
	"github.com/dreamstars/feedback-api/internal/store"
	"github.com/dreamstars/feedback-api/pkg/response"
	"github.com/dreamstars/feedback-api/pkg/storage"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Store
}

// newTestEnv stands up the full router on a seeded in-memory store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	st := store.New(repository.NewMemorySnapshotRepository(), logger)
	require.NoError(t, st.Init(context.Background(), true))

	hash, err := service.HashPassword("admin")
	require.NoError(t, err)

	authSvc := service.NewAuthService(st, nil, logger, service.AuthConfig{
		Secret:            "test-secret",
		TokenExpiry:       time.Hour,
		Issuer:            "feedback-api",
		AdminEmail:        "admin@dreamstars.com",
		AdminPasswordHash: hash,
	})
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	questionSvc := service.NewQuestionService(st, nil, logger, 5)
	parentSvc := service.NewParentService(st, nil, nil, logger, service.ParentConfig{PageSize: 5, StudentIDPrefix: "DSV"})
	feedbackSvc := service.NewFeedbackService(st, cache, nil, logger, 5)
	analyticsSvc := service.NewAnalyticsService(st, cache, logger)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	exportSvc := service.NewExportService(st, analyticsSvc, files, signer, nil, logger, service.ExportConfig{APIPrefix: "/api/v1"})

	metricsSvc := service.NewMetricsService()

	r := gin.New()
	RegisterRoutes(r, RouterDeps{
		APIPrefix:   "/api/v1",
		Auth:        NewAuthHandler(authSvc),
		Questions:   NewQuestionHandler(questionSvc),
		Parents:     NewParentHandler(parentSvc),
		Feedback:    NewFeedbackHandler(feedbackSvc),
		Analytics:   NewAnalyticsHandler(analyticsSvc),
		Exports:     NewExportHandler(exportSvc),
		Metrics:     NewMetricsHandler(metricsSvc, st),
		AuthService: authSvc,
	})

	return &testEnv{router: r, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	return e.loginToken(t, "/api/v1/auth/admin-login", map[string]string{
		"email":    "admin@dreamstars.com",
		"password": "admin",
	})
}

func (e *testEnv) parentToken(t *testing.T) string {
	t.Helper()
	return e.loginToken(t, "/api/v1/auth/parent-login", map[string]string{
		"student_id": "DSV1234",
		"phone":      "0911223344",
	})
}

func (e *testEnv) loginToken(t *testing.T, path string, payload map[string]string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, path, "", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(data, &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

// decodeData unmarshals the envelope data field into dest.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if dest != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}
	return envelope
}
