package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	w = env.do(t, http.MethodGet, "/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ready")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	// Drive one request through so counters exist.
	env.do(t, http.MethodGet, "/health", "", nil)

	w := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}
