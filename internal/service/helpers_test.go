package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/repository"
	"github.com/dreamstars/feedback-api/internal/store"
)

// newTestStore builds a seeded in-memory store with the default questions
// and the demo parent DSV1234.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(repository.NewMemorySnapshotRepository(), zap.NewNop())
	require.NoError(t, s.Init(context.Background(), true))
	return s
}

// disabledCache is a no-op cache for services that take one.
func disabledCache() *CacheService {
	return NewCacheService(nil, nil, 0, nil, false)
}
