package service

import (
	"context"
	"encoding/json"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

type mockCacheRepo struct {
	values     map[string][]byte
	getErr     error
	setErr     error
	deleteErr  error
	deletedPat string
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = raw
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deletedPat = pattern
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for key := range m.values {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.values, key)
		}
	}
	return nil
}

func TestCacheServiceHitAndMiss(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", "value", 0))

	hit, err = svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", out)
}

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(&mockCacheRepo{}, nil, time.Minute, zap.NewNop(), false)

	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", "value", 0))
	require.NoError(t, svc.Invalidate(context.Background(), "k*"))
}

func TestCacheServiceInvalidatePattern(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Invalidate(context.Background(), AnalyticsPattern("DSV1234")))
	assert.Equal(t, "analytics:DSV1234:*", repo.deletedPat)
}

func TestAnalyticsKeyShape(t *testing.T) {
	assert.Equal(t, "analytics:DSV1234:scores", AnalyticsKey("DSV1234", "scores"))
}
