package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisSnapshotPrefix = "snapshot:"

// RedisSnapshotRepository stores collection snapshots under prefixed Redis
// keys with no expiry.
type RedisSnapshotRepository struct {
	client *redis.Client
}

// NewRedisSnapshotRepository constructs the repository.
func NewRedisSnapshotRepository(client *redis.Client) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{client: client}
}

// Load fetches the snapshot payload stored under key.
func (r *RedisSnapshotRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, redisSnapshotPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis load snapshot %s: %w", key, err)
	}
	return payload, true, nil
}

// Save overwrites the snapshot payload under key.
func (r *RedisSnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, redisSnapshotPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis save snapshot %s: %w", key, err)
	}
	return nil
}
