package repository

import (
	"context"
	"sync"
)

// Well-known snapshot keys, one per record store collection.
const (
	KeyQuestions   = "questions"
	KeySubmissions = "submissions"
	KeyParents     = "registeredParents"
)

// SnapshotRepository persists full collection serializations under their
// well-known keys. Every record store mutation rewrites the affected
// collection ("commit-on-write", last write wins).
type SnapshotRepository interface {
	// Load returns the stored payload for key. The boolean reports whether a
	// snapshot exists; absence is not an error.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save overwrites the payload stored under key.
	Save(ctx context.Context, key string, payload []byte) error
}

// MemorySnapshotRepository keeps snapshots in process memory. Used in tests
// and as the no-persistence backend.
type MemorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemorySnapshotRepository constructs an empty in-memory repository.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{snapshots: make(map[string][]byte)}
}

// Load returns the stored payload for key.
func (r *MemorySnapshotRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.snapshots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

// Save overwrites the payload stored under key.
func (r *MemorySnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	r.snapshots[key] = stored
	return nil
}
