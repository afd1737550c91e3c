package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSnapshotRepository stores each collection snapshot as a JSON file under
// a base directory. This is the development default backend.
type FileSnapshotRepository struct {
	baseDir string
}

// NewFileSnapshotRepository ensures the base directory exists.
func NewFileSnapshotRepository(baseDir string) (*FileSnapshotRepository, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &FileSnapshotRepository{baseDir: baseDir}, nil
}

// Load reads the snapshot file for key if present.
func (r *FileSnapshotRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := os.ReadFile(r.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return payload, true, nil
}

// Save writes the snapshot atomically via a temp file rename.
func (r *FileSnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	target := r.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("commit snapshot %s: %w", key, err)
	}
	return nil
}

func (r *FileSnapshotRepository) path(key string) string {
	return filepath.Join(r.baseDir, key+".json")
}
