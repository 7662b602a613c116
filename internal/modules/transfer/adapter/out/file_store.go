package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	transferout "scopdash/internal/modules/transfer/port/out"
	apperrors "scopdash/internal/platform/errors"
)

type LocalFileStore struct{}

func NewLocalFileStore() transferout.FileStore {
	return LocalFileStore{}
}

func (LocalFileStore) Read(_ context.Context, path string) ([]byte, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return payload, nil
}

// Write replaces path through a temp file in the same directory so watchers
// never observe a half-written backup.
func (LocalFileStore) Write(_ context.Context, path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".scopdash-*.json")
	if err != nil {
		return fmt.Errorf("create temp backup: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace backup: %w", err)
	}
	return nil
}
