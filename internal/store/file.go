package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"remind-cli/internal/model"
)

// JSON file adapter. Writes are atomic (temp file + rename) and guarded by
// an advisory flock so two processes sharing one reminders.json don't
// interleave partial writes.

const lockRetryInterval = 50 * time.Millisecond

// SaveFile writes the collection as pretty-printed JSON to path.
func SaveFile(ctx context.Context, path string, col []model.Reminder) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("file is locked by another process")
	}
	defer func() { _ = lock.Unlock() }()

	b, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadFile reads a collection from path. A missing file is an empty
// collection, not an error.
func LoadFile(ctx context.Context, path string) ([]model.Reminder, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("file is locked by another process")
	}
	defer func() { _ = lock.Unlock() }()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Reminder{}, nil
		}
		return nil, err
	}
	var col []model.Reminder
	if err := json.Unmarshal(b, &col); err != nil {
		return nil, err
	}
	return col, nil
}
