// Package filelock provides the run lock and atomic writes used while
// generating application documents.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created inside the applications root
const LockFileName = ".appgen.lock"

// ErrLocked is returned when another process holds the run lock.
var ErrLocked = errors.New("another run holds the lock")

// RunLock guards an applications root against concurrent runs.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// NewRunLock creates a lock for the given root directory.
func NewRunLock(root string) *RunLock {
	path := filepath.Join(root, LockFileName)
	return &RunLock{flock: flock.New(path), path: path}
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. It returns an error wrapping
// ErrLocked when the lock is held elsewhere.
func (l *RunLock) Acquire() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	if !acquired {
		return fmt.Errorf("%s: %w", l.path, ErrLocked)
	}
	return nil
}

// Release drops the lock.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// WriteFile replaces path with data atomically: a temp file in the same
// directory is written, synced and renamed over the target. Missing parent
// directories are created. The result is the same whether or not path existed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			_ = tempFile.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}
