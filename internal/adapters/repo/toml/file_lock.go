package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/fundme-cli/internal/ports"
	"github.com/gofrs/flock"
)

const (
	lockSuffix     = ".lock"
	lockRetryDelay = 10 * time.Millisecond
)

// FileLock is an advisory lock on a sibling ".lock" file. Every acquisition
// opens its own descriptor, so two holders conflict even inside one process.
type FileLock struct {
	path string
}

var _ ports.Locker = (*FileLock)(nil)

// NewFileLock guards the data file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path + lockSuffix}
}

func (l *FileLock) Path() string {
	return l.path
}

func (l *FileLock) Lock(ctx context.Context) (func() error, error) {
	return l.acquire(ctx, false)
}

func (l *FileLock) RLock(ctx context.Context) (func() error, error) {
	return l.acquire(ctx, true)
}

func (l *FileLock) acquire(ctx context.Context, shared bool) (func() error, error) {
	name := filepath.Base(l.path)
	if err := os.MkdirAll(filepath.Dir(l.path), dirMode); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", name, err)
	}

	fl := flock.New(l.path)

	var locked bool
	var err error
	if shared {
		locked, err = fl.TryRLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = fl.TryLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", name, err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire %s: lock not granted", name)
	}

	return fl.Unlock, nil
}

// withFileLock runs fn while holding the exclusive lock for path.
func withFileLock(ctx context.Context, path string, fn func() error) (err error) {
	unlock, err := NewFileLock(path).Lock(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := unlock(); unlockErr != nil && err == nil {
			err = fmt.Errorf("release %s%s: %w", filepath.Base(path), lockSuffix, unlockErr)
		}
	}()

	return fn()
}

// UpdateFile runs a read-modify-write of path under both the process lock and
// the cross-process file lock.
func UpdateFile(ctx context.Context, path string, fn func() error) error {
	mu := LockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	return withFileLock(ctx, path, fn)
}
