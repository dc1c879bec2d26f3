package repositories

import (
	"context"
)

// ReleaseFunc releases a lock obtained from a LockManager.
type ReleaseFunc func(ctx context.Context) error

// LockManager provides named mutual exclusion across requests and processes.
type LockManager interface {
	// Acquire blocks until the named lock is held, the wait budget runs out, or ctx is done.
	// It returns apperrors.ErrLockTimeout when the lock stays busy.
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}
