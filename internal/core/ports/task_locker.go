package ports

import "context"

// TaskLocker serializes read-modify-write sequences on a single task id so
// that two concurrent updates cannot interleave into a lost update. Acquire
// reports false when the lock is held elsewhere after retries are exhausted.
type TaskLocker interface {
	Acquire(ctx context.Context, taskID string) (bool, error)
	Release(ctx context.Context, taskID string) error
}
