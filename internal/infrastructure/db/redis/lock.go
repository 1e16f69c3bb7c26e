package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 5 * time.Second
	lockAttempts  = 3
	lockRetryWait = 50 * time.Millisecond
)

// TaskLock serializes read-modify-write sequences per task id across server
// instances. Key format: task_lock:<task_id>. The TTL bounds how long a
// crashed holder can block others.
type TaskLock struct {
	client *redis.Client
}

// NewTaskLock creates a TaskLock wrapping the given Redis client.
func NewTaskLock(client *redis.Client) *TaskLock {
	return &TaskLock{client: client}
}

// Acquire attempts to take the lock for taskID, retrying briefly when it is
// held elsewhere. Returns false when the lock could not be obtained.
func (l *TaskLock) Acquire(ctx context.Context, taskID string) (bool, error) {
	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := l.client.SetNX(ctx, l.key(taskID), "1", lockTTL).Result()
		if err != nil {
			return false, fmt.Errorf("acquire lock: %w", err)
		}
		if ok {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(lockRetryWait):
		}
	}
	return false, nil
}

// Release drops the lock for taskID.
func (l *TaskLock) Release(ctx context.Context, taskID string) error {
	if err := l.client.Del(ctx, l.key(taskID)).Err(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

func (l *TaskLock) key(taskID string) string {
	return "task_lock:" + taskID
}
