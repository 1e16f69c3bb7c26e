package ports

import (
	"context"
	"time"

	"github.com/taskboard/todo-system/internal/core/domain"
)

// ActivityInput is a single authorization decision handed to the audit trail.
type ActivityInput struct {
	TaskID    string
	Username  string
	Action    string // "create", "update", "delete"
	Outcome   string // domain.OutcomeAllowed or domain.OutcomeDenied
	Reason    string // denial reason, empty on allow
	Timestamp time.Time
}

// ActivityRepository persists authorization decisions.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// FindByTaskID returns the recorded decisions for a task, oldest first.
	FindByTaskID(ctx context.Context, taskID string) ([]*domain.Activity, error)
}

// ActivityService processes audit records and serves the per-task activity view.
type ActivityService interface {
	Record(ctx context.Context, input ActivityInput) error
	// ListForTask returns a task's activity, restricted to the task's owner.
	ListForTask(ctx context.Context, taskID, actingUsername string) ([]*domain.Activity, error)
}
