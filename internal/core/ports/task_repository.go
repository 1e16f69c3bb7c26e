package ports

import (
	"context"

	"github.com/taskboard/todo-system/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// FindByID retrieves a task by id, returning domain.ErrTaskNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// FindByOwnerUsername returns every task owned by username, oldest first.
	FindByOwnerUsername(ctx context.Context, username string) ([]*domain.Task, error)
}
