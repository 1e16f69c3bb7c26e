package ports

import (
	"context"

	"github.com/taskboard/todo-system/internal/core/domain"
)

// TaskInput is the DTO passed from the transport layer to TaskService.
// Update applies it with full replacement semantics: title, description and
// done are all overwritten, id and owner are preserved.
type TaskInput struct {
	Title       string
	Description string
	Done        bool
}

// TaskService defines use-case operations for tasks. Every mutating operation
// receives the acting identity's username already authenticated upstream; the
// service resolves roles fresh from the user store at decision time.
type TaskService interface {
	Create(ctx context.Context, input TaskInput, actingUsername string) (*domain.Task, error)
	Update(ctx context.Context, id string, input TaskInput, actingUsername string) (*domain.Task, error)
	Delete(ctx context.Context, id string, actingUsername string) error
	ListForOwner(ctx context.Context, username string) ([]*domain.Task, error)
}
