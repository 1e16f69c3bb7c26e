package ports

import (
	"context"

	"github.com/taskboard/todo-system/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
// The store owns the uniqueness guarantee on username: Create must reject a
// duplicate (domain.ErrUsernameTaken) rather than overwrite, because the
// service-level check-then-insert is not atomic under concurrent registration.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
