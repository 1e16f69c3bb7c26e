package ports

import (
	"context"

	"github.com/taskboard/todo-system/internal/core/domain"
)

// IdentityService handles the credential lifecycle: registration, login, and
// identity lookup for authorization decisions.
type IdentityService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token plus the user.
	// Failures are collapsed into domain.ErrInvalidCredentials; whether the
	// username existed is never revealed.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
