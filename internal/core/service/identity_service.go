package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/todo-system/internal/core/domain"
	"github.com/taskboard/todo-system/internal/core/ports"
	"github.com/taskboard/todo-system/internal/core/token"
)

// IdentityService implements registration, login and identity lookup.
type IdentityService struct {
	repo   ports.UserRepository
	tokens *token.Manager
	log    zerolog.Logger
}

func NewIdentityService(repo ports.UserRepository, tokens *token.Manager, log zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, tokens: tokens, log: log}
}

// Register creates a user with a bcrypt-hashed password and the default role
// set. Username matching is case-sensitive. The plaintext is never persisted
// or logged.
func (s *IdentityService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, domain.ErrUsernameTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		CreatedAt:    time.Now().UTC(),
	}

	// The store's unique index is the authoritative guard: a concurrent
	// registration that slipped past the lookup above still surfaces as
	// ErrUsernameTaken here.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a bearer token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *IdentityService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return signed, user, nil
}

// FindByUsername is a pure lookup, returning domain.ErrUserNotFound when absent.
func (s *IdentityService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}
