package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/todo-system/internal/core/domain"
	"github.com/taskboard/todo-system/internal/core/token"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users       map[string]*domain.User
	createCalls int
	findErr     error // if set, FindByUsername returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.createCalls++
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = user.Username
	}
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

func newIdentityService(repo *stubUserRepo) (*IdentityService, *token.Manager) {
	tokens := token.NewManager("secret", time.Hour)
	return NewIdentityService(repo, tokens, zerolog.Nop()), tokens
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestIdentityService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newIdentityService(repo)

	user, err := svc.Register(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("expected default role set {user}, got %v", user.Roles)
	}
}

func TestIdentityService_Register_UsernameTaken(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newIdentityService(repo)

	if _, err := svc.Register(context.Background(), "bob", "first-pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	calls := repo.createCalls

	if _, err := svc.Register(context.Background(), "bob", "second-pass"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if repo.createCalls != calls {
		t.Fatalf("store save must not be invoked on duplicate registration")
	}
}

func TestIdentityService_Register_CaseSensitiveUsernames(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newIdentityService(repo)

	if _, err := svc.Register(context.Background(), "carol", "pass-one"); err != nil {
		t.Fatalf("register carol: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Carol", "pass-two"); err != nil {
		t.Fatalf("username matching must be case-sensitive, got %v", err)
	}
}

func TestIdentityService_Register_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newIdentityService(repo)

	if _, err := svc.Register(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "dave", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("store must not be touched on invalid input")
	}
}

func TestIdentityService_Register_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc, _ := newIdentityService(repo)

	_, err := svc.Register(context.Background(), "erin", "strong-pass")
	if err == nil || errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("store failure must propagate, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("store save must not be invoked when lookup fails")
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestIdentityService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newIdentityService(repo)

	if _, err := svc.Register(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	username, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if username != "carol" {
		t.Fatalf("token round trip returned %q", username)
	}
}

func TestIdentityService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newIdentityService(repo)

	_, _ = svc.Register(context.Background(), "dave", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newIdentityService(repo)

	// An unknown username must yield the same error as a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityService_FindByUsername_Absent(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newIdentityService(repo)

	if _, err := svc.FindByUsername(context.Background(), "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
