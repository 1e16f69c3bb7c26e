package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/todo-system/internal/core/domain"
	"github.com/taskboard/todo-system/internal/core/ports"
)

// Denial reasons recorded on the activity trail.
const (
	ReasonRoleRequired = "role_required"
	ReasonNotOwner     = "not_owner"
)

// ActivityRecorder receives authorization decisions for asynchronous
// persistence. Implemented by the queue dispatcher.
type ActivityRecorder interface {
	Enqueue(input ports.ActivityInput)
}

// TaskService is the authorization and mutation core for tasks. Each decision
// is a pure function of the acting identity's roles (read fresh from the user
// store), the existing task state, and the requested state.
type TaskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	lock     ports.TaskLocker
	recorder ActivityRecorder
	log      zerolog.Logger
}

// NewTaskService wires the task decision core. lock and recorder may be nil;
// locking and audit recording are then skipped (single-node tests).
func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, lock ports.TaskLocker, recorder ActivityRecorder, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, lock: lock, recorder: recorder, log: log}
}

// Create persists a new task owned by the acting identity. A task requested
// with done=true is allowed only when the actor holds the admin role.
func (s *TaskService) Create(ctx context.Context, input ports.TaskInput, actingUsername string) (*domain.Task, error) {
	actor, err := s.resolveActor(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	if input.Done && !actor.HasRole(domain.RoleAdmin) {
		s.record("", actingUsername, "create", domain.OutcomeDenied, ReasonRoleRequired)
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:         input.Title,
		Description:   input.Description,
		Done:          input.Done,
		OwnerUsername: actor.Username,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("username", actingUsername).Msg("failed to create task")
		return nil, err
	}

	s.record(created.ID, actingUsername, "create", domain.OutcomeAllowed, "")
	s.log.Info().Str("task_id", created.ID).Str("username", actingUsername).Bool("done", created.Done).Msg("task created")
	return created, nil
}

// Update replaces title, description and done on an existing task, preserving
// id and owner. Only the owner may update, and setting done=true additionally
// requires the admin role; ownership is strict username equality, an admin
// gains no access to another user's task.
func (s *TaskService) Update(ctx context.Context, id string, input ports.TaskInput, actingUsername string) (*domain.Task, error) {
	release, err := s.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.OwnerUsername != actingUsername {
		s.record(id, actingUsername, "update", domain.OutcomeDenied, ReasonNotOwner)
		return nil, domain.ErrForbidden
	}

	actor, err := s.resolveActor(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	if input.Done && !actor.HasRole(domain.RoleAdmin) {
		s.record(id, actingUsername, "update", domain.OutcomeDenied, ReasonRoleRequired)
		return nil, domain.ErrForbidden
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Done = input.Done
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.tasks.Update(ctx, existing)
	if err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	s.record(id, actingUsername, "update", domain.OutcomeAllowed, "")
	return updated, nil
}

// Delete removes a task. Only the owner may delete; there is no admin
// override, unlike the done-gate on create/update. The asymmetry mirrors the
// reference behavior and is pinned by tests rather than smoothed over.
func (s *TaskService) Delete(ctx context.Context, id string, actingUsername string) error {
	release, err := s.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	existing, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.OwnerUsername != actingUsername {
		s.record(id, actingUsername, "delete", domain.OutcomeDenied, ReasonNotOwner)
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("failed to delete task")
		return err
	}

	s.record(id, actingUsername, "delete", domain.OutcomeAllowed, "")
	s.log.Info().Str("task_id", id).Str("username", actingUsername).Msg("task deleted")
	return nil
}

// ListForOwner returns the acting identity's own tasks. No decision is made
// here: a user only ever sees tasks they own.
func (s *TaskService) ListForOwner(ctx context.Context, username string) ([]*domain.Task, error) {
	return s.tasks.FindByOwnerUsername(ctx, username)
}

// resolveActor loads the acting identity's stored user. A miss is a contract
// violation (authenticated callers must resolve) and surfaces as
// ErrIdentityNotFound, never as a plain denial.
func (s *TaskService) resolveActor(ctx context.Context, username string) (*domain.User, error) {
	actor, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Str("username", username).Msg("authenticated user does not resolve")
			return nil, fmt.Errorf("%w: %s", domain.ErrIdentityNotFound, username)
		}
		return nil, err
	}
	return actor, nil
}

// acquire takes the per-task mutation lock so the read-decide-write sequence
// cannot interleave with a concurrent mutation of the same task id.
func (s *TaskService) acquire(ctx context.Context, id string) (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}
	ok, err := s.lock.Acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("acquire task lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrTaskLocked
	}
	return func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), id); err != nil {
			s.log.Warn().Err(err).Str("task_id", id).Msg("failed to release task lock")
		}
	}, nil
}

func (s *TaskService) record(taskID, username, action, outcome, reason string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Enqueue(ports.ActivityInput{
		TaskID:    taskID,
		Username:  username,
		Action:    action,
		Outcome:   outcome,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
