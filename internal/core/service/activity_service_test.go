package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/todo-system/internal/core/domain"
	"github.com/taskboard/todo-system/internal/core/ports"
)

type stubActivityRepo struct {
	byTask map[string][]*domain.Activity
}

func newStubActivityRepo() *stubActivityRepo {
	return &stubActivityRepo{byTask: make(map[string][]*domain.Activity)}
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	clone := *a
	r.byTask[a.TaskID] = append(r.byTask[a.TaskID], &clone)
	return nil
}

func (r *stubActivityRepo) FindByTaskID(_ context.Context, taskID string) ([]*domain.Activity, error) {
	return r.byTask[taskID], nil
}

func TestActivityService_RecordAndList(t *testing.T) {
	repo := newStubActivityRepo()
	tasks := newStubTaskRepo()
	svc := NewActivityService(repo, tasks, zerolog.Nop())
	ctx := context.Background()

	task, _ := tasks.Create(ctx, &domain.Task{Title: "T", OwnerUsername: "alice"})

	err := svc.Record(ctx, ports.ActivityInput{
		TaskID:    task.ID,
		Username:  "alice",
		Action:    "update",
		Outcome:   domain.OutcomeDenied,
		Reason:    ReasonRoleRequired,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := svc.ListForTask(ctx, task.ID, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Reason != ReasonRoleRequired {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestActivityService_ListForTask_NonOwnerForbidden(t *testing.T) {
	repo := newStubActivityRepo()
	tasks := newStubTaskRepo()
	svc := NewActivityService(repo, tasks, zerolog.Nop())
	ctx := context.Background()

	task, _ := tasks.Create(ctx, &domain.Task{Title: "T", OwnerUsername: "alice"})

	if _, err := svc.ListForTask(ctx, task.ID, "bob"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestActivityService_ListForTask_UnknownTask(t *testing.T) {
	svc := NewActivityService(newStubActivityRepo(), newStubTaskRepo(), zerolog.Nop())

	if _, err := svc.ListForTask(context.Background(), "task-99", "alice"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
