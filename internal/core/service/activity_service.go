package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskboard/todo-system/internal/core/domain"
	"github.com/taskboard/todo-system/internal/core/ports"
)

type activityService struct {
	repo  ports.ActivityRepository
	tasks ports.TaskRepository
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService backed by the given stores.
func NewActivityService(repo ports.ActivityRepository, tasks ports.TaskRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, tasks: tasks, log: log}
}

// Record persists a single authorization decision.
func (s *activityService) Record(ctx context.Context, input ports.ActivityInput) error {
	return s.repo.Insert(ctx, &domain.Activity{
		TaskID:    input.TaskID,
		Username:  input.Username,
		Action:    input.Action,
		Outcome:   input.Outcome,
		Reason:    input.Reason,
		Timestamp: input.Timestamp,
	})
}

// ListForTask returns the activity trail of a task. The trail follows the
// same visibility rule as the task itself: owner only.
func (s *activityService) ListForTask(ctx context.Context, taskID, actingUsername string) ([]*domain.Activity, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerUsername != actingUsername {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByTaskID(ctx, taskID)
}
