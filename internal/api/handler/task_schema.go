package handler

import (
	"time"

	"github.com/taskboard/todo-system/internal/core/domain"
)

// taskRequest is the payload for both create and update. Update applies it
// with full replacement semantics, so the shape is identical.
type taskRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Done        bool   `json:"done"`
}

// taskResponse is the transport view of a task. Intentionally separate from
// the domain type so the JSON contract is not coupled to internal changes.
type taskResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Done          bool      `json:"done"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Done:          t.Done,
		OwnerUsername: t.OwnerUsername,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toTaskResponseList(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

type activityEntryResponse struct {
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type taskActivityResponse struct {
	TaskID  string                  `json:"task_id"`
	Entries []activityEntryResponse `json:"entries"`
}
