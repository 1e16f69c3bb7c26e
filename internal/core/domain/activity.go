package domain

import "time"

// Activity outcomes.
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
)

// Activity records a single authorization decision made on a task.
type Activity struct {
	TaskID    string    `json:"task_id" bson:"task_id"`
	Username  string    `json:"username" bson:"username"`
	Action    string    `json:"action" bson:"action"`
	Outcome   string    `json:"outcome" bson:"outcome"`
	Reason    string    `json:"reason,omitempty" bson:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
