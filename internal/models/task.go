package models

import "time"

// ParseStatus is the lifecycle state of a queued parse task.
type ParseStatus string

const (
	StatusPending   ParseStatus = "pending"
	StatusRunning   ParseStatus = "running"
	StatusCompleted ParseStatus = "completed"
	StatusFailed    ParseStatus = "failed"
	StatusCancelled ParseStatus = "cancelled"
)

// ParseTask tracks one asynchronous CV parse job.
type ParseTask struct {
	ID        string            `json:"id"`
	Status    ParseStatus       `json:"status"`
	Type      string            `json:"type"`
	Priority  int               `json:"priority"`
	Progress  float64           `json:"progress"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt,omitempty"`
}
