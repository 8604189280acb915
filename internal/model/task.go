package model

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("model: invalid task priority")

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// NormalizePriority maps any empty or unrecognized value to medium.
// Input is case-insensitive.
func NormalizePriority(raw string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return PriorityMedium
	}
	return p
}

// CreatedAtLayout is the persisted creation-timestamp format, minute
// resolution.
const CreatedAtLayout = "2006-01-02 15:04"

type Task struct {
	ID          int
	Description string
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id must be positive")
	}
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("model: task description is required")
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}
