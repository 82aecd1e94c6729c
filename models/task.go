package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOnHold     TaskStatus = "on-hold"
	StatusCancelled  TaskStatus = "cancelled"
	StatusArchived   TaskStatus = "archived"
)

func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled, StatusArchived:
		return true
	}
	return false
}

type Task struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Priority     TaskPriority   `gorm:"default:'medium'" json:"priority"`
	Status       TaskStatus     `gorm:"default:'pending';index:idx_tasks_status_priority" json:"status"`
	Completed    bool           `gorm:"default:false;index" json:"completed"`
	CompletedAt  *time.Time     `json:"completed_at"`
	DueDate      *time.Time     `gorm:"index" json:"due_date"`
	Tags         StringList     `gorm:"type:jsonb" json:"tags"`
	Subtasks     SubtaskList    `gorm:"type:jsonb" json:"subtasks"`
	Comments     CommentList    `gorm:"type:jsonb" json:"comments"`
	Attachments  AttachmentList `gorm:"type:jsonb" json:"attachments"`
	Recurrence   Recurrence     `gorm:"type:jsonb" json:"recurrence"`
	TimeTracking TimeTracking   `gorm:"type:jsonb" json:"time_tracking"`
	Template     bool           `gorm:"default:false" json:"template"`
	TemplateName string         `json:"template_name,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

// SetCompleted is the single place the completed flag, completion timestamp
// and status are reconciled. Every mutation path that changes completion
// must go through it so the three fields never disagree.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	t.Completed = completed
	if completed {
		stamped := now
		t.CompletedAt = &stamped
		t.Status = StatusCompleted
	} else {
		t.CompletedAt = nil
		if t.Status == StatusCompleted {
			t.Status = StatusPending
		}
	}
}

// ReconcileCompletion restores the completion invariant after a client
// write. A direct flip of the flag wins; otherwise a status moved to or away
// from completed drives the flag. Already-consistent state is left alone so
// an unrelated update never re-stamps completed_at.
func (t *Task) ReconcileCompletion(wasCompleted bool, now time.Time) {
	if t.Completed != wasCompleted {
		t.SetCompleted(t.Completed, now)
		return
	}
	if t.Status == StatusCompleted && !t.Completed {
		t.SetCompleted(true, now)
	} else if t.Status != StatusCompleted && t.Completed {
		t.SetCompleted(false, now)
	}
}
