package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// UUIDList stores a list of user references as JSONB
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *UUIDList) Scan(value interface{}) error {
	*l = UUIDList{}
	return jsonbScan(value, l)
}

// EnhancedTask is the richer task variant: ownership, categories,
// dependencies, recurrence and time tracking on top of the base fields.
type EnhancedTask struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Priority     TaskPriority   `gorm:"default:'medium'" json:"priority"`
	Status       TaskStatus     `gorm:"default:'pending';index:idx_enhanced_tasks_status_priority" json:"status"`
	Completed    bool           `gorm:"default:false;index" json:"completed"`
	CompletedAt  *time.Time     `json:"completed_at"`
	DueDate      *time.Time     `gorm:"index" json:"due_date"`
	StartDate    *time.Time     `json:"start_date"`
	EndDate      *time.Time     `json:"end_date"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	AssignedTo   UUIDList       `gorm:"type:jsonb" json:"assigned_to"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id"`
	Tags         StringList     `gorm:"type:jsonb" json:"tags"`
	Subtasks     SubtaskList    `gorm:"type:jsonb" json:"subtasks"`
	Comments     CommentList    `gorm:"type:jsonb" json:"comments"`
	Attachments  AttachmentList `gorm:"type:jsonb" json:"attachments"`
	Dependencies DependencyList `gorm:"type:jsonb" json:"dependencies"`
	Recurrence   Recurrence     `gorm:"type:jsonb" json:"recurrence"`
	TimeTracking TimeTracking   `gorm:"type:jsonb" json:"time_tracking"`
	CustomFields Snapshot       `gorm:"type:jsonb" json:"custom_fields,omitempty"`
	Template     bool           `gorm:"default:false" json:"template"`
	TemplateName string         `json:"template_name,omitempty"`
	IsArchived   bool           `gorm:"default:false;index" json:"is_archived"`
	ArchivedAt   *time.Time     `json:"archived_at"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

// SetCompleted mirrors Task.SetCompleted for the enhanced variant.
func (t *EnhancedTask) SetCompleted(completed bool, now time.Time) {
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

// ReconcileCompletion mirrors Task.ReconcileCompletion.
func (t *EnhancedTask) ReconcileCompletion(wasCompleted bool, now time.Time) {
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

// Archive marks the task archived instead of deleting it.
func (t *EnhancedTask) Archive(now time.Time) {
	t.IsArchived = true
	stamped := now
	t.ArchivedAt = &stamped
	t.Status = StatusArchived
}
