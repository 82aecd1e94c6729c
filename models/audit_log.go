package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCreate           AuditAction = "create"
	AuditUpdate           AuditAction = "update"
	AuditDelete           AuditAction = "delete"
	AuditStatusChange     AuditAction = "status_change"
	AuditPriorityChange   AuditAction = "priority_change"
	AuditAssign           AuditAction = "assign"
	AuditComment          AuditAction = "comment"
	AuditAttachmentUpload AuditAction = "attachment_upload"
	AuditAttachmentDelete AuditAction = "attachment_delete"
)

// AuditLog is an append-only record of a task mutation. Entries are never
// updated or deleted once written.
type AuditLog struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_audit_logs_user_created" json:"user_id"`
	TaskID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_audit_logs_task_created" json:"task_id"`
	Action      AuditAction `gorm:"not null;index" json:"action"`
	Before      Snapshot    `gorm:"type:jsonb" json:"before"`
	After       Snapshot    `gorm:"type:jsonb" json:"after"`
	Description string      `gorm:"not null" json:"description"`
	IPAddress   string      `json:"ip_address,omitempty"`
	UserAgent   string      `json:"user_agent,omitempty"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
}
