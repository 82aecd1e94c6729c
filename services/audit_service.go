package services

import (
	"errors"
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor identifies who performed a mutation and over which connection.
type Actor struct {
	UserID    uuid.UUID
	Username  string
	IPAddress string
	UserAgent string
	OriginID  string
}

type AuditServiceInterface interface {
	Record(tx *gorm.DB, actor Actor, taskID uuid.UUID, action models.AuditAction, before, after models.Snapshot, description string) error
	GetTaskAuditLog(db *database.Database, taskID string, page, limit int) ([]models.AuditLog, int64, error)
}

type AuditService struct{}

// Record appends an audit entry inside the caller's transaction. Entries are
// write-once; nothing in this service updates or deletes them.
func (s *AuditService) Record(tx *gorm.DB, actor Actor, taskID uuid.UUID, action models.AuditAction, before, after models.Snapshot, description string) error {
	entry := models.AuditLog{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		TaskID:      taskID,
		Action:      action,
		Before:      before,
		After:       after,
		Description: description,
		IPAddress:   actor.IPAddress,
		UserAgent:   actor.UserAgent,
		CreatedAt:   time.Now().UTC(),
	}
	return tx.Create(&entry).Error
}

func (s *AuditService) GetTaskAuditLog(db *database.Database, taskID string, page, limit int) ([]models.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := db.DB.Model(&models.AuditLog{}).Where("task_id = ?", taskID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AuditLog
	err := db.DB.Where("task_id = ?", taskID).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.AuditLog{}, total, nil
		}
		return nil, 0, err
	}
	return entries, total, nil
}

var AuditServiceInstance AuditServiceInterface = &AuditService{}
