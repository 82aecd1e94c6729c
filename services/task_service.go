package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskServiceInterface interface {
	CreateTask(db *database.Database, task models.Task, originID string) (models.Task, error)
	GetTaskById(db *database.Database, id string) (models.Task, error)
	GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error)
	UpdateTask(db *database.Database, id string, updates map[string]interface{}, originID string) (models.Task, error)
	DeleteTask(db *database.Database, id string, originID string) error
	ToggleTask(db *database.Database, id string, originID string) (models.Task, error)
}

type TaskService struct{}

// taskDocument flattens a task into the payload shape broadcast to clients.
func taskDocument(task interface{}) map[string]interface{} {
	raw, err := json.Marshal(task)
	if err != nil {
		return map[string]interface{}{}
	}
	doc := make(map[string]interface{})
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string]interface{}{}
	}
	return doc
}

func newTaskEvent(eventType broker.EventType, payload map[string]interface{}, originID string) (*models.Event, error) {
	if originID != "" {
		payload["origin_id"] = originID
	}
	return models.NewEvent(string(eventType), "task", payload)
}

func (s *TaskService) CreateTask(db *database.Database, task models.Task, originID string) (models.Task, error) {
	if task.Title == "" {
		return models.Task{}, ErrInvalidInput
	}

	task.ID = uuid.New()
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Recurrence.Pattern == "" {
		task.Recurrence = models.Recurrence{Pattern: "none", Interval: 1}
	}
	now := time.Now().UTC()
	task.ReconcileCompletion(false, now)
	task.CreatedAt = now
	task.UpdatedAt = now

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := newTaskEvent(broker.TaskCreated, map[string]interface{}{
		"id":   task.ID.String(),
		"task": taskDocument(task),
	}, originID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) GetTaskById(db *database.Database, id string) (models.Task, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error) {
	query := db.DB.Model(&models.Task{})

	if completed, ok := params["completed"].(string); ok && completed != "" {
		query = query.Where("completed = ?", completed == "true")
	}
	if status, ok := params["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if priority, ok := params["priority"].(string); ok && priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if search, ok := params["search"].(string); ok && search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// applyTaskUpdates merges a partial update document into the task. Identity
// and server-managed timestamps are never client-writable.
func applyTaskUpdates(task *models.Task, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "completed_at")

	raw, err := json.Marshal(updates)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, task); err != nil {
		return ErrInvalidInput
	}

	if !models.ValidPriority(task.Priority) || !models.ValidStatus(task.Status) {
		return ErrInvalidInput
	}
	return nil
}

func (s *TaskService) UpdateTask(db *database.Database, id string, updates map[string]interface{}, originID string) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	wasCompleted := task.Completed
	if err := applyTaskUpdates(&task, updates); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	now := time.Now().UTC()
	task.ReconcileCompletion(wasCompleted, now)
	task.UpdatedAt = now

	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := newTaskEvent(broker.TaskUpdated, map[string]interface{}{
		"id":   task.ID.String(),
		"task": taskDocument(task),
	}, originID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) DeleteTask(db *database.Database, id string, originID string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := newTaskEvent(broker.TaskDeleted, map[string]interface{}{
		"id": task.ID.String(),
	}, originID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

// ToggleTask flips the completion flag. The transition to completed stamps
// completed_at with the current time, the transition back clears it.
func (s *TaskService) ToggleTask(db *database.Database, id string, originID string) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	now := time.Now().UTC()
	task.SetCompleted(!task.Completed, now)
	task.UpdatedAt = now

	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := newTaskEvent(broker.TaskToggled, map[string]interface{}{
		"id":   task.ID.String(),
		"task": taskDocument(task),
	}, originID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
