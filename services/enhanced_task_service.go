package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/cache"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskListQuery carries the filter, sort and pagination parameters of a
// collection listing.
type TaskListQuery struct {
	Status    string
	Priority  string
	Tags      []string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type TaskListResult struct {
	Tasks       []models.EnhancedTask `json:"tasks"`
	TotalPages  int                   `json:"totalPages"`
	CurrentPage int                   `json:"currentPage"`
	Total       int64                 `json:"total"`
}

type BulkResult struct {
	Operation string `json:"operation"`
	Matched   int64  `json:"matched"`
	Modified  int64  `json:"modified"`
}

type EnhancedTaskServiceInterface interface {
	CreateTask(db *database.Database, task models.EnhancedTask, actor Actor) (models.EnhancedTask, error)
	GetTaskById(db *database.Database, id string) (models.EnhancedTask, error)
	ListTasks(db *database.Database, query TaskListQuery) (TaskListResult, error)
	UpdateTask(db *database.Database, id string, updates map[string]interface{}, actor Actor) (models.EnhancedTask, error)
	DeleteTask(db *database.Database, id string, actor Actor) error
	ToggleTask(db *database.Database, id string, actor Actor) (models.EnhancedTask, error)
	GetTemplates(db *database.Database) ([]models.EnhancedTask, error)
	CreateFromTemplate(db *database.Database, templateID string, actor Actor) (models.EnhancedTask, error)
	AddSubtask(db *database.Database, taskID string, subtask models.Subtask, actor Actor) (models.EnhancedTask, error)
	UpdateSubtask(db *database.Database, taskID, subtaskID string, updates map[string]interface{}, actor Actor) (models.EnhancedTask, error)
	DeleteSubtask(db *database.Database, taskID, subtaskID string, actor Actor) (models.EnhancedTask, error)
	AddComment(db *database.Database, taskID string, comment models.Comment, actor Actor) (models.EnhancedTask, error)
	UpdateComment(db *database.Database, taskID, commentID string, text string, actor Actor) (models.EnhancedTask, error)
	DeleteComment(db *database.Database, taskID, commentID string, actor Actor) (models.EnhancedTask, error)
	BulkOperation(db *database.Database, operation string, taskIDs []string, data map[string]interface{}, actor Actor) (BulkResult, error)
	GetAnalytics(db *database.Database, startDate, endDate *time.Time) (Analytics, error)
}

type EnhancedTaskService struct {
	// AnalyticsCache is optional; a nil cache means every request recomputes.
	AnalyticsCache *cache.Cache
	audit          AuditServiceInterface
}

func NewEnhancedTaskService(analyticsCache *cache.Cache) *EnhancedTaskService {
	return &EnhancedTaskService{
		AnalyticsCache: analyticsCache,
		audit:          AuditServiceInstance,
	}
}

func snapshotOf(task models.EnhancedTask) models.Snapshot {
	return models.Snapshot(taskDocument(task))
}

// appendTaskEvent stages an outbox event inside the caller's transaction.
func appendTaskEvent(tx *gorm.DB, eventType broker.EventType, payload map[string]interface{}, originID string) error {
	event, err := newTaskEvent(eventType, payload, originID)
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

func (s *EnhancedTaskService) recordAudit(tx *gorm.DB, actor Actor, taskID uuid.UUID, action models.AuditAction, before, after models.Snapshot, description string) error {
	audit := s.audit
	if audit == nil {
		audit = AuditServiceInstance
	}
	return audit.Record(tx, actor, taskID, action, before, after, description)
}

func (s *EnhancedTaskService) CreateTask(db *database.Database, task models.EnhancedTask, actor Actor) (models.EnhancedTask, error) {
	if task.Title == "" {
		return models.EnhancedTask{}, ErrInvalidInput
	}

	task.ID = uuid.New()
	task.CreatedBy = actor.UserID
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Recurrence.Pattern == "" {
		task.Recurrence = models.Recurrence{Pattern: "none", Interval: 1}
	}
	for i := range task.Tags {
		task.Tags[i] = strings.ToLower(strings.TrimSpace(task.Tags[i]))
	}
	now := time.Now().UTC()
	task.ReconcileCompletion(false, now)
	task.CreatedAt = now
	task.UpdatedAt = now

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.EnhancedTask{}, tx.Error
	}

	if task.CategoryID != nil {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", *task.CategoryID).Count(&count).Error; err != nil {
			tx.Rollback()
			return models.EnhancedTask{}, err
		}
		if count == 0 {
			tx.Rollback()
			return models.EnhancedTask{}, ErrCategoryNotFound
		}
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	if err := s.recordAudit(tx, actor, task.ID, models.AuditCreate, nil, snapshotOf(task),
		fmt.Sprintf("Task %q created", task.Title)); err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	if err := bumpUserStats(tx, actor.UserID, 1, 0); err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	event, err := newTaskEvent(broker.TaskCreated, map[string]interface{}{
		"id":   task.ID.String(),
		"task": taskDocument(task),
	}, actor.OriginID)
	if err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}
	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	return task, nil
}

func (s *EnhancedTaskService) GetTaskById(db *database.Database, id string) (models.EnhancedTask, error) {
	var task models.EnhancedTask
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.EnhancedTask{}, ErrTaskNotFound
		}
		return models.EnhancedTask{}, err
	}
	return task, nil
}

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

func (s *EnhancedTaskService) ListTasks(db *database.Database, query TaskListQuery) (TaskListResult, error) {
	q := db.DB.Model(&models.EnhancedTask{}).Where("template = ?", false)

	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Priority != "" {
		q = q.Where("priority = ?", query.Priority)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if len(query.Tags) > 0 {
		// Tags live in a JSONB column; match the serialized form so the
		// filter works on every supported driver.
		tagConds := q.Session(&gorm.Session{NewDB: true})
		for _, tag := range query.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			tagConds = tagConds.Or("tags LIKE ?", `%"`+tag+`"%`)
		}
		q = q.Where(tagConds)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return TaskListResult{}, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(query.SortOrder, "asc") {
		direction = "ASC"
	}

	var tasks []models.EnhancedTask
	err := q.Order(column + " " + direction).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&tasks).Error
	if err != nil {
		return TaskListResult{}, err
	}

	return TaskListResult{
		Tasks:       tasks,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
		Total:       total,
	}, nil
}

func applyEnhancedUpdates(task *models.EnhancedTask, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_by")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "completed_at")
	delete(updates, "archived_at")

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
	for i := range task.Tags {
		task.Tags[i] = strings.ToLower(strings.TrimSpace(task.Tags[i]))
	}
	return nil
}

// mutateTask loads a task, applies mutate, then saves the result together
// with its audit entry and broadcast event in one transaction.
func (s *EnhancedTaskService) mutateTask(db *database.Database, id string, actor Actor, eventType broker.EventType, action models.AuditAction, description string, mutate func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error) (models.EnhancedTask, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.EnhancedTask{}, tx.Error
	}

	var task models.EnhancedTask
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.EnhancedTask{}, ErrTaskNotFound
		}
		return models.EnhancedTask{}, err
	}

	before := snapshotOf(task)
	now := time.Now().UTC()

	if err := mutate(tx, &task, now); err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}
	task.UpdatedAt = now

	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	if err := s.recordAudit(tx, actor, task.ID, action, before, snapshotOf(task), description); err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	event, err := newTaskEvent(eventType, map[string]interface{}{
		"id":   task.ID.String(),
		"task": taskDocument(task),
	}, actor.OriginID)
	if err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}
	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.EnhancedTask{}, err
	}

	return task, nil
}

func (s *EnhancedTaskService) UpdateTask(db *database.Database, id string, updates map[string]interface{}, actor Actor) (models.EnhancedTask, error) {
	return s.mutateTask(db, id, actor, broker.TaskUpdated, models.AuditUpdate, "Task updated",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			wasCompleted := task.Completed
			wasArchived := task.IsArchived
			if err := applyEnhancedUpdates(task, updates); err != nil {
				return err
			}
			task.ReconcileCompletion(wasCompleted, now)
			if task.IsArchived && !wasArchived {
				task.Archive(now)
			}
			return nil
		})
}

func (s *EnhancedTaskService) DeleteTask(db *database.Database, id string, actor Actor) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.EnhancedTask
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

	if err := s.recordAudit(tx, actor, task.ID, models.AuditDelete, snapshotOf(task), nil,
		fmt.Sprintf("Task %q deleted", task.Title)); err != nil {
		tx.Rollback()
		return err
	}

	event, err := newTaskEvent(broker.TaskDeleted, map[string]interface{}{
		"id": task.ID.String(),
	}, actor.OriginID)
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

func (s *EnhancedTaskService) ToggleTask(db *database.Database, id string, actor Actor) (models.EnhancedTask, error) {
	return s.mutateTask(db, id, actor, broker.TaskToggled, models.AuditStatusChange, "Task completion toggled",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			task.SetCompleted(!task.Completed, now)
			completedDelta := -1
			if task.Completed {
				completedDelta = 1
			}
			return bumpUserStats(tx, actor.UserID, 0, completedDelta)
		})
}

func (s *EnhancedTaskService) GetTemplates(db *database.Database) ([]models.EnhancedTask, error) {
	var templates []models.EnhancedTask
	if err := db.DB.Where("template = ?", true).Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *EnhancedTaskService) CreateFromTemplate(db *database.Database, templateID string, actor Actor) (models.EnhancedTask, error) {
	var template models.EnhancedTask
	if err := db.DB.First(&template, "id = ? AND template = ?", templateID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.EnhancedTask{}, ErrTemplateNotFound
		}
		return models.EnhancedTask{}, err
	}

	task := models.EnhancedTask{
		Title:        template.Title,
		Description:  template.Description,
		Priority:     template.Priority,
		Tags:         template.Tags,
		Subtasks:     cloneSubtasks(template.Subtasks),
		Recurrence:   template.Recurrence,
		TimeTracking: models.TimeTracking{EstimatedHours: template.TimeTracking.EstimatedHours},
		CategoryID:   template.CategoryID,
	}
	return s.CreateTask(db, task, actor)
}

func cloneSubtasks(subtasks models.SubtaskList) models.SubtaskList {
	now := time.Now().UTC()
	cloned := make(models.SubtaskList, 0, len(subtasks))
	for _, sub := range subtasks {
		cloned = append(cloned, models.Subtask{
			ID:          uuid.New().String(),
			Title:       sub.Title,
			Description: sub.Description,
			Priority:    sub.Priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return cloned
}

func (s *EnhancedTaskService) AddSubtask(db *database.Database, taskID string, subtask models.Subtask, actor Actor) (models.EnhancedTask, error) {
	if subtask.Title == "" {
		return models.EnhancedTask{}, ErrInvalidInput
	}
	return s.mutateTask(db, taskID, actor, broker.TaskUpdated, models.AuditUpdate, "Subtask added",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			subtask.ID = uuid.New().String()
			subtask.Completed = false
			if subtask.Priority == "" {
				subtask.Priority = models.PriorityMedium
			}
			subtask.CreatedAt = now
			subtask.UpdatedAt = now
			task.Subtasks = append(task.Subtasks, subtask)
			return nil
		})
}

func (s *EnhancedTaskService) UpdateSubtask(db *database.Database, taskID, subtaskID string, updates map[string]interface{}, actor Actor) (models.EnhancedTask, error) {
	return s.mutateTask(db, taskID, actor, broker.TaskUpdated, models.AuditUpdate, "Subtask updated",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			for i := range task.Subtasks {
				if task.Subtasks[i].ID != subtaskID {
					continue
				}
				if title, ok := updates["title"].(string); ok && title != "" {
					task.Subtasks[i].Title = title
				}
				if completed, ok := updates["completed"].(bool); ok {
					task.Subtasks[i].Completed = completed
				}
				if description, ok := updates["description"].(string); ok {
					task.Subtasks[i].Description = description
				}
				task.Subtasks[i].UpdatedAt = now
				return nil
			}
			return ErrSubtaskNotFound
		})
}

func (s *EnhancedTaskService) DeleteSubtask(db *database.Database, taskID, subtaskID string, actor Actor) (models.EnhancedTask, error) {
	return s.mutateTask(db, taskID, actor, broker.TaskUpdated, models.AuditUpdate, "Subtask removed",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			for i := range task.Subtasks {
				if task.Subtasks[i].ID == subtaskID {
					task.Subtasks = append(task.Subtasks[:i], task.Subtasks[i+1:]...)
					return nil
				}
			}
			return ErrSubtaskNotFound
		})
}

func (s *EnhancedTaskService) AddComment(db *database.Database, taskID string, comment models.Comment, actor Actor) (models.EnhancedTask, error) {
	if comment.Text == "" {
		return models.EnhancedTask{}, ErrInvalidInput
	}
	return s.mutateTask(db, taskID, actor, broker.TaskUpdated, models.AuditComment, "Comment added",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			comment.ID = uuid.New().String()
			if comment.Author == "" {
				comment.Author = actor.Username
			}
			if comment.AuthorID == nil && actor.UserID != uuid.Nil {
				authorID := actor.UserID
				comment.AuthorID = &authorID
			}
			comment.CreatedAt = now
			comment.UpdatedAt = now
			task.Comments = append(task.Comments, comment)
			return nil
		})
}

func (s *EnhancedTaskService) UpdateComment(db *database.Database, taskID, commentID string, text string, actor Actor) (models.EnhancedTask, error) {
	return s.mutateTask(db, taskID, actor, broker.TaskUpdated, models.AuditComment, "Comment updated",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			for i := range task.Comments {
				if task.Comments[i].ID != commentID {
					continue
				}
				if text != "" {
					task.Comments[i].Text = text
				}
				task.Comments[i].UpdatedAt = now
				return nil
			}
			return ErrCommentNotFound
		})
}

func (s *EnhancedTaskService) DeleteComment(db *database.Database, taskID, commentID string, actor Actor) (models.EnhancedTask, error) {
	return s.mutateTask(db, taskID, actor, broker.TaskUpdated, models.AuditComment, "Comment removed",
		func(tx *gorm.DB, task *models.EnhancedTask, now time.Time) error {
			for i := range task.Comments {
				if task.Comments[i].ID == commentID {
					task.Comments = append(task.Comments[:i], task.Comments[i+1:]...)
					return nil
				}
			}
			return ErrCommentNotFound
		})
}

// BulkOperation applies one action to a set of tasks. Results are reported
// in aggregate only; items that no longer exist are skipped, not errors.
func (s *EnhancedTaskService) BulkOperation(db *database.Database, operation string, taskIDs []string, data map[string]interface{}, actor Actor) (BulkResult, error) {
	if len(taskIDs) == 0 {
		return BulkResult{}, ErrInvalidInput
	}

	switch operation {
	case "update", "complete":
	case "delete":
	default:
		return BulkResult{}, ErrInvalidOperation
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return BulkResult{}, tx.Error
	}

	var tasks []models.EnhancedTask
	if err := tx.Where("id IN ?", taskIDs).Find(&tasks).Error; err != nil {
		tx.Rollback()
		return BulkResult{}, err
	}

	result := BulkResult{Operation: operation, Matched: int64(len(tasks))}
	now := time.Now().UTC()

	switch operation {
	case "delete":
		if len(tasks) > 0 {
			res := tx.Where("id IN ?", taskIDs).Delete(&models.EnhancedTask{})
			if res.Error != nil {
				tx.Rollback()
				return BulkResult{}, res.Error
			}
			result.Modified = res.RowsAffected
			for i := range tasks {
				if err := s.recordAudit(tx, actor, tasks[i].ID, models.AuditDelete, snapshotOf(tasks[i]), nil, "Task deleted in bulk"); err != nil {
					tx.Rollback()
					return BulkResult{}, err
				}
				if err := appendTaskEvent(tx, broker.TaskDeleted, map[string]interface{}{
					"id": tasks[i].ID.String(),
				}, actor.OriginID); err != nil {
					tx.Rollback()
					return BulkResult{}, err
				}
			}
		}
	case "complete":
		for i := range tasks {
			before := snapshotOf(tasks[i])
			wasCompleted := tasks[i].Completed
			tasks[i].SetCompleted(true, now)
			tasks[i].UpdatedAt = now
			if err := tx.Save(&tasks[i]).Error; err != nil {
				tx.Rollback()
				return BulkResult{}, err
			}
			if !wasCompleted {
				if err := bumpUserStats(tx, actor.UserID, 0, 1); err != nil {
					tx.Rollback()
					return BulkResult{}, err
				}
			}
			if err := s.recordAudit(tx, actor, tasks[i].ID, models.AuditStatusChange, before, snapshotOf(tasks[i]), "Task completed in bulk"); err != nil {
				tx.Rollback()
				return BulkResult{}, err
			}
			if err := appendTaskEvent(tx, broker.TaskToggled, map[string]interface{}{
				"id":   tasks[i].ID.String(),
				"task": taskDocument(tasks[i]),
			}, actor.OriginID); err != nil {
				tx.Rollback()
				return BulkResult{}, err
			}
			result.Modified++
		}
	case "update":
		for i := range tasks {
			before := snapshotOf(tasks[i])
			wasCompleted := tasks[i].Completed
			updatesCopy := make(map[string]interface{}, len(data))
			for k, v := range data {
				updatesCopy[k] = v
			}
			if err := applyEnhancedUpdates(&tasks[i], updatesCopy); err != nil {
				tx.Rollback()
				return BulkResult{}, err
			}
			tasks[i].ReconcileCompletion(wasCompleted, now)
			tasks[i].UpdatedAt = now
			if err := tx.Save(&tasks[i]).Error; err != nil {
				tx.Rollback()
				return BulkResult{}, err
			}
			if err := s.recordAudit(tx, actor, tasks[i].ID, models.AuditUpdate, before, snapshotOf(tasks[i]), "Task updated in bulk"); err != nil {
				tx.Rollback()
				return BulkResult{}, err
			}
			if err := appendTaskEvent(tx, broker.TaskUpdated, map[string]interface{}{
				"id":   tasks[i].ID.String(),
				"task": taskDocument(tasks[i]),
			}, actor.OriginID); err != nil {
				tx.Rollback()
				return BulkResult{}, err
			}
			result.Modified++
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return BulkResult{}, err
	}

	return result, nil
}

func (s *EnhancedTaskService) GetAnalytics(db *database.Database, startDate, endDate *time.Time) (Analytics, error) {
	ctx := context.Background()
	key := analyticsCacheKey(startDate, endDate)

	var cached Analytics
	if s.AnalyticsCache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	q := db.DB.Model(&models.EnhancedTask{}).Where("template = ?", false)
	if startDate != nil {
		q = q.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("created_at <= ?", *endDate)
	}

	var tasks []models.EnhancedTask
	if err := q.Find(&tasks).Error; err != nil {
		return Analytics{}, err
	}

	analytics := ComputeAnalytics(tasks, time.Now().UTC())
	s.AnalyticsCache.SetJSON(ctx, key, analytics)
	return analytics, nil
}

func analyticsCacheKey(startDate, endDate *time.Time) string {
	start, end := "-", "-"
	if startDate != nil {
		start = startDate.UTC().Format(time.RFC3339)
	}
	if endDate != nil {
		end = endDate.UTC().Format(time.RFC3339)
	}
	return "taskflow:analytics:" + start + ":" + end
}

var EnhancedTaskServiceInstance EnhancedTaskServiceInterface = NewEnhancedTaskService(nil)
