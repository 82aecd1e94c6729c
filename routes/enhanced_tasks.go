package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/utils/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateEnhancedTaskRequest is the accepted payload for the enhanced task API.
type CreateEnhancedTaskRequest struct {
	Title        string                 `json:"title" validate:"required,max=100"`
	Description  string                 `json:"description" validate:"max=1000"`
	Priority     string                 `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status       string                 `json:"status" validate:"omitempty,oneof=pending in-progress completed on-hold cancelled archived"`
	DueDate      *string                `json:"dueDate"`
	StartDate    *string                `json:"startDate"`
	Tags         []string               `json:"tags" validate:"max=50,dive,max=100"`
	CategoryID   *string                `json:"categoryId" validate:"omitempty,uuid"`
	AssignedTo   []string               `json:"assignedTo" validate:"max=50,dive,uuid"`
	Template     bool                   `json:"template"`
	TemplateName string                 `json:"templateName" validate:"max=200"`
	CustomFields map[string]interface{} `json:"customFields"`
}

type SubtaskRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type BulkOperationRequest struct {
	Operation string                 `json:"operation" validate:"required,oneof=update delete complete"`
	TaskIDs   []string               `json:"taskIds" validate:"required,min=1,dive,uuid"`
	Data      map[string]interface{} `json:"data"`
}

func RegisterEnhancedTaskRoutes(group *gin.RouterGroup, db *database.Database, service services.EnhancedTaskServiceInterface, auditService services.AuditServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { ListEnhancedTasks(c, db, service) })
	group.POST("/tasks", func(c *gin.Context) { CreateEnhancedTask(c, db, service) })
	group.GET("/tasks/templates", func(c *gin.Context) { GetTemplates(c, db, service) })
	group.POST("/tasks/from-template/:templateId", func(c *gin.Context) { CreateFromTemplate(c, db, service) })
	group.POST("/tasks/bulk", func(c *gin.Context) { BulkOperation(c, db, service) })
	group.GET("/tasks/analytics", func(c *gin.Context) { GetAnalytics(c, db, service) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetEnhancedTaskById(c, db, service) })
	group.PATCH("/tasks/:id", func(c *gin.Context) { UpdateEnhancedTask(c, db, service) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateEnhancedTask(c, db, service) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteEnhancedTask(c, db, service) })
	group.POST("/tasks/:id/toggle", func(c *gin.Context) { ToggleEnhancedTask(c, db, service) })
	group.GET("/tasks/:id/audit", func(c *gin.Context) { GetTaskAuditLog(c, db, auditService) })
	group.POST("/tasks/:id/subtasks", func(c *gin.Context) { AddSubtask(c, db, service) })
	group.PATCH("/tasks/:id/subtasks/:subtaskId", func(c *gin.Context) { UpdateSubtask(c, db, service) })
	group.DELETE("/tasks/:id/subtasks/:subtaskId", func(c *gin.Context) { DeleteSubtask(c, db, service) })
	group.POST("/tasks/:id/comments", func(c *gin.Context) { AddComment(c, db, service) })
	group.PATCH("/tasks/:id/comments/:commentId", func(c *gin.Context) { UpdateComment(c, db, service) })
	group.DELETE("/tasks/:id/comments/:commentId", func(c *gin.Context) { DeleteComment(c, db, service) })
}

// actorFrom builds the mutation actor from the authenticated request context.
func actorFrom(c *gin.Context) services.Actor {
	actor := services.Actor{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		OriginID:  c.GetHeader("X-Client-ID"),
	}
	if userIDValue, exists := c.Get("userID"); exists {
		if userID, ok := userIDValue.(uuid.UUID); ok {
			actor.UserID = userID
		}
	}
	if emailValue, exists := c.Get("email"); exists {
		if email, ok := emailValue.(string); ok {
			actor.Username = email
		}
	}
	return actor
}

func respondEnhancedTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, services.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
	case errors.Is(err, services.ErrSubtaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
	case errors.Is(err, services.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, services.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidOperation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func ListEnhancedTasks(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	query := services.TaskListQuery{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				query.Tags = append(query.Tags, strings.ToLower(tag))
			}
		}
	}

	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := service.ListTasks(db, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetEnhancedTaskById(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	task, err := service.GetTaskById(db, c.Param("id"))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func CreateEnhancedTask(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var req CreateEnhancedTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if fieldErrors := validation.Check(req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": fieldErrors})
		return
	}

	task := models.EnhancedTask{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     models.TaskPriority(req.Priority),
		Status:       models.TaskStatus(req.Status),
		Tags:         models.StringList(req.Tags),
		Template:     req.Template,
		TemplateName: req.TemplateName,
		CustomFields: models.Snapshot(req.CustomFields),
	}

	if dueDate, fieldErr := parseOptionalDate(req.DueDate, "dueDate"); fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []validation.FieldError{*fieldErr}})
		return
	} else {
		task.DueDate = dueDate
	}
	if startDate, fieldErr := parseOptionalDate(req.StartDate, "startDate"); fieldErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []validation.FieldError{*fieldErr}})
		return
	} else {
		task.StartDate = startDate
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		task.CategoryID = &categoryID
	}
	for _, assignee := range req.AssignedTo {
		assigneeID, err := uuid.Parse(assignee)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee id"})
			return
		}
		task.AssignedTo = append(task.AssignedTo, assigneeID)
	}

	createdTask, err := service.CreateTask(db, task, actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdTask)
}

func parseOptionalDate(value *string, field string) (*time.Time, *validation.FieldError) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, &validation.FieldError{Field: field, Message: field + " must be an RFC 3339 timestamp"}
	}
	return &parsed, nil
}

func UpdateEnhancedTask(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := service.UpdateTask(db, c.Param("id"), updates, actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func DeleteEnhancedTask(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	if err := service.DeleteTask(db, c.Param("id"), actorFrom(c)); err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func ToggleEnhancedTask(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	task, err := service.ToggleTask(db, c.Param("id"), actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func GetTemplates(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	templates, err := service.GetTemplates(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

func CreateFromTemplate(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	task, err := service.CreateFromTemplate(db, c.Param("templateId"), actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func AddSubtask(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var req SubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if fieldErrors := validation.Check(req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": fieldErrors})
		return
	}

	task, err := service.AddSubtask(db, c.Param("id"), models.Subtask{Title: req.Title}, actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func UpdateSubtask(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := service.UpdateSubtask(db, c.Param("id"), c.Param("subtaskId"), updates, actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func DeleteSubtask(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	task, err := service.DeleteSubtask(db, c.Param("id"), c.Param("subtaskId"), actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func AddComment(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if fieldErrors := validation.Check(req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": fieldErrors})
		return
	}

	task, err := service.AddComment(db, c.Param("id"), models.Comment{Text: req.Text}, actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func UpdateComment(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if fieldErrors := validation.Check(req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": fieldErrors})
		return
	}

	task, err := service.UpdateComment(db, c.Param("id"), c.Param("commentId"), req.Text, actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func DeleteComment(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	task, err := service.DeleteComment(db, c.Param("id"), c.Param("commentId"), actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func BulkOperation(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var req BulkOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if fieldErrors := validation.Check(req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": fieldErrors})
		return
	}

	result, err := service.BulkOperation(db, req.Operation, req.TaskIDs, req.Data, actorFrom(c))
	if err != nil {
		respondEnhancedTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetAnalytics(c *gin.Context, db *database.Database, service services.EnhancedTaskServiceInterface) {
	var startDate, endDate *time.Time

	if start := c.Query("startDate"); start != "" {
		parsed, err := time.Parse(time.RFC3339, start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be an RFC 3339 timestamp"})
			return
		}
		startDate = &parsed
	}
	if end := c.Query("endDate"); end != "" {
		parsed, err := time.Parse(time.RFC3339, end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be an RFC 3339 timestamp"})
			return
		}
		endDate = &parsed
	}

	analytics, err := service.GetAnalytics(db, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func GetTaskAuditLog(c *gin.Context, db *database.Database, auditService services.AuditServiceInterface) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := auditService.GetTaskAuditLog(db, c.Param("id"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total, "page": page})
}
