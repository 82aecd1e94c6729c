package routes

import (
	"errors"
	"net/http"
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/utils/validation"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest is the accepted payload for creating a basic task.
type CreateTaskRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status      string   `json:"status" validate:"omitempty,oneof=pending in-progress completed on-hold cancelled"`
	Completed   bool     `json:"completed"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags" validate:"max=50,dive,max=100"`
}

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PATCH("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	group.POST("/tasks/:id/toggle", func(c *gin.Context) { ToggleTask(c, db, taskService) })
	group.PATCH("/tasks/:id/toggle", func(c *gin.Context) { ToggleTask(c, db, taskService) })
}

// originID identifies the websocket connection a REST mutation belongs to,
// so the hub can skip echoing the change back to its author.
func originID(c *gin.Context) string {
	return c.GetHeader("X-Client-ID")
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	params := make(map[string]interface{})

	if completed := c.Query("completed"); completed != "" {
		params["completed"] = completed
	}
	if status := c.Query("status"); status != "" {
		params["status"] = status
	}
	if priority := c.Query("priority"); priority != "" {
		params["priority"] = priority
	}
	if search := c.Query("search"); search != "" {
		params["search"] = search
	}

	tasks, err := taskService.GetTasks(db, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id := c.Param("id")
	task, err := taskService.GetTaskById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if fieldErrors := validation.Check(req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": fieldErrors})
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		Completed:   req.Completed,
		Tags:        models.StringList(req.Tags),
	}

	if req.DueDate != nil && *req.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []validation.FieldError{
				{Field: "dueDate", Message: "dueDate must be an RFC 3339 timestamp"},
			}})
			return
		}
		task.DueDate = &dueDate
	}

	createdTask, err := taskService.CreateTask(db, task, originID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, createdTask)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id := c.Param("id")
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updatedTask, err := taskService.UpdateTask(db, id, updates, originID(c))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updatedTask)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id := c.Param("id")

	if err := taskService.DeleteTask(db, id, originID(c)); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func ToggleTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id := c.Param("id")

	task, err := taskService.ToggleTask(db, id, originID(c))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}
