package testutils

import (
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"

	"github.com/stretchr/testify/mock"
)

// MockTaskService is a testify mock of the basic task service
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(db *database.Database, task models.Task, originID string) (models.Task, error) {
	args := m.Called(db, task, originID)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskById(db *database.Database, id string) (models.Task, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error) {
	args := m.Called(db, params)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(db *database.Database, id string, updates map[string]interface{}, originID string) (models.Task, error) {
	args := m.Called(db, id, updates, originID)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(db *database.Database, id string, originID string) error {
	args := m.Called(db, id, originID)
	return args.Error(0)
}

func (m *MockTaskService) ToggleTask(db *database.Database, id string, originID string) (models.Task, error) {
	args := m.Called(db, id, originID)
	return args.Get(0).(models.Task), args.Error(1)
}

// MockEnhancedTaskService is a testify mock of the enhanced task service
type MockEnhancedTaskService struct {
	mock.Mock
}

func (m *MockEnhancedTaskService) CreateTask(db *database.Database, task models.EnhancedTask, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, task, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) GetTaskById(db *database.Database, id string) (models.EnhancedTask, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) ListTasks(db *database.Database, query services.TaskListQuery) (services.TaskListResult, error) {
	args := m.Called(db, query)
	return args.Get(0).(services.TaskListResult), args.Error(1)
}

func (m *MockEnhancedTaskService) UpdateTask(db *database.Database, id string, updates map[string]interface{}, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, id, updates, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) DeleteTask(db *database.Database, id string, actor services.Actor) error {
	args := m.Called(db, id, actor)
	return args.Error(0)
}

func (m *MockEnhancedTaskService) ToggleTask(db *database.Database, id string, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, id, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) GetTemplates(db *database.Database) ([]models.EnhancedTask, error) {
	args := m.Called(db)
	return args.Get(0).([]models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) CreateFromTemplate(db *database.Database, templateID string, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, templateID, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) AddSubtask(db *database.Database, taskID string, subtask models.Subtask, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, taskID, subtask, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) UpdateSubtask(db *database.Database, taskID, subtaskID string, updates map[string]interface{}, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, taskID, subtaskID, updates, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) DeleteSubtask(db *database.Database, taskID, subtaskID string, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, taskID, subtaskID, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) AddComment(db *database.Database, taskID string, comment models.Comment, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, taskID, comment, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) UpdateComment(db *database.Database, taskID, commentID string, text string, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, taskID, commentID, text, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) DeleteComment(db *database.Database, taskID, commentID string, actor services.Actor) (models.EnhancedTask, error) {
	args := m.Called(db, taskID, commentID, actor)
	return args.Get(0).(models.EnhancedTask), args.Error(1)
}

func (m *MockEnhancedTaskService) BulkOperation(db *database.Database, operation string, taskIDs []string, data map[string]interface{}, actor services.Actor) (services.BulkResult, error) {
	args := m.Called(db, operation, taskIDs, data, actor)
	return args.Get(0).(services.BulkResult), args.Error(1)
}

func (m *MockEnhancedTaskService) GetAnalytics(db *database.Database, startDate, endDate *time.Time) (services.Analytics, error) {
	args := m.Called(db, startDate, endDate)
	return args.Get(0).(services.Analytics), args.Error(1)
}
