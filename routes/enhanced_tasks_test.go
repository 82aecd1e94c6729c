package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/middleware"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/testutils"
	"taskflow-app/taskflow/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testJWTSecret = []byte("test-secret")

func setupEnhancedRouter(service services.EnhancedTaskServiceInterface, auditService services.AuditServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/enhanced")
	group.Use(middleware.AuthMiddleware(testJWTSecret))
	RegisterEnhancedTaskRoutes(group, &database.Database{}, service, auditService)
	return router
}

func authHeader(t *testing.T) string {
	t.Helper()
	signed, err := token.GenerateToken(uuid.New(), "tester@example.com", "user", testJWTSecret, time.Hour)
	assert.NoError(t, err)
	return "Bearer " + signed
}

func TestEnhancedTasksRequireAuthentication(t *testing.T) {
	router := setupEnhancedRouter(&testutils.MockEnhancedTaskService{}, services.AuditServiceInstance)

	req, _ := http.NewRequest(http.MethodGet, "/api/enhanced/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListEnhancedTasksPagination(t *testing.T) {
	service := new(testutils.MockEnhancedTaskService)
	service.On("ListTasks", mock.Anything, mock.MatchedBy(func(q services.TaskListQuery) bool {
		return q.Page == 2 && q.Limit == 5 && q.Status == "pending"
	})).Return(services.TaskListResult{
		Tasks:       []models.EnhancedTask{{ID: uuid.New(), Title: "Paged task"}},
		TotalPages:  3,
		CurrentPage: 2,
		Total:       11,
	}, nil)

	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	req, _ := http.NewRequest(http.MethodGet, "/api/enhanced/tasks?page=2&limit=5&status=pending", nil)
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result services.TaskListResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.CurrentPage)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(11), result.Total)
	service.AssertExpectations(t)
}

func TestBulkCompleteTargetsExactlyRequestedTasks(t *testing.T) {
	idA := uuid.New().String()
	idB := uuid.New().String()

	service := new(testutils.MockEnhancedTaskService)
	service.On("BulkOperation", mock.Anything, "complete", []string{idA, idB}, mock.Anything, mock.Anything).
		Return(services.BulkResult{Operation: "complete", Matched: 2, Modified: 2}, nil)

	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	body, _ := json.Marshal(map[string]interface{}{
		"operation": "complete",
		"taskIds":   []string{idA, idB},
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/enhanced/tasks/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result services.BulkResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(2), result.Matched)
	assert.Equal(t, int64(2), result.Modified)
	service.AssertExpectations(t)
}

func TestBulkOperationRejectsUnknownOperation(t *testing.T) {
	service := new(testutils.MockEnhancedTaskService)
	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	body := []byte(`{"operation":"archive","taskIds":["` + uuid.New().String() + `"]}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/enhanced/tasks/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "BulkOperation")
}

func TestGetAnalytics(t *testing.T) {
	service := new(testutils.MockEnhancedTaskService)
	service.On("GetAnalytics", mock.Anything, mock.Anything, mock.Anything).Return(services.Analytics{
		Overview: services.AnalyticsOverview{TotalTasks: 7, CompletedTasks: 3},
	}, nil)

	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	req, _ := http.NewRequest(http.MethodGet, "/api/enhanced/tasks/analytics", nil)
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var analytics services.Analytics
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &analytics))
	assert.Equal(t, 7, analytics.Overview.TotalTasks)
}

func TestGetAnalyticsRejectsMalformedDate(t *testing.T) {
	service := new(testutils.MockEnhancedTaskService)
	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	req, _ := http.NewRequest(http.MethodGet, "/api/enhanced/tasks/analytics?startDate=yesterday", nil)
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "GetAnalytics")
}

func TestCreateFromTemplateNotFound(t *testing.T) {
	service := new(testutils.MockEnhancedTaskService)
	service.On("CreateFromTemplate", mock.Anything, mock.Anything, mock.Anything).
		Return(models.EnhancedTask{}, services.ErrTemplateNotFound)

	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	req, _ := http.NewRequest(http.MethodPost, "/api/enhanced/tasks/from-template/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddSubtask(t *testing.T) {
	taskID := uuid.New()

	service := new(testutils.MockEnhancedTaskService)
	service.On("AddSubtask", mock.Anything, taskID.String(), mock.MatchedBy(func(s models.Subtask) bool {
		return s.Title == "Write outline"
	}), mock.Anything).Return(models.EnhancedTask{
		ID:       taskID,
		Title:    "Parent",
		Subtasks: models.SubtaskList{{ID: uuid.New().String(), Title: "Write outline"}},
	}, nil)

	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	body := []byte(`{"title":"Write outline"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/enhanced/tasks/"+taskID.String()+"/subtasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var task models.EnhancedTask
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Len(t, task.Subtasks, 1)
}

func TestActorCarriesOriginHeader(t *testing.T) {
	taskID := uuid.New()

	service := new(testutils.MockEnhancedTaskService)
	service.On("ToggleTask", mock.Anything, taskID.String(), mock.MatchedBy(func(a services.Actor) bool {
		return a.OriginID == "conn-7"
	})).Return(models.EnhancedTask{ID: taskID, Completed: true}, nil)

	router := setupEnhancedRouter(service, services.AuditServiceInstance)

	req, _ := http.NewRequest(http.MethodPost, "/api/enhanced/tasks/"+taskID.String()+"/toggle", nil)
	req.Header.Set("Authorization", authHeader(t))
	req.Header.Set("X-Client-ID", "conn-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}
