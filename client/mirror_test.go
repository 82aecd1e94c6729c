package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow-app/taskflow/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskEvent(event string, task models.Task) models.StandardMessage {
	doc := map[string]interface{}{
		"id":    task.ID.String(),
		"title": task.Title,
	}
	if task.Completed {
		doc["completed"] = true
	}
	return models.StandardMessage{
		Type:  models.EventMessage,
		Event: event,
		Payload: map[string]interface{}{
			"id":   task.ID.String(),
			"task": doc,
		},
	}
}

func TestApplyEventCreateAppends(t *testing.T) {
	m := NewTaskMirror(New("http://unused"))
	task := models.Task{ID: uuid.New(), Title: "New task"}

	changed := m.applyEvent(taskEvent("task-created", task))

	assert.True(t, changed)
	require.Len(t, m.Tasks(), 1)
	assert.Equal(t, "New task", m.Tasks()[0].Title)
}

func TestApplyEventUpdateReplacesById(t *testing.T) {
	m := NewTaskMirror(New("http://unused"))
	id := uuid.New()
	m.tasks = []models.Task{{ID: id, Title: "Old title"}, {ID: uuid.New(), Title: "Untouched"}}

	changed := m.applyEvent(taskEvent("task-updated", models.Task{ID: id, Title: "New title"}))

	assert.True(t, changed)
	tasks := m.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "New title", tasks[0].Title)
	assert.Equal(t, "Untouched", tasks[1].Title)
}

func TestApplyEventDeleteRemoves(t *testing.T) {
	m := NewTaskMirror(New("http://unused"))
	id := uuid.New()
	m.tasks = []models.Task{{ID: id, Title: "Doomed"}, {ID: uuid.New(), Title: "Survivor"}}

	changed := m.applyEvent(models.StandardMessage{
		Type:    models.EventMessage,
		Event:   "task-deleted",
		Payload: map[string]interface{}{"id": id.String()},
	})

	assert.True(t, changed)
	require.Len(t, m.Tasks(), 1)
	assert.Equal(t, "Survivor", m.Tasks()[0].Title)
}

func TestApplyEventDeleteUnknownIdIsNoop(t *testing.T) {
	m := NewTaskMirror(New("http://unused"))
	m.tasks = []models.Task{{ID: uuid.New(), Title: "Kept"}}

	changed := m.applyEvent(models.StandardMessage{
		Type:    models.EventMessage,
		Event:   "task-deleted",
		Payload: map[string]interface{}{"id": uuid.New().String()},
	})

	assert.False(t, changed)
	assert.Len(t, m.Tasks(), 1)
}

func TestOptimisticUpdateConfirmedByServer(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"` + id.String() + `","title":"Server title"}`))
	}))
	defer server.Close()

	m := NewTaskMirror(New(server.URL))
	m.tasks = []models.Task{{ID: id, Title: "Local title"}}

	err := m.UpdateTask(context.Background(), id, map[string]interface{}{"title": "Server title"})

	assert.NoError(t, err)
	require.Len(t, m.Tasks(), 1)
	assert.Equal(t, "Server title", m.Tasks()[0].Title)
}

func TestOptimisticUpdateRollsBackOnRejection(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Validation failed"}`))
	}))
	defer server.Close()

	m := NewTaskMirror(New(server.URL))
	m.tasks = []models.Task{{ID: id, Title: "Original", Status: models.StatusPending}}

	var surfaced error
	m.OnError(func(err error) { surfaced = err })

	var sawOptimistic bool
	m.OnChange(func(tasks []models.Task) {
		if len(tasks) == 1 && tasks[0].Title == "Doomed edit" {
			sawOptimistic = true
		}
	})

	err := m.UpdateTask(context.Background(), id, map[string]interface{}{"title": "Doomed edit"})

	require.Error(t, err)
	assert.True(t, sawOptimistic, "the optimistic state should have been observable")

	// rolled back to the shadow copy
	require.Len(t, m.Tasks(), 1)
	assert.Equal(t, "Original", m.Tasks()[0].Title)
	assert.Equal(t, models.StatusPending, m.Tasks()[0].Status)

	require.NotNil(t, surfaced)
	var apiErr *APIError
	require.ErrorAs(t, surfaced, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
}

func TestUpdateUnknownTaskFailsWithoutRequest(t *testing.T) {
	m := NewTaskMirror(New("http://unused"))

	err := m.UpdateTask(context.Background(), uuid.New(), map[string]interface{}{"title": "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClientSendsIdentityHeaders(t *testing.T) {
	var gotClientID, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClientID = r.Header.Get("X-Client-ID")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.ClientID = "conn-99"
	c.Token = "abc"

	_, err := c.ListTasks(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "conn-99", gotClientID)
	assert.Equal(t, "Bearer abc", gotAuth)
}
