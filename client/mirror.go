package client

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"taskflow-app/taskflow/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TaskMirror holds a local copy of the task list and keeps it synchronized:
// an initial REST load, then live merges from the websocket stream. Writes
// are applied optimistically and rolled back if the server rejects them.
type TaskMirror struct {
	client *Client

	mu    sync.RWMutex
	tasks []models.Task

	conn     *websocket.Conn
	done     chan struct{}
	onChange func([]models.Task)
	onError  func(error)

	closeOnce sync.Once
}

// NewTaskMirror creates a mirror backed by the given REST client.
func NewTaskMirror(c *Client) *TaskMirror {
	return &TaskMirror{
		client: c,
		done:   make(chan struct{}),
	}
}

// OnChange registers a callback invoked with a snapshot after every merge.
// Must be called before Start.
func (m *TaskMirror) OnChange(fn func([]models.Task)) { m.onChange = fn }

// OnError registers a callback for rejected optimistic updates and stream
// failures. Must be called before Start.
func (m *TaskMirror) OnError(fn func(error)) { m.onError = fn }

// Start loads the initial task list and connects the websocket stream.
// wsURL is the full websocket endpoint, e.g. ws://host/ws?token=...
func (m *TaskMirror) Start(ctx context.Context, wsURL string) error {
	tasks, err := m.client.ListTasks(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.tasks = tasks
	m.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	m.conn = conn

	go m.readLoop()
	m.notify()
	return nil
}

// Close tears down the stream. The server drops this connection's
// subscriptions when it goes away.
func (m *TaskMirror) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		if m.conn != nil {
			m.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			m.conn.Close()
		}
	})
}

// Tasks returns a snapshot of the mirrored list.
func (m *TaskMirror) Tasks() []models.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := make([]models.Task, len(m.tasks))
	copy(snapshot, m.tasks)
	return snapshot
}

// Subscribe asks the server for an additional resource stream.
func (m *TaskMirror) Subscribe(resource string) error {
	msg := models.NewStandardMessage(models.SubscribeMessage, "", map[string]interface{}{
		"resource": resource,
	})
	return m.conn.WriteJSON(msg)
}

// Unsubscribe drops a resource stream.
func (m *TaskMirror) Unsubscribe(resource string) error {
	msg := models.NewStandardMessage(models.UnsubscribeMessage, "", map[string]interface{}{
		"resource": resource,
	})
	return m.conn.WriteJSON(msg)
}

func (m *TaskMirror) readLoop() {
	defer m.Close()

	for {
		_, data, err := m.conn.ReadMessage()
		if err != nil {
			select {
			case <-m.done:
			default:
				m.reportError(err)
			}
			return
		}

		var msg models.StandardMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Ignoring malformed stream message: %v", err)
			continue
		}

		if msg.Type == models.EventMessage && msg.Event == "connected" {
			if clientID, ok := msg.Payload["client_id"].(string); ok {
				m.client.ClientID = clientID
			}
			continue
		}
		if msg.Type != models.EventMessage {
			continue
		}

		if m.applyEvent(msg) {
			m.notify()
		}
	}
}

// applyEvent merges one server event into the mirror by task id: create
// appends, update replaces, delete removes. Returns whether anything changed.
func (m *TaskMirror) applyEvent(msg models.StandardMessage) bool {
	id, _ := msg.Payload["id"].(string)
	if id == "" {
		id = msg.ResourceID
	}
	if id == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch msg.Event {
	case "task-deleted":
		for i := range m.tasks {
			if m.tasks[i].ID.String() == id {
				m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
				return true
			}
		}
		return false

	case "task-created", "task-updated", "task-toggled":
		task, ok := decodeTaskPayload(msg.Payload)
		if !ok {
			return false
		}
		for i := range m.tasks {
			if m.tasks[i].ID.String() == id {
				m.tasks[i] = task
				return true
			}
		}
		m.tasks = append(m.tasks, task)
		return true
	}
	return false
}

func decodeTaskPayload(payload map[string]interface{}) (models.Task, bool) {
	doc, ok := payload["task"].(map[string]interface{})
	if !ok {
		return models.Task{}, false
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return models.Task{}, false
	}
	var task models.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return models.Task{}, false
	}
	return task, true
}

// UpdateTask applies the change locally first, then confirms it with the
// server. On rejection the shadow copy is restored and the error surfaced.
func (m *TaskMirror) UpdateTask(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	m.mu.Lock()
	index := -1
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		m.mu.Unlock()
		return &APIError{StatusCode: 404, Message: "task not found in mirror"}
	}

	shadow := m.tasks[index]
	optimistic := shadow
	applyLocalUpdates(&optimistic, updates)
	m.tasks[index] = optimistic
	m.mu.Unlock()
	m.notify()

	updated, err := m.client.UpdateTask(ctx, id.String(), updates)
	if err != nil {
		m.mu.Lock()
		for i := range m.tasks {
			if m.tasks[i].ID == id {
				m.tasks[i] = shadow
				break
			}
		}
		m.mu.Unlock()
		m.notify()
		m.reportError(err)
		return err
	}

	m.mu.Lock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i] = updated
			break
		}
	}
	m.mu.Unlock()
	m.notify()
	return nil
}

// applyLocalUpdates mirrors the server's merge semantics closely enough for
// an optimistic render; the confirmed server copy replaces it either way.
func applyLocalUpdates(task *models.Task, updates map[string]interface{}) {
	raw, err := json.Marshal(updates)
	if err != nil {
		return
	}
	json.Unmarshal(raw, task)
}

func (m *TaskMirror) notify() {
	if m.onChange != nil {
		m.onChange(m.Tasks())
	}
}

func (m *TaskMirror) reportError(err error) {
	if m.onError != nil {
		m.onError(err)
	}
}
