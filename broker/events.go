package broker

type EventType string

// Event names shared by the broker, the websocket channel and the client.
const (
	TaskCreated EventType = "task-created"
	TaskUpdated EventType = "task-updated"
	TaskDeleted EventType = "task-deleted"
	TaskToggled EventType = "task-toggled"

	UserRegistered EventType = "user-registered"
	UserUpdated    EventType = "user-updated"
)

// NATS subjects, one per entity stream.
const (
	TaskSubject = "taskflow.tasks"
	UserSubject = "taskflow.users"
)

// SubjectFor maps an event type to the subject it is published on.
func SubjectFor(event EventType) string {
	switch event {
	case UserRegistered, UserUpdated:
		return UserSubject
	default:
		return TaskSubject
	}
}
