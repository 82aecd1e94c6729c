package models

import (
	"time"

	"github.com/google/uuid"
)

// WebSocketMessageType represents message type constants
type WebSocketMessageType string

const (
	EventMessage       WebSocketMessageType = "event"
	SubscribeMessage   WebSocketMessageType = "subscribe"
	UnsubscribeMessage WebSocketMessageType = "unsubscribe"
	ErrorMessage       WebSocketMessageType = "error"
)

// StandardMessage is the websocket wire format shared by server pushes and
// client-originated messages.
type StandardMessage struct {
	ID           string                 `json:"id"`
	Type         WebSocketMessageType   `json:"type"`
	Event        string                 `json:"event,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	Payload      map[string]interface{} `json:"payload"`
	ResourceID   string                 `json:"resource_id,omitempty"`
	ResourceType string                 `json:"resource_type,omitempty"`
	// OriginID carries the connection id the mutation came from so the hub
	// can exclude the sender from its own broadcast.
	OriginID string `json:"origin_id,omitempty"`
}

// NewStandardMessage creates a new standard message
func NewStandardMessage(msgType WebSocketMessageType, event string, payload map[string]interface{}) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// WithResource adds resource information to the message
func (m *StandardMessage) WithResource(resourceType string, resourceID string) *StandardMessage {
	m.ResourceType = resourceType
	m.ResourceID = resourceID
	return m
}

// WithOrigin tags the message with the originating connection id
func (m *StandardMessage) WithOrigin(originID string) *StandardMessage {
	m.OriginID = originID
	return m
}
