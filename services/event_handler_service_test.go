package services

import (
	"encoding/json"
	"testing"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxMessageMovesOriginToEnvelope(t *testing.T) {
	event, err := newTaskEvent(broker.TaskUpdated, map[string]interface{}{
		"id":   "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
		"task": map[string]interface{}{"title": "Write report"},
	}, "conn-secret-123")
	require.NoError(t, err)

	frame, err := outboxMessage(*event)
	require.NoError(t, err)

	var message models.StandardMessage
	require.NoError(t, json.Unmarshal(frame, &message))

	assert.Equal(t, "conn-secret-123", message.OriginID)
	assert.Equal(t, "task", message.ResourceType)
	assert.Equal(t, "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f", message.ResourceID)
	assert.NotContains(t, message.Payload, "origin_id")
}

func TestOutboxMessageWithoutOrigin(t *testing.T) {
	event, err := newTaskEvent(broker.TaskDeleted, map[string]interface{}{
		"id": "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
	}, "")
	require.NoError(t, err)

	frame, err := outboxMessage(*event)
	require.NoError(t, err)

	var message models.StandardMessage
	require.NoError(t, json.Unmarshal(frame, &message))

	assert.Empty(t, message.OriginID)
	assert.NotContains(t, message.Payload, "origin_id")
}
