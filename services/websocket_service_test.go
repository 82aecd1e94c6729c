package services

import (
	"encoding/json"
	"testing"

	"taskflow-app/taskflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubClient(ws *WebSocketService, id string, subscriptions ...string) *Client {
	client := &Client{
		ID:            id,
		Hub:           ws,
		Send:          make(chan []byte, 8),
		Subscriptions: map[string]bool{"tasks": true},
	}
	for _, sub := range subscriptions {
		client.Subscriptions[sub] = true
	}
	ws.clients[id] = client
	return client
}

func brokerPayload(t *testing.T, msg *models.StandardMessage) []byte {
	t.Helper()
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return data
}

func TestHandleBrokerMessageFansOutToSubscribers(t *testing.T) {
	ws := NewWebSocketService(nil)
	a := newHubClient(ws, "client-a")
	b := newHubClient(ws, "client-b")

	msg := models.NewStandardMessage(models.EventMessage, "task-updated", map[string]interface{}{
		"id": "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
	}).WithResource("task", "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f")

	ws.handleBrokerMessage(brokerPayload(t, msg))

	assert.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 1)
}

func TestHandleBrokerMessageExcludesOrigin(t *testing.T) {
	ws := NewWebSocketService(nil)
	origin := newHubClient(ws, "client-origin")
	other := newHubClient(ws, "client-other")

	msg := models.NewStandardMessage(models.EventMessage, "task-toggled", map[string]interface{}{
		"id": "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
	}).WithResource("task", "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f").WithOrigin("client-origin")

	ws.handleBrokerMessage(brokerPayload(t, msg))

	assert.Len(t, origin.Send, 0, "the originating connection must not observe its own event")
	assert.Len(t, other.Send, 1)
}

func TestHandleBrokerMessageStripsOriginFromDeliveredFrame(t *testing.T) {
	ws := NewWebSocketService(nil)
	other := newHubClient(ws, "client-other")

	msg := models.NewStandardMessage(models.EventMessage, "task-created", map[string]interface{}{
		"id": "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
	}).WithResource("task", "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f").WithOrigin("client-origin")

	ws.handleBrokerMessage(brokerPayload(t, msg))

	require.Len(t, other.Send, 1)
	var delivered models.StandardMessage
	require.NoError(t, json.Unmarshal(<-other.Send, &delivered))
	assert.Empty(t, delivered.OriginID)
	assert.Equal(t, "task-created", delivered.Event)
}

func TestHandleBrokerMessageStripsOriginFromPayload(t *testing.T) {
	ws := NewWebSocketService(nil)
	origin := newHubClient(ws, "conn-secret-123")
	other := newHubClient(ws, "client-other")

	msg := models.NewStandardMessage(models.EventMessage, "task-updated", map[string]interface{}{
		"id":        "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
		"origin_id": "conn-secret-123",
	}).WithResource("task", "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f")

	ws.handleBrokerMessage(brokerPayload(t, msg))

	assert.Len(t, origin.Send, 0, "a payload-borne origin still identifies the sender")
	require.Len(t, other.Send, 1)

	var delivered models.StandardMessage
	require.NoError(t, json.Unmarshal(<-other.Send, &delivered))
	assert.Empty(t, delivered.OriginID)
	assert.NotContains(t, delivered.Payload, "origin_id", "connection ids must never reach other clients")
}

func TestHandleBrokerMessageRespectsSubscriptions(t *testing.T) {
	ws := NewWebSocketService(nil)

	subscribed := newHubClient(ws, "client-subscribed")
	unsubscribed := newHubClient(ws, "client-unsubscribed")
	delete(unsubscribed.Subscriptions, "tasks")

	scoped := newHubClient(ws, "client-scoped", "task:0b8e415e-42ba-43e3-9a09-6248ea8f2c6f")
	delete(scoped.Subscriptions, "tasks")

	msg := models.NewStandardMessage(models.EventMessage, "task-updated", map[string]interface{}{
		"id": "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
	}).WithResource("task", "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f")

	ws.handleBrokerMessage(brokerPayload(t, msg))

	assert.Len(t, subscribed.Send, 1)
	assert.Len(t, unsubscribed.Send, 0)
	assert.Len(t, scoped.Send, 1)
}

func TestHandleBrokerMessageIgnoresMalformedPayload(t *testing.T) {
	ws := NewWebSocketService(nil)
	client := newHubClient(ws, "client-a")

	ws.handleBrokerMessage([]byte("{not json"))

	assert.Len(t, client.Send, 0)
}

func TestSubscribedTo(t *testing.T) {
	client := &Client{Subscriptions: map[string]bool{"tasks": true}}

	assert.True(t, client.subscribedTo("task", "any-id"))
	assert.False(t, client.subscribedTo("user", "any-id"))

	client.Subscriptions["all"] = true
	assert.True(t, client.subscribedTo("user", "any-id"))
}

func TestSubscriptionsConcurrentWithFanOut(t *testing.T) {
	client := &Client{
		ID:            "client-a",
		Send:          make(chan []byte, 256),
		Subscriptions: map[string]bool{"tasks": true},
	}

	subscribe := models.NewStandardMessage(models.SubscribeMessage, "subscribe", map[string]interface{}{
		"resource": "task",
		"id":       "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
	})
	unsubscribe := models.NewStandardMessage(models.UnsubscribeMessage, "unsubscribe", map[string]interface{}{
		"resource": "task",
		"id":       "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f",
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			client.handleSubscribe(*subscribe)
			client.handleUnsubscribe(*unsubscribe)
		}
	}()

	for i := 0; i < 100; i++ {
		client.subscribedTo("task", "0b8e415e-42ba-43e3-9a09-6248ea8f2c6f")
	}
	<-done

	assert.False(t, client.subscribedTo("user", "any-id"))
	assert.True(t, client.subscribedTo("task", "unrelated-id")) // still on the shared stream
}
