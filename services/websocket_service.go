package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

// WebSocketServiceInterface defines the operations provided by the hub
type WebSocketServiceInterface interface {
	Start(natsURL string)
	Stop()
	HandleConnection(c *gin.Context)
	BroadcastMessage(message []byte)
	SetBrokerChannel(ch <-chan *nats.Msg)
}

// Client represents a connected WebSocket client
type Client struct {
	ID     string
	UserID string
	Hub    *WebSocketService
	Conn   *websocket.Conn
	Send   chan []byte

	// Subscriptions is written by the read pump and read by the hub loop.
	Subscriptions map[string]bool
	subsMutex     sync.RWMutex
}

// WebSocketService is the relay hub: every mutation event reaching it over
// the broker is fanned out to subscribed clients, excluding the connection
// the mutation originated from.
type WebSocketService struct {
	clients      map[string]*Client
	register     chan *Client
	unregister   chan *Client
	broadcast    chan []byte
	clientsMutex sync.RWMutex

	upgrader websocket.Upgrader
	db       *database.Database

	brokerMessages chan *nats.Msg

	isRunning bool
	stopChan  chan struct{}

	consumer *broker.Consumer
	// brokerInput overrides the NATS consumer in tests
	brokerInput <-chan *nats.Msg
}

// NewWebSocketService creates a new hub
func NewWebSocketService(db *database.Database) *WebSocketService {
	return &WebSocketService{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		db: db,

		brokerMessages: make(chan *nats.Msg, 256),

		isRunning: false,
		stopChan:  make(chan struct{}),
	}
}

// SetBrokerChannel allows feeding broker messages directly - useful for testing
func (ws *WebSocketService) SetBrokerChannel(ch <-chan *nats.Msg) {
	ws.brokerInput = ch
}

// BroadcastMessage sends a raw message to all connected clients
func (ws *WebSocketService) BroadcastMessage(message []byte) {
	ws.broadcast <- message
}

// Start begins the hub loop and connects the broker consumer.
func (ws *WebSocketService) Start(natsURL string) {
	if ws.isRunning {
		return
	}
	ws.isRunning = true

	go ws.run()

	if ws.brokerInput != nil {
		go ws.forwardBrokerMessages(ws.brokerInput)
		return
	}

	consumer, err := broker.InitConsumer(natsURL, []string{broker.TaskSubject, broker.UserSubject}, "websocket-hub")
	if err != nil {
		log.Printf("Failed to initialize broker consumer: %v", err)
		log.Println("WebSocket service will run without real-time events")
		return
	}
	ws.consumer = consumer
	go ws.forwardBrokerMessages(consumer.GetMessageChannel())
}

func (ws *WebSocketService) forwardBrokerMessages(ch <-chan *nats.Msg) {
	for msg := range ch {
		if !ws.isRunning {
			return
		}
		select {
		case ws.brokerMessages <- msg:
		default:
			log.Println("Warning: broker message channel is full, discarding message")
		}
	}
}

// Stop gracefully shuts down the hub
func (ws *WebSocketService) Stop() {
	if !ws.isRunning {
		return
	}
	ws.isRunning = false
	close(ws.stopChan)

	if ws.consumer != nil {
		ws.consumer.Close()
	}

	ws.clientsMutex.Lock()
	for _, client := range ws.clients {
		if client != nil && client.Conn != nil {
			client.Conn.Close()
		}
	}
	ws.clientsMutex.Unlock()

	log.Println("WebSocket service stopped")
}

func (ws *WebSocketService) run() {
	for {
		select {
		case <-ws.stopChan:
			return

		case client := <-ws.register:
			ws.clientsMutex.Lock()
			ws.clients[client.ID] = client
			ws.clientsMutex.Unlock()
			log.Printf("Client connected: %s (user: %s)", client.ID, client.UserID)

		case client := <-ws.unregister:
			ws.clientsMutex.Lock()
			if _, ok := ws.clients[client.ID]; ok {
				delete(ws.clients, client.ID)
				close(client.Send)
				log.Printf("Client disconnected: %s", client.ID)
			}
			ws.clientsMutex.Unlock()

		case message := <-ws.broadcast:
			ws.clientsMutex.Lock()
			for id, client := range ws.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(ws.clients, id)
				}
			}
			ws.clientsMutex.Unlock()

		case msg := <-ws.brokerMessages:
			ws.handleBrokerMessage(msg.Data)
		}
	}
}

// HandleConnection upgrades an authenticated HTTP request to a WebSocket
// and subscribes the new client to the shared task stream.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	userID := ""
	if userIDValue, exists := c.Get("userID"); exists {
		if id, ok := userIDValue.(uuid.UUID); ok {
			userID = id.String()
		}
	}

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Hub:    ws,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		// every connection receives the shared task stream
		Subscriptions: map[string]bool{"tasks": true},
	}

	ws.register <- client

	go client.readPump()
	go client.writePump()

	// Tell the client its connection id so REST calls can carry it for
	// origin exclusion.
	welcome := models.NewStandardMessage(models.EventMessage, "connected", map[string]interface{}{
		"client_id": client.ID,
	})
	if jsonData, err := json.Marshal(welcome); err == nil {
		client.Send <- jsonData
	}
}

// handleBrokerMessage fans a broker event out to subscribed clients,
// skipping the connection the event originated from.
func (ws *WebSocketService) handleBrokerMessage(data []byte) {
	var message models.StandardMessage
	if err := json.Unmarshal(data, &message); err != nil {
		log.Printf("Error parsing broker message: %v", err)
		return
	}

	// The origin id travels on the broker only; clients never see it.
	originID := message.OriginID
	message.OriginID = ""
	if originID == "" {
		originID = stringField(message.Payload, "origin_id")
	}
	delete(message.Payload, "origin_id")

	jsonData, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error serializing broker message: %v", err)
		return
	}

	resourceID := message.ResourceID
	if resourceID == "" {
		resourceID = stringField(message.Payload, "id")
	}

	ws.clientsMutex.Lock()
	for id, client := range ws.clients {
		if id == originID {
			continue
		}
		if !client.subscribedTo(message.ResourceType, resourceID) {
			continue
		}
		select {
		case client.Send <- jsonData:
		default:
			log.Printf("Client %s send buffer full, removing client", id)
			close(client.Send)
			delete(ws.clients, id)
		}
	}
	ws.clientsMutex.Unlock()
}

// subscribedTo checks a client's subscriptions for the entity stream, the
// plural collection or the specific resource.
func (c *Client) subscribedTo(resourceType, resourceID string) bool {
	c.subsMutex.RLock()
	defer c.subsMutex.RUnlock()

	if c.Subscriptions["all"] {
		return true
	}
	if resourceType == "" {
		return false
	}
	if c.Subscriptions[resourceType] || c.Subscriptions[resourceType+"s"] {
		return true
	}
	return resourceID != "" && c.Subscriptions[resourceType+":"+resourceID]
}

// readPump handles incoming messages from the WebSocket client
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(64 * 1024)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading from WebSocket: %v", err)
			}
			break
		}
		c.processMessage(message)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) processMessage(msg []byte) {
	var clientMsg models.StandardMessage
	if err := json.Unmarshal(msg, &clientMsg); err != nil {
		log.Printf("Error parsing client message: %v", err)
		return
	}

	switch clientMsg.Type {
	case models.SubscribeMessage:
		c.handleSubscribe(clientMsg)
	case models.UnsubscribeMessage:
		c.handleUnsubscribe(clientMsg)
	case models.EventMessage:
		c.handleClientEvent(clientMsg)
	default:
		if clientMsg.Event == "ping" {
			return
		}
		log.Printf("Unknown message type: %s", clientMsg.Type)
	}
}

func (c *Client) handleSubscribe(msg models.StandardMessage) {
	key := subscriptionKey(msg)
	if key == "" {
		return
	}
	c.subsMutex.Lock()
	if c.Subscriptions[key] {
		c.subsMutex.Unlock()
		return
	}
	c.Subscriptions[key] = true
	c.subsMutex.Unlock()

	confirmation := models.NewStandardMessage(models.SubscribeMessage, "confirmed", map[string]interface{}{
		"resource": key,
	})
	if jsonData, err := json.Marshal(confirmation); err == nil {
		c.Send <- jsonData
	}
}

func (c *Client) handleUnsubscribe(msg models.StandardMessage) {
	key := subscriptionKey(msg)
	if key == "" {
		return
	}
	c.subsMutex.Lock()
	delete(c.Subscriptions, key)
	c.subsMutex.Unlock()
}

func subscriptionKey(msg models.StandardMessage) string {
	resource := stringField(msg.Payload, "resource")
	if resource == "" {
		return ""
	}
	if id := stringField(msg.Payload, "id"); id != "" {
		return resource + ":" + id
	}
	return resource
}

// handleClientEvent routes a client-originated task event through the task
// service. Events are never rebroadcast as received: the mutation is
// validated and persisted first, and the resulting store state is what
// other clients see.
func (c *Client) handleClientEvent(msg models.StandardMessage) {
	if c.Hub.db == nil {
		log.Println("Cannot process client event: database connection is nil")
		return
	}

	var err error
	switch broker.EventType(msg.Event) {
	case broker.TaskCreated:
		err = c.applyClientCreate(msg)
	case broker.TaskUpdated:
		err = c.applyClientUpdate(msg)
	case broker.TaskToggled:
		_, err = TaskServiceInstance.ToggleTask(c.Hub.db, stringField(msg.Payload, "id"), c.ID)
	case broker.TaskDeleted:
		err = TaskServiceInstance.DeleteTask(c.Hub.db, stringField(msg.Payload, "id"), c.ID)
	default:
		log.Printf("Ignoring unknown client event: %s", msg.Event)
		return
	}

	if err != nil {
		c.sendError("Failed to apply " + msg.Event + ": " + err.Error())
	}
}

func (c *Client) applyClientCreate(msg models.StandardMessage) error {
	taskData, ok := msg.Payload["task"].(map[string]interface{})
	if !ok {
		return ErrInvalidInput
	}

	raw, err := json.Marshal(taskData)
	if err != nil {
		return err
	}
	var task models.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return ErrInvalidInput
	}

	_, err = TaskServiceInstance.CreateTask(c.Hub.db, task, c.ID)
	return err
}

func (c *Client) applyClientUpdate(msg models.StandardMessage) error {
	id := stringField(msg.Payload, "id")
	taskData, ok := msg.Payload["task"].(map[string]interface{})
	if !ok || id == "" {
		return ErrInvalidInput
	}

	_, err := TaskServiceInstance.UpdateTask(c.Hub.db, id, taskData, c.ID)
	return err
}

func (c *Client) sendError(message string) {
	errorMsg := models.NewStandardMessage(models.ErrorMessage, "error", map[string]interface{}{
		"message": message,
	})
	if jsonData, err := json.Marshal(errorMsg); err == nil {
		c.Send <- jsonData
	}
}

// Global instance
var WebSocketServiceInstance WebSocketServiceInterface
