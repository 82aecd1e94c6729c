package services

import (
	"encoding/json"
	"log"
	"time"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
)

type EventHandlerServiceInterface interface {
	Start()
	Stop()
	ProcessPendingEvents()
}

// EventHandlerService drains the event outbox: rows written alongside a
// mutation are picked up here and published to the broker, so a broadcast
// is never lost to a crash between commit and publish.
type EventHandlerService struct {
	db        *database.Database
	isRunning bool
	ticker    *time.Ticker
}

func NewEventHandlerService(db *database.Database) EventHandlerServiceInterface {
	return &EventHandlerService{
		db:        db,
		isRunning: false,
		ticker:    time.NewTicker(500 * time.Millisecond),
	}
}

func (s *EventHandlerService) Start() {
	if s.isRunning {
		return
	}
	s.isRunning = true
	go s.ProcessPendingEvents()
}

func (s *EventHandlerService) Stop() {
	if !s.isRunning {
		return
	}
	s.isRunning = false
	s.ticker.Stop()
}

func (s *EventHandlerService) ProcessPendingEvents() {
	for range s.ticker.C {
		if !s.isRunning {
			return
		}

		var events []models.Event
		if err := s.db.DB.Where("dispatched = ?", false).Order("timestamp ASC").Find(&events).Error; err != nil {
			log.Printf("Error fetching pending events: %v", err)
			continue
		}

		for _, event := range events {
			if err := s.dispatchEvent(event); err != nil {
				log.Printf("Error dispatching event %s: %v", event.ID, err)
				continue
			}
		}
	}
}

func (s *EventHandlerService) dispatchEvent(event models.Event) error {
	jsonData, err := outboxMessage(event)
	if err != nil {
		return err
	}

	broker.PublishMessage(broker.SubjectFor(broker.EventType(event.Event)), jsonData)

	now := time.Now().UTC()
	return s.db.DB.Model(&event).Updates(map[string]interface{}{
		"dispatched":    true,
		"dispatched_at": now,
		"status":        "dispatched",
	}).Error
}

// outboxMessage builds the broker frame for an outbox row. The stored payload
// carries the originating connection id; it is moved onto the message envelope
// so the hub can exclude the origin without ever delivering the id to clients.
func outboxMessage(event models.Event) ([]byte, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		log.Printf("Warning: could not unmarshal event data for %s: %v", event.ID, err)
		payload = make(map[string]interface{})
	}

	origin := stringField(payload, "origin_id")
	delete(payload, "origin_id")

	message := models.NewStandardMessage(models.EventMessage, event.Event, payload)
	message.WithResource(event.Entity, stringField(payload, "id"))
	message.WithOrigin(origin)

	return json.Marshal(message)
}

func stringField(payload map[string]interface{}, key string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return ""
}

var EventHandlerServiceInstance EventHandlerServiceInterface
