package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Catalog event types published after successful writes.
const (
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
	EventCategoryDeleted = "category.deleted"
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
)

// EventPublisher delivers catalog events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// CatalogEvent is the payload published for every catalog write.
type CatalogEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }

type eventEmitter struct {
	publisher EventPublisher
	log       *slog.Logger
}

func newEventEmitter(publisher EventPublisher, log *slog.Logger) eventEmitter {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return eventEmitter{publisher: publisher, log: log}
}

// emit publishes an event. A failed publish is logged and otherwise ignored
// because the write it describes has already been committed.
func (e eventEmitter) emit(ctx context.Context, eventType, id, name string) {
	body, err := json.Marshal(CatalogEvent{Type: eventType, ID: id, Name: name, OccurredAt: time.Now().UTC()})
	if err != nil {
		e.log.Error("failed to encode catalog event", "type", eventType, "id", id, "error", err)
		return
	}
	if err := e.publisher.Publish(ctx, eventType, body); err != nil {
		e.log.Warn("failed to publish catalog event", "type", eventType, "id", id, "error", err)
	}
}
