package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events. Publishing is always
// best-effort from the caller's point of view: a failed publish never rolls
// back the request that triggered it.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderPlaced publishes OrderPlaced event
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderStateChanged publishes OrderStateChanged event
func (ep *EventPublisher) PublishOrderStateChanged(ctx context.Context, event *models.OrderStateChangedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming order events to registered callbacks.
type EventHandler struct {
	onOrderPlaced       func(context.Context, *models.OrderPlacedEvent) error
	onOrderStateChanged func(context.Context, *models.OrderStateChangedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderPlaced registers a handler for OrderPlaced events
func (eh *EventHandler) OnOrderPlaced(handler func(context.Context, *models.OrderPlacedEvent) error) {
	eh.onOrderPlaced = handler
}

// OnOrderStateChanged registers a handler for OrderStateChanged events
func (eh *EventHandler) OnOrderStateChanged(handler func(context.Context, *models.OrderStateChangedEvent) error) {
	eh.onOrderStateChanged = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderPlaced:
		if eh.onOrderPlaced != nil {
			var event models.OrderPlacedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderPlaced event: %w", err)
			}
			return eh.onOrderPlaced(ctx, &event)
		}

	case models.EventTypeOrderStateChanged:
		if eh.onOrderStateChanged != nil {
			var event models.OrderStateChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderStateChanged event: %w", err)
			}
			return eh.onOrderStateChanged(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
