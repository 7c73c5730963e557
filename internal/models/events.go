package models

import "time"

// Event types published to the order event stream.
const (
	EventTypeOrderPlaced       = "ORDER_PLACED"
	EventTypeOrderStateChanged = "ORDER_STATE_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent published after an order has been committed
type OrderPlacedEvent struct {
	BaseEvent
	OrderID int64           `json:"order_id"`
	UserID  int64           `json:"user_id"`
	Total   int64           `json:"total"`
	Items   []OrderItemData `json:"items"`
}

// OrderStateChangedEvent published after staff moved an order to a new state
type OrderStateChangedEvent struct {
	BaseEvent
	OrderID   int64  `json:"order_id"`
	UserID    int64  `json:"user_id"`
	StateID   int64  `json:"state_id"`
	StateDesc string `json:"state_desc"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID *int64 `json:"product_id,omitempty"`
	ComboID   *int64 `json:"combo_id,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}
