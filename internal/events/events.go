package events

import (
	"time"

	"github.com/alex-njugi/talex-app/internal/domain"
)

type OrderCreatedEvent struct {
	EventID    string             `json:"event_id"`
	OrderID    string             `json:"order_id"`
	TotalCents int64              `json:"total_cents"`
	Items      []domain.OrderItem `json:"items"`
	Status     string             `json:"status"`
	Timestamp  time.Time          `json:"timestamp"`
	RequestID  string             `json:"request_id"`
}

type OrderStatusChangedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Forced    bool      `json:"forced,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type PaymentUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Receipt   string    `json:"receipt,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
