package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Terminal reports whether the fulfillment pipeline ends at this status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether the fulfillment pipeline allows moving to the
// given status. The pipeline advances strictly
// Pending -> Paid -> Shipped -> Completed; Cancelled is reachable from any
// non-terminal status. Terminal statuses allow no further transitions.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.Terminal() || s == to {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return to == OrderStatusPaid
	case OrderStatusPaid:
		return to == OrderStatusShipped
	case OrderStatusShipped:
		return to == OrderStatusCompleted
	}
	return false
}

var ErrInvalidTransition = errors.New("invalid status transition")

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusConfirmed PaymentStatus = "Confirmed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusFailed:
		return PaymentStatus(s), true
	}
	return "", false
}

// Payment is the mobile-money sub-record of an order. It tracks the STK push
// confirmation independently of the fulfillment pipeline. Phone, when set, is
// the normalized number the payment prompt was sent to.
type Payment struct {
	Status  PaymentStatus `json:"status"`
	Receipt string        `json:"receipt,omitempty"`
	Phone   string        `json:"phone,omitempty"`
}

// OrderItem is an immutable line-item snapshot taken at checkout. ProductID
// is kept for reference only; the title, price and image never follow later
// catalog edits.
type OrderItem struct {
	ProductID  string `json:"product_id,omitempty"`
	Title      string `json:"title"`
	Quantity   int    `json:"qty"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image,omitempty"`
}

type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"date"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	Status    OrderStatus `json:"status"`
	Payment   *Payment    `json:"payment,omitempty"`
	Items     []OrderItem `json:"items"`
}

// Total is always recomputed from the line items so a stored figure can
// never drift from the snapshot.
func (o Order) Total() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}

// PaymentState reads the payment status; an absent payment sub-record is
// equivalent to Pending.
func (o Order) PaymentState() PaymentStatus {
	if o.Payment == nil {
		return PaymentStatusPending
	}
	return o.Payment.Status
}
