package models

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"

	// LegacyStatusCompleted was written by the first admin panel. It is
	// migrated to StatusDelivered on startup and never accepted as input.
	LegacyStatusCompleted OrderStatus = "Completed"
)

// NotSpecified fills optional free-text order fields left blank.
const NotSpecified = "Not specified"

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusDelivered, StatusCancelled},
	StatusConfirmed: {StatusDelivered, StatusCancelled},
}

// Valid reports whether s is one of the canonical statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses never change again.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order in status s may move to next.
// Re-applying the current status is allowed and treated as a no-op by callers.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer's request for a quantity of hens.
type Order struct {
	ID                  string      `json:"id" bson:"_id"`
	CustomerName        string      `json:"customerName" bson:"customerName"`
	WhatsApp            string      `json:"whatsapp" bson:"whatsapp"`
	HensCount           int         `json:"hensCount" bson:"hensCount"`
	DeliveryTime        string      `json:"deliveryTime" bson:"deliveryTime"`
	Address             string      `json:"address" bson:"address"`
	SpecialInstructions string      `json:"specialInstructions" bson:"specialInstructions"`
	Status              OrderStatus `json:"status" bson:"status"`
	CreatedAt           time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// PublicOrder is what anyone holding an order id may see: enough for the
// confirmation page, without the customer's address or full number.
type PublicOrder struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	WhatsApp     string      `json:"whatsapp"`
	HensCount    int         `json:"hensCount"`
	DeliveryTime string      `json:"deliveryTime"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Public masks all but the last four digits of the WhatsApp number.
func (o Order) Public() PublicOrder {
	return PublicOrder{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		WhatsApp:     maskDigits(o.WhatsApp, 4),
		HensCount:    o.HensCount,
		DeliveryTime: o.DeliveryTime,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func maskDigits(s string, keep int) string {
	if len(s) <= keep {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-keep) + s[len(s)-keep:]
}

// OrderForm is the raw public order form. Every field is kept as text so
// that validation can report all problems at once.
type OrderForm struct {
	CustomerName        string
	HensCount           string
	WhatsApp            string
	DeliveryTime        string
	Address             string
	SpecialInstructions string
}

// Order events published to the bus and the live feed.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderExpired       = "order.expired"
	EventOrderDeleted       = "order.deleted"
)

type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"orderId"`
	Order     *Order    `json:"order,omitempty"`
	NotifyURL string    `json:"notifyUrl,omitempty"`
	At        time.Time `json:"at"`
}

// PublicEvent is an OrderEvent as sent to a customer's own feed.
type PublicEvent struct {
	Type    string       `json:"type"`
	OrderID string       `json:"orderId"`
	Order   *PublicOrder `json:"order,omitempty"`
	At      time.Time    `json:"at"`
}

func (ev OrderEvent) Public() PublicEvent {
	pub := PublicEvent{Type: ev.Type, OrderID: ev.OrderID, At: ev.At}
	if ev.Order != nil {
		o := ev.Order.Public()
		pub.Order = &o
	}
	return pub
}
