package mq

import (
	"context"
	"encoding/json"
	"log"

	"broilers/models"
)

// OrderEventsTopic is the channel (Redis) or subject (NATS) order events
// are published on.
const OrderEventsTopic = "orders.events"

// Emitter publishes order events to a message bus. Failures are logged
// and never reach the caller.
type Emitter struct {
	pub   Publisher
	topic string
}

func NewEmitter(pub Publisher) *Emitter {
	return &Emitter{pub: pub, topic: OrderEventsTopic}
}

func (e *Emitter) PublishOrderEvent(ctx context.Context, ev models.OrderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] Failed to marshal %s event for %s: %v", ev.Type, ev.OrderID, err)
		return
	}

	if err := e.pub.Publish(ctx, e.topic, data); err != nil {
		log.Printf("[Emit] Failed to publish %s event for %s: %v", ev.Type, ev.OrderID, err)
		return
	}
	log.Printf("[Emit] %s %s published to %q", ev.Type, ev.OrderID, e.topic)
}
