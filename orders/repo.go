package orders

import (
	"context"
	"time"

	"broilers/models"
)

// Repository persists orders. Get returns nil, nil when the id is unknown
// and Delete reports whether anything was removed.
type Repository interface {
	Insert(ctx context.Context, o *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	// CompareAndSetStatus moves order id from one status to another only if
	// it is still in from. It reports whether the update happened.
	CompareAndSetStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// RenameStatus rewrites every order in status from to status to.
	RenameStatus(ctx context.Context, from, to models.OrderStatus) (int64, error)
	Ping(ctx context.Context) error
}

// EventSink receives order lifecycle events. Implementations must not
// block for long; failures are theirs to log.
type EventSink interface {
	PublishOrderEvent(ctx context.Context, ev models.OrderEvent)
}

type noopSink struct{}

func (noopSink) PublishOrderEvent(context.Context, models.OrderEvent) {}

// Sinks fans an event out to several sinks in order.
type Sinks []EventSink

func (s Sinks) PublishOrderEvent(ctx context.Context, ev models.OrderEvent) {
	for _, sink := range s {
		if sink != nil {
			sink.PublishOrderEvent(ctx, ev)
		}
	}
}
