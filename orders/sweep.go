package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"broilers/models"
)

// DefaultExpiry is how long an order may stay Pending before the sweep
// cancels it.
const DefaultExpiry = 18 * time.Hour

type SweepResult struct {
	Checked   int
	Cancelled []models.Order
}

// Sweeper cancels Pending orders older than the expiry threshold and
// emits one notification per order it cancels.
type Sweeper struct {
	svc    *Service
	expiry time.Duration
}

func NewSweeper(svc *Service, expiry time.Duration) *Sweeper {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Sweeper{svc: svc, expiry: expiry}
}

// Sweep runs one pass. Each cancellation is a conditional write from
// Pending, so an order cancelled by a concurrent sweep or moved on by an
// operator is skipped and never notified twice.
func (sw *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	pending, err := sw.svc.repo.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		return res, fmt.Errorf("cannot list pending orders: %w", err)
	}

	now := sw.svc.now()
	var firstErr error
	for _, o := range pending {
		res.Checked++
		if now.Sub(o.CreatedAt) <= sw.expiry {
			continue
		}

		ok, err := sw.svc.repo.CompareAndSetStatus(ctx, o.ID, models.StatusPending, models.StatusCancelled, now)
		if err != nil {
			log.Printf("sweep: cannot cancel order %s: %v", o.ID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("cannot cancel order %s: %w", o.ID, err)
			}
			continue
		}
		if !ok {
			continue
		}

		o.Status = models.StatusCancelled
		o.UpdatedAt = now
		res.Cancelled = append(res.Cancelled, o)

		expired := o
		sw.svc.events.PublishOrderEvent(ctx, models.OrderEvent{
			Type:      models.EventOrderExpired,
			OrderID:   o.ID,
			Order:     &expired,
			NotifyURL: sw.svc.messenger.CustomerLink(o, true),
			At:        now,
		})
	}

	if n := len(res.Cancelled); n > 0 {
		log.Printf("sweep: cancelled %d of %d pending orders older than %s", n, res.Checked, sw.expiry)
	}
	return res, firstErr
}

// Run sweeps every interval until ctx is done.
func (sw *Sweeper) Run(ctx context.Context, interval time.Duration) {
	log.Printf("sweep: running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.svc.clock.After(interval):
		}
		if _, err := sw.Sweep(ctx); err != nil {
			log.Printf("sweep: %v", err)
		}
	}
}
