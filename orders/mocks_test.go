package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"broilers/models"
)

type memRepo struct {
	mu      sync.Mutex
	orders  map[string]models.Order
	failAll error
	// casMiss makes the next n CompareAndSetStatus calls lose their race.
	casMiss int
}

func newMemRepo(seed ...models.Order) *memRepo {
	r := &memRepo{orders: map[string]models.Order{}}
	for _, o := range seed {
		r.orders[o.ID] = o
	}
	return r
}

func (r *memRepo) Insert(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	if _, dup := r.orders[o.ID]; dup {
		return errors.New("duplicate id")
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *memRepo) List(context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	var out []models.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *memRepo) ListByStatus(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	var out []models.Order
	for _, o := range r.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memRepo) CompareAndSetStatus(_ context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return false, r.failAll
	}
	if r.casMiss > 0 {
		r.casMiss--
		return false, nil
	}
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = at
	r.orders[id] = o
	return true, nil
}

func (r *memRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return false, r.failAll
	}
	_, ok := r.orders[id]
	delete(r.orders, id)
	return ok, nil
}

func (r *memRepo) RenameStatus(_ context.Context, from, to models.OrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, o := range r.orders {
		if o.Status == from {
			o.Status = to
			r.orders[id] = o
			n++
		}
	}
	return n, nil
}

func (r *memRepo) Ping(context.Context) error { return r.failAll }

func (r *memRepo) status(id string) models.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id].Status
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type recordingSink struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (s *recordingSink) PublishOrderEvent(_ context.Context, ev models.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) ofType(typ string) []models.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OrderEvent
	for _, ev := range s.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

type staticContacts string

func (c staticContacts) WhatsAppNumber(context.Context) string { return string(c) }

var errTest = errors.New("store unavailable")
