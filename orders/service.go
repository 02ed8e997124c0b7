package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"broilers/models"
	"broilers/utils"

	"github.com/juju/clock"
)

var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// casAttempts bounds how often UpdateStatus re-reads an order that changed
// under it between the read and the conditional write.
const casAttempts = 3

type Options struct {
	CountryCode string
	Messenger   Messenger
	Clock       clock.Clock
	Events      EventSink
}

// Service owns the order lifecycle: submission, lookup, status changes
// and removal.
type Service struct {
	repo        Repository
	events      EventSink
	clock       clock.Clock
	countryCode string
	messenger   Messenger
}

func NewService(repo Repository, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}
	if opts.Events == nil {
		opts.Events = noopSink{}
	}
	return &Service{
		repo:        repo,
		events:      opts.Events,
		clock:       opts.Clock,
		countryCode: opts.CountryCode,
		messenger:   opts.Messenger,
	}
}

// Start migrates orders stored with the legacy "Completed" status.
func (s *Service) Start(ctx context.Context) error {
	n, err := s.repo.RenameStatus(ctx, models.LegacyStatusCompleted, models.StatusDelivered)
	if err != nil {
		return fmt.Errorf("cannot migrate legacy order statuses: %w", err)
	}
	if n > 0 {
		log.Printf("orders: migrated %d orders from %q to %q", n, models.LegacyStatusCompleted, models.StatusDelivered)
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Submit validates the form and stores a new Pending order. Validation
// failures are returned as FieldErrors and nothing is written.
func (s *Service) Submit(ctx context.Context, form models.OrderForm) (*models.Order, error) {
	if errs := ValidateOrder(form, s.countryCode); errs != nil {
		return nil, errs
	}

	local, _ := LocalNumber(form.WhatsApp, s.countryCode)
	hens, _ := strconv.Atoi(strings.TrimSpace(form.HensCount))
	now := s.now()

	o := &models.Order{
		ID:                  NewOrderID(now),
		CustomerName:        strings.TrimSpace(form.CustomerName),
		WhatsApp:            s.countryCode + local,
		HensCount:           hens,
		DeliveryTime:        orNotSpecified(form.DeliveryTime),
		Address:             orNotSpecified(form.Address),
		SpecialInstructions: orNotSpecified(form.SpecialInstructions),
		Status:              models.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("cannot save order: %w", err)
	}

	s.events.PublishOrderEvent(ctx, models.OrderEvent{
		Type:    models.EventOrderCreated,
		OrderID: o.ID,
		Order:   o,
		At:      now,
	})
	return o, nil
}

// List returns every order, newest first.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	if list == nil {
		list = []models.Order{}
	}
	SortNewestFirst(list)
	return list, nil
}

// Get returns nil, nil when the order does not exist.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot load order %s: %w", id, err)
	}
	return o, nil
}

// UpdateStatus moves an order to status next. It returns nil, nil for an
// unknown id. Setting the current status again returns the order as is.
func (s *Service) UpdateStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		cur, err := s.Get(ctx, id)
		if err != nil || cur == nil {
			return nil, err
		}
		if cur.Status == next {
			return cur, nil
		}
		if !cur.Status.CanTransition(next) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, next)
		}

		now := s.now()
		ok, err := s.repo.CompareAndSetStatus(ctx, id, cur.Status, next, now)
		if err != nil {
			return nil, fmt.Errorf("cannot update order %s: %w", id, err)
		}
		if !ok {
			continue
		}

		cur.Status = next
		cur.UpdatedAt = now
		s.events.PublishOrderEvent(ctx, models.OrderEvent{
			Type:      models.EventOrderStatusChanged,
			OrderID:   cur.ID,
			Order:     cur,
			NotifyURL: s.messenger.CustomerLink(*cur, false),
			At:        now,
		})
		return cur, nil
	}

	return nil, fmt.Errorf("%w: order %s kept changing", ErrInvalidTransition, id)
}

// Delete removes the order for good. Unknown ids are not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("cannot delete order %s: %w", id, err)
	}
	if removed {
		s.events.PublishOrderEvent(ctx, models.OrderEvent{
			Type:    models.EventOrderDeleted,
			OrderID: id,
			At:      s.now(),
		})
	}
	return nil
}

// NotifyLink returns the WhatsApp link an operator follows to tell the
// customer about the order's status. Empty for unknown orders.
func (s *Service) NotifyLink(ctx context.Context, id string) (string, error) {
	o, err := s.Get(ctx, id)
	if err != nil || o == nil {
		return "", err
	}
	return s.messenger.CustomerLink(*o, false), nil
}

func (s *Service) Messenger() Messenger {
	return s.messenger
}

// now is truncated to milliseconds, the precision every backend keeps.
func (s *Service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

// NewOrderID combines the creation time with a random suffix.
func NewOrderID(at time.Time) string {
	return fmt.Sprintf("ORDER-%d-%s", at.UnixMilli(), utils.ShortID(8))
}

// SortNewestFirst orders by creation time descending, then id descending.
func SortNewestFirst(list []models.Order) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

func orNotSpecified(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return models.NotSpecified
	}
	return v
}
