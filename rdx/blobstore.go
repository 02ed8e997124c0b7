package rdx

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"broilers/models"
)

const (
	OrdersKey  = "broilers:orders"
	ContentKey = "broilers:content"
)

// BlobStore keeps all orders as one JSON array and the site content as
// one JSON object, each under a fixed key. Writes to the orders blob are
// read-modify-write cycles serialised within this process.
type BlobStore struct {
	kv KV
	mu sync.Mutex
}

func NewBlobStore(kv KV) *BlobStore {
	return &BlobStore{kv: kv}
}

// loadOrders treats a malformed blob as an empty collection.
func (b *BlobStore) loadOrders(ctx context.Context) ([]models.Order, error) {
	raw, ok, err := b.kv.Get(ctx, OrdersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", OrdersKey, err)
	}
	if !ok || raw == "" {
		return []models.Order{}, nil
	}

	var list []models.Order
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Printf("rdx: %s is malformed, treating as empty: %v", OrdersKey, err)
		return []models.Order{}, nil
	}
	return list, nil
}

func (b *BlobStore) saveOrders(ctx context.Context, list []models.Order) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}
	if err := b.kv.Set(ctx, OrdersKey, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", OrdersKey, err)
	}
	return nil
}

func (b *BlobStore) Insert(ctx context.Context, o *models.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, err := b.loadOrders(ctx)
	if err != nil {
		return err
	}
	for _, existing := range list {
		if existing.ID == o.ID {
			return fmt.Errorf("order %s already exists", o.ID)
		}
	}
	return b.saveOrders(ctx, append(list, *o))
}

func (b *BlobStore) List(ctx context.Context) ([]models.Order, error) {
	return b.loadOrders(ctx)
}

func (b *BlobStore) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	list, err := b.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := list[:0]
	for _, o := range list {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (b *BlobStore) Get(ctx context.Context, id string) (*models.Order, error) {
	list, err := b.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (b *BlobStore) CompareAndSetStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, err := b.loadOrders(ctx)
	if err != nil {
		return false, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].Status != from {
			return false, nil
		}
		list[i].Status = to
		list[i].UpdatedAt = at
		return true, b.saveOrders(ctx, list)
	}
	return false, nil
}

func (b *BlobStore) Delete(ctx context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, err := b.loadOrders(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]models.Order, 0, len(list))
	for _, o := range list {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	return true, b.saveOrders(ctx, kept)
}

func (b *BlobStore) RenameStatus(ctx context.Context, from, to models.OrderStatus) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, err := b.loadOrders(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for i := range list {
		if list[i].Status == from {
			list[i].Status = to
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, b.saveOrders(ctx, list)
}

func (b *BlobStore) Ping(ctx context.Context) error {
	return b.kv.Ping(ctx)
}

// Load returns nil, nil when no content has been stored. A malformed blob
// is an error so the content service can fall back.
func (b *BlobStore) Load(ctx context.Context) (*models.EditableContent, error) {
	raw, ok, err := b.kv.Get(ctx, ContentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ContentKey, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var c models.EditableContent
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", ContentKey, err)
	}
	return &c, nil
}

func (b *BlobStore) Save(ctx context.Context, c *models.EditableContent) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode site content: %w", err)
	}
	if err := b.kv.Set(ctx, ContentKey, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", ContentKey, err)
	}
	return nil
}
