package rdx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"broilers/models"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Ping(context.Context) error { return m.err }

func TestBlobStoreOrders(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore(newMemKV())
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b"} {
		if err := store.Insert(ctx, &models.Order{ID: id, Status: models.StatusPending, CreatedAt: at}); err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}
	if err := store.Insert(ctx, &models.Order{ID: "a"}); err == nil {
		t.Errorf("duplicate insert accepted")
	}

	o, err := store.Get(ctx, "a")
	if err != nil || o == nil || !o.CreatedAt.Equal(at) {
		t.Fatalf("Get = %+v, %v", o, err)
	}
	if o, _ := store.Get(ctx, "zzz"); o != nil {
		t.Errorf("Get unknown = %+v", o)
	}

	ok, err := store.CompareAndSetStatus(ctx, "a", models.StatusPending, models.StatusConfirmed, at)
	if err != nil || !ok {
		t.Fatalf("CAS = %v, %v", ok, err)
	}
	ok, _ = store.CompareAndSetStatus(ctx, "a", models.StatusPending, models.StatusCancelled, at)
	if ok {
		t.Errorf("CAS from stale status succeeded")
	}

	pending, _ := store.ListByStatus(ctx, models.StatusPending)
	if len(pending) != 1 || pending[0].ID != "b" {
		t.Errorf("pending = %+v", pending)
	}

	removed, err := store.Delete(ctx, "b")
	if err != nil || !removed {
		t.Errorf("Delete = %v, %v", removed, err)
	}
	removed, _ = store.Delete(ctx, "b")
	if removed {
		t.Errorf("second delete removed something")
	}

	all, _ := store.List(ctx)
	if len(all) != 1 || all[0].Status != models.StatusConfirmed {
		t.Errorf("list = %+v", all)
	}
}

func TestBlobStoreMalformedOrders(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[OrdersKey] = `{"not":"an array"`
	store := NewBlobStore(kv)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("list = %#v, want empty", list)
	}

	if err := store.Insert(ctx, &models.Order{ID: "fresh"}); err != nil {
		t.Fatalf("Insert after corruption: %v", err)
	}
	if o, _ := store.Get(ctx, "fresh"); o == nil {
		t.Errorf("order written after corruption not readable")
	}
}

func TestBlobStoreRenameStatus(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore(newMemKV())
	store.Insert(ctx, &models.Order{ID: "a", Status: models.LegacyStatusCompleted})
	store.Insert(ctx, &models.Order{ID: "b", Status: models.StatusPending})

	n, err := store.RenameStatus(ctx, models.LegacyStatusCompleted, models.StatusDelivered)
	if err != nil || n != 1 {
		t.Fatalf("RenameStatus = %d, %v", n, err)
	}
	if o, _ := store.Get(ctx, "a"); o.Status != models.StatusDelivered {
		t.Errorf("a status = %q", o.Status)
	}
}

func TestBlobStoreContent(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	store := NewBlobStore(kv)

	if c, err := store.Load(ctx); c != nil || err != nil {
		t.Fatalf("Load empty = %v, %v", c, err)
	}

	def := models.DefaultContent()
	if err := store.Save(ctx, &def); err != nil {
		t.Fatalf("Save: %v", err)
	}
	c, err := store.Load(ctx)
	if err != nil || c == nil || c.HomeHeroHeading != def.HomeHeroHeading {
		t.Fatalf("Load = %v, %v", c, err)
	}

	kv.data[ContentKey] = "{broken"
	if _, err := store.Load(ctx); err == nil {
		t.Errorf("malformed content loaded without error")
	}
}

func TestBlobStoreKVErrors(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.err = errors.New("connection refused")
	store := NewBlobStore(kv)

	if _, err := store.List(ctx); !errors.Is(err, kv.err) {
		t.Errorf("List err = %v", err)
	}
	if err := store.Ping(ctx); err == nil {
		t.Errorf("Ping succeeded with broken kv")
	}
}
