package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"broilers/models"
)

func TestSweepCancelsOnlyExpiredPending(t *testing.T) {
	repo := newMemRepo(
		models.Order{ID: "old", CustomerName: "Ravi", WhatsApp: "919876543210", HensCount: 10, Status: models.StatusPending, CreatedAt: epoch.Add(-19 * time.Hour)},
		models.Order{ID: "fresh", Status: models.StatusPending, CreatedAt: epoch.Add(-17 * time.Hour)},
		models.Order{ID: "edge", Status: models.StatusPending, CreatedAt: epoch.Add(-18 * time.Hour)},
		models.Order{ID: "confirmed", Status: models.StatusConfirmed, CreatedAt: epoch.Add(-40 * time.Hour)},
	)
	svc, sink, _ := newTestService(repo)
	sw := NewSweeper(svc, DefaultExpiry)

	res, err := sw.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if res.Checked != 3 {
		t.Errorf("checked = %d, want 3", res.Checked)
	}
	if len(res.Cancelled) != 1 || res.Cancelled[0].ID != "old" {
		t.Fatalf("cancelled = %+v, want only old", res.Cancelled)
	}

	want := map[string]models.OrderStatus{
		"old":       models.StatusCancelled,
		"fresh":     models.StatusPending,
		"edge":      models.StatusPending,
		"confirmed": models.StatusConfirmed,
	}
	for id, status := range want {
		if got := repo.status(id); got != status {
			t.Errorf("%s status = %q, want %q", id, got, status)
		}
	}

	expired := sink.ofType(models.EventOrderExpired)
	if len(expired) != 1 {
		t.Fatalf("expired events = %d, want 1", len(expired))
	}
	if !strings.HasPrefix(expired[0].NotifyURL, "https://wa.me/919876543210?text=") {
		t.Errorf("notify url = %q", expired[0].NotifyURL)
	}
	if !strings.Contains(expired[0].NotifyURL, "18%20hours") {
		t.Errorf("notify url does not mention the expiry: %q", expired[0].NotifyURL)
	}
}

func TestSweepNotifiesOnce(t *testing.T) {
	repo := newMemRepo(models.Order{ID: "old", Status: models.StatusPending, CreatedAt: epoch.Add(-20 * time.Hour)})
	svc, sink, clk := newTestService(repo)
	sw := NewSweeper(svc, DefaultExpiry)

	for i := 0; i < 3; i++ {
		if _, err := sw.Sweep(context.Background()); err != nil {
			t.Fatalf("Sweep #%d: %v", i, err)
		}
		clk.Advance(time.Hour)
	}

	if got := sink.ofType(models.EventOrderExpired); len(got) != 1 {
		t.Errorf("expired events = %d, want 1", len(got))
	}
}

func TestSweepSkipsOrderThatMovedOn(t *testing.T) {
	repo := newMemRepo(models.Order{ID: "old", Status: models.StatusPending, CreatedAt: epoch.Add(-20 * time.Hour)})
	repo.casMiss = 1
	svc, sink, _ := newTestService(repo)

	res, err := NewSweeper(svc, DefaultExpiry).Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(res.Cancelled) != 0 || len(sink.events) != 0 {
		t.Errorf("lost race still notified: %+v", sink.events)
	}
}

func TestSweepAfterClockAdvance(t *testing.T) {
	repo := newMemRepo()
	svc, sink, clk := newTestService(repo)
	sw := NewSweeper(svc, DefaultExpiry)

	o, err := svc.Submit(context.Background(), raviForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	clk.Advance(17 * time.Hour)
	sw.Sweep(context.Background())
	if repo.status(o.ID) != models.StatusPending {
		t.Fatalf("cancelled after 17h")
	}

	clk.Advance(time.Hour + time.Minute)
	sw.Sweep(context.Background())
	if repo.status(o.ID) != models.StatusCancelled {
		t.Fatalf("still %q after 18h01m", repo.status(o.ID))
	}
	if got := sink.ofType(models.EventOrderExpired); len(got) != 1 {
		t.Errorf("expired events = %d, want 1", len(got))
	}
}

func TestSweeperRun(t *testing.T) {
	repo := newMemRepo(models.Order{ID: "old", Status: models.StatusPending, CreatedAt: epoch.Add(-20 * time.Hour)})
	svc, _, clk := newTestService(repo)
	sw := NewSweeper(svc, DefaultExpiry)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx, time.Minute)
		close(done)
	}()

	if err := clk.WaitAdvance(time.Minute, time.Second, 1); err != nil {
		t.Fatalf("WaitAdvance: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for repo.status("old") != models.StatusCancelled {
		select {
		case <-deadline:
			t.Fatalf("periodic sweep did not cancel the order")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
