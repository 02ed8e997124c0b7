package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

func TestLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h(rr, req, nil)
		return rr.Code
	}

	// Different source ports share the bucket of their IP.
	if got := call("10.0.0.1:1111"); got != http.StatusOK {
		t.Fatalf("first = %d", got)
	}
	if got := call("10.0.0.1:2222"); got != http.StatusOK {
		t.Fatalf("second = %d", got)
	}
	if got := call("10.0.0.1:3333"); got != http.StatusTooManyRequests {
		t.Fatalf("third = %d, want 429", got)
	}
	if got := call("10.0.0.2:1111"); got != http.StatusOK {
		t.Fatalf("other ip = %d", got)
	}
}

func TestIdleVisitorsForgotten(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	rl.getLimiter("b")
	now = now.Add(idleTTL + time.Minute)
	rl.getLimiter("b")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["a"]; ok {
		t.Errorf("idle visitor kept")
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Errorf("active visitor dropped")
	}
}
