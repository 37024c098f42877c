package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowAndPrune(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if rl.Allow("a") {
		t.Error("expected third request to be limited")
	}
	if !rl.Allow("b") {
		t.Error("expected other key to have its own bucket")
	}

	now = now.Add(time.Second)
	if !rl.Allow("a") {
		t.Error("expected token to refill after one second")
	}

	now = now.Add(time.Hour)
	if removed := rl.Prune(time.Minute); removed != 2 {
		t.Errorf("expected 2 idle limiters pruned, got %d", removed)
	}
}

func TestPathRateLimiter_Middleware(t *testing.T) {
	p := NewPathRateLimiter()
	h := p.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	limited := false
	for i := 0; i < 20; i++ {
		if do(http.MethodPost, "/api/prayer-intentions") == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected intention submissions to be rate limited")
	}

	for i := 0; i < 100; i++ {
		if code := do(http.MethodGet, "/api/health"); code != http.StatusOK {
			t.Fatalf("health must never be limited, got %d", code)
		}
	}

	if code := do(http.MethodGet, "/api/prayer-intentions"); code != http.StatusOK {
		t.Errorf("expected listing to use the general limiter, got %d", code)
	}
}
