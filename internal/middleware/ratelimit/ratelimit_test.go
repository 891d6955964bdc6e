package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 3})
	defer rl.Stop()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.1.1.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.1.1.1") {
		t.Error("4th request within a minute should be rejected")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("other clients are limited independently")
	}

	clock = clock.Add(61 * time.Second)
	if !rl.Allow("1.1.1.1") {
		t.Error("a new window should allow requests again")
	}

	m := rl.GetMetrics()
	if m.TotalHits != 1 || m.ClientCount != 2 {
		t.Errorf("GetMetrics() = %+v, want 1 hit and 2 clients", m)
	}
}

func TestLimiter_SteadyTrafficStillLimited(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 2})
	defer rl.Stop()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	allowed := 0
	for i := 0; i < 6; i++ {
		if rl.Allow("ip") {
			allowed++
		}
		clock = clock.Add(5 * time.Second)
	}
	if allowed != 2 {
		t.Errorf("allowed = %d, want 2 within one window", allowed)
	}
}

func TestLimiter_CleanupStaleEntries(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 10})
	defer rl.Stop()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }
	rl.Allow("old")
	clock = clock.Add(11 * time.Minute)
	rl.Allow("new")

	rl.cleanupStaleEntries()
	if got := rl.ActiveClients(); got != 1 {
		t.Errorf("ActiveClients() = %d, want 1", got)
	}
}

func TestLimiter_Middleware(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 1})
	defer rl.Stop()

	h := rl.Middleware(func(*http.Request) string { return "ip" }, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }))

	codes := []int{}
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [204 429]", codes)
	}
}
