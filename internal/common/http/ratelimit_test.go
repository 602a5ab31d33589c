package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be within the burst", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("expected the request after the burst to be blocked")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first client should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("a different client should have its own budget")
	}
}

func TestStrictRateLimiter_SubscribeBlocksAfterBurst(t *testing.T) {
	srl := NewStrictRateLimiter()
	handler := srl.MiddlewareForPath("/api/subscribe")(okHandler())

	var lastCode int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(`{"email":"a@example.com"}`))
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429 after exhausting the budget, got %d", lastCode)
	}
}

func TestStrictRateLimiter_ReadsUseGeneralBudget(t *testing.T) {
	srl := NewStrictRateLimiter()
	handler := srl.MiddlewareForPath("/api/stories")(okHandler())

	// The submit budget allows only a couple of requests; reads should
	// ride the much larger general budget.
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("read %d blocked with status %d", i+1, rec.Code)
		}
	}
}
