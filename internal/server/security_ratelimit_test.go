package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/bets/", nil)
	req.RemoteAddr = "192.168.1.100:1234"

	for i := 0; i < rateLimitPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d under the limit got status %d", i, rec.Code)
		}
	}

	// One past the budget must be rejected
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 once over the limit, got %d", rec.Code)
	}
}

func TestSecurityLoggingMiddleware_SeparateBudgetsPerIP(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	blocked := httptest.NewRequest("GET", "/api/v1/bets/", nil)
	blocked.RemoteAddr = "10.0.0.1:5000"
	for i := 0; i <= rateLimitPerWindow; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), blocked)
	}

	other := httptest.NewRequest("GET", "/api/v1/bets/", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, other)

	if rec.Code != http.StatusOK {
		t.Errorf("second IP should not share the first IP's budget, got status %d", rec.Code)
	}
}
