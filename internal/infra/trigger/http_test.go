package trigger

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTrigger(authToken string, toggle func() bool) *HTTPTrigger {
	return NewHTTPTrigger("127.0.0.1:0", authToken, toggle,
		func() string { return "idle" }, testLogger())
}

func TestHandleToggleAccepted(t *testing.T) {
	calls := 0
	trigger := newTestTrigger("", func() bool { calls++; return true })

	req := httptest.NewRequest(http.MethodPost, "/toggle", nil)
	rec := httptest.NewRecorder()
	trigger.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if calls != 1 {
		t.Errorf("toggle calls = %d, want 1", calls)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "accepted" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestHandleToggleBusy(t *testing.T) {
	trigger := newTestTrigger("", func() bool { return false })

	req := httptest.NewRequest(http.MethodPost, "/toggle", nil)
	rec := httptest.NewRecorder()
	trigger.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "busy" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestHandleToggleAuth(t *testing.T) {
	calls := 0
	trigger := newTestTrigger("secret", func() bool { calls++; return true })

	// No token.
	req := httptest.NewRequest(http.MethodPost, "/toggle", nil)
	rec := httptest.NewRecorder()
	trigger.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", rec.Code)
	}
	if calls != 0 {
		t.Error("toggle invoked without auth")
	}

	// Header token.
	req = httptest.NewRequest(http.MethodPost, "/toggle", nil)
	req.Header.Set("X-Auth-Token", "secret")
	rec = httptest.NewRecorder()
	trigger.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Errorf("status with header token = %d, want 202", rec.Code)
	}

	// Query token.
	req = httptest.NewRequest(http.MethodPost, "/toggle?token=secret", nil)
	rec = httptest.NewRecorder()
	trigger.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Errorf("status with query token = %d, want 202", rec.Code)
	}

	if calls != 2 {
		t.Errorf("toggle calls = %d, want 2", calls)
	}
}

func TestHandleHealth(t *testing.T) {
	trigger := newTestTrigger("", func() bool { return true })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	trigger.Handler().ServeHTTP(rec, req)

	// Not started yet.
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status before start = %d, want 503", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["state"] != "idle" {
		t.Errorf("state field = %q, want idle", body["state"])
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over limit allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("different IP sharing the same bucket")
	}
}
