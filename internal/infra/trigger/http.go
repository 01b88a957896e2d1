// Package trigger delivers toggle requests to the controller from outside
// the process.
package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// HTTPTrigger exposes toggle delivery over HTTP for clients that cannot
// send the daemon a signal (remote keyboards, stream decks). Each accepted
// request invokes exactly one toggle; a toggle rejected because a cycle is
// still in flight reports busy instead of queueing.
type HTTPTrigger struct {
	addr      string
	authToken string
	toggle    func() bool
	state     func() string
	logger    *slog.Logger

	mux     *http.ServeMux
	limiter *RateLimiter

	mu      sync.Mutex
	server  *http.Server
	running bool
}

func NewHTTPTrigger(addr, authToken string, toggle func() bool, state func() string, logger *slog.Logger) *HTTPTrigger {
	t := &HTTPTrigger{
		addr:      addr,
		authToken: authToken,
		toggle:    toggle,
		state:     state,
		logger:    logger,
		mux:       http.NewServeMux(),
		limiter:   NewRateLimiter(30, time.Minute), // 30 requests per minute per IP
	}
	t.mux.HandleFunc("POST /toggle", t.limiter.Middleware(t.handleToggle))
	// No rate limiting on health check
	t.mux.HandleFunc("GET /health", t.handleHealth)
	return t
}

func (t *HTTPTrigger) Start(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return nil
	}

	t.server = &http.Server{
		Addr:         t.addr,
		Handler:      t.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		t.logger.Info("HTTP trigger starting", "addr", t.addr)
		if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.logger.Error("HTTP trigger error", "error", err)
		}
	}()

	t.running = true
	return nil
}

func (t *HTTPTrigger) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}

	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := t.server.Shutdown(ctx); err != nil {
			t.logger.Warn("graceful shutdown failed, forcing close", "error", err)
			if err := t.server.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
	}

	t.running = false
	return nil
}

// Handler exposes the mux for tests.
func (t *HTTPTrigger) Handler() http.Handler {
	return t.mux
}

func (t *HTTPTrigger) handleToggle(w http.ResponseWriter, r *http.Request) {
	if !t.authorized(r) {
		t.logger.Warn("unauthorized toggle request", "remote_addr", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if !t.toggle() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"status":"busy"}`)
		return
	}

	t.logger.Info("toggle delivered via HTTP", "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprint(w, `{"status":"accepted"}`)
}

func (t *HTTPTrigger) authorized(r *http.Request) bool {
	if t.authToken == "" {
		return true
	}
	token := r.Header.Get("X-Auth-Token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	return token == t.authToken
}

func (t *HTTPTrigger) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.mu.Lock()
	running := t.running
	t.mu.Unlock()

	status := "ok"
	statusCode := http.StatusOK
	if !running {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, `{"status":"%s","state":"%s"}`, status, t.state())
}
