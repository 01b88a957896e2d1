package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"voicetype/internal/domain"
	"voicetype/internal/wav"
)

// Controller drives the Idle → Recording → Processing → Idle cycle.
//
// Toggle requests land on an unbuffered channel drained by a single worker
// goroutine, so a request arriving while a cycle's effects are still running
// is dropped rather than queued: at most one transcription is in flight at
// any time. The state moves to Processing before the blocking transcription
// call starts, which closes the window where a fast repeated toggle could
// re-enter Recording.
type Controller struct {
	capture  AudioCapture
	stt      SpeechToText
	injector TextInjector
	notifier Notifier
	logger   *slog.Logger
	format   AudioFormat

	requests chan struct{}

	mu    sync.Mutex
	state domain.State
}

func NewController(
	capture AudioCapture,
	stt SpeechToText,
	injector TextInjector,
	notifier Notifier,
	format AudioFormat,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		capture:  capture,
		stt:      stt,
		injector: injector,
		notifier: notifier,
		logger:   logger,
		format:   format,
		requests: make(chan struct{}),
		state:    domain.StateIdle,
	}
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle submits a toggle request. It never blocks: when the worker is busy
// the request is dropped and Toggle returns false.
func (c *Controller) Toggle() bool {
	select {
	case c.requests <- struct{}{}:
		return true
	default:
		c.logger.Info("still processing, ignoring toggle", "state", c.State())
		return false
	}
}

// Run drains toggle requests until ctx is canceled. Each request's full
// effect sequence executes on this goroutine.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case <-c.requests:
			c.handleToggle(ctx)
		}
	}
}

func (c *Controller) handleToggle(ctx context.Context) {
	c.mu.Lock()
	next, action := domain.Toggle(c.state)

	switch action {
	case domain.ActionStartCapture:
		if err := c.capture.Start(ctx); err != nil {
			c.mu.Unlock()
			c.logger.Error("starting capture", "error", err)
			c.notify(ctx, "Recording failed to start")
			return
		}
		c.state = next
		c.mu.Unlock()
		c.logger.Info("recording started")
		c.notifyState(ctx, next)

	case domain.ActionProcessSession:
		c.state = next
		c.mu.Unlock()
		c.notifyState(ctx, next)
		c.process(ctx)
		c.setState(ctx, domain.StateIdle)

	default:
		c.mu.Unlock()
		c.logger.Info("still processing, ignoring toggle")
	}
}

// process runs the stop → encode → transcribe → inject sequence. Every
// failure is absorbed and logged; the caller returns the state to Idle
// unconditionally.
func (c *Controller) process(ctx context.Context) {
	session, err := c.capture.Stop()
	if err != nil {
		c.logger.Warn("stopping capture", "error", err)
	}
	if session.Empty() {
		c.logger.Warn("no audio captured")
		return
	}

	c.logger.Info("recording stopped",
		"session", session.ID,
		"duration", session.Duration(c.format.SampleRate),
	)

	data, err := wav.Encode(session.Frames, c.format.SampleRate, c.format.Channels)
	if err != nil {
		c.logger.Error("encoding session", "session", session.ID, "error", err)
		return
	}

	text, err := c.stt.Transcribe(ctx, data)
	switch {
	case errors.Is(err, ErrNoSpeech):
		c.logger.Warn("transcription returned no speech", "session", session.ID)
		return
	case err != nil:
		c.logger.Error("transcribing", "session", session.ID, "error", err)
		return
	}

	c.logger.Info("transcription complete", "session", session.ID, "text", text)
	c.notify(ctx, "Transcribed: "+truncate(text, 50))

	if err := c.injector.Inject(ctx, text); err != nil {
		if errors.Is(err, ErrToolUnavailable) {
			c.logger.Error("injection tool missing", "error", err)
		} else {
			c.logger.Error("injecting text", "error", err)
		}
		return
	}

	c.logger.Info("text injected", "session", session.ID, "chars", len(text))
}

func (c *Controller) setState(ctx context.Context, s domain.State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.notifyState(ctx, s)
}

func (c *Controller) notifyState(ctx context.Context, s domain.State) {
	c.notify(ctx, "Status: "+s.String())
}

// notify dispatches a status notification without blocking the toggle
// sequence behind the notifier.
func (c *Controller) notify(ctx context.Context, message string) {
	go func() {
		if err := c.notifier.Notify(ctx, message); err != nil {
			c.logger.Error("notifying status", "error", err)
		}
	}()
}

// shutdown discards an in-flight recording when the daemon exits.
func (c *Controller) shutdown() {
	c.mu.Lock()
	recording := c.state == domain.StateRecording
	c.state = domain.StateIdle
	c.mu.Unlock()

	if !recording {
		return
	}
	if _, err := c.capture.Stop(); err != nil {
		c.logger.Warn("stopping capture on shutdown", "error", err)
	}
}

// truncate shortens a string for logging and status display.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
