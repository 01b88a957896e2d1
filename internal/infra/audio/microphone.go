//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"

	"voicetype/internal/application"
	"voicetype/internal/domain"
)

// Microphone captures mono 16-bit PCM from the default input device. The
// portaudio callback appends frame blocks to the current session; Stop takes
// the session out under the same lock, so the delivery thread and the
// controller never race on the buffer.
type Microphone struct {
	format          application.AudioFormat
	framesPerBuffer int
	logger          *slog.Logger

	mu      sync.Mutex
	stream  *portaudio.Stream
	session domain.Session
}

func NewMicrophone(format application.AudioFormat, framesPerBuffer int, logger *slog.Logger) *Microphone {
	return &Microphone{
		format:          format,
		framesPerBuffer: framesPerBuffer,
		logger:          logger,
	}
}

func (m *Microphone) Start(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream != nil {
		return fmt.Errorf("capture already running")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %v: %w", err, application.ErrDeviceUnavailable)
	}

	stream, err := portaudio.OpenDefaultStream(
		m.format.Channels,
		0,
		float64(m.format.SampleRate),
		m.framesPerBuffer,
		m.callback,
	)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening input stream: %v: %w", err, application.ErrDeviceUnavailable)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting input stream: %v: %w", err, application.ErrDeviceUnavailable)
	}

	m.stream = stream
	m.session = domain.NewSession()
	m.logger.Info("microphone started",
		"session", m.session.ID,
		"sample_rate", m.format.SampleRate,
	)
	return nil
}

// callback runs on portaudio's delivery thread. The input slice is reused by
// the driver between invocations, so each block is copied before it joins
// the session.
func (m *Microphone) callback(in []int16) {
	block := make([]int16, len(in))
	copy(block, in)

	m.mu.Lock()
	m.session.Frames = append(m.session.Frames, block)
	m.mu.Unlock()
}

// Stop halts the stream and returns the buffered session. Teardown errors
// are reported but the captured frames are preserved; capture is
// best-effort, not loss-free.
func (m *Microphone) Stop() (domain.Session, error) {
	m.mu.Lock()
	stream := m.stream
	m.stream = nil
	m.mu.Unlock()

	if stream == nil {
		return domain.Session{}, nil
	}

	var stopErr error
	if err := stream.Stop(); err != nil {
		stopErr = fmt.Errorf("stopping input stream: %w", err)
	}
	if err := stream.Close(); err != nil && stopErr == nil {
		stopErr = fmt.Errorf("closing input stream: %w", err)
	}
	portaudio.Terminate()

	m.mu.Lock()
	session := m.session
	m.session = domain.Session{}
	m.mu.Unlock()

	return session, stopErr
}
