//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"

	"voicetype/internal/application"
	"voicetype/internal/domain"
)

// Microphone stub when portaudio is not available.
type Microphone struct {
	logger *slog.Logger
}

func NewMicrophone(_ application.AudioFormat, _ int, logger *slog.Logger) *Microphone {
	return &Microphone{logger: logger}
}

func (m *Microphone) Start(_ context.Context) error {
	return fmt.Errorf("microphone capture not built in, rebuild with -tags portaudio: %w",
		application.ErrDeviceUnavailable)
}

func (m *Microphone) Stop() (domain.Session, error) {
	return domain.Session{}, nil
}
