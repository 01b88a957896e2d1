package application

import (
	"context"
	"errors"

	"voicetype/internal/domain"
)

// ErrDeviceUnavailable is returned by AudioCapture.Start when the input
// device cannot be opened.
var ErrDeviceUnavailable = errors.New("audio input device unavailable")

// AudioCapture owns the microphone input stream and buffers PCM frame
// blocks for the duration of one session.
type AudioCapture interface {
	// Start opens the input stream and begins buffering frames.
	Start(ctx context.Context) error
	// Stop halts the stream and returns the buffered session in arrival
	// order. Stopping an unstarted capture returns an empty session.
	Stop() (domain.Session, error)
}

type AudioFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate: 16000,
		Channels:   1,
		BitDepth:   16,
	}
}
