package application

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the transcription service produced a blank
// result. Treated as "no speech detected", not a hard failure.
var ErrNoSpeech = errors.New("no speech recognized")

type SpeechToText interface {
	Transcribe(ctx context.Context, wavData []byte) (string, error)
}
