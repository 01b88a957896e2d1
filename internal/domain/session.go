package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session holds the PCM frame blocks captured between one start and the
// matching stop, in arrival order. Blocks are mono 16-bit samples.
type Session struct {
	ID     string
	Frames [][]int16
}

func NewSession() Session {
	return Session{ID: uuid.NewString()}
}

func (s Session) Empty() bool {
	return len(s.Frames) == 0
}

// Samples returns the total sample count across all frame blocks.
func (s Session) Samples() int {
	n := 0
	for _, f := range s.Frames {
		n += len(f)
	}
	return n
}

// Duration reports the captured audio length at the given sample rate.
func (s Session) Duration(sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(s.Samples()) / float64(sampleRate) * float64(time.Second))
}
