package domain

import (
	"testing"
	"time"
)

func TestToggleTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       State
		wantState  State
		wantAction Action
	}{
		{"idle starts recording", StateIdle, StateRecording, ActionStartCapture},
		{"recording starts processing", StateRecording, StateProcessing, ActionProcessSession},
		{"processing ignores toggle", StateProcessing, StateProcessing, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, action := Toggle(tt.from)
			if got != tt.wantState {
				t.Errorf("Toggle(%v) state = %v, want %v", tt.from, got, tt.wantState)
			}
			if action != tt.wantAction {
				t.Errorf("Toggle(%v) action = %v, want %v", tt.from, action, tt.wantAction)
			}
		})
	}
}

func TestToggleReachability(t *testing.T) {
	for _, s := range []State{StateIdle, StateRecording, StateProcessing} {
		next, _ := Toggle(s)
		if next == StateRecording && s != StateIdle {
			t.Errorf("recording reached from %v", s)
		}
		if next == StateProcessing && s != StateRecording && s != StateProcessing {
			t.Errorf("processing reached from %v", s)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateRecording, "recording"},
		{StateProcessing, "processing"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestSessionSamplesAndDuration(t *testing.T) {
	s := NewSession()
	for i := 0; i < 3; i++ {
		s.Frames = append(s.Frames, make([]int16, 1600))
	}

	if s.Empty() {
		t.Fatal("session with frames reported empty")
	}
	if got := s.Samples(); got != 4800 {
		t.Errorf("Samples() = %d, want 4800", got)
	}
	if got := s.Duration(16000); got != 300*time.Millisecond {
		t.Errorf("Duration(16000) = %v, want 300ms", got)
	}
	if got := s.Duration(0); got != 0 {
		t.Errorf("Duration(0) = %v, want 0", got)
	}
}

func TestNewSessionUniqueIDs(t *testing.T) {
	a := NewSession()
	b := NewSession()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("session IDs not unique: %q vs %q", a.ID, b.ID)
	}
	if !a.Empty() {
		t.Error("new session not empty")
	}
}
