package domain

// State is the controller's position in the recording lifecycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Action is the side effect a toggle demands in a given state.
type Action int

const (
	ActionNone Action = iota
	ActionStartCapture
	ActionProcessSession
)

// Toggle returns the state a toggle request moves s to and the action the
// caller must perform. Recording is only reachable from Idle and Processing
// only from Recording; a toggle while processing changes nothing.
func Toggle(s State) (State, Action) {
	switch s {
	case StateIdle:
		return StateRecording, ActionStartCapture
	case StateRecording:
		return StateProcessing, ActionProcessSession
	default:
		return s, ActionNone
	}
}
