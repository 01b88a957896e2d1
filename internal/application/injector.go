package application

import (
	"context"
	"errors"
)

// ErrToolUnavailable is returned when the system utility backing an
// injection strategy is not installed.
var ErrToolUnavailable = errors.New("injection tool not available")

// TextInjector delivers recognized text to the currently focused
// application's input.
type TextInjector interface {
	Inject(ctx context.Context, text string) error
}
