package inject

import (
	"context"
	"fmt"
	"log/slog"
)

// Typer injects text by simulating direct keystrokes with the configured
// typing tool (for example `ydotool type --`). The literal text is appended
// as the final argument.
type Typer struct {
	command []string
	logger  *slog.Logger
}

func NewTyper(command []string, logger *slog.Logger) *Typer {
	return &Typer{command: command, logger: logger}
}

func (t *Typer) Inject(ctx context.Context, text string) error {
	if err := runTool(ctx, t.command, text); err != nil {
		return fmt.Errorf("typing text: %w", err)
	}
	t.logger.Info("typed text", "chars", len(text))
	return nil
}
