package inject

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
)

// ClipboardPaster injects text by placing it on the system clipboard and
// simulating a paste keystroke with the configured command. The previous
// clipboard contents can optionally be restored afterwards.
type ClipboardPaster struct {
	pasteCommand []string
	restore      bool
	logger       *slog.Logger
}

func NewClipboardPaster(pasteCommand []string, restore bool, logger *slog.Logger) *ClipboardPaster {
	return &ClipboardPaster{
		pasteCommand: pasteCommand,
		restore:      restore,
		logger:       logger,
	}
}

func (p *ClipboardPaster) Inject(ctx context.Context, text string) error {
	previous, _ := clipboard.ReadAll()

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	// Give the clipboard owner time to register before the paste keystroke.
	time.Sleep(80 * time.Millisecond)

	if err := runTool(ctx, p.pasteCommand); err != nil {
		return fmt.Errorf("paste keystroke: %w", err)
	}

	if p.restore {
		time.Sleep(120 * time.Millisecond)
		if err := clipboard.WriteAll(previous); err != nil {
			p.logger.Warn("restoring clipboard", "error", err)
		}
	}

	p.logger.Info("pasted text", "chars", len(text))
	return nil
}
