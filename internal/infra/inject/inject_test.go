package inject

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"voicetype/internal/application"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTyperSucceeds(t *testing.T) {
	typer := NewTyper([]string{"true"}, testLogger())
	if err := typer.Inject(context.Background(), "hello"); err != nil {
		t.Errorf("Inject: %v", err)
	}
}

func TestTyperMissingTool(t *testing.T) {
	typer := NewTyper([]string{"definitely-not-a-real-tool-9b1c"}, testLogger())
	err := typer.Inject(context.Background(), "hello")
	if !errors.Is(err, application.ErrToolUnavailable) {
		t.Errorf("error = %v, want ErrToolUnavailable", err)
	}
}

func TestTyperToolFailure(t *testing.T) {
	typer := NewTyper([]string{"false"}, testLogger())
	err := typer.Inject(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error from failing tool")
	}
	if errors.Is(err, application.ErrToolUnavailable) {
		t.Error("exit failure misreported as missing tool")
	}
}

func TestRunToolEmptyCommand(t *testing.T) {
	if err := runTool(context.Background(), nil); err == nil {
		t.Error("expected error for empty command")
	}
}
