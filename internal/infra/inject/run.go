// Package inject delivers recognized text to the focused window by invoking
// external input tools.
package inject

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"voicetype/internal/application"
)

// runTool executes a configured command with extra trailing arguments. A
// missing binary maps to ErrToolUnavailable; a non-zero exit reports the
// tool's combined output.
func runTool(ctx context.Context, command []string, extra ...string) error {
	if len(command) == 0 {
		return fmt.Errorf("no command configured")
	}

	path, err := exec.LookPath(command[0])
	if err != nil {
		return fmt.Errorf("%s: %w", command[0], application.ErrToolUnavailable)
	}

	args := append(append([]string{}, command[1:]...), extra...)
	cmd := exec.CommandContext(ctx, path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with %d: %s",
				command[0], exitErr.ExitCode(), bytes.TrimSpace(out))
		}
		return fmt.Errorf("running %s: %w", command[0], err)
	}
	return nil
}
