// Package speech reads replies aloud through the platform's text-to-speech
// command. It is best effort: a missing or failing command never stops the
// conversation.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrUnavailable is returned when no text-to-speech command is installed.
var ErrUnavailable = errors.New("no text-to-speech command available")

// Speaker speaks text aloud.
type Speaker struct {
	command string
	logger  *slog.Logger
	run     func(ctx context.Context, name string, args ...string) error
}

// commandFor picks "say" on macOS and "espeak" elsewhere.
func commandFor(goos string) string {
	if goos == "darwin" {
		return "say"
	}
	return "espeak"
}

// New finds the platform command. It returns ErrUnavailable when the command
// is not on PATH.
func New(logger *slog.Logger) (*Speaker, error) {
	command := commandFor(runtime.GOOS)
	if _, err := exec.LookPath(command); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, command)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Speaker{command: command, logger: logger, run: runCommand}, nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Speak reads text aloud and blocks until playback ends. The text follows
// "--" as one argument and never passes through a shell. Failures are logged.
func (s *Speaker) Speak(ctx context.Context, text string) {
	if s == nil || text == "" {
		return
	}
	if err := s.run(ctx, s.command, "--", text); err != nil {
		s.logger.WarnContext(ctx, "text-to-speech failed", "command", s.command, "error", err)
	}
}
