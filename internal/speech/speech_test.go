package speech

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandFor(t *testing.T) {
	assert.Equal(t, "say", commandFor("darwin"))
	assert.Equal(t, "espeak", commandFor("linux"))
}

func TestSpeak_PassesTextAsOneArgument(t *testing.T) {
	var gotName string
	var gotArgs []string
	s := &Speaker{
		command: "say",
		logger:  slog.Default(),
		run: func(_ context.Context, name string, args ...string) error {
			gotName, gotArgs = name, args
			return nil
		},
	}

	s.Speak(context.Background(), "It's Marv; don't $(panic)")
	assert.Equal(t, "say", gotName)
	assert.Equal(t, []string{"--", "It's Marv; don't $(panic)"}, gotArgs)
}

func TestSpeak_LeadingDashIsNotAnOption(t *testing.T) {
	var gotArgs []string
	s := &Speaker{
		command: "espeak",
		logger:  slog.Default(),
		run: func(_ context.Context, _ string, args ...string) error {
			gotArgs = args
			return nil
		},
	}

	s.Speak(context.Background(), "-w/tmp/out.wav")
	assert.Equal(t, []string{"--", "-w/tmp/out.wav"}, gotArgs)
}

func TestSpeak_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	s := &Speaker{
		command: "espeak",
		logger:  slog.New(slog.NewTextHandler(&buf, nil)),
		run: func(context.Context, string, ...string) error {
			return errors.New("device busy")
		},
	}

	s.Speak(context.Background(), "hello")
	assert.Contains(t, buf.String(), "device busy")

	var nilSpeaker *Speaker
	nilSpeaker.Speak(context.Background(), "ignored")
}
