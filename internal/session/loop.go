// Package session runs a couch conversation: it reads user utterances,
// generates replies, keeps the transcript bounded and refreshes the running
// summary after every turn.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
	"github.com/ChamsBouzaiene/couch/internal/prompts"
)

// OpeningLine is sent as the first user utterance instead of reading input.
const OpeningLine = "Hello, good to see you again"

// Phase is the session loop's position in its state machine.
type Phase string

const (
	PhaseAwaitingGreeting Phase = "awaiting_greeting"
	PhaseAwaitingInput    Phase = "awaiting_input"
	PhaseProcessing       Phase = "processing"
	PhaseTerminated       Phase = "terminated"
)

// Session owns one conversation's state and drives it turn by turn. It is
// single-threaded: the only blocking points are reading input, the response
// call and the summary call.
type Session struct {
	state      *conversation.State
	responder  *Responder
	summarizer *Summarizer
	input      Input
	output     Output
	hooks      Hook
	phase      Phase
}

// New creates a session in PhaseAwaitingGreeting. hooks may be nil.
func New(state *conversation.State, responder *Responder, summarizer *Summarizer, input Input, output Output, hooks Hook) *Session {
	if hooks == nil {
		hooks = NopHook{}
	}
	return &Session{
		state:      state,
		responder:  responder,
		summarizer: summarizer,
		input:      input,
		output:     output,
		hooks:      hooks,
		phase:      PhaseAwaitingGreeting,
	}
}

// State returns the conversation state owned by the session.
func (s *Session) State() *conversation.State { return s.state }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Run drives the conversation until the user says the exit keyword, input
// ends, or a turn fails. A failed turn returns an error wrapping
// *engine.ServiceError; the session is terminated either way.
func (s *Session) Run(ctx context.Context) (err error) {
	defer func() {
		s.phase = PhaseTerminated
		s.hooks.OnDone(ctx, s.state, err)
	}()

	for s.phase != PhaseTerminated {
		var utterance string
		switch s.phase {
		case PhaseAwaitingGreeting:
			utterance = OpeningLine
		case PhaseAwaitingInput:
			utterance, err = s.input.ReadUtterance(ctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		var exit bool
		exit, err = s.Turn(ctx, utterance)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
	return nil
}

// Turn processes one utterance: build the prompt, generate the reply, record
// both lines, trim, refresh the summary, then display. It reports whether the
// utterance was the exit keyword. The reply to the exit keyword is still
// generated and shown.
//
// If the summary call fails the transcript keeps the new pair, the summary
// keeps its prior value and nothing is displayed.
func (s *Session) Turn(ctx context.Context, utterance string) (exit bool, err error) {
	if s.phase == PhaseTerminated {
		return false, fmt.Errorf("session terminated")
	}
	s.phase = PhaseProcessing
	st := s.state
	s.hooks.OnTurnStart(ctx, st, utterance)

	prompt := prompts.BuildResponsePrompt(st.Profile, st.Summary, st.Transcript, utterance)
	reply, err := s.responder.Respond(ctx, prompt)
	if err != nil {
		s.phase = PhaseTerminated
		return false, fmt.Errorf("turn %d: %w", st.Turn+1, err)
	}

	user := conversation.Entry{Speaker: conversation.SpeakerUser, Text: utterance}
	assistant := conversation.Entry{Speaker: conversation.SpeakerAssistant, Text: reply}
	st.Transcript.Append(user)
	st.Transcript.Append(assistant)
	st.Turn++
	s.hooks.OnTurnRecorded(ctx, st, user, assistant)

	if evicted := st.Transcript.TrimToCapacity(); len(evicted) > 0 {
		s.hooks.OnTrimmed(ctx, st, evicted)
	}

	summary, err := s.summarizer.Summarize(ctx, st.Summary, st.Transcript)
	if err != nil {
		s.phase = PhaseTerminated
		return false, fmt.Errorf("turn %d: %w", st.Turn, err)
	}
	prior := st.Summary
	st.Summary = summary
	s.hooks.OnSummarized(ctx, st, prior)

	if err := s.output.Display(reply); err != nil {
		s.phase = PhaseTerminated
		return false, fmt.Errorf("failed to display reply: %w", err)
	}
	s.hooks.OnTurnEnd(ctx, st, reply)

	if conversation.IsExit(utterance) {
		s.phase = PhaseTerminated
		return true, nil
	}
	s.phase = PhaseAwaitingInput
	return false, nil
}
