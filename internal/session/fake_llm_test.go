package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ChamsBouzaiene/couch/internal/engine"
)

// recordedCall is one request seen by fakeLLM.
type recordedCall struct {
	Kind   CallKind
	Prompt string
	Opts   engine.ChatOptions
}

// fakeLLM answers response calls with Replies in order and summary calls with
// "summary N". It tells the two apart by their token cap.
type fakeLLM struct {
	mu      sync.Mutex
	Replies []string
	// SummaryErr, when set, fails every summary call.
	SummaryErr error
	// ResponseErr, when set, fails every response call.
	ResponseErr error

	calls     []recordedCall
	summaries int
}

func (f *fakeLLM) Chat(_ context.Context, _ string, messages []engine.ChatMessage, opts engine.ChatOptions) (engine.LLMResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(messages) != 1 {
		return engine.LLMResponse{}, fmt.Errorf("expected one message, got %d", len(messages))
	}

	kind := CallResponse
	if opts.MaxOutputTokens == SummarySampling.MaxOutputTokens {
		kind = CallSummary
	}
	f.calls = append(f.calls, recordedCall{Kind: kind, Prompt: messages[0].Content, Opts: opts})

	var content string
	switch kind {
	case CallSummary:
		if f.SummaryErr != nil {
			return engine.LLMResponse{}, f.SummaryErr
		}
		f.summaries++
		content = fmt.Sprintf("summary %d", f.summaries)
	default:
		if f.ResponseErr != nil {
			return engine.LLMResponse{}, f.ResponseErr
		}
		if len(f.Replies) == 0 {
			return engine.LLMResponse{}, errors.New("fakeLLM: out of replies")
		}
		content = f.Replies[0]
		f.Replies = f.Replies[1:]
	}

	return engine.LLMResponse{
		Assistant:    engine.ChatMessage{Role: engine.RoleAssistant, Content: content},
		FinishReason: "stop",
	}, nil
}

func (f *fakeLLM) callsOf(kind CallKind) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// recordingOutput keeps every displayed reply.
type recordingOutput struct {
	Shown []string
}

func (o *recordingOutput) Display(text string) error {
	o.Shown = append(o.Shown, text)
	return nil
}
