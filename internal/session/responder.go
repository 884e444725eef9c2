package session

import (
	"context"
	"fmt"

	"github.com/ChamsBouzaiene/couch/internal/engine"
)

// Responder generates the assistant's next line of dialogue.
type Responder struct {
	completer
	opts engine.ChatOptions
}

// NewResponder creates a responder using ResponseSampling.
func NewResponder(llm engine.LLMClient, model string, hooks Hook) *Responder {
	return &Responder{
		completer: completer{llm: llm, model: model, hooks: hooks},
		opts:      ResponseSampling,
	}
}

// Respond sends a rendered response prompt and returns the trimmed reply.
// Failures come back as *engine.ServiceError and are never retried.
func (r *Responder) Respond(ctx context.Context, prompt string) (string, error) {
	reply, err := r.complete(ctx, CallResponse, prompt, r.opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	return reply, nil
}
