package session

import (
	"context"
	"strings"
	"time"

	"github.com/ChamsBouzaiene/couch/internal/engine"
)

// completer sends one rendered prompt as a single user message. Both the
// responder and the summarizer go through it so hooks see every call.
type completer struct {
	llm   engine.LLMClient
	model string
	hooks Hook
}

func (c completer) complete(ctx context.Context, kind CallKind, prompt string, opts engine.ChatOptions) (string, error) {
	msgs := []engine.ChatMessage{
		{Role: engine.RoleUser, Content: prompt},
	}

	hooks := c.hooks
	if hooks == nil {
		hooks = NopHook{}
	}

	hooks.OnBeforeLLM(ctx, kind, msgs)
	start := time.Now()
	resp, err := c.llm.Chat(ctx, c.model, msgs, opts)
	hooks.OnAfterLLM(ctx, kind, resp, time.Since(start), err)
	if err != nil {
		// Clients from other packages may return plain errors.
		return "", engine.WrapServiceError("", err, 0)
	}

	return strings.TrimSpace(resp.Assistant.Content), nil
}
