package session

import (
	"context"
	"fmt"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
	"github.com/ChamsBouzaiene/couch/internal/engine"
	"github.com/ChamsBouzaiene/couch/internal/prompts"
)

// Summarizer folds the prior summary and the current transcript into a new
// summary.
type Summarizer struct {
	completer
	opts engine.ChatOptions
}

// NewSummarizer creates a summarizer using SummarySampling.
func NewSummarizer(llm engine.LLMClient, model string, hooks Hook) *Summarizer {
	return &Summarizer{
		completer: completer{llm: llm, model: model, hooks: hooks},
		opts:      SummarySampling,
	}
}

// Summarize returns the replacement summary. The transcript should already be
// trimmed; entries evicted earlier only survive through prior.
func (s *Summarizer) Summarize(ctx context.Context, prior string, transcript *conversation.Transcript) (string, error) {
	prompt := prompts.BuildSummaryPrompt(prior, transcript)

	summary, err := s.complete(ctx, CallSummary, prompt, s.opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return summary, nil
}
