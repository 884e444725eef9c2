package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/docker/go-units"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
	"github.com/ChamsBouzaiene/couch/internal/engine"
)

// LoggerHook writes turn lifecycle events to a structured logger.
type LoggerHook struct{ L *slog.Logger }

func (h LoggerHook) OnTurnStart(ctx context.Context, st *conversation.State, utterance string) {
	h.L.DebugContext(ctx, "turn start",
		"turn", st.Turn+1,
		"transcript_len", st.Transcript.Len(),
		"utterance_tokens", engine.EstimateTokens(utterance))
}

func (h LoggerHook) OnBeforeLLM(ctx context.Context, kind CallKind, msgs []engine.ChatMessage) {
	// Estimated; the provider's count arrives in OnAfterLLM.
	h.L.DebugContext(ctx, "completion request",
		"call", kind,
		"prompt_tokens_est", engine.EstimateMessageTokens(msgs))
}

func (h LoggerHook) OnAfterLLM(ctx context.Context, kind CallKind, r engine.LLMResponse, elapsed time.Duration, err error) {
	if err != nil {
		attrs := []any{"call", kind, "elapsed", units.HumanDuration(elapsed), "error", err}
		if svc, ok := engine.AsServiceError(err); ok {
			attrs = append(attrs, "kind", svc.Kind, "status", svc.HTTPStatus)
		}
		// The caller reports the error; this only adds call detail.
		h.L.DebugContext(ctx, "completion failed", attrs...)
		return
	}
	h.L.DebugContext(ctx, "completion done",
		"call", kind,
		"finish", r.FinishReason,
		"prompt_tokens", r.Usage.Prompt,
		"completion_tokens", r.Usage.Completion,
		"elapsed", units.HumanDuration(elapsed),
		"elapsed_ms", elapsed.Milliseconds())
	if r.FinishReason == "length" {
		h.L.WarnContext(ctx, "completion hit the token limit", "call", kind)
	}
}

func (h LoggerHook) OnTurnRecorded(ctx context.Context, st *conversation.State, _, _ conversation.Entry) {
	h.L.DebugContext(ctx, "turn recorded", "turn", st.Turn, "transcript_len", st.Transcript.Len())
}

func (h LoggerHook) OnTrimmed(ctx context.Context, st *conversation.State, evicted []conversation.Entry) {
	h.L.DebugContext(ctx, "transcript trimmed", "evicted", len(evicted), "transcript_len", st.Transcript.Len())
}

func (h LoggerHook) OnSummarized(ctx context.Context, st *conversation.State, prior string) {
	h.L.DebugContext(ctx, "summary refreshed",
		"turn", st.Turn,
		"prior_tokens", engine.EstimateTokens(prior),
		"summary_tokens", engine.EstimateTokens(st.Summary))
}

func (h LoggerHook) OnTurnEnd(context.Context, *conversation.State, string) {}

func (h LoggerHook) OnDone(ctx context.Context, st *conversation.State, err error) {
	if err != nil {
		h.L.DebugContext(ctx, "conversation aborted", "turns", st.Turn, "error", err)
		return
	}
	h.L.InfoContext(ctx, "conversation ended", "turns", st.Turn)
}
