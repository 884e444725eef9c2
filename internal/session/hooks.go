package session

import (
	"context"
	"time"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
	"github.com/ChamsBouzaiene/couch/internal/engine"
)

// CallKind tells which of the two completion calls a hook event is about.
type CallKind string

const (
	CallResponse CallKind = "response"
	CallSummary  CallKind = "summary"
)

// Hook observes a conversation. Hooks run synchronously on the loop's
// goroutine and must not modify the state they are handed.
type Hook interface {
	OnTurnStart(ctx context.Context, st *conversation.State, utterance string)
	OnBeforeLLM(ctx context.Context, kind CallKind, messages []engine.ChatMessage)
	OnAfterLLM(ctx context.Context, kind CallKind, resp engine.LLMResponse, elapsed time.Duration, err error)
	OnTurnRecorded(ctx context.Context, st *conversation.State, user, assistant conversation.Entry)
	OnTrimmed(ctx context.Context, st *conversation.State, evicted []conversation.Entry)
	OnSummarized(ctx context.Context, st *conversation.State, prior string)
	OnTurnEnd(ctx context.Context, st *conversation.State, reply string)
	OnDone(ctx context.Context, st *conversation.State, err error)
}

// NopHook lets you implement only the events you need.
type NopHook struct{}

func (NopHook) OnTurnStart(context.Context, *conversation.State, string)                                    {}
func (NopHook) OnBeforeLLM(context.Context, CallKind, []engine.ChatMessage)                                 {}
func (NopHook) OnAfterLLM(context.Context, CallKind, engine.LLMResponse, time.Duration, error)              {}
func (NopHook) OnTurnRecorded(context.Context, *conversation.State, conversation.Entry, conversation.Entry) {}
func (NopHook) OnTrimmed(context.Context, *conversation.State, []conversation.Entry)                        {}
func (NopHook) OnSummarized(context.Context, *conversation.State, string)                                   {}
func (NopHook) OnTurnEnd(context.Context, *conversation.State, string)                                      {}
func (NopHook) OnDone(context.Context, *conversation.State, error)                                          {}

// Hooks fans every event out to each hook in order.
type Hooks []Hook

func (hs Hooks) OnTurnStart(ctx context.Context, st *conversation.State, u string) {
	for _, h := range hs {
		h.OnTurnStart(ctx, st, u)
	}
}
func (hs Hooks) OnBeforeLLM(ctx context.Context, k CallKind, m []engine.ChatMessage) {
	for _, h := range hs {
		h.OnBeforeLLM(ctx, k, m)
	}
}
func (hs Hooks) OnAfterLLM(ctx context.Context, k CallKind, r engine.LLMResponse, d time.Duration, err error) {
	for _, h := range hs {
		h.OnAfterLLM(ctx, k, r, d, err)
	}
}
func (hs Hooks) OnTurnRecorded(ctx context.Context, st *conversation.State, u, a conversation.Entry) {
	for _, h := range hs {
		h.OnTurnRecorded(ctx, st, u, a)
	}
}
func (hs Hooks) OnTrimmed(ctx context.Context, st *conversation.State, e []conversation.Entry) {
	for _, h := range hs {
		h.OnTrimmed(ctx, st, e)
	}
}
func (hs Hooks) OnSummarized(ctx context.Context, st *conversation.State, prior string) {
	for _, h := range hs {
		h.OnSummarized(ctx, st, prior)
	}
}
func (hs Hooks) OnTurnEnd(ctx context.Context, st *conversation.State, reply string) {
	for _, h := range hs {
		h.OnTurnEnd(ctx, st, reply)
	}
}
func (hs Hooks) OnDone(ctx context.Context, st *conversation.State, err error) {
	for _, h := range hs {
		h.OnDone(ctx, st, err)
	}
}
