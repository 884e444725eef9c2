package session

import (
	"github.com/ChamsBouzaiene/couch/internal/engine"
	"github.com/ChamsBouzaiene/couch/internal/prompts"
)

// ResponseSampling is used for every reply. The stop sequences end generation
// at a line break or at the next speaker label so the model never writes both
// sides of the dialogue.
var ResponseSampling = engine.ChatOptions{
	Temperature:      0.9,
	MaxOutputTokens:  500,
	TopP:             1,
	FrequencyPenalty: 0,
	PresencePenalty:  0.6,
}.WithStop(prompts.ResponseStops()...)

// SummarySampling is used for every summary refresh: a tighter length cap and
// a single-line answer.
var SummarySampling = engine.ChatOptions{
	Temperature:      0.9,
	MaxOutputTokens:  250,
	TopP:             1,
	FrequencyPenalty: 0,
	PresencePenalty:  0.6,
}.WithStop("\n")
