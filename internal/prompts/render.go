package prompts

import (
	"strings"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
)

// BuildResponsePrompt renders the persona prompt for the assistant's next
// line. It is a pure function of its inputs.
func BuildResponsePrompt(profile conversation.Profile, summary string, transcript *conversation.Transcript, utterance string) string {
	b := mustBuilder(PersonaPromptID)
	b.SetVariable("name", profile.Name).
		SetVariable("personality", profile.PersonalityType).
		SetVariable("generation", profile.Generation).
		SetVariable("languages", profile.Languages).
		SetVariable("situation", profile.Situation).
		SetVariable("summary", summary).
		SetVariable("history", RenderTranscript(transcript)).
		SetVariable("utterance", utterance)
	return mustBuild(b)
}

// BuildSummaryPrompt renders the prompt asking for a new summary that folds
// the prior summary and the current transcript together.
func BuildSummaryPrompt(priorSummary string, transcript *conversation.Transcript) string {
	b := mustBuilder(SummaryPromptID)
	b.SetVariable("summary", priorSummary).
		SetVariable("history", RenderTranscript(transcript))
	return mustBuild(b)
}

// RenderTranscript is the single place where earlier dialogue, including the
// model's own replies, is embedded into a prompt. Lines are copied verbatim.
func RenderTranscript(transcript *conversation.Transcript) string {
	if transcript == nil {
		return ""
	}
	return strings.Join(transcript.Render(), "\n")
}

// ResponseStops ends generation at a newline or at the next speaker label so
// one call never writes both sides of the dialogue.
func ResponseStops() []string {
	return []string{
		"\n",
		" " + conversation.SpeakerUser.Label() + ":",
		" " + conversation.SpeakerAssistant.Label() + ":",
	}
}

// The built-in templates are registered in init, so a lookup failure is a
// programming error.
func mustBuilder(id string) *PromptBuilder {
	b, err := NewPromptBuilder(DefaultRegistry(), id, LatestVersion)
	if err != nil {
		panic(err)
	}
	return b
}

func mustBuild(b *PromptBuilder) string {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
