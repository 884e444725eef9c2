// Package conversation holds the state of one couch conversation: the user's
// profile, the bounded transcript of recent turns and the running summary.
package conversation

import "fmt"

// DefaultLanguages is used when the profile does not name any.
const DefaultLanguages = "English"

// Profile describes the user the assistant is talking to. It is supplied once
// at startup and never mutated.
type Profile struct {
	Name            string // display name
	PersonalityType string // e.g. "ENTP"; steers tone, never mentioned by the assistant
	Generation      string // e.g. "GenX", "Millennial"
	Languages       string // spoken languages, e.g. "English"
	Situation       string // free-text description of why the user is here
}

// NewProfile builds a profile, filling the language and situation defaults.
func NewProfile(name, personalityType, generation, languages, situation string) Profile {
	p := Profile{
		Name:            name,
		PersonalityType: personalityType,
		Generation:      generation,
		Languages:       languages,
		Situation:       situation,
	}
	if p.Languages == "" {
		p.Languages = DefaultLanguages
	}
	if p.Situation == "" {
		p.Situation = DefaultSituation(name)
	}
	return p
}

// DefaultSituation is the situation used when none is configured.
func DefaultSituation(name string) string {
	return fmt.Sprintf("%s is feeling down and needs a friend to talk to.", name)
}
