package conversation

// State is everything a conversation remembers. It is owned by the session
// loop and handed by pointer to the prompt builder and summarizer; nothing
// else holds it.
type State struct {
	Profile    Profile
	Transcript *Transcript
	// Summary is replaced wholesale after every turn. Its length is not
	// bounded: each refresh folds the previous summary into the new one.
	Summary string
	// Turn counts completed user/assistant exchanges.
	Turn int
}

// NewState returns an empty conversation for profile.
func NewState(profile Profile) *State {
	return &State{
		Profile:    profile,
		Transcript: &Transcript{},
	}
}
