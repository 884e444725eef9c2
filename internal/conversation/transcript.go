package conversation

// MaxEntries is the transcript capacity: five user/assistant pairs.
const MaxEntries = 10

// Speaker identifies who produced a transcript entry.
type Speaker int

const (
	SpeakerUser Speaker = iota
	SpeakerAssistant
)

// Label is the speaker name used in rendered transcripts and stop sequences.
func (s Speaker) Label() string {
	if s == SpeakerAssistant {
		return "Assistant"
	}
	return "User"
}

func (s Speaker) String() string { return s.Label() }

// Entry is one line of dialogue. Entries are never mutated after creation.
type Entry struct {
	Speaker Speaker
	Text    string
}

// Line renders the entry as "Label: text".
func (e Entry) Line() string {
	return e.Speaker.Label() + ": " + e.Text
}

// Transcript is an ordered, bounded log of recent dialogue, oldest first.
// The zero value is an empty transcript ready to use.
type Transcript struct {
	entries []Entry
}

// NewTranscript returns a transcript seeded with the given entries in order.
func NewTranscript(entries ...Entry) *Transcript {
	t := &Transcript{}
	for _, e := range entries {
		t.Append(e)
	}
	return t
}

// Append adds an entry at the end.
func (t *Transcript) Append(e Entry) {
	t.entries = append(t.entries, e)
}

// AppendTurn appends a user utterance followed by the assistant's reply.
func (t *Transcript) AppendTurn(userText, assistantText string) {
	t.Append(Entry{Speaker: SpeakerUser, Text: userText})
	t.Append(Entry{Speaker: SpeakerAssistant, Text: assistantText})
}

// TrimToCapacity evicts the oldest entries while the transcript holds more
// than MaxEntries and returns what was removed, oldest first. Turns are
// appended as pairs, so evictions always take whole user/assistant pairs.
func (t *Transcript) TrimToCapacity() []Entry {
	var evicted []Entry
	for len(t.entries) > MaxEntries {
		evicted = append(evicted, t.entries[0])
		t.entries = t.entries[1:]
	}
	if len(evicted) > 0 {
		// drop the reference to the evicted prefix
		t.entries = append([]Entry(nil), t.entries...)
	}
	return evicted
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries, oldest first.
func (t *Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Render returns one "Label: text" line per entry in chronological order.
func (t *Transcript) Render() []string {
	lines := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		lines = append(lines, e.Line())
	}
	return lines
}

// Clone returns an independent copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	return &Transcript{entries: t.Entries()}
}
