package conversation

import "strings"

// ExitKeyword ends the conversation when the user says it.
const ExitKeyword = "bye"

// NormalizeUtterance lowercases, trims surrounding whitespace and removes
// every period, in that order.
func NormalizeUtterance(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), ".", "")
}

// IsExit reports whether the utterance is the exit keyword.
func IsExit(utterance string) bool {
	return NormalizeUtterance(utterance) == ExitKeyword
}
