// Package engine provides the completion-service contract shared by the
// providers and the conversation session.
// This file contains token estimation used for logging prompt sizes.

package engine

import (
	"strings"
)

// EstimateTokens provides a rough token count estimation.
// Uses a simple heuristic: ~4 characters per token for English text.
// This is approximate but useful for logging and analysis.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}

	charCount := len([]rune(text))

	// Whitespace-heavy text has fewer tokens per character
	whitespaceCount := strings.Count(text, " ") + strings.Count(text, "\n") + strings.Count(text, "\t")

	// Rough formula: (characters / 4) + (whitespace / 6)
	estimated := (charCount / 4) + (whitespaceCount / 6)

	// Minimum of 1 token for non-empty text
	if estimated < 1 {
		return 1
	}

	return estimated
}

// EstimateMessageTokens counts tokens for a slice of messages, including
// roughly 4 tokens of formatting overhead per message.
func EstimateMessageTokens(messages []ChatMessage) int {
	total := 0
	for _, msg := range messages {
		total += EstimateTokens(string(msg.Role))
		total += EstimateTokens(msg.Content)
		total += 4
	}
	return total
}
