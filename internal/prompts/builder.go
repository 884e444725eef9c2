package prompts

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// PromptBuilder fills a registered template's placeholders.
type PromptBuilder struct {
	base      *Prompt
	variables map[string]string
}

// NewPromptBuilder resolves id at version (LatestVersion for the newest) in
// registry.
func NewPromptBuilder(registry *Registry, id string, version PromptVersion) (*PromptBuilder, error) {
	base, err := registry.Resolve(id, version)
	if err != nil {
		return nil, fmt.Errorf("failed to get base prompt: %w", err)
	}

	return &PromptBuilder{
		base:      base,
		variables: make(map[string]string),
	}, nil
}

// SetVariable sets a variable for template substitution.
func (b *PromptBuilder) SetVariable(key, value string) *PromptBuilder {
	b.variables[key] = value
	return b
}

// Build substitutes every placeholder in one pass. Text that arrives through
// a variable is never expanded again, so "{{...}}" in user or model text is
// embedded literally. A placeholder with no variable set is an error.
func (b *PromptBuilder) Build() (string, error) {
	var missing []string
	for _, m := range placeholderRe.FindAllStringSubmatch(b.base.Content, -1) {
		if _, ok := b.variables[m[1]]; !ok {
			missing = append(missing, m[1])
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %s %s: unset variables %v", b.base.ID, b.base.Version, missing)
	}

	keys := make([]string, 0, len(b.variables))
	for key := range b.variables {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{"+key+"}}", b.variables[key])
	}

	return strings.NewReplacer(pairs...).Replace(b.base.Content), nil
}
