package prompts

import (
	"fmt"
	"strconv"
	"strings"
)

// PromptVersion is a "major.minor.patch" template version.
type PromptVersion string

const (
	// PromptV1 is the first version of prompts.
	PromptV1 PromptVersion = "1.0.0"

	// LatestVersion resolves to the newest non-deprecated version.
	LatestVersion PromptVersion = ""
)

// Prompt is one version of a template with {{key}} placeholders.
type Prompt struct {
	ID         string
	Version    PromptVersion
	Content    string
	Deprecated bool
}

// parse splits the version into its numeric parts.
func (v PromptVersion) parse() ([3]int, error) {
	var parts [3]int
	fields := strings.Split(string(v), ".")
	if len(fields) != 3 {
		return parts, fmt.Errorf("invalid prompt version %q", v)
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return parts, fmt.Errorf("invalid prompt version %q", v)
		}
		parts[i] = n
	}
	return parts, nil
}

// less orders versions numerically, so "1.10.0" sorts after "1.9.0".
// Both versions must already be valid.
func (v PromptVersion) less(other PromptVersion) bool {
	a, _ := v.parse()
	b, _ := other.parse()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
