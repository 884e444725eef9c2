package prompts

import (
	"strings"
	"testing"
)

func TestPromptBuilder_Build(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&Prompt{ID: "greet", Version: PromptV1, Content: "Hello {{name}}, you are {{mood}}."}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	b, err := NewPromptBuilder(registry, "greet", PromptV1)
	if err != nil {
		t.Fatalf("NewPromptBuilder failed: %v", err)
	}

	got, err := b.SetVariable("name", "{{mood}}").SetVariable("mood", "fine").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// substituted values are not expanded again
	want := "Hello {{mood}}, you are fine."
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestPromptBuilder_UnsetVariable(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&Prompt{ID: "greet", Version: PromptV1, Content: "Hello {{name}} from {{place}}"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	b, err := NewPromptBuilder(registry, "greet", LatestVersion)
	if err != nil {
		t.Fatalf("NewPromptBuilder failed: %v", err)
	}
	_, err = b.SetVariable("name", "Sam").Build()
	if err == nil || !strings.Contains(err.Error(), "place") {
		t.Errorf("Build() error = %v, want unset variable \"place\"", err)
	}
}

func TestPromptBuilder_UnknownPrompt(t *testing.T) {
	if _, err := NewPromptBuilder(NewRegistry(), "missing", LatestVersion); err == nil {
		t.Error("expected error for unregistered prompt")
	}
}

func TestDefaultRegistry_BuiltIns(t *testing.T) {
	for _, id := range []string{PersonaPromptID, SummaryPromptID} {
		p, err := DefaultRegistry().Resolve(id, LatestVersion)
		if err != nil {
			t.Fatalf("built-in prompt %q not registered: %v", id, err)
		}
		if p.Version != PromptV1 {
			t.Errorf("latest %s version = %s, want %s", id, p.Version, PromptV1)
		}
	}
}

func TestRegistry_ResolveLatest(t *testing.T) {
	tests := []struct {
		name    string
		prompts []*Prompt
		want    string
	}{
		{
			name: "newer version wins",
			prompts: []*Prompt{
				{ID: "p", Version: "1.0.0", Content: "v1"},
				{ID: "p", Version: "2.0.0", Content: "v2"},
			},
			want: "v2",
		},
		{
			name: "numeric ordering",
			prompts: []*Prompt{
				{ID: "p", Version: "1.10.0", Content: "v1.10"},
				{ID: "p", Version: "1.9.0", Content: "v1.9"},
			},
			want: "v1.10",
		},
		{
			name: "skips deprecated",
			prompts: []*Prompt{
				{ID: "p", Version: "1.0.0", Content: "old"},
				{ID: "p", Version: "2.0.0", Content: "new", Deprecated: true},
			},
			want: "old",
		},
		{
			name: "all deprecated falls back to newest",
			prompts: []*Prompt{
				{ID: "p", Version: "1.0.0", Content: "old", Deprecated: true},
				{ID: "p", Version: "1.1.0", Content: "newer", Deprecated: true},
			},
			want: "newer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			for _, p := range tt.prompts {
				if err := registry.Register(p); err != nil {
					t.Fatalf("Register failed: %v", err)
				}
			}
			got, err := registry.Resolve("p", LatestVersion)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got.Content != tt.want {
				t.Errorf("Resolve() = %q, want %q", got.Content, tt.want)
			}
		})
	}
}

func TestRegistry_NewVersionReachesBuilder(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register(&Prompt{ID: "persona", Version: PromptV1, Content: "old {{name}}"})
	_ = registry.Register(&Prompt{ID: "persona", Version: "1.1.0", Content: "new {{name}}"})

	b, err := NewPromptBuilder(registry, "persona", LatestVersion)
	if err != nil {
		t.Fatalf("NewPromptBuilder failed: %v", err)
	}
	got, _ := b.SetVariable("name", "Sam").Build()
	if got != "new Sam" {
		t.Errorf("Build() = %q, want the newest version", got)
	}
}

func TestRegistry_RegisterErrors(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&Prompt{ID: "p", Version: PromptV1}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name string
		p    *Prompt
	}{
		{"nil", nil},
		{"no id", &Prompt{Version: PromptV1}},
		{"bad version", &Prompt{ID: "q", Version: "v2"}},
		{"duplicate", &Prompt{ID: "p", Version: PromptV1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := registry.Register(tt.p); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := registry.Resolve("p", "9.9.9"); err == nil {
		t.Error("expected error for unknown version")
	}
}
