package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LoadMissingFile(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
	assert.False(t, m.Exists())
}

func TestManager_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "couch", "config.json")
	m := NewManagerAt(path)

	want := &Config{
		LLMProvider:     "anthropic",
		APIKey:          "secret",
		Model:           "claude-test",
		Username:        "Sam",
		PersonalityType: "INTP",
		Generation:      "GenX",
	}
	require.NoError(t, m.Save(want))
	assert.True(t, m.Exists())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManager_LoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"llm_provider": "kimi", "personality_type": "XYZW", "colour": "blue"}`), 0600))

	_, err := NewManagerAt(path).Load()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	assert.Equal(t, path, vErr.Path)
	assert.Len(t, vErr.Errors, 3)
}

func TestManager_LoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model": `), 0600))

	_, err := NewManagerAt(path).Load()
	assert.Error(t, err)
}

func TestManager_Set(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "couch", "config.json"))

	require.NoError(t, m.Set("llm_provider", "anthropic"))
	require.NoError(t, m.Set("username", "Sam"))
	require.NoError(t, m.Set("username", "Alex"))

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{LLMProvider: "anthropic", Username: "Alex"}, cfg)

	require.NoError(t, m.Set("username", ""))
	cfg, err = m.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Username)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
}

func TestManager_SetRejects(t *testing.T) {
	tests := []struct {
		name       string
		key, value string
	}{
		{"unknown key", "colour", "blue"},
		{"bad provider", "llm_provider", "kimi"},
		{"bad personality", "personality_type", "XYZW"},
		{"bad base url", "base_url", "localhost:1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
			err := m.Set(tt.key, tt.value)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.False(t, m.Exists())
		})
	}
}

func TestManager_SaveValidates(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	err := m.Save(&Config{PersonalityType: "nope"})
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.False(t, m.Exists())
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Config{APIKey: "secret", Model: "gpt-4"}
	red := cfg.Redacted()
	assert.Equal(t, "****", red.APIKey)
	assert.Equal(t, "gpt-4", red.Model)
	assert.Equal(t, "secret", cfg.APIKey)

	assert.Empty(t, Config{}.Redacted().APIKey)
}
