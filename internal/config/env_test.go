package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"GROQ_API_KEY", "GROQ_MODEL",
		"COUCH_USERNAME", "COUCH_MBTI", "COUCH_GEN", "COUCH_LANGUAGES", "COUCH_SITUATION",
	} {
		t.Setenv(key, "")
	}
}

func TestApplyToEnv_FileOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("COUCH_USERNAME", "FromEnv")

	ApplyToEnv(&Config{
		LLMProvider: "groq",
		APIKey:      "gsk-file",
		Model:       "llama-file",
		Username:    "FromFile",
	})

	assert.Equal(t, "groq", os.Getenv("LLM_PROVIDER"))
	assert.Equal(t, "gsk-file", os.Getenv("GROQ_API_KEY"))
	assert.Equal(t, "llama-file", os.Getenv("GROQ_MODEL"))
	assert.Equal(t, "FromFile", os.Getenv("COUCH_USERNAME"))
	assert.Empty(t, os.Getenv("OPENAI_API_KEY"))
}

func TestApplyToEnv_DefaultsToOpenAIPrefix(t *testing.T) {
	clearEnv(t)

	ApplyToEnv(&Config{APIKey: "sk-file"})
	assert.Equal(t, "sk-file", os.Getenv("OPENAI_API_KEY"))

	ApplyToEnv(nil)
}

func TestProfileFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("COUCH_USERNAME", "Sam")
	t.Setenv("COUCH_MBTI", "INTP")
	t.Setenv("COUCH_GEN", "GenX")

	p := ProfileFromEnv()
	assert.Equal(t, "Sam", p.Name)
	assert.Equal(t, "INTP", p.PersonalityType)
	assert.Equal(t, "GenX", p.Generation)
	assert.Equal(t, "English", p.Languages)
	assert.Equal(t, "Sam is feeling down and needs a friend to talk to.", p.Situation)
}

func TestProfileFromEnv_DefaultName(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, DefaultUsername, ProfileFromEnv().Name)
}

func TestEffective(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("COUCH_USERNAME", "Sam")

	cfg := Effective()
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "Sam", cfg.Username)
	assert.Equal(t, "****", cfg.Redacted().APIKey)
}
