package config

import (
	"os"
	"strings"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
)

// providerPrefix maps a provider name to its env var prefix.
func providerPrefix(provider string) string {
	if provider == "" {
		provider = "openai"
	}
	return strings.ToUpper(provider)
}

// ApplyToEnv populates environment variables from the config file.
// File values override the environment so a saved config wins over stale
// shell or .env settings.
func ApplyToEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.LLMProvider != "" {
		os.Setenv("LLM_PROVIDER", cfg.LLMProvider)
	}

	prefix := providerPrefix(os.Getenv("LLM_PROVIDER"))
	if cfg.APIKey != "" {
		os.Setenv(prefix+"_API_KEY", cfg.APIKey)
	}
	if cfg.Model != "" {
		os.Setenv(prefix+"_MODEL", cfg.Model)
	}
	if cfg.BaseURL != "" {
		os.Setenv(prefix+"_BASE_URL", cfg.BaseURL)
	}

	for key, value := range map[string]string{
		"COUCH_USERNAME":  cfg.Username,
		"COUCH_MBTI":      cfg.PersonalityType,
		"COUCH_GEN":       cfg.Generation,
		"COUCH_LANGUAGES": cfg.Languages,
		"COUCH_SITUATION": cfg.Situation,
	} {
		if value != "" {
			os.Setenv(key, value)
		}
	}
}

// DefaultUsername is used when COUCH_USERNAME is unset.
const DefaultUsername = "friend"

// ProfileFromEnv reads the user profile from COUCH_* variables. It is read
// once at startup; the profile never changes afterwards.
func ProfileFromEnv() conversation.Profile {
	name := os.Getenv("COUCH_USERNAME")
	if name == "" {
		name = DefaultUsername
	}
	return conversation.NewProfile(
		name,
		os.Getenv("COUCH_MBTI"),
		os.Getenv("COUCH_GEN"),
		os.Getenv("COUCH_LANGUAGES"),
		os.Getenv("COUCH_SITUATION"),
	)
}

// Effective reports the settings in force after env and file are merged,
// for display by "couch config show".
func Effective() Config {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	prefix := providerPrefix(provider)
	profile := ProfileFromEnv()

	return Config{
		LLMProvider:     provider,
		APIKey:          os.Getenv(prefix + "_API_KEY"),
		Model:           os.Getenv(prefix + "_MODEL"),
		BaseURL:         os.Getenv(prefix + "_BASE_URL"),
		Username:        profile.Name,
		PersonalityType: profile.PersonalityType,
		Generation:      profile.Generation,
		Languages:       profile.Languages,
		Situation:       profile.Situation,
	}
}
