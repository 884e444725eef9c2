package providers

import (
	"fmt"
	"os"

	"github.com/ChamsBouzaiene/couch/internal/config"
	"github.com/ChamsBouzaiene/couch/internal/engine"
)

// MissingCredentialError names the env var the selected provider needs.
// It matches config.ErrMissingCredential with errors.Is.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: %s not set", config.ErrMissingCredential, e.EnvVar)
}

func (e *MissingCredentialError) Unwrap() error { return config.ErrMissingCredential }

// openAICompatible describes a backend reached through the OpenAI SDK.
type openAICompatible struct {
	prefix       string // env var prefix, e.g. "DEEPSEEK"
	defaultModel string
	defaultURL   string
	keyRequired  bool
	defaultKey   string
}

var compatibleBackends = map[string]openAICompatible{
	"openai":   {prefix: "OPENAI", defaultModel: "gpt-4", keyRequired: true},
	"deepseek": {prefix: "DEEPSEEK", defaultModel: "deepseek-chat", defaultURL: "https://api.deepseek.com/v1", keyRequired: true},
	"groq":     {prefix: "GROQ", defaultModel: "llama-3.1-70b-versatile", defaultURL: "https://api.groq.com/openai/v1", keyRequired: true},
	"lmstudio": {prefix: "LMSTUDIO", defaultModel: "local-model", defaultURL: "http://localhost:1234/v1", defaultKey: "lm-studio"},
	"ollama":   {prefix: "OLLAMA", defaultModel: "llama3.1", defaultURL: "http://localhost:11434/v1", defaultKey: "ollama"},
}

// NewLLMClientFromEnv creates the completion client selected by LLM_PROVIDER
// (default "openai") and returns it with its model name. The client is meant
// to be created once and reused for every call.
func NewLLMClientFromEnv() (engine.LLMClient, string, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	if provider == "anthropic" {
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, "", &MissingCredentialError{EnvVar: "ANTHROPIC_API_KEY"}
		}

		modelName := envOrDefault("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest")

		client, err := NewAnthropicClient(apiKey, modelName, os.Getenv("ANTHROPIC_BASE_URL"))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Anthropic client: %w", err)
		}
		return client, modelName, nil
	}

	backend, ok := compatibleBackends[provider]
	if !ok {
		return nil, "", fmt.Errorf("unknown LLM_PROVIDER: %s (supported: %s)", provider, SupportedProviders())
	}

	keyVar := backend.prefix + "_API_KEY"
	apiKey := os.Getenv(keyVar)
	if apiKey == "" {
		if backend.keyRequired {
			return nil, "", &MissingCredentialError{EnvVar: keyVar}
		}
		// local servers accept any key
		apiKey = backend.defaultKey
	}

	modelName := envOrDefault(backend.prefix+"_MODEL", backend.defaultModel)
	baseURL := envOrDefault(backend.prefix+"_BASE_URL", backend.defaultURL)

	client, err := NewOpenAIClient(apiKey, modelName, baseURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s client: %w", provider, err)
	}
	client.provider = provider

	return client, modelName, nil
}

// SupportedProviders lists the accepted LLM_PROVIDER values.
func SupportedProviders() string {
	return "openai, anthropic, deepseek, groq, lmstudio, ollama"
}

// CredentialEnvVar returns the env var holding the API key for provider.
func CredentialEnvVar(provider string) string {
	if provider == "" {
		provider = "openai"
	}
	if provider == "anthropic" {
		return "ANTHROPIC_API_KEY"
	}
	if backend, ok := compatibleBackends[provider]; ok {
		return backend.prefix + "_API_KEY"
	}
	return ""
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
