package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMissingCredential is returned when no API key is available for the
// selected provider.
var ErrMissingCredential = errors.New("missing API credential")

// Config holds the user's persistent configuration preferences.
type Config struct {
	LLMProvider     string `json:"llm_provider,omitempty"`     // openai, anthropic, ollama, ...
	APIKey          string `json:"api_key,omitempty"`          // The API key for the selected provider
	Model           string `json:"model,omitempty"`            // Model name
	BaseURL         string `json:"base_url,omitempty"`         // Optional override for API base URL
	Username        string `json:"username,omitempty"`         // How the assistant addresses the user
	PersonalityType string `json:"personality_type,omitempty"` // MBTI tag, steers tone only
	Generation      string `json:"generation,omitempty"`       // Generational tag
	Languages       string `json:"languages,omitempty"`
	Situation       string `json:"situation,omitempty"`
}

const configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"llm_provider": {"enum": ["openai", "anthropic", "ollama", "lmstudio", "deepseek", "groq"]},
		"api_key": {"type": "string"},
		"model": {"type": "string", "minLength": 1},
		"base_url": {"type": "string", "pattern": "^https?://"},
		"username": {"type": "string", "minLength": 1},
		"personality_type": {"type": "string", "pattern": "^[EIei][NSns][FTft][JPjp]$"},
		"generation": {"type": "string"},
		"languages": {"type": "string"},
		"situation": {"type": "string"}
	}
}`

// ValidationError lists every schema violation found in a config file.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Errors)
}

// Manager handles loading and saving the configuration.
type Manager struct {
	path string
}

// NewManager creates a configuration manager for <UserConfigDir>/couch/config.json.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}

	return &Manager{
		path: filepath.Join(configDir, "couch", "config.json"),
	}, nil
}

// NewManagerAt creates a manager for an explicit config file path.
func NewManagerAt(path string) *Manager {
	return &Manager{path: path}
}

// GetConfigPath returns the absolute path to the config file.
func (m *Manager) GetConfigPath() string {
	return m.path
}

// Load reads and validates the configuration from disk.
// If the file does not exist, it returns an empty Config and no error.
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := m.validate(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}

	return &cfg, nil
}

func (m *Manager) validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to parse config json: %w", err)
	}

	if !result.Valid() {
		var errorMsgs []string
		for _, err := range result.Errors() {
			errorMsgs = append(errorMsgs, err.String())
		}
		return &ValidationError{Path: m.path, Errors: errorMsgs}
	}

	return nil
}

// Save validates cfg and writes it to disk with restricted permissions (0600).
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := m.validate(data); err != nil {
		return err
	}

	// Write with 0600 permissions (read/write only by owner)
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set loads the file, assigns value to the setting named key (its JSON name)
// and saves the result. An empty value removes the setting.
func (m *Manager) Set(key, value string) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fields := map[string]string{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to parse config json: %w", err)
	}
	if value == "" {
		delete(fields, key)
	} else {
		fields[key] = value
	}

	// unknown keys are rejected by the schema
	data, err = json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := m.validate(data); err != nil {
		return err
	}

	var updated Config
	if err := json.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("failed to parse config json: %w", err)
	}
	return m.Save(&updated)
}

// Exists checks if the configuration file has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return !os.IsNotExist(err)
}

// Redacted returns a copy safe for printing.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "****"
	}
	return c
}
