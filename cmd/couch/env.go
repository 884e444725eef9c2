package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ChamsBouzaiene/couch/internal/config"
	"github.com/ChamsBouzaiene/couch/internal/engine"
	"github.com/ChamsBouzaiene/couch/internal/providers"
)

type runtimeEnv struct {
	client   engine.LLMClient
	model    string
	provider string
}

func configManager(configPath string) (*config.Manager, error) {
	if configPath != "" {
		return config.NewManagerAt(configPath), nil
	}
	return config.NewManager()
}

// loadConfig returns the manager for configPath (or the default location)
// and applies the file's values over the environment.
func loadConfig(configPath string, logger *slog.Logger) (*config.Manager, error) {
	cfgManager, err := configManager(configPath)
	if err != nil {
		return nil, err
	}

	userConfig, err := cfgManager.Load()
	if err != nil {
		return nil, err
	}
	if cfgManager.Exists() {
		logger.Debug("user config loaded", "path", cfgManager.GetConfigPath())
	}

	config.ApplyToEnv(userConfig)
	return cfgManager, nil
}

// prepareRuntime resolves configuration and creates the completion client
// once for the whole run.
func prepareRuntime(configPath string, logger *slog.Logger) (*runtimeEnv, error) {
	if _, err := loadConfig(configPath, logger); err != nil {
		return nil, err
	}

	client, model, err := providers.NewLLMClientFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	return &runtimeEnv{client: client, model: model, provider: provider}, nil
}
