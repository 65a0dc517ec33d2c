package main

import (
	"haci/internal/config"
	"haci/internal/harness"
	"haci/internal/llm"
	"haci/internal/logging"
	"haci/internal/tools"
)

// setup loads configuration, initializes logging, and builds the
// runner template shared by every command.
func setup() (*config.Config, harness.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, harness.Config{}, err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	adapter, err := llm.Select(cfg.AnthropicAPIKey, cfg.OpenAIAPIKey, cfg.ScriptPath)
	if err != nil {
		return nil, harness.Config{}, err
	}

	return cfg, harness.Config{
		Adapter:       adapter,
		Registry:      tools.NewMockRegistry(),
		MaxIterations: cfg.MaxIterations,
		CallTimeout:   cfg.CallTimeout,
	}, nil
}
