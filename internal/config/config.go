// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAnthropicKey  = "ANTHROPIC_API_KEY"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvPort          = "DEMO_PORT"
	EnvBind          = "DEMO_BIND"
	EnvMaxIterations = "HACI_MAX_ITERATIONS"
	EnvCallTimeout   = "HACI_CALL_TIMEOUT"
	EnvLogLevel      = "HACI_LOG_LEVEL"
	EnvLogFormat     = "HACI_LOG_FORMAT"
	EnvScriptPath    = "HACI_SCRIPT"
)

// Config is the resolved runtime configuration.
type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// Port serves the web demo. Default 8080. BindAddr restricts the
	// listen interface; empty means all interfaces.
	Port     int
	BindAddr string

	// MaxIterations caps investigation loop passes. Default 5.
	MaxIterations int
	// CallTimeout bounds each model and tool call. Default 60s.
	CallTimeout time.Duration

	// LogLevel and LogFormat feed the logging package. Defaults:
	// info, text.
	LogLevel  string
	LogFormat string

	// ScriptPath overrides the embedded canned script when set.
	ScriptPath string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		AnthropicAPIKey: os.Getenv(EnvAnthropicKey),
		OpenAIAPIKey:    os.Getenv(EnvOpenAIKey),
		Port:            8080,
		BindAddr:        os.Getenv(EnvBind),
		MaxIterations:   5,
		CallTimeout:     60 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
		ScriptPath:      os.Getenv(EnvScriptPath),
	}

	if v := os.Getenv(EnvPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("config: %s=%q is not a valid port", EnvPort, v)
		}
		cfg.Port = p
	}
	if v := os.Getenv(EnvMaxIterations); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: %s=%q must be a positive integer", EnvMaxIterations, v)
		}
		cfg.MaxIterations = n
	}
	if v := os.Getenv(EnvCallTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: %s=%q must be a positive duration", EnvCallTimeout, v)
		}
		cfg.CallTimeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	return cfg, nil
}

// Provider returns the adapter provider code Load's keys select,
// mirroring the adapter selection order.
func (c *Config) Provider() string {
	switch {
	case c.AnthropicAPIKey != "":
		return "anthropic"
	case c.OpenAIAPIKey != "":
		return "openai"
	default:
		return "canned"
	}
}
