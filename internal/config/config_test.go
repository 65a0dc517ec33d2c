package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvAnthropicKey, EnvOpenAIKey, EnvPort, EnvBind,
		EnvMaxIterations, EnvCallTimeout,
		EnvLogLevel, EnvLogFormat, EnvScriptPath,
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.MaxIterations != 5 {
		t.Errorf("MaxIterations = %d, want 5", cfg.MaxIterations)
	}
	if cfg.CallTimeout != 60*time.Second {
		t.Errorf("CallTimeout = %v, want 60s", cfg.CallTimeout)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults = %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Provider() != "canned" {
		t.Errorf("Provider = %s, want canned", cfg.Provider())
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvMaxIterations, "8")
	t.Setenv(EnvCallTimeout, "15s")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvAnthropicKey, "sk-ant-test")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9999 || cfg.MaxIterations != 8 || cfg.CallTimeout != 15*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("logging overrides not applied: %+v", cfg)
	}
	if cfg.Provider() != "anthropic" {
		t.Errorf("Provider = %s, want anthropic", cfg.Provider())
	}
}

func TestLoad_ProviderPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOpenAIKey, "sk-test")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider() != "openai" {
		t.Errorf("Provider = %s, want openai", cfg.Provider())
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		key, val string
	}{
		{EnvPort, "not-a-port"},
		{EnvPort, "70000"},
		{EnvPort, "-1"},
		{EnvMaxIterations, "0"},
		{EnvMaxIterations, "many"},
		{EnvCallTimeout, "soon"},
		{EnvCallTimeout, "-3s"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.val, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load should reject %s=%q", tc.key, tc.val)
			}
		})
	}
}
