package config

import (
	"os"
	"time"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/engine"
)

// Default values for configuration.
const (
	DefaultRulesFile      = "rules.yaml"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvRulesFile = "UNITYLOG_RULES_FILE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RulesFile: DefaultRulesFile,
		Engine: EngineConfig{
			MaxLineLength:   engine.DefaultMaxLineLength,
			MultilineWindow: engine.DefaultMultilineWindow,
			ContextRadius:   engine.DefaultContextRadius,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if path := os.Getenv(EnvRulesFile); path != "" {
		c.RulesFile = path
	}
}
