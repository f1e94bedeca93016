// Package config provides configuration loading and validation for the
// unitylog scanner.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// RulesFile is the path to the YAML rule library.
	RulesFile string `yaml:"rules_file"`

	// Engine holds scan engine tunables.
	Engine EngineConfig `yaml:"engine"`

	// Webhooks optionally receive scan reports.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// EngineConfig holds scan engine tunables. The multi-line window in
// particular is a heuristic carried from the original tool, exposed here
// for empirical tuning.
type EngineConfig struct {
	// MaxLineLength is the per-line cap; longer lines are skipped for
	// matching.
	MaxLineLength int `yaml:"max_line_length,omitempty"`

	// MultilineWindow is the lookahead (in lines, inclusive of the
	// anchor) given to multi-line patterns.
	MultilineWindow int `yaml:"multiline_window,omitempty"`

	// ContextRadius is the number of lines captured on each side of a
	// match. Zero disables context capture.
	ContextRadius int `yaml:"context_radius,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnIssues fires only when issues are detected (default).
	WebhookTriggerOnIssues WebhookTrigger = "on_issues"
	// WebhookTriggerAlways fires after every scan.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending scan reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
