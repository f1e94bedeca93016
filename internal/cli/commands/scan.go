package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/internal/logging"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/config"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/engine"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/grouping"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/logfile"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/output"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ScanOptions holds command-line options for the scan command.
type ScanOptions struct {
	Config      string
	Rules       string
	Output      string
	Sort        string
	Filter      string
	MinSeverity string

	Verbose bool
	Quiet   bool
	NoColor bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan <log-file>...",
		Short: "Scan log files against the rule library",
		Long: `Scan one or more log files (glob patterns accepted) against the rule
library and report detected issues, grouped by rule.

Every line is claimed by at most one rule: rules run in weight order and
the first match wins. Rules whose patterns fail to compile are dropped for
the scan and reported as diagnostics, never fatal.

Exit codes:
  0 - No issues detected
  1 - Issues detected
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to config file (optional)")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "Path to rule library (overrides config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(grouping.SortSeverityDesc), "Group sort order (severity_desc|count_desc|name_asc)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Only report issues whose rule name or match contains this text")
	cmd.Flags().StringVar(&opts.MinSeverity, "min-severity", "", "Drop issues below this severity (CRITICAL|ERROR|WARNING)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show match context and solutions")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable colorized output")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_issues", "When to fire webhook (on_issues|always|never)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	order, err := grouping.ParseSortOrder(opts.Sort)
	if err != nil {
		return err
	}

	floor, err := parseMinSeverity(opts.MinSeverity)
	if err != nil {
		return err
	}

	cfg, lib, err := loadConfigAndRules(ctx, opts.Config, opts.Rules)
	if err != nil {
		return err
	}

	compiled, diags := rules.CompileSet(lib.Rules)
	for i := range diags {
		logging.Logger.Warnf("Dropping rule: %v", diags[i].Error())
	}
	if len(compiled) == 0 {
		return fmt.Errorf("no usable rules in %s (%d failed to compile)", cfg.RulesFile, len(diags))
	}

	scanner := engine.NewScanner(compiled, scannerOptions(cfg)...)

	files, err := logfile.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding log paths: %w", err)
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	for _, file := range files {
		text, err := logfile.Read(file)
		if err != nil {
			return err
		}

		report, err := scanner.Scan(ctx, file, text)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", file, err)
		}

		if floor != "" {
			trimmed := *report
			trimmed.Issues = grouping.MinSeverity(report.Issues, floor)
			report = &trimmed
		}

		result := output.NewScanResult(report, opts.Filter, order, diags)

		if err := formatter.Format(ctx, result, os.Stdout); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}

		// Send webhooks (errors logged but don't fail the scan)
		sendWebhooks(ctx, cfg, opts, result)

		if result.HasIssues() {
			ExitCode = 1
		}
	}

	return nil
}

// loadConfigAndRules loads the config file (or defaults) and the rule
// library it points at. An explicit rules path overrides the config.
func loadConfigAndRules(ctx context.Context, configPath, rulesPath string) (*config.Config, *rules.Library, error) {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if rulesPath != "" {
		cfg.RulesFile = rulesPath
	}

	lib, err := rules.LoadLibrary(ctx, cfg.RulesFile)
	if err != nil {
		return nil, nil, err
	}

	return cfg, lib, nil
}

// parseMinSeverity normalizes the severity floor flag. Empty means no
// floor; issues below the floor are dropped before grouping and never
// affect the exit code.
func parseMinSeverity(s string) (rules.Severity, error) {
	if s == "" {
		return "", nil
	}

	sev := rules.Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("unknown severity %q (use CRITICAL, ERROR, or WARNING)", s)
	}
	return sev, nil
}

func scannerOptions(cfg *config.Config) []engine.Option {
	return []engine.Option{
		engine.WithMaxLineLength(cfg.Engine.MaxLineLength),
		engine.WithMultilineWindow(cfg.Engine.MultilineWindow),
		engine.WithContextRadius(cfg.Engine.ContextRadius),
	}
}

func createFormatter(opts *ScanOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Color:   !opts.NoColor,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// sendWebhooks sends the scan result to all configured webhooks.
// Errors are logged but don't fail the scan.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *ScanOptions, result *output.ScanResult) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, result.HasIssues()) {
			continue
		}

		resp := client.Send(ctx, result, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			logging.Logger.Infof("Webhook %s: sent (%d, %s)", name, resp.StatusCode, resp.Duration)
		} else {
			logging.Logger.Warnf("Webhook %s: failed (%v)", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ScanOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnIssues
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and issues.
func shouldFireWebhook(trigger config.WebhookTrigger, hasIssues bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasIssues
	}
}
