package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/engine"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/grouping"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/logfile"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/output"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// TryOptions holds command-line options for the try command.
type TryOptions struct {
	Pattern  string
	Keywords []string
	Severity string
	Window   int

	Output  string
	Verbose bool
	NoColor bool
}

// NewTryCommand creates the try command.
func NewTryCommand() *cobra.Command {
	opts := &TryOptions{}

	cmd := &cobra.Command{
		Use:   "try --pattern <regex> <log-file>",
		Short: "Try a single ad-hoc rule against a log file",
		Long: `Scan a log file with one ad-hoc rule, without touching the rule
library. Useful while drafting a pattern before adding it to the library.

The rule goes through the same compile and scan path as library rules: the
pattern is case-insensitive, a literal or escaped newline makes it
multi-line, and keywords prefilter candidate lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTry(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "", "Pattern to try (required)")
	cmd.Flags().StringSliceVarP(&opts.Keywords, "keyword", "k", nil, "Prefilter keyword (can be repeated)")
	cmd.Flags().StringVar(&opts.Severity, "severity", string(rules.SeverityError), "Severity to assign (CRITICAL|ERROR|WARNING)")
	cmd.Flags().IntVar(&opts.Window, "window", engine.DefaultMultilineWindow, "Lookahead window for multi-line patterns")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show match context")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable colorized output")

	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func runTry(cmd *cobra.Command, args []string, opts *TryOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	severity := rules.Severity(opts.Severity)
	if !severity.Valid() {
		return fmt.Errorf("invalid severity %q (must be CRITICAL, ERROR, or WARNING)", opts.Severity)
	}

	rule := rules.Rule{
		ID:       "try",
		Name:     "ad-hoc pattern",
		Pattern:  opts.Pattern,
		Keywords: opts.Keywords,
		Severity: severity,
	}

	compiled, cerr := rules.Compile(rule)
	if cerr != nil {
		return fmt.Errorf("pattern did not compile: %s", cerr.Detail)
	}

	text, err := logfile.Read(args[0])
	if err != nil {
		return err
	}

	scanner := engine.NewScanner(
		[]*rules.CompiledRule{compiled},
		engine.WithMultilineWindow(opts.Window),
	)

	report, err := scanner.Scan(ctx, args[0], text)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}

	formatter, err := createFormatter(&ScanOptions{
		Output:  opts.Output,
		Verbose: opts.Verbose,
		NoColor: opts.NoColor,
	})
	if err != nil {
		return err
	}

	result := output.NewScanResult(report, "", grouping.SortSeverityDesc, nil)
	if err := formatter.Format(ctx, result, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if result.HasIssues() {
		ExitCode = 1
	}

	return nil
}
