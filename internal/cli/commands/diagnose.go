package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/engine"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/logfile"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// DiagnoseOptions holds command-line options for the diagnose command.
type DiagnoseOptions struct {
	Config string
	Rules  string
}

// NewDiagnoseCommand creates the diagnose command.
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <log-file>",
		Short: "Explain how each rule behaved against a log file",
		Long: `Run every rule against every line of a log file and report per-rule
accounting. Unlike scan, no rule is skipped once a line is claimed, so you
can see rules that match but always lose to a higher-weight rule.

Reported per rule:
  - compile failures (rule dropped entirely)
  - lines the keyword prefilter let through
  - lines (or windows) the pattern matched
  - lines the rule actually won`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to config file (optional)")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "Path to rule library (overrides config)")

	return cmd
}

func runDiagnose(cmd *cobra.Command, args []string, opts *DiagnoseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, lib, err := loadConfigAndRules(ctx, opts.Config, opts.Rules)
	if err != nil {
		return err
	}

	compiled, diags := rules.CompileSet(lib.Rules)

	text, err := logfile.Read(args[0])
	if err != nil {
		return err
	}

	scanner := engine.NewScanner(compiled, scannerOptions(cfg)...)

	activity, err := scanner.Audit(ctx, text)
	if err != nil {
		return fmt.Errorf("auditing %s: %w", args[0], err)
	}

	fmt.Printf("Diagnosing %s against %d rules (%s)\n\n", args[0], len(lib.Rules), cfg.RulesFile)

	if len(diags) > 0 {
		fmt.Printf("Rules dropped (pattern errors): %d\n", len(diags))
		for i := range diags {
			fmt.Printf("  - %s\n", diags[i].Error())
		}
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tWEIGHT\tPREFILTER\tMATCHES\tWINS\tNOTE")
	for i := range activity {
		a := &activity[i]
		note := ""
		if a.Shadowed() {
			note = "shadowed by higher-weight rules"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			a.RuleName, a.Weight, a.PrefilterHits, a.PatternMatches, a.Wins, note)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	return nil
}
