package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &RulesOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the config and rule library",
		Long: `Validate the configuration and rule library without scanning.

Checks:
  - YAML syntax
  - Required fields
  - Duplicate rule identifiers
  - Pattern compilation (same compiler the scan uses)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to config file (optional)")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "Path to rule library (overrides config)")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *RulesOptions) error {
	ctx := commandContext(cmd)

	cfg, lib, err := loadConfigAndRules(ctx, opts.Config, opts.Rules)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Validating %s...\n", cfg.RulesFile)

	compiled, diags := rules.CompileSet(lib.Rules)

	multiline := 0
	for _, cr := range compiled {
		if cr.Multiline {
			multiline++
		}
	}

	fmt.Printf("\nRules:      %d\n", len(lib.Rules))
	fmt.Printf("Compiled:   %d (%d multi-line)\n", len(compiled), multiline)

	if len(diags) > 0 {
		fmt.Printf("\nPattern errors:\n")
		for i := range diags {
			fmt.Printf("  - %s\n", diags[i].Error())
		}
		return fmt.Errorf("%d rules failed to compile", len(diags))
	}

	fmt.Printf("\nRule library valid!\n")
	return nil
}
