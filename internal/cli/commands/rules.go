package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// RulesOptions holds shared options for the rules subcommands.
type RulesOptions struct {
	Config string
	Rules  string
	File   string
}

// NewRulesCommand creates the rules command with its subcommands.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and exchange the rule library",
	}

	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&opts.Rules, "rules", "", "Path to rule library (overrides config)")

	cmd.AddCommand(newRulesListCommand(opts))
	cmd.AddCommand(newRulesExportCommand(opts))
	cmd.AddCommand(newRulesImportCommand(opts))

	return cmd
}

func newRulesListCommand(opts *RulesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List library rules in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			_, lib, err := loadConfigAndRules(ctx, opts.Config, opts.Rules)
			if err != nil {
				return err
			}

			// Same ordering the scan engine uses.
			ordered := make([]rules.Rule, len(lib.Rules))
			copy(ordered, lib.Rules)
			sort.SliceStable(ordered, func(i, j int) bool {
				return ordered[i].Weight > ordered[j].Weight
			})

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WEIGHT\tSEVERITY\tNAME\tKIND\tKEYWORDS\t")
			for _, rule := range ordered {
				kind := "line"
				if rules.IsMultiline(rule.Pattern) {
					kind = "multi-line"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t\n",
					rule.Weight, rule.Severity, rule.Name, kind, len(rule.Keywords))
			}
			return w.Flush()
		},
	}
}

func newRulesExportCommand(opts *RulesOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rule library as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			_, lib, err := loadConfigAndRules(ctx, opts.Config, opts.Rules)
			if err != nil {
				return err
			}

			data, err := rules.Export(lib.Rules)
			if err != nil {
				return err
			}

			if opts.File == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(opts.File, data, 0o644); err != nil { // #nosec G306 -- exported rules are not secrets
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Printf("Exported %d rules to %s\n", len(lib.Rules), opts.File)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Write to file instead of stdout")

	return cmd
}

func newRulesImportCommand(opts *RulesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <json-file>",
		Short: "Import rules from a JSON export",
		Long: `Import rules from a JSON array in the interchange format. Entries whose
pattern already exists in the library are skipped; accepted entries receive
fresh identifiers. Malformed entries are reported but never abort the
import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			cfg, lib, err := loadConfigAndRules(ctx, opts.Config, opts.Rules)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided import path is expected
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			result, err := rules.Import(data, lib.Rules)
			if err != nil {
				return err
			}

			if len(result.Accepted) > 0 {
				lib.Rules = append(lib.Rules, result.Accepted...)
				if err := rules.SaveLibrary(cfg.RulesFile, lib); err != nil {
					return err
				}
			}

			fmt.Printf("Imported %d rules into %s (%d duplicates skipped)\n",
				len(result.Accepted), cfg.RulesFile, result.Skipped)
			for _, entryErr := range result.Errors {
				fmt.Printf("  skipped: %v\n", entryErr)
			}

			return nil
		},
	}
}

// commandContext returns the cobra command context, falling back to
// context.Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
