package output

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/grouping"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// TextFormatter formats scan results as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the scan result as text.
func (f *TextFormatter) Format(_ context.Context, result *ScanResult, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(result, w)
	}
	return f.formatFull(result, w)
}

func (f *TextFormatter) formatQuiet(result *ScanResult, w io.Writer) error {
	fmt.Fprintf(w, "%s: %d lines scanned, %d issues in %d groups\n",
		result.Report.FileName,
		result.Report.TotalLines,
		len(result.Report.Issues),
		len(result.Groups))
	return nil
}

func (f *TextFormatter) formatFull(result *ScanResult, w io.Writer) error {
	fmt.Fprintf(w, "=== Scan Report: %s ===\n", result.Report.FileName)
	fmt.Fprintln(w)

	if len(result.Groups) == 0 {
		fmt.Fprintln(w, "No issues detected")
	}

	for _, group := range result.Groups {
		f.formatGroup(group, w)
	}

	// Compile diagnostics
	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(w, "Rules dropped (pattern errors): %d\n", len(result.Diagnostics))
		for i := range result.Diagnostics {
			fmt.Fprintf(w, "  - %s\n", result.Diagnostics[i].Error())
		}
		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d issues in %d groups, %d lines scanned\n",
		len(result.Report.Issues),
		len(result.Groups),
		result.Report.TotalLines)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Scanned at: %s\n", result.Report.Timestamp.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(w, "Duration:   %dms\n", result.Report.DurationMs)
	}

	return nil
}

func (f *TextFormatter) formatGroup(group *grouping.IssueGroup, w io.Writer) {
	fmt.Fprintf(w, "[%s] %s (%d)\n", f.severityLabel(group.Severity), group.RuleName, group.Count())

	for i := range group.Issues {
		issue := &group.Issues[i]
		fmt.Fprintf(w, "  line %d: %s\n", issue.LineNumber, issue.MatchContent)

		if f.opts.Verbose {
			for _, ctx := range issue.Context {
				fmt.Fprintf(w, "    | %s\n", ctx)
			}
			if issue.Solution != "" {
				fmt.Fprintf(w, "    solution: %s\n", issue.Solution)
			}
		}
	}

	fmt.Fprintln(w)
}

func (f *TextFormatter) severityLabel(sev rules.Severity) string {
	if !f.opts.Color {
		return string(sev)
	}

	switch sev {
	case rules.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint(string(sev))
	case rules.SeverityError:
		return color.New(color.FgRed).Sprint(string(sev))
	case rules.SeverityWarning:
		return color.New(color.FgYellow).Sprint(string(sev))
	default:
		return string(sev)
	}
}
