// Package output provides formatting and output generation for scan results.
package output

import (
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/engine"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/grouping"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// ScanResult is the complete presentation payload for one scanned log: the
// raw report, the grouped view, and any rules dropped at compile time.
type ScanResult struct {
	// Report is the engine's output for one log.
	Report *engine.Report `json:"report"`

	// Groups is the grouped, sorted view of the report's issues.
	Groups []*grouping.IssueGroup `json:"groups,omitempty"`

	// Diagnostics lists rules dropped from this scan because their
	// patterns failed to compile.
	Diagnostics []rules.CompileError `json:"diagnostics,omitempty"`
}

// NewScanResult groups a report's issues and bundles the presentation
// payload.
func NewScanResult(report *engine.Report, filter string, order grouping.SortOrder, diags []rules.CompileError) *ScanResult {
	groups := grouping.Group(report.Issues, filter)
	return &ScanResult{
		Report:      report,
		Groups:      grouping.Sort(groups, order),
		Diagnostics: diags,
	}
}

// HasIssues returns true if the underlying report found anything.
func (r *ScanResult) HasIssues() bool {
	return r.Report != nil && r.Report.HasIssues()
}
