package engine

import (
	"time"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// Issue is one matched occurrence of a rule in a scanned log. Rule fields
// are copied at match time; an Issue never references the rule set.
type Issue struct {
	// RuleID identifies the winning rule.
	RuleID string `json:"ruleId"`

	// RuleName is the winning rule's label.
	RuleName string `json:"ruleName"`

	// Severity is the winning rule's severity.
	Severity rules.Severity `json:"severity"`

	// Solution is the winning rule's remediation text, if any.
	Solution string `json:"solution,omitempty"`

	// MatchContent is the trimmed matched line, or for multi-line matches
	// the first line of the span plus a truncation marker.
	MatchContent string `json:"matchContent"`

	// LineNumber is the 1-based anchor line of the match.
	LineNumber int `json:"lineNumber"`

	// Context holds the raw lines surrounding the anchor.
	Context []string `json:"context"`
}

// Report is the complete output of one scan over one log.
type Report struct {
	// FileName is the display name of the scanned log.
	FileName string `json:"fileName"`

	// TotalLines is the number of lines the log split into. Lines skipped
	// by the length cap still count.
	TotalLines int `json:"totalLines"`

	// Timestamp is when the scan completed.
	Timestamp time.Time `json:"timestamp"`

	// DurationMs is the scan's elapsed time in milliseconds.
	DurationMs int64 `json:"durationMs"`

	// Issues are the matches in discovery (line) order. Ordering for
	// presentation is the grouping layer's concern.
	Issues []Issue `json:"issues"`
}

// HasIssues returns true if the scan found anything.
func (r *Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// assembleReport builds the Report for one finished scan. Pure aggregation:
// the issue sequence is recorded unmodified.
func assembleReport(fileName string, totalLines int, issues []Issue, elapsed time.Duration) *Report {
	return &Report{
		FileName:   fileName,
		TotalLines: totalLines,
		Timestamp:  time.Now().UTC(),
		DurationMs: elapsed.Milliseconds(),
		Issues:     issues,
	}
}
