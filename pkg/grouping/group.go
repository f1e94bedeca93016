// Package grouping buckets scan issues by rule for presentation. Grouping
// and sorting are pure views over a report's issue list; the report itself
// is never mutated.
package grouping

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/engine"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// SortOrder selects how groups are ordered for display.
type SortOrder string

const (
	// SortSeverityDesc orders by severity (CRITICAL first), then by
	// member count descending.
	SortSeverityDesc SortOrder = "severity_desc"

	// SortCountDesc orders by member count descending only.
	SortCountDesc SortOrder = "count_desc"

	// SortNameAsc orders by rule name ascending, locale-aware.
	SortNameAsc SortOrder = "name_asc"
)

// ParseSortOrder validates a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortSeverityDesc, SortCountDesc, SortNameAsc:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("unknown sort order %q (use severity_desc, count_desc, or name_asc)", s)
	}
}

// IssueGroup is one rule's issues, in discovery order. Recomputed on
// demand, never persisted.
type IssueGroup struct {
	RuleID   string         `json:"ruleId"`
	RuleName string         `json:"ruleName"`
	Severity rules.Severity `json:"severity"`
	Issues   []engine.Issue `json:"issues"`
}

// Count returns the number of member issues.
func (g *IssueGroup) Count() int {
	return len(g.Issues)
}

// Group buckets issues by rule id. Groups appear in first-seen order and
// members keep discovery order. A non-empty filter is a case-insensitive
// substring test against rule name and match content, applied before
// grouping so filtered-out issues never form empty groups.
func Group(issues []engine.Issue, filter string) []*IssueGroup {
	needle := strings.ToLower(strings.TrimSpace(filter))

	index := make(map[string]*IssueGroup)
	var groups []*IssueGroup

	for _, issue := range issues {
		if needle != "" && !matchesFilter(&issue, needle) {
			continue
		}

		g, ok := index[issue.RuleID]
		if !ok {
			g = &IssueGroup{
				RuleID:   issue.RuleID,
				RuleName: issue.RuleName,
				Severity: issue.Severity,
			}
			index[issue.RuleID] = g
			groups = append(groups, g)
		}
		g.Issues = append(g.Issues, issue)
	}

	return groups
}

// MinSeverity returns the issues whose severity ranks at or above the
// floor. An empty floor keeps everything. The result is a fresh slice;
// the input is left untouched.
func MinSeverity(issues []engine.Issue, floor rules.Severity) []engine.Issue {
	if floor == "" {
		return issues
	}

	rank := floor.Rank()
	kept := make([]engine.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.Rank() >= rank {
			kept = append(kept, issue)
		}
	}
	return kept
}

func matchesFilter(issue *engine.Issue, needle string) bool {
	return strings.Contains(strings.ToLower(issue.RuleName), needle) ||
		strings.Contains(strings.ToLower(issue.MatchContent), needle)
}

// Sort returns the groups in the requested order. The sort is stable and
// operates on a copy; the input slice is left untouched.
func Sort(groups []*IssueGroup, order SortOrder) []*IssueGroup {
	sorted := make([]*IssueGroup, len(groups))
	copy(sorted, groups)

	switch order {
	case SortSeverityDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].Severity.Rank(), sorted[j].Severity.Rank()
			if a != b {
				return a > b
			}
			return sorted[i].Count() > sorted[j].Count()
		})
	case SortCountDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Count() > sorted[j].Count()
		})
	case SortNameAsc:
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(sorted, func(i, j int) bool {
			return coll.CompareString(sorted[i].RuleName, sorted[j].RuleName) < 0
		})
	}

	return sorted
}
