package engine

import (
	"context"
)

// RuleActivity summarizes how one rule behaved across a full scan. Unlike
// Scan, the audit evaluates every rule on every line, so a rule's matches
// include lines it lost to a higher-priority rule.
type RuleActivity struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Weight   int    `json:"weight"`

	// PrefilterHits counts lines the keyword screen let through.
	PrefilterHits int `json:"prefilterHits"`

	// PatternMatches counts lines (or windows) the pattern matched.
	PatternMatches int `json:"patternMatches"`

	// Wins counts lines where this rule produced the issue.
	Wins int `json:"wins"`
}

// Shadowed returns true if the rule matched somewhere but never won,
// meaning a higher-priority rule claimed every line it matched.
func (a *RuleActivity) Shadowed() bool {
	return a.PatternMatches > 0 && a.Wins == 0
}

// Audit runs the scan loop in accounting mode: every rule is evaluated on
// every eligible line and per-rule counters are collected. Results follow
// the scanner's priority order.
func (s *Scanner) Audit(ctx context.Context, text string) ([]RuleActivity, error) {
	activity := make([]RuleActivity, len(s.rules))
	for i, cr := range s.rules {
		activity[i] = RuleActivity{RuleID: cr.ID, RuleName: cr.Name, Weight: cr.Weight}
	}

	lines := SplitLines(text)
	for i, line := range lines {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if len(line) > s.maxLineLength {
			continue
		}

		winner := -1
		for r, cr := range s.rules {
			if !MayMatch(line, cr.Keywords) {
				continue
			}
			activity[r].PrefilterHits++

			if _, ok := s.match(cr, lines, i); !ok {
				continue
			}
			activity[r].PatternMatches++
			if winner == -1 {
				winner = r
			}
		}
		if winner >= 0 {
			activity[winner].Wins++
		}
	}

	return activity, nil
}
