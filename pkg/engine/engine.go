// Package engine implements the rule-matching scan over build and runtime
// logs. A Scanner takes a compiled rule set and log text and produces a
// Report; it performs no I/O and holds no shared mutable state, so
// independent scans may run concurrently.
package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

// Engine defaults. Window and radius are heuristics carried from the
// original tool; they are configurable rather than fixed.
const (
	// DefaultMaxLineLength is the per-line cap. Longer lines are skipped
	// for matching but still count toward totals and context windows.
	DefaultMaxLineLength = 2000

	// DefaultMultilineWindow is how many lines (inclusive of the anchor)
	// a multi-line pattern may span.
	DefaultMultilineWindow = 10

	// DefaultContextRadius is the number of lines captured on each side
	// of a match.
	DefaultContextRadius = 3
)

// TruncationMarker is appended to the first line of a multi-line match in
// place of the rest of the span.
const TruncationMarker = " ..."

// Scanner matches an ordered rule set against log text.
type Scanner struct {
	rules []*rules.CompiledRule // priority order: weight desc, stable

	maxLineLength   int
	multilineWindow int
	contextRadius   int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxLineLength overrides the per-line length cap.
func WithMaxLineLength(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxLineLength = n
		}
	}
}

// WithMultilineWindow overrides the multi-line lookahead window.
func WithMultilineWindow(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.multilineWindow = n
		}
	}
}

// WithContextRadius overrides the context window radius.
func WithContextRadius(n int) Option {
	return func(s *Scanner) {
		if n >= 0 {
			s.contextRadius = n
		}
	}
}

// NewScanner creates a scanner over the given compiled rules. The rule
// slice is copied before sorting so the caller's ordering is preserved.
func NewScanner(compiled []*rules.CompiledRule, opts ...Option) *Scanner {
	s := &Scanner{
		maxLineLength:   DefaultMaxLineLength,
		multilineWindow: DefaultMultilineWindow,
		contextRadius:   DefaultContextRadius,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rules = sortByPriority(compiled)
	return s
}

// Rules returns the scanner's rule set in priority order.
func (s *Scanner) Rules() []*rules.CompiledRule {
	return s.rules
}

// sortByPriority orders rules by weight descending. The sort is stable:
// equal-weight rules keep their original relative order, which is the
// tie-break for conflict resolution.
func sortByPriority(set []*rules.CompiledRule) []*rules.CompiledRule {
	ordered := make([]*rules.CompiledRule, len(set))
	copy(ordered, set)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})
	return ordered
}

// SplitLines splits log text on newlines, tolerating an optional trailing
// carriage return per line. Empty input yields a single empty line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Scan matches every line of the log against the rule set and assembles a
// Report. At most one issue is produced per line: rules are tried in
// priority order and the first match wins.
func (s *Scanner) Scan(ctx context.Context, fileName, text string) (*Report, error) {
	start := time.Now()
	lines := SplitLines(text)
	issues := make([]Issue, 0)

	for i, line := range lines {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Defensive bound against pathological input.
		if len(line) > s.maxLineLength {
			continue
		}

		for _, cr := range s.rules {
			if !MayMatch(line, cr.Keywords) {
				continue
			}

			content, ok := s.match(cr, lines, i)
			if !ok {
				continue
			}

			issues = append(issues, Issue{
				RuleID:       cr.ID,
				RuleName:     cr.Name,
				Severity:     cr.Severity,
				Solution:     cr.Solution,
				MatchContent: content,
				LineNumber:   i + 1,
				Context:      ContextWindow(lines, i, s.contextRadius),
			})
			break
		}
	}

	return assembleReport(fileName, len(lines), issues, time.Since(start)), nil
}

// match attempts one rule at one anchor line and derives the match content.
func (s *Scanner) match(cr *rules.CompiledRule, lines []string, anchor int) (string, bool) {
	if !cr.Multiline {
		line := lines[anchor]
		if !cr.Regexp.MatchString(line) {
			return "", false
		}
		return strings.TrimSpace(line), true
	}

	end := anchor + s.multilineWindow
	if end > len(lines) {
		end = len(lines)
	}
	window := strings.Join(lines[anchor:end], "\n")

	loc := cr.Regexp.FindStringIndex(window)
	if loc == nil {
		return "", false
	}

	// The full span is not meant for inline display; keep its first line.
	span := window[loc[0]:loc[1]]
	if idx := strings.IndexByte(span, '\n'); idx >= 0 {
		span = span[:idx]
	}
	return strings.TrimSpace(span) + TruncationMarker, true
}
