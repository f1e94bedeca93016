package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// namedGroupSyntax matches .NET-style named capture group openers:
// (?<name>...) and (?'name'...). The name requirement keeps lookbehind
// constructs ((?<= and (?<!) out of the match.
var namedGroupSyntax = regexp.MustCompile(`\(\?(?:<[A-Za-z_][A-Za-z0-9_]*>|'[A-Za-z_][A-Za-z0-9_]*')`)

// CompiledRule is a Rule with its pattern compiled and classified.
type CompiledRule struct {
	Rule

	// Regexp is the compiled pattern. Always case-insensitive.
	Regexp *regexp.Regexp

	// Multiline is true if the pattern is meant to span lines. Multi-line
	// rules are evaluated against a lookahead window instead of a single
	// line.
	Multiline bool
}

// CompileError records a rule that could not be compiled. It is a
// diagnostic, never fatal to the batch.
type CompileError struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Detail   string `json:"error"`
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("rule %q (%s): %s", e.RuleName, e.RuleID, e.Detail)
}

// NormalizePattern rewrites .NET-style named capture groups to plain
// capture groups so patterns authored against that dialect compile here.
// Group names are not needed downstream, only the overall match.
func NormalizePattern(pattern string) string {
	return namedGroupSyntax.ReplaceAllString(pattern, "(")
}

// IsMultiline reports whether a pattern is intended to span lines, i.e. it
// contains a raw newline or the escape sequence \n.
func IsMultiline(pattern string) bool {
	return strings.Contains(pattern, "\n") || strings.Contains(pattern, `\n`)
}

// Compile validates and compiles a single rule. Matching is always
// case-insensitive. Returns a CompileError instead of a compiled rule if
// the rule is malformed or its pattern does not compile.
func Compile(rule Rule) (*CompiledRule, *CompileError) {
	if strings.TrimSpace(rule.Name) == "" {
		return nil, &CompileError{RuleID: rule.ID, RuleName: rule.Name, Detail: "name is required"}
	}
	if strings.TrimSpace(rule.Pattern) == "" {
		return nil, &CompileError{RuleID: rule.ID, RuleName: rule.Name, Detail: "pattern is required"}
	}

	re, err := regexp.Compile("(?i)" + NormalizePattern(rule.Pattern))
	if err != nil {
		return nil, &CompileError{RuleID: rule.ID, RuleName: rule.Name, Detail: err.Error()}
	}

	if !rule.Severity.Valid() {
		rule.Severity = SeverityError
	}

	return &CompiledRule{
		Rule:      rule,
		Regexp:    re,
		Multiline: IsMultiline(rule.Pattern),
	}, nil
}

// CompileSet compiles every rule in the set. Rules that fail to compile are
// dropped and reported; compilation of the remainder continues.
func CompileSet(set []Rule) ([]*CompiledRule, []CompileError) {
	compiled := make([]*CompiledRule, 0, len(set))
	var errs []CompileError

	for _, rule := range set {
		cr, cerr := Compile(rule)
		if cerr != nil {
			errs = append(errs, *cerr)
			continue
		}
		compiled = append(compiled, cr)
	}

	return compiled, errs
}
