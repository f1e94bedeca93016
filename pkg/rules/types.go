// Package rules defines pattern rules, their compiler, and the rule library
// file format.
package rules

// Severity classifies how serious a detected issue is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityError    Severity = "ERROR"
	SeverityWarning  Severity = "WARNING"
)

// Rank returns the ordinal used for severity ordering. Higher is more severe.
// Unknown severities rank below WARNING.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Valid returns true if the severity is one of the recognized levels.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// Rule is a single author-defined pattern definition.
type Rule struct {
	// ID uniquely identifies the rule within a library. Stable across edits.
	ID string `yaml:"id" json:"id"`

	// Name is the human-readable label shown in reports.
	Name string `yaml:"name" json:"name"`

	// Pattern is the regular expression to match. A literal or escaped
	// newline in the pattern marks it as a multi-line rule.
	Pattern string `yaml:"pattern" json:"pattern"`

	// Keywords are plain substrings used to prefilter candidate lines
	// before the pattern runs. Empty means the pattern always runs.
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	// Severity ranks the issue (CRITICAL > ERROR > WARNING).
	Severity Severity `yaml:"severity,omitempty" json:"severity"`

	// Weight is the rule's priority. When several rules match the same
	// line, the highest weight wins; ties keep library order.
	Weight int `yaml:"weight,omitempty" json:"weight"`

	// Solution is free-form remediation text, opaque to the engine.
	Solution string `yaml:"solution,omitempty" json:"solution,omitempty"`
}
