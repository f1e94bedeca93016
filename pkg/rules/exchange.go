package rules

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// exchangeRule is the interchange shape for export/import. Identifiers are
// deliberately absent; imported rules always receive fresh ones.
type exchangeRule struct {
	Name     string   `json:"name"`
	Pattern  string   `json:"pattern"`
	Keywords []string `json:"keywords,omitempty"`
	Solution string   `json:"solution,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Weight   int      `json:"weight,omitempty"`
}

// Export encodes rules as a JSON array in the interchange format.
func Export(set []Rule) ([]byte, error) {
	out := make([]exchangeRule, 0, len(set))
	for _, rule := range set {
		out = append(out, exchangeRule{
			Name:     rule.Name,
			Pattern:  rule.Pattern,
			Keywords: rule.Keywords,
			Solution: rule.Solution,
			Severity: rule.Severity,
			Weight:   rule.Weight,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding rules: %w", err)
	}
	return data, nil
}

// ImportResult summarizes one import run.
type ImportResult struct {
	// Accepted are the new rules, with fresh identifiers assigned.
	Accepted []Rule

	// Skipped counts entries whose exact pattern already exists.
	Skipped int

	// Errors holds per-entry validation failures. An entry error never
	// aborts the rest of the import.
	Errors []error
}

// Import decodes a JSON rule array and merges it against an existing set.
// Imported data is untrusted: required fields are checked per entry and
// absent optional fields are defaulted rather than failing the batch.
// Entries whose pattern string exactly equals an existing (or earlier
// imported) pattern are skipped.
func Import(data []byte, existing []Rule) (*ImportResult, error) {
	var entries []exchangeRule
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing imported rules: %w", err)
	}

	patterns := make(map[string]bool, len(existing))
	for _, rule := range existing {
		patterns[rule.Pattern] = true
	}

	result := &ImportResult{}
	for i, entry := range entries {
		if entry.Name == "" {
			result.Errors = append(result.Errors, fmt.Errorf("entry %d: name is required", i))
			continue
		}
		if entry.Pattern == "" {
			result.Errors = append(result.Errors, fmt.Errorf("entry %d (%s): pattern is required", i, entry.Name))
			continue
		}

		if patterns[entry.Pattern] {
			result.Skipped++
			continue
		}
		patterns[entry.Pattern] = true

		severity := entry.Severity
		if !severity.Valid() {
			severity = SeverityError
		}

		result.Accepted = append(result.Accepted, Rule{
			ID:       uuid.NewString(),
			Name:     entry.Name,
			Pattern:  entry.Pattern,
			Keywords: entry.Keywords,
			Solution: entry.Solution,
			Severity: severity,
			Weight:   entry.Weight,
		})
	}

	return result, nil
}
