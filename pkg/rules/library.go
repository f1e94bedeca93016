package rules

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Library is a user-maintained collection of rules, stored as YAML.
type Library struct {
	Rules []Rule `yaml:"rules"`
}

// LoadLibrary reads and validates a rule library file.
func LoadLibrary(_ context.Context, path string) (*Library, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided library path is expected
	if err != nil {
		return nil, fmt.Errorf("reading rule library: %w", err)
	}

	lib := &Library{}
	if err := yaml.Unmarshal(data, lib); err != nil {
		return nil, fmt.Errorf("parsing rule library: %w", err)
	}

	if err := ValidateLibrary(lib); err != nil {
		return nil, fmt.Errorf("validating rule library: %w", err)
	}

	return lib, nil
}

// ValidateLibrary checks library rules, assigns identifiers to rules that
// lack one, and applies defaults for absent optional fields.
func ValidateLibrary(lib *Library) error {
	if len(lib.Rules) == 0 {
		return errors.New("rules: at least one rule is required")
	}

	seen := make(map[string]bool, len(lib.Rules))
	for i := range lib.Rules {
		rule := &lib.Rules[i]
		if err := validateRule(rule); err != nil {
			return fmt.Errorf("rules[%d] (%s): %w", i, rule.Name, err)
		}
		if seen[rule.ID] {
			return fmt.Errorf("rules[%d] (%s): duplicate id %q", i, rule.Name, rule.ID)
		}
		seen[rule.ID] = true
	}

	return nil
}

func validateRule(rule *Rule) error {
	if rule.Name == "" {
		return errors.New("name is required")
	}
	if rule.Pattern == "" {
		return errors.New("pattern is required")
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	if rule.Severity == "" {
		rule.Severity = SeverityError
	}
	if !rule.Severity.Valid() {
		return fmt.Errorf("invalid severity %q (must be CRITICAL, ERROR, or WARNING)", rule.Severity)
	}

	return nil
}

// SaveLibrary writes the library back to disk as YAML.
func SaveLibrary(path string, lib *Library) error {
	data, err := yaml.Marshal(lib)
	if err != nil {
		return fmt.Errorf("encoding rule library: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- library files are not secrets
		return fmt.Errorf("writing rule library: %w", err)
	}

	return nil
}
