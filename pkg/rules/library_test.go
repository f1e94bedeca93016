package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLibrary_Valid(t *testing.T) {
	content := `
rules:
  - id: cs-error
    name: Compiler error
    pattern: 'error CS\d{4}: (.*)'
    keywords: ["error CS"]
    severity: CRITICAL
    weight: 100
    solution: Fix the reported compile error.
  - name: Generic failure
    pattern: '.*failed.*'
    keywords: ["failed"]
`
	path := writeTempFile(t, "rules.yaml", content)

	lib, err := LoadLibrary(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lib.Rules, 2)

	assert.Equal(t, "cs-error", lib.Rules[0].ID)
	assert.Equal(t, SeverityCritical, lib.Rules[0].Severity)
	assert.Equal(t, 100, lib.Rules[0].Weight)

	// Absent optional fields are defaulted, missing ids assigned.
	assert.NotEmpty(t, lib.Rules[1].ID)
	assert.Equal(t, SeverityError, lib.Rules[1].Severity)
	assert.Equal(t, 0, lib.Rules[1].Weight)
}

func TestLoadLibrary_FileNotFound(t *testing.T) {
	_, err := LoadLibrary(context.Background(), "/nonexistent/rules.yaml")
	assert.Error(t, err)
}

func TestLoadLibrary_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "rules.yaml", "rules: [broken")
	_, err := LoadLibrary(context.Background(), path)
	assert.Error(t, err)
}

func TestValidateLibrary_Errors(t *testing.T) {
	tests := []struct {
		name string
		lib  Library
		want string
	}{
		{"no rules", Library{}, "at least one rule"},
		{"missing name", Library{Rules: []Rule{{Pattern: `x`}}}, "name is required"},
		{"missing pattern", Library{Rules: []Rule{{Name: "r"}}}, "pattern is required"},
		{
			"duplicate id",
			Library{Rules: []Rule{
				{ID: "dup", Name: "a", Pattern: `x`},
				{ID: "dup", Name: "b", Pattern: `y`},
			}},
			"duplicate id",
		},
		{
			"invalid severity",
			Library{Rules: []Rule{{Name: "r", Pattern: `x`, Severity: "FATAL"}}},
			"invalid severity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLibrary(&tt.lib)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveLibrary_RoundTrip(t *testing.T) {
	lib := &Library{Rules: []Rule{
		{ID: "r1", Name: "rule one", Pattern: `error`, Severity: SeverityWarning, Weight: 7},
	}}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, SaveLibrary(path, lib))

	loaded, err := LoadLibrary(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, lib.Rules, loaded.Rules)
}
