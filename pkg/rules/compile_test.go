package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"plain pattern untouched", `error CS\d{4}`, `error CS\d{4}`},
		{"angle named group flattened", `error (?<code>CS\d{4})`, `error (CS\d{4})`},
		{"quote named group flattened", `error (?'code'CS\d{4})`, `error (CS\d{4})`},
		{"multiple groups", `(?<a>\w+)=(?<b>\w+)`, `(\w+)=(\w+)`},
		{"go named group untouched", `(?P<code>CS\d{4})`, `(?P<code>CS\d{4})`},
		{"lookbehind syntax untouched", `(?<=foo)bar`, `(?<=foo)bar`},
		{"negative lookbehind untouched", `(?<!foo)bar`, `(?<!foo)bar`},
		{"non-capturing untouched", `(?:abc)`, `(?:abc)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePattern(tt.pattern))
		})
	}
}

func TestIsMultiline(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"plain", `error CS\d{4}`, false},
		{"escaped newline", `Exception.*\n\s+at`, true},
		{"raw newline", "header\ndetail", true},
		{"newline class is not a newline", `[\r\t]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMultiline(tt.pattern))
		})
	}
}

func TestCompile_CaseInsensitive(t *testing.T) {
	cr, cerr := Compile(Rule{ID: "r", Name: "r", Pattern: `ERROR`})
	require.Nil(t, cerr)
	assert.True(t, cr.Regexp.MatchString("some error here"))
}

func TestCompile_NamedGroupsAccepted(t *testing.T) {
	// .NET-authored pattern: stdlib would reject the bare (?<...>) form.
	cr, cerr := Compile(Rule{ID: "r", Name: "r", Pattern: `error (?<code>CS\d{4}): (?<msg>.*)`})
	require.Nil(t, cerr)
	assert.True(t, cr.Regexp.MatchString("error CS0029: cannot convert"))
}

func TestCompile_MissingFields(t *testing.T) {
	_, cerr := Compile(Rule{ID: "r", Pattern: `x`})
	require.NotNil(t, cerr)
	assert.Contains(t, cerr.Detail, "name")

	_, cerr = Compile(Rule{ID: "r", Name: "r"})
	require.NotNil(t, cerr)
	assert.Contains(t, cerr.Detail, "pattern")
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, cerr := Compile(Rule{ID: "bad", Name: "broken", Pattern: `(unbalanced`})
	require.NotNil(t, cerr)
	assert.Equal(t, "bad", cerr.RuleID)
	assert.Equal(t, "broken", cerr.RuleName)
	assert.NotEmpty(t, cerr.Detail)
}

func TestCompile_DefaultsSeverity(t *testing.T) {
	cr, cerr := Compile(Rule{ID: "r", Name: "r", Pattern: `x`})
	require.Nil(t, cerr)
	assert.Equal(t, SeverityError, cr.Severity)
}

func TestCompileSet_ContinuesPastFailures(t *testing.T) {
	set := []Rule{
		{ID: "a", Name: "a", Pattern: `ok`},
		{ID: "b", Name: "b", Pattern: `(bad`},
		{ID: "c", Name: "c", Pattern: `also ok`},
	}

	compiled, errs := CompileSet(set)
	require.Len(t, compiled, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, "b", errs[0].RuleID)
	assert.Equal(t, "a", compiled[0].ID)
	assert.Equal(t, "c", compiled[1].ID)
}

func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityError.Rank())
	assert.Greater(t, SeverityError.Rank(), SeverityWarning.Rank())
	assert.Equal(t, 0, Severity("BOGUS").Rank())
	assert.False(t, Severity("BOGUS").Valid())
}
