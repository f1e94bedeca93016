package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/engine"
	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

func issue(ruleID, ruleName string, sev rules.Severity, line int, content string) engine.Issue {
	return engine.Issue{
		RuleID:       ruleID,
		RuleName:     ruleName,
		Severity:     sev,
		LineNumber:   line,
		MatchContent: content,
	}
}

func sampleIssues() []engine.Issue {
	return []engine.Issue{
		issue("warn", "Asset warning", rules.SeverityWarning, 1, "WARNING: missing meta file"),
		issue("cs", "Compiler error", rules.SeverityCritical, 3, "error CS0029: cannot convert"),
		issue("warn", "Asset warning", rules.SeverityWarning, 5, "WARNING: duplicate guid"),
		issue("net", "Network failure", rules.SeverityError, 7, "connection timed out"),
		issue("warn", "Asset warning", rules.SeverityWarning, 9, "WARNING: orphan asset"),
	}
}

func TestGroup_BucketsByRule(t *testing.T) {
	groups := Group(sampleIssues(), "")
	require.Len(t, groups, 3)

	// First-seen order
	assert.Equal(t, "warn", groups[0].RuleID)
	assert.Equal(t, "cs", groups[1].RuleID)
	assert.Equal(t, "net", groups[2].RuleID)

	// Members keep discovery order
	assert.Equal(t, 3, groups[0].Count())
	assert.Equal(t, []int{1, 5, 9}, []int{
		groups[0].Issues[0].LineNumber,
		groups[0].Issues[1].LineNumber,
		groups[0].Issues[2].LineNumber,
	})
}

func TestGroup_FilterAppliedBeforeGrouping(t *testing.T) {
	// Filter hits rule names and match content, case-insensitively, and
	// filtered-out issues never form empty groups.
	groups := Group(sampleIssues(), "TIMED OUT")
	require.Len(t, groups, 1)
	assert.Equal(t, "net", groups[0].RuleID)

	groups = Group(sampleIssues(), "asset warning")
	require.Len(t, groups, 1)
	assert.Equal(t, "warn", groups[0].RuleID)

	groups = Group(sampleIssues(), "no such text")
	assert.Empty(t, groups)
}

func TestMinSeverity(t *testing.T) {
	all := sampleIssues()

	kept := MinSeverity(all, rules.SeverityError)
	require.Len(t, kept, 2)
	assert.Equal(t, "cs", kept[0].RuleID)
	assert.Equal(t, "net", kept[1].RuleID)

	kept = MinSeverity(all, rules.SeverityCritical)
	require.Len(t, kept, 1)
	assert.Equal(t, "cs", kept[0].RuleID)

	// WARNING floor and empty floor both keep everything.
	assert.Len(t, MinSeverity(all, rules.SeverityWarning), 5)
	assert.Len(t, MinSeverity(all, ""), 5)

	// The input slice is untouched.
	assert.Equal(t, "warn", all[0].RuleID)
	assert.Len(t, all, 5)
}

func TestSort_SeverityDesc(t *testing.T) {
	groups := Group(sampleIssues(), "")
	sorted := Sort(groups, SortSeverityDesc)

	// CRITICAL before ERROR before WARNING, regardless of count.
	assert.Equal(t, rules.SeverityCritical, sorted[0].Severity)
	assert.Equal(t, rules.SeverityError, sorted[1].Severity)
	assert.Equal(t, rules.SeverityWarning, sorted[2].Severity)
}

func TestSort_SeverityDesc_CountBreaksTies(t *testing.T) {
	issues := []engine.Issue{
		issue("a", "a", rules.SeverityError, 1, "x"),
		issue("b", "b", rules.SeverityError, 2, "x"),
		issue("b", "b", rules.SeverityError, 3, "x"),
	}

	sorted := Sort(Group(issues, ""), SortSeverityDesc)
	assert.Equal(t, "b", sorted[0].RuleID)
	assert.Equal(t, "a", sorted[1].RuleID)
}

func TestSort_CountDesc(t *testing.T) {
	sorted := Sort(Group(sampleIssues(), ""), SortCountDesc)
	assert.Equal(t, "warn", sorted[0].RuleID)
	assert.Equal(t, 3, sorted[0].Count())
}

func TestSort_NameAsc(t *testing.T) {
	sorted := Sort(Group(sampleIssues(), ""), SortNameAsc)
	assert.Equal(t, "Asset warning", sorted[0].RuleName)
	assert.Equal(t, "Compiler error", sorted[1].RuleName)
	assert.Equal(t, "Network failure", sorted[2].RuleName)
}

func TestSort_DeterministicAndPure(t *testing.T) {
	groups := Group(sampleIssues(), "")

	first := Sort(groups, SortNameAsc)
	second := Sort(groups, SortNameAsc)
	assert.Equal(t, first, second)

	// Sorting is a view: the input slice keeps first-seen order.
	_ = Sort(groups, SortCountDesc)
	assert.Equal(t, "warn", groups[0].RuleID)
	assert.Equal(t, "cs", groups[1].RuleID)
}

func TestParseSortOrder(t *testing.T) {
	for _, valid := range []string{"severity_desc", "count_desc", "name_asc"} {
		order, err := ParseSortOrder(valid)
		require.NoError(t, err)
		assert.Equal(t, SortOrder(valid), order)
	}

	_, err := ParseSortOrder("alphabetical")
	assert.Error(t, err)
}
