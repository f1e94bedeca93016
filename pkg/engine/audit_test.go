package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/pkg/rules"
)

func TestAudit_CountsAndWinners(t *testing.T) {
	set := []rules.Rule{
		{ID: "high", Name: "high", Pattern: `error`, Weight: 10},
		{ID: "low", Name: "low", Pattern: `error`, Weight: 1, Keywords: []string{"error"}},
	}

	scanner := NewScanner(mustCompile(t, set))
	activity, err := scanner.Audit(context.Background(), "error one\nfine\nerror two")
	require.NoError(t, err)
	require.Len(t, activity, 2)

	high, low := activity[0], activity[1]
	assert.Equal(t, "high", high.RuleID)

	// No keywords on the high rule: every line passes the prefilter.
	assert.Equal(t, 3, high.PrefilterHits)
	assert.Equal(t, 2, high.PatternMatches)
	assert.Equal(t, 2, high.Wins)

	// The low rule matches the same lines but never wins.
	assert.Equal(t, 2, low.PrefilterHits)
	assert.Equal(t, 2, low.PatternMatches)
	assert.Equal(t, 0, low.Wins)
	assert.True(t, low.Shadowed())
	assert.False(t, high.Shadowed())
}

func TestAudit_SkipsCappedLines(t *testing.T) {
	set := []rules.Rule{{ID: "r", Name: "r", Pattern: `x`}}

	scanner := NewScanner(mustCompile(t, set), WithMaxLineLength(5))
	activity, err := scanner.Audit(context.Background(), "xxxxxxxxxx\nx")
	require.NoError(t, err)

	require.Len(t, activity, 1)
	assert.Equal(t, 1, activity[0].PatternMatches)
}
