package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWindow(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

	tests := []struct {
		name   string
		anchor int
		radius int
		want   []string
	}{
		{"middle", 5, 3, []string{"2", "3", "4", "5", "6", "7", "8"}},
		{"clamped at start", 1, 3, []string{"0", "1", "2", "3", "4"}},
		{"clamped at end", 8, 3, []string{"5", "6", "7", "8", "9"}},
		{"first line", 0, 3, []string{"0", "1", "2", "3"}},
		{"last line", 9, 3, []string{"6", "7", "8", "9"}},
		{"radius zero", 4, 0, []string{"4"}},
		{"radius exceeds file", 5, 100, lines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContextWindow(lines, tt.anchor, tt.radius))
		})
	}
}

func TestContextWindow_Bounds(t *testing.T) {
	// Window length must be min(i+r, n-1) - max(0, i-r) + 1 for every
	// in-bounds anchor.
	lines := make([]string, 7)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}

	const radius = 3
	for anchor := 0; anchor < len(lines); anchor++ {
		start := anchor - radius
		if start < 0 {
			start = 0
		}
		end := anchor + radius
		if end > len(lines)-1 {
			end = len(lines) - 1
		}

		got := ContextWindow(lines, anchor, radius)
		assert.Len(t, got, end-start+1, "anchor %d", anchor)
	}
}

func TestContextWindow_DegenerateInputs(t *testing.T) {
	assert.Nil(t, ContextWindow(nil, 0, 3))
	assert.Nil(t, ContextWindow([]string{"a"}, -1, 3))
	assert.Nil(t, ContextWindow([]string{"a"}, 1, 3))
}

func TestContextWindow_CopyDoesNotAlias(t *testing.T) {
	lines := []string{"a", "b", "c"}
	window := ContextWindow(lines, 1, 1)
	window[0] = "mutated"
	assert.Equal(t, "a", lines[0])
}
