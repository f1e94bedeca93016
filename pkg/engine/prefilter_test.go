package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMayMatch(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		keywords  []string
		want      bool
	}{
		{"no keywords always passes", "anything at all", nil, true},
		{"empty keyword slice passes", "anything", []string{}, true},
		{"single hit", "error CS0029: cannot convert", []string{"CS0029"}, true},
		{"any-of semantics", "shader compile failed", []string{"CS0029", "shader"}, true},
		{"no hit", "all good", []string{"error", "failed"}, false},
		{"case sensitive", "ERROR: boom", []string{"error"}, false},
		{"exact casing matches", "ERROR: boom", []string{"ERROR"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MayMatch(tt.candidate, tt.keywords))
		})
	}
}
