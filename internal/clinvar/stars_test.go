package clinvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStars(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"", "0"},
		{"reviewed by expert panel", "4"},
		// Expert panel outranks the multiple-submitter rules even when
		// both phrases are present.
		{"reviewed by expert panel, multiple submitters, no conflict", "4"},
		{"criteria provided, multiple submitters, no conflicts", "3"},
		{"criteria provided, multiple submitters", "2"},
		{"criteria provided, single submitter", "1"},
		{"CRITERIA PROVIDED, SINGLE SUBMITTER", "1"},
		{"no assertion criteria provided", "0"},
		{"no assertion provided", "0"},
		{"criteria provided, conflicting interpretations", "N/A"},
		{"practice guideline", "N/A"},
		{"something else entirely", "N/A"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.status), "status %q", tt.status)
	}
}
