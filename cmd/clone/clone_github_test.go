package clone

import (
	"testing"

	"github.com/alan/clone-pr/internal/github"
	"github.com/stretchr/testify/assert"
)

func TestBuildCloneBody(t *testing.T) {
	tests := []struct {
		name     string
		meta     *github.Metadata
		expected string
	}{
		{
			name: "body with linked issue",
			meta: &github.Metadata{
				Body:     "Fixes the parser.",
				IssueURL: "https://github.com/org/repo/issues/7",
			},
			expected: "Fixes the parser.\n\nOriginal issue: https://github.com/org/repo/issues/7",
		},
		{
			name: "body without linked issue",
			meta: &github.Metadata{
				Body: "Fixes the parser.",
			},
			expected: "Fixes the parser.",
		},
		{
			name: "empty body with linked issue",
			meta: &github.Metadata{
				IssueURL: "https://github.com/org/repo/issues/7",
			},
			expected: "Original issue: https://github.com/org/repo/issues/7",
		},
		{
			name:     "empty body without linked issue",
			meta:     &github.Metadata{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildCloneBody(tt.meta))
		})
	}
}
