package commands

import (
	"testing"

	"github.com/alan/clone-pr/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePullRequestURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected cmd.Reference
		wantErr  bool
	}{
		{
			name:     "standard github URL",
			url:      "https://github.com/argoproj/argo-workflows/pull/14894",
			expected: cmd.Reference{Repo: "argoproj/argo-workflows", Number: 14894},
		},
		{
			name:     "http scheme",
			url:      "http://github.example.com/org/repo/pull/1",
			expected: cmd.Reference{Repo: "org/repo", Number: 1},
		},
		{
			name:     "no scheme",
			url:      "github.com/org/repo/pull/42",
			expected: cmd.Reference{Repo: "org/repo", Number: 42},
		},
		{
			name:     "trailing slash",
			url:      "https://github.com/org/repo/pull/42/",
			expected: cmd.Reference{Repo: "org/repo", Number: 42},
		},
		{
			name:     "dots and dashes in names",
			url:      "https://github.com/my-org/repo.name/pull/7",
			expected: cmd.Reference{Repo: "my-org/repo.name", Number: 7},
		},
		{
			name:    "issue URL is not a pull request",
			url:     "https://github.com/org/repo/issues/42",
			wantErr: true,
		},
		{
			name:    "missing number",
			url:     "https://github.com/org/repo/pull/",
			wantErr: true,
		},
		{
			name:    "non-numeric number",
			url:     "https://github.com/org/repo/pull/abc",
			wantErr: true,
		},
		{
			name:    "missing repo",
			url:     "https://github.com/org/pull/42",
			wantErr: true,
		},
		{
			name:    "extra path segments",
			url:     "https://github.com/org/repo/pull/42/files",
			wantErr: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
		{
			name:    "random text",
			url:     "not a url at all",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParsePullRequestURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestGetBranchNameFromArgs(t *testing.T) {
	assert.Equal(t, "", GetBranchNameFromArgs([]string{"https://github.com/org/repo/pull/1"}))
	assert.Equal(t, "my-branch", GetBranchNameFromArgs([]string{"https://github.com/org/repo/pull/1", "my-branch"}))
}
