package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "upstream", config.UpstreamRemote)
	assert.Equal(t, "origin", config.ForkRemote)
	assert.Equal(t, "ededed", config.LabelColor)
	assert.Equal(t, DefaultMarkerComment, config.MarkerComment)
	assert.Empty(t, config.Reviewer)
}

func TestLoadConfigPartialFileFillsDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "clone-pr.yaml")
	content := `
upstream_remote: mainline
reviewer: "@test-reviewer"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))

	config, err := LoadConfig(configFile)
	require.NoError(t, err)

	assert.Equal(t, "mainline", config.UpstreamRemote)
	assert.Equal(t, "@test-reviewer", config.Reviewer)
	assert.Equal(t, "origin", config.ForkRemote)
	assert.Equal(t, "ededed", config.LabelColor)
	assert.Equal(t, DefaultMarkerComment, config.MarkerComment)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "clone-pr.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("upstream_remote: [broken"), 0600))

	_, err := LoadConfig(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestRenderMarker(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		prNumber int
		expected string
	}{
		{
			name: "reviewer and number placeholders",
			config: Config{
				Reviewer:      "@maintainer",
				MarkerComment: "{{reviewer}} please run e2e for #{{number}}",
			},
			prNumber: 42,
			expected: "@maintainer please run e2e for #42",
		},
		{
			name: "template without placeholders is returned as-is",
			config: Config{
				MarkerComment: "run the end-to-end suite",
			},
			prNumber: 7,
			expected: "run the end-to-end suite",
		},
		{
			name: "default template with empty reviewer",
			config: Config{
				MarkerComment: DefaultMarkerComment,
			},
			prNumber: 1,
			expected: " cloned upstream pull request, running downstream end-to-end tests.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.RenderMarker(tt.prNumber))
		})
	}
}
