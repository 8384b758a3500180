// Package config provides functions for loading the clone-pr configuration file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/valyala/fasttemplate"
	"gopkg.in/yaml.v3"
)

// DefaultMarkerComment is posted on the mirrored PR after it is closed to
// trigger the downstream end-to-end test run.
const DefaultMarkerComment = "{{reviewer}} cloned upstream pull request, running downstream end-to-end tests."

// Config represents the structure of clone-pr.yaml. Every field has a
// default, so running without a configuration file is supported.
type Config struct {
	UpstreamRemote string `yaml:"upstream_remote,omitempty"`
	ForkRemote     string `yaml:"fork_remote,omitempty"`
	LabelColor     string `yaml:"label_color,omitempty"`
	Reviewer       string `yaml:"reviewer,omitempty"`
	MarkerComment  string `yaml:"marker_comment,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		UpstreamRemote: "upstream",
		ForkRemote:     "origin",
		LabelColor:     "ededed",
		MarkerComment:  DefaultMarkerComment,
	}
}

// LoadConfig loads the configuration from the specified file. A missing
// file is not an error: the defaults apply.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename) //nolint:gosec // Config filename is from command-line flag
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(config)
	return config, nil
}

// applyDefaults fills empty fields with their built-in values
func applyDefaults(config *Config) {
	defaults := Default()
	if config.UpstreamRemote == "" {
		config.UpstreamRemote = defaults.UpstreamRemote
	}
	if config.ForkRemote == "" {
		config.ForkRemote = defaults.ForkRemote
	}
	if config.LabelColor == "" {
		config.LabelColor = defaults.LabelColor
	}
	if config.MarkerComment == "" {
		config.MarkerComment = defaults.MarkerComment
	}
}

// RenderMarker expands the marker comment template. The template may refer
// to {{reviewer}} (the configured reviewer mention) and {{number}} (the
// upstream PR number).
func (c *Config) RenderMarker(prNumber int) string {
	return fasttemplate.ExecuteStringStd(c.MarkerComment, "{{", "}}", map[string]interface{}{
		"reviewer": c.Reviewer,
		"number":   strconv.Itoa(prNumber),
	})
}
