package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v57/github"
)

// EnsureLabel creates a label, treating an already-existing label as
// success
func (c *Client) EnsureLabel(ctx context.Context, name, color string) error {
	label := &github.Label{
		Name:  github.String(name),
		Color: github.String(color),
	}

	slog.Debug("GitHub API: Creating label", "org", c.org, "repo", c.repo, "label", name)
	_, _, err := c.client.Issues.CreateLabel(ctx, c.org, c.repo, label)
	if err != nil {
		if isAlreadyExistsError(err) {
			slog.Debug("Label already exists", "label", name)
			return nil
		}
		return fmt.Errorf("failed to create label %s: %w", name, err)
	}

	return nil
}

// AddLabels attaches labels to a pull request
func (c *Client) AddLabels(ctx context.Context, number int, labels []string) error {
	slog.Debug("GitHub API: Adding labels", "org", c.org, "repo", c.repo, "pr", number, "labels", labels)
	if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, c.org, c.repo, number, labels); err != nil {
		return fmt.Errorf("failed to add labels to PR #%d: %w", number, err)
	}
	return nil
}

// isAlreadyExistsError checks whether the API rejected a creation because
// the resource already exists (422 with an "already_exists" error code)
func isAlreadyExistsError(err error) bool {
	var errorResponse *github.ErrorResponse
	if !errors.As(err, &errorResponse) {
		return false
	}
	if errorResponse.Response == nil || errorResponse.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}

	for _, e := range errorResponse.Errors {
		if e.Code == "already_exists" {
			return true
		}
	}
	return false
}
