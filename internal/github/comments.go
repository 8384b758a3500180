package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// CreateComment posts a comment on a pull request
func (c *Client) CreateComment(ctx context.Context, number int, body string) error {
	commentInput := &github.IssueComment{
		Body: github.String(body),
	}

	slog.Debug("GitHub API: Creating comment", "org", c.org, "repo", c.repo, "pr", number)
	if _, _, err := c.client.Issues.CreateComment(ctx, c.org, c.repo, number, commentInput); err != nil {
		return fmt.Errorf("failed to comment on PR #%d: %w", number, err)
	}

	return nil
}
