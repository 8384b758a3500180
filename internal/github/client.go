// Package github wraps the GitHub API operations the clone session needs:
// pull request metadata and diffs, mirrored PR creation and closing,
// comments, and labels.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client, bound to one repository
type Client struct {
	client *github.Client
	org    string
	repo   string
}

// NewClient creates a GitHub client with token authentication, bound to the
// repository named by the "owner/name" pair
func NewClient(ctx context.Context, token, repo string) (*Client, error) {
	org, name, ok := strings.Cut(repo, "/")
	if !ok || org == "" || name == "" {
		return nil, fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
		org:    org,
		repo:   name,
	}, nil
}

// Repo returns the "owner/name" pair the client is bound to
func (c *Client) Repo() string {
	return c.org + "/" + c.repo
}
