package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/go-github/v57/github"
)

// ErrEmptyPullRequest indicates the pull request has no commits, which is a
// hard stop before any branch mutation.
var ErrEmptyPullRequest = errors.New("pull request has no commits")

// GetPRMetadata fetches the title, body, first linked closing issue, and
// ordered commit list of a pull request
func (c *Client) GetPRMetadata(ctx context.Context, number int) (*Metadata, error) {
	slog.Debug("GitHub API: Getting PR", "org", c.org, "repo", c.repo, "pr", number)
	pr, _, err := c.client.PullRequests.Get(ctx, c.org, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}

	commits, err := c.listPRCommits(ctx, number)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, fmt.Errorf("%w: %s/%s#%d", ErrEmptyPullRequest, c.org, c.repo, number)
	}

	return &Metadata{
		Title:    pr.GetTitle(),
		Body:     pr.GetBody(),
		IssueURL: extractClosingIssueURL(pr.GetBody(), c.org, c.repo),
		Commits:  commits,
	}, nil
}

// listPRCommits returns a PR's commits in the order GitHub reports them
func (c *Client) listPRCommits(ctx context.Context, number int) ([]Commit, error) {
	opts := &github.ListOptions{
		PerPage: 100,
	}

	var allCommits []Commit
	for {
		slog.Debug("GitHub API: Listing PR commits", "org", c.org, "repo", c.repo, "pr", number, "page", opts.Page)
		commits, resp, err := c.client.PullRequests.ListCommits(ctx, c.org, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for PR #%d: %w", number, err)
		}

		for _, commit := range commits {
			allCommits = append(allCommits, Commit{
				SHA:     commit.GetSHA(),
				Message: strings.Split(commit.GetCommit().GetMessage(), "\n")[0], // First line only
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allCommits, nil
}

// closingIssuePattern matches closing-keyword issue references in a PR body:
//   - "Fixes #123"
//   - "closes owner/repo#123"
//   - "Resolves https://github.com/owner/repo/issues/123"
var closingIssuePattern = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\b:?\s+(?:(https?://[^/\s]+/[\w.-]+/[\w.-]+/issues/\d+)|([\w.-]+/[\w.-]+)?#(\d+))`)

// extractClosingIssueURL returns the URL of the first issue the PR body
// declares it closes, or an empty string when there is none
func extractClosingIssueURL(body, org, repo string) string {
	match := closingIssuePattern.FindStringSubmatch(body)
	if match == nil {
		return ""
	}

	if match[1] != "" {
		return match[1]
	}

	issueRepo := org + "/" + repo
	if match[2] != "" {
		issueRepo = match[2]
	}
	return fmt.Sprintf("https://github.com/%s/issues/%s", issueRepo, match[3])
}

// GetDiff fetches the textual diff of a pull request
func (c *Client) GetDiff(ctx context.Context, number int) (string, error) {
	slog.Debug("GitHub API: Getting PR diff", "org", c.org, "repo", c.repo, "pr", number)
	diff, _, err := c.client.PullRequests.GetRaw(ctx, c.org, c.repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("failed to fetch diff for PR #%d: %w", number, err)
	}
	return diff, nil
}

// CreatePR creates a new pull request
func (c *Client) CreatePR(ctx context.Context, title, body, head, base string) (*CreatedPR, error) {
	newPR := &github.NewPullRequest{
		Title: &title,
		Body:  &body,
		Head:  &head,
		Base:  &base,
	}

	slog.Debug("GitHub API: Creating PR", "org", c.org, "repo", c.repo, "head", head, "base", base)
	pr, _, err := c.client.PullRequests.Create(ctx, c.org, c.repo, newPR)
	if err != nil {
		return nil, fmt.Errorf("failed to create PR from %s to %s: %w", head, base, err)
	}

	return &CreatedPR{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
	}, nil
}

// ClosePR closes a pull request without merging it
func (c *Client) ClosePR(ctx context.Context, number int) error {
	update := &github.PullRequest{
		State: github.String("closed"),
	}

	slog.Debug("GitHub API: Closing PR", "org", c.org, "repo", c.repo, "pr", number)
	if _, _, err := c.client.PullRequests.Edit(ctx, c.org, c.repo, number, update); err != nil {
		return fmt.Errorf("failed to close PR #%d: %w", number, err)
	}
	return nil
}
