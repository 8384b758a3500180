package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/alan/clone-pr/cmd"
)

// ErrInvalidReference indicates the supplied pull request URL does not look
// like host/owner/repo/pull/<number>.
var ErrInvalidReference = errors.New("invalid pull request reference")

// pullRequestURLPattern matches pull request URLs such as
// https://github.com/owner/repo/pull/42 (scheme optional, trailing slash
// tolerated).
var pullRequestURLPattern = regexp.MustCompile(`^(?:https?://)?[^/\s]+/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)/pull/(\d+)/?$`)

// ParsePullRequestURL extracts the owner/repo pair and PR number from a
// pull request URL
func ParsePullRequestURL(url string) (cmd.Reference, error) {
	matches := pullRequestURLPattern.FindStringSubmatch(url)
	if matches == nil {
		return cmd.Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, url)
	}

	number, err := strconv.Atoi(matches[3])
	if err != nil {
		return cmd.Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, url)
	}

	return cmd.Reference{
		Repo:   matches[1] + "/" + matches[2],
		Number: number,
	}, nil
}

// GetBranchNameFromArgs extracts the optional branch-name override from
// command arguments
func GetBranchNameFromArgs(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
