// Package git wraps the git command line for the branch operations a clone
// session needs. The repository directory and the remote names are explicit
// fields rather than ambient state, so every operation is scoped to one
// repository and one pair of remotes.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes one git invocation and returns its trimmed combined output
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs git through os/exec
type ExecRunner struct{}

// Run executes git with the supplied arguments in the given directory
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	command := exec.CommandContext(ctx, "git", args...) //nolint:gosec // Arguments are session-derived branch names and SHAs
	command.Dir = dir

	output, err := command.CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		if trimmed != "" {
			return trimmed, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, trimmed)
		}
		return trimmed, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return trimmed, nil
}

// Git issues git commands against a single repository
type Git struct {
	runner   Runner
	dir      string
	upstream string
	fork     string
}

// New creates a Git client for the repository at dir using the given
// upstream and fork remote names
func New(dir, upstream, fork string) *Git {
	return NewWithRunner(ExecRunner{}, dir, upstream, fork)
}

// NewWithRunner creates a Git client with a custom command runner
func NewWithRunner(runner Runner, dir, upstream, fork string) *Git {
	return &Git{
		runner:   runner,
		dir:      dir,
		upstream: upstream,
		fork:     fork,
	}
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	return g.runner.Run(ctx, g.dir, args...)
}

// IsRepository checks whether the directory is inside a git repository
func (g *Git) IsRepository(ctx context.Context) bool {
	_, err := g.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// HasLocalChanges reports whether the working tree has uncommitted or
// untracked changes
func (g *Git) HasLocalChanges(ctx context.Context) (bool, error) {
	output, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check working tree status: %w", err)
	}
	return output != "", nil
}

// StashPush saves the working tree state, including untracked files
func (g *Git) StashPush(ctx context.Context) error {
	slog.Info("Stashing local changes")
	_, err := g.run(ctx, "stash", "push", "--include-untracked", "-m", "clone-pr session")
	return err
}

// StashPop restores the most recently stashed working tree state
func (g *Git) StashPop(ctx context.Context) error {
	slog.Info("Restoring stashed local changes")
	_, err := g.run(ctx, "stash", "pop")
	return err
}

// Fetch fetches the latest history from the upstream remote
func (g *Git) Fetch(ctx context.Context) error {
	slog.Info("Fetching latest changes", "remote", g.upstream)
	_, err := g.run(ctx, "fetch", g.upstream)
	return err
}

// FetchPullRequestHead fetches a PR's head commits from the upstream remote
// into a temporary local branch, overwriting any previous one
func (g *Git) FetchPullRequestHead(ctx context.Context, prNumber int, ref string) error {
	refSpec := fmt.Sprintf("+pull/%d/head:refs/heads/%s", prNumber, ref)
	slog.Info("Fetching PR head", "pr", prNumber, "ref", ref)

	if _, err := g.run(ctx, "fetch", g.upstream, refSpec); err != nil {
		return fmt.Errorf("failed to fetch PR #%d head: %w", prNumber, err)
	}
	return nil
}

// FirstParent resolves the first parent of a commit
func (g *Git) FirstParent(ctx context.Context, sha string) (string, error) {
	parent, err := g.run(ctx, "rev-parse", sha+"^")
	if err != nil {
		return "", fmt.Errorf("failed to resolve parent of %s: %w", sha, err)
	}
	return parent, nil
}

// CurrentBranch returns the name of the currently checked-out branch
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to determine current branch: %w", err)
	}
	return branch, nil
}

// Checkout switches to an existing branch
func (g *Git) Checkout(ctx context.Context, branch string) error {
	slog.Info("Checking out branch", "branch", branch)
	if _, err := g.run(ctx, "checkout", branch); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}
	return nil
}

// ForceCreateBranch creates or resets a local branch at the given commit
// without checking it out
func (g *Git) ForceCreateBranch(ctx context.Context, branch, at string) error {
	slog.Info("Creating branch", "branch", branch, "at", at)
	if _, err := g.run(ctx, "branch", "-f", branch, at); err != nil {
		return fmt.Errorf("failed to create branch %s at %s: %w", branch, at, err)
	}
	return nil
}

// ForceCheckoutBranch creates or resets a branch at the given commit and
// checks it out
func (g *Git) ForceCheckoutBranch(ctx context.Context, branch, at string) error {
	slog.Info("Creating and checking out branch", "branch", branch, "at", at)
	if _, err := g.run(ctx, "checkout", "-B", branch, at); err != nil {
		return fmt.Errorf("failed to checkout branch %s at %s: %w", branch, at, err)
	}
	return nil
}

// CherryPick applies a single commit onto the current branch, preserving
// its authorship and message
func (g *Git) CherryPick(ctx context.Context, sha string) error {
	slog.Info("Cherry-picking commit", "sha", sha)
	_, err := g.run(ctx, "cherry-pick", sha)
	return err
}

// CherryPickAbort aborts an in-flight cherry-pick, restoring the branch to
// its pre-pick state
func (g *Git) CherryPickAbort(ctx context.Context) error {
	slog.Info("Aborting cherry-pick")
	_, err := g.run(ctx, "cherry-pick", "--abort")
	return err
}

// ForcePush publishes a local branch to the fork remote, overwriting any
// same-named branch
func (g *Git) ForcePush(ctx context.Context, branch string) error {
	slog.Info("Force pushing branch", "branch", branch, "remote", g.fork)
	refSpec := fmt.Sprintf("%s:%s", branch, branch)
	if _, err := g.run(ctx, "push", "--force", g.fork, refSpec); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return nil
}

// DeleteLocalBranch force-deletes a local branch. Callers cleaning up a
// session ignore the error when the branch is already absent.
func (g *Git) DeleteLocalBranch(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "branch", "-D", branch)
	return err
}

// DeleteRemoteBranch deletes a branch on the fork remote. Callers cleaning
// up a session ignore the error when the branch is already absent.
func (g *Git) DeleteRemoteBranch(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "push", g.fork, "--delete", branch)
	return err
}

// RemoteURL returns the configured URL of a remote
func (g *Git) RemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := g.run(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to resolve remote %s: %w", remote, err)
	}
	return url, nil
}

// ForkRepo resolves the owner/name pair of the fork remote's repository
func (g *Git) ForkRepo(ctx context.Context) (string, error) {
	url, err := g.RemoteURL(ctx, g.fork)
	if err != nil {
		return "", err
	}
	return ParseRemoteRepo(url)
}
