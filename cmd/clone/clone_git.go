package clone

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/clone-pr/internal/github"
)

// sessionState captures the pre-session repository state so cleanup can
// restore it
type sessionState struct {
	originalBranch string
	stashed        bool
}

// beginSession records the current branch and stashes any pre-existing
// local changes before the session mutates the branch namespace
func (cc *CloneCommand) beginSession(ctx context.Context) (*sessionState, error) {
	branch, err := cc.Git.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	state := &sessionState{originalBranch: branch}

	dirty, err := cc.Git.HasLocalChanges(ctx)
	if err != nil {
		return nil, err
	}
	if dirty {
		if err := cc.Git.StashPush(ctx); err != nil {
			return nil, fmt.Errorf("failed to stash local changes: %w", err)
		}
		state.stashed = true
	}

	return state, nil
}

// replayCommits materializes the base branch at the PR's original parent
// commit and applies the PR's commits onto a fresh feature branch, strictly
// in order, stopping at the first failure
func (cc *CloneCommand) replayCommits(ctx context.Context, meta *github.Metadata) error {
	if err := cc.Git.Fetch(ctx); err != nil {
		return fmt.Errorf("failed to fetch from upstream: %w", err)
	}
	if err := cc.Git.FetchPullRequestHead(ctx, cc.Ref.Number, cc.Session.FetchRef); err != nil {
		return err
	}

	// The replay base is the first parent of the PR's first commit, never
	// the current tip of any branch.
	base, err := cc.Git.FirstParent(ctx, meta.Commits[0].SHA)
	if err != nil {
		return fmt.Errorf("failed to determine replay base: %w", err)
	}
	slog.Info("Resolved replay base", "base", base)

	if err := cc.Git.ForceCreateBranch(ctx, cc.Session.BaseBranch, base); err != nil {
		return err
	}
	if err := cc.Git.ForcePush(ctx, cc.Session.BaseBranch); err != nil {
		return err
	}
	if err := cc.Git.ForceCheckoutBranch(ctx, cc.Session.FeatureBranch, cc.Session.BaseBranch); err != nil {
		return err
	}

	for i, commit := range meta.Commits {
		slog.Info("Replaying commit", "position", i+1, "total", len(meta.Commits), "sha", commit.SHA, "message", commit.Message)
		if err := cc.Git.CherryPick(ctx, commit.SHA); err != nil {
			return fmt.Errorf("%w: commit %s (%d of %d): %v", ErrReplayConflict, commit.SHA, i+1, len(meta.Commits), err)
		}
	}

	return cc.Git.ForcePush(ctx, cc.Session.FeatureBranch)
}

// rollback aborts any in-flight cherry-pick and then removes everything the
// session created
func (cc *CloneCommand) rollback(ctx context.Context, state *sessionState) {
	if err := cc.Git.CherryPickAbort(ctx); err != nil {
		slog.Debug("No cherry-pick to abort", "error", err)
	}
	cc.cleanup(ctx, state)
}

// cleanup restores the pre-session branch and local changes and deletes
// every session branch, local and remote. Already-absent branches are not
// an error, so cleanup can run twice.
func (cc *CloneCommand) cleanup(ctx context.Context, state *sessionState) {
	if err := cc.Git.Checkout(ctx, state.originalBranch); err != nil {
		slog.Debug("Failed to restore original branch", "branch", state.originalBranch, "error", err)
	}

	for _, branch := range cc.Session.LocalBranches() {
		if err := cc.Git.DeleteLocalBranch(ctx, branch); err != nil {
			slog.Debug("Local branch already absent", "branch", branch, "error", err)
		}
	}
	for _, branch := range cc.Session.RemoteBranches() {
		if err := cc.Git.DeleteRemoteBranch(ctx, branch); err != nil {
			slog.Debug("Remote branch already absent", "branch", branch, "error", err)
		}
	}

	if state.stashed {
		if err := cc.Git.StashPop(ctx); err != nil {
			slog.Warn("Failed to restore stashed changes, they remain in the stash", "error", err)
		}
	}
}
