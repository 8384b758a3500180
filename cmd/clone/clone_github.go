package clone

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/clone-pr/internal/github"
)

// publishClonePR opens the mirrored pull request on the fork, targeting the
// session base branch, with the original title and body plus the session
// label
func (cc *CloneCommand) publishClonePR(ctx context.Context, meta *github.Metadata) (*github.CreatedPR, error) {
	if err := cc.Fork.EnsureLabel(ctx, cc.Session.Label, cc.Config.LabelColor); err != nil {
		return nil, err
	}

	body := buildCloneBody(meta)
	created, err := cc.Fork.CreatePR(ctx, meta.Title, body, cc.Session.FeatureBranch, cc.Session.BaseBranch)
	if err != nil {
		return nil, err
	}

	if err := cc.Fork.AddLabels(ctx, created.Number, []string{cc.Session.Label}); err != nil {
		return nil, err
	}

	fmt.Printf("📝 Created PR #%d: %s → %s\n", created.Number, cc.Session.FeatureBranch, cc.Session.BaseBranch)
	return created, nil
}

// buildCloneBody mirrors the original PR body, appending the linked issue
// when one exists
func buildCloneBody(meta *github.Metadata) string {
	if meta.IssueURL == "" {
		return meta.Body
	}
	if meta.Body == "" {
		return "Original issue: " + meta.IssueURL
	}
	return fmt.Sprintf("%s\n\nOriginal issue: %s", meta.Body, meta.IssueURL)
}

// verifyDiff compares the original PR's diff with the mirrored PR's diff.
// A mismatch is a warning, not a failure: replay fidelity is best-effort
// verified, not enforced.
func (cc *CloneCommand) verifyDiff(ctx context.Context, created *github.CreatedPR) {
	original, err := cc.Upstream.GetDiff(ctx, cc.Ref.Number)
	if err != nil {
		slog.Warn("Could not fetch original PR diff for verification", "error", err)
		return
	}

	cloned, err := cc.Fork.GetDiff(ctx, created.Number)
	if err != nil {
		slog.Warn("Could not fetch cloned PR diff for verification", "error", err)
		return
	}

	if original == cloned {
		slog.Info("Cloned PR diff matches the original", "pr", created.Number)
		return
	}
	slog.Warn("Cloned PR diff does not match the original", "pr", created.Number, "original_bytes", len(original), "cloned_bytes", len(cloned))
}

// finalize closes the mirrored PR and posts the marker comment that
// triggers the downstream end-to-end test run
func (cc *CloneCommand) finalize(ctx context.Context, created *github.CreatedPR) error {
	if err := cc.Fork.ClosePR(ctx, created.Number); err != nil {
		return err
	}

	marker := cc.Config.RenderMarker(cc.Ref.Number)
	if err := cc.Fork.CreateComment(ctx, created.Number, marker); err != nil {
		return err
	}

	slog.Info("Closed cloned PR and posted marker comment", "pr", created.Number)
	return nil
}
