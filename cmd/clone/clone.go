// Package clone implements the clone-pr command: it clones an upstream pull
// request into the personal fork by replaying its commits onto the original
// base commit, opens a mirrored pull request, verifies the diff, closes the
// PR with a marker comment, and removes every branch the run created.
package clone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alan/clone-pr/cmd"
	"github.com/alan/clone-pr/internal/commands"
	"github.com/alan/clone-pr/internal/config"
	"github.com/alan/clone-pr/internal/git"
	"github.com/alan/clone-pr/internal/github"
	"github.com/spf13/cobra"
)

// ErrReplayConflict indicates a cherry-pick failed while replaying the PR's
// commits. The session rolls back every branch it created before surfacing
// this error.
var ErrReplayConflict = errors.New("replay conflict")

// gitClient is the subset of internal/git the clone session uses
type gitClient interface {
	IsRepository(ctx context.Context) bool
	HasLocalChanges(ctx context.Context) (bool, error)
	StashPush(ctx context.Context) error
	StashPop(ctx context.Context) error
	Fetch(ctx context.Context) error
	FetchPullRequestHead(ctx context.Context, prNumber int, ref string) error
	FirstParent(ctx context.Context, sha string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	Checkout(ctx context.Context, branch string) error
	ForceCreateBranch(ctx context.Context, branch, at string) error
	ForceCheckoutBranch(ctx context.Context, branch, at string) error
	CherryPick(ctx context.Context, sha string) error
	CherryPickAbort(ctx context.Context) error
	ForcePush(ctx context.Context, branch string) error
	DeleteLocalBranch(ctx context.Context, branch string) error
	DeleteRemoteBranch(ctx context.Context, branch string) error
	ForkRepo(ctx context.Context) (string, error)
}

// hostClient is the subset of internal/github the clone session uses
type hostClient interface {
	GetPRMetadata(ctx context.Context, number int) (*github.Metadata, error)
	GetDiff(ctx context.Context, number int) (string, error)
	CreatePR(ctx context.Context, title, body, head, base string) (*github.CreatedPR, error)
	ClosePR(ctx context.Context, number int) error
	CreateComment(ctx context.Context, number int, body string) error
	EnsureLabel(ctx context.Context, name, color string) error
	AddLabels(ctx context.Context, number int, labels []string) error
}

// CloneCommand encapsulates one clone session
type CloneCommand struct {
	ConfigFile *string
	LoadConfig func(string) (*config.Config, error)
	Config     *config.Config

	URL        string
	BranchName string

	Ref     cmd.Reference
	Session cmd.Session

	Git      gitClient
	Upstream hostClient
	Fork     hostClient

	token string
}

// NewCloneCmd creates and returns the clone-pr root command
func NewCloneCmd(globalConfigFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cloneCmd := &CloneCommand{}

	cobraCmd := &cobra.Command{
		Use:   "clone-pr <pull-request-url> [branch-name]",
		Short: "Clone an upstream pull request into your fork for downstream testing",
		Long: `clone-pr replays an upstream pull request's commits onto the PR's original
base commit inside your fork, so the cloned diff is identical to the original
regardless of how far upstream has moved since.

It opens a mirrored pull request carrying the original title, body, and a
pr-<number> label, verifies the replayed diff against the original, closes
the mirrored PR with a marker comment that triggers downstream end-to-end
testing, and removes every branch it created.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			cloneCmd.URL = args[0]
			cloneCmd.BranchName = commands.GetBranchNameFromArgs(args)

			cloneCmd.ConfigFile = globalConfigFile
			cloneCmd.LoadConfig = loadConfig
			if err := cloneCmd.Init(cobraCmd.Context()); err != nil {
				return err
			}

			return cloneCmd.Run(cobraCmd.Context())
		},
	}

	return cobraCmd
}

// Init resolves configuration, the pull request reference, and the clients
// the session needs
func (cc *CloneCommand) Init(ctx context.Context) error {
	cfg, err := cc.LoadConfig(*cc.ConfigFile)
	if err != nil {
		return err
	}
	cc.Config = cfg

	ref, err := commands.ParsePullRequestURL(cc.URL)
	if err != nil {
		return err
	}
	cc.Ref = ref
	cc.Session = cmd.NewSession(ref, cc.BranchName)

	token, err := getGitHubToken()
	if err != nil {
		return err
	}
	cc.token = token

	upstream, err := github.NewClient(ctx, token, ref.Repo)
	if err != nil {
		return err
	}
	cc.Upstream = upstream
	cc.Git = git.New(".", cfg.UpstreamRemote, cfg.ForkRemote)

	return nil
}

// getGitHubToken retrieves and validates the GitHub token
func getGitHubToken() (string, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return "", fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	return token, nil
}

// Run executes the clone session
func (cc *CloneCommand) Run(ctx context.Context) error {
	meta, err := cc.Upstream.GetPRMetadata(ctx, cc.Ref.Number)
	if err != nil {
		return err
	}
	slog.Info("Fetched pull request metadata", "pr", cc.Ref.String(), "title", meta.Title, "commits", len(meta.Commits))

	if !cc.Git.IsRepository(ctx) {
		return fmt.Errorf("not in a git repository")
	}

	if err := cc.initForkClient(ctx); err != nil {
		return err
	}

	state, err := cc.beginSession(ctx)
	if err != nil {
		return err
	}

	if err := cc.replayCommits(ctx, meta); err != nil {
		cc.rollback(ctx, state)
		return err
	}

	created, err := cc.publishClonePR(ctx, meta)
	if err != nil {
		cc.cleanup(ctx, state)
		return err
	}

	cc.verifyDiff(ctx, created)

	err = cc.finalize(ctx, created)
	cc.cleanup(ctx, state)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Successfully cloned %s as PR #%d: %s\n", cc.Ref, created.Number, created.URL)
	return nil
}

// initForkClient resolves the fork repository from the fork remote URL and
// builds its hosting client, unless one was injected already
func (cc *CloneCommand) initForkClient(ctx context.Context) error {
	if cc.Fork != nil {
		return nil
	}

	forkRepo, err := cc.Git.ForkRepo(ctx)
	if err != nil {
		return err
	}

	fork, err := github.NewClient(ctx, cc.token, forkRepo)
	if err != nil {
		return err
	}
	cc.Fork = fork
	slog.Info("Resolved fork repository", "repo", forkRepo)

	return nil
}
