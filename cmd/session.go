// Package cmd defines core data structures shared by the clone-pr command.
package cmd

import "fmt"

// Reference identifies a pull request on the hosting platform
type Reference struct {
	Repo   string // "owner/name"
	Number int
}

// String returns the conventional "owner/name#number" rendering
func (r Reference) String() string {
	return fmt.Sprintf("%s#%d", r.Repo, r.Number)
}

// Session holds the branch, ref, and label names scoped to one run of the
// tool. Every branch named here is created by the run and deleted again
// before it exits.
type Session struct {
	FeatureBranch string
	BaseBranch    string
	FetchRef      string
	Label         string
}

// NewSession derives the session naming from the PR number and an optional
// branch-name override. The base branch name is always derived from the
// feature branch name so the pair cannot diverge.
func NewSession(ref Reference, branchName string) Session {
	feature := branchName
	if feature == "" {
		feature = fmt.Sprintf("pr-%d", ref.Number)
	}

	return Session{
		FeatureBranch: feature,
		BaseBranch:    "base-" + feature,
		FetchRef:      fmt.Sprintf("clone-pr/fetch-%d", ref.Number),
		Label:         fmt.Sprintf("pr-%d", ref.Number),
	}
}

// LocalBranches returns every local branch the session owns, in cleanup
// order: feature first, then its base, then the temporary fetch ref.
func (s Session) LocalBranches() []string {
	return []string{s.FeatureBranch, s.BaseBranch, s.FetchRef}
}

// RemoteBranches returns every branch the session may have published to the
// fork remote. The temporary fetch ref never leaves the local repository.
func (s Session) RemoteBranches() []string {
	return []string{s.FeatureBranch, s.BaseBranch}
}
