package github

// Metadata holds the upstream pull request details a clone session needs
type Metadata struct {
	Title    string
	Body     string
	IssueURL string // First linked closing issue, empty when none
	Commits  []Commit
}

// Commit represents one commit of a pull request, in PR order
type Commit struct {
	SHA     string
	Message string // First line only
}

// CreatedPR identifies a pull request created by this tool
type CreatedPR struct {
	Number int
	URL    string
}
