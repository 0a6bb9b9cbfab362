package ghdigest

import (
	"time"
)

// Commit is a single commit from the repository's default branch. Records are
// constructed once from the API response and never mutated afterwards.
type Commit struct {
	AuthoredAt  time.Time `json:"authored_at"`
	CommittedAt time.Time `json:"committed_at"`
	SHA         string    `json:"sha"`
	Message     string    `json:"message"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"author_email"`
	Committer   string    `json:"committer"`
	URL         string    `json:"url"`
}

// PullRequest is a pull request annotated with the subset of the originally
// fetched commits that appear in its own commit listing.
type PullRequest struct {
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	MergedAt     *time.Time `json:"merged_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	Title        string     `json:"title"`
	State        string     `json:"state"`
	Author       string     `json:"author"`
	URL          string     `json:"url"`
	Body         string     `json:"body"`
	Commits      []Commit   `json:"commits"`
	Number       int        `json:"number"`
	CommitsCount int        `json:"commits_count"`
}

// Repo is a simplified repository record from a starred listing.
type Repo struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PushedAt    time.Time `json:"pushed_at"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Owner       string    `json:"owner"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
}

// Report is the result of one activity run: the commits fetched since the
// resolved point in time and the pull requests containing them.
//
// PullsIncomplete is set when the pull request listing failed partway and the
// association ran over a truncated PR set. SkippedPulls lists PR numbers whose
// own commit listing could not be fetched; those PRs carry no association
// result at all, which is distinct from "no matching commits".
type Report struct {
	Repository      string        `json:"repository"`
	SinceDate       string        `json:"since_date,omitempty"`
	SinceCommit     string        `json:"since_commit,omitempty"`
	TotalCommits    int           `json:"total_commits"`
	TotalPulls      int           `json:"total_prs"`
	Commits         []Commit      `json:"commits"`
	Pulls           []PullRequest `json:"pull_requests"`
	PullsIncomplete bool          `json:"prs_incomplete,omitempty"`
	SkippedPulls    []int         `json:"prs_skipped,omitempty"`
}

// StarReport summarizes the repositories starred by one user.
type StarReport struct {
	Username   string `json:"username"`
	TotalCount int    `json:"total_count"`
	Repos      []Repo `json:"repositories"`
}
