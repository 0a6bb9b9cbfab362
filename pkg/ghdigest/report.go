package ghdigest

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ActivityOptions control one activity run. Exactly one of Since and
// SinceCommit must be set; when only SinceCommit is given the since time is
// resolved from that commit's committer timestamp.
type ActivityOptions struct {
	Since        time.Time
	SinceCommit  string
	IncludePulls bool
}

// Activity fetches commits since the resolved point in time and, unless
// disabled, the pull requests containing them, and assembles the final report.
func (c *Client) Activity(ctx context.Context, owner, repo string, opts ActivityOptions) (*Report, error) {
	since := opts.Since
	if since.IsZero() {
		if opts.SinceCommit == "" {
			return nil, errors.New("either a since date or a since commit is required")
		}
		resolved, err := c.CommitTime(ctx, owner, repo, opts.SinceCommit)
		if err != nil {
			return nil, err
		}
		since = resolved
		c.logger.InfoContext(ctx, "resolved since commit", "sha", opts.SinceCommit, "date", since)
	}

	commits, err := c.Commits(ctx, owner, repo, since)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "fetched commits", "owner", owner, "repo", repo, "count", len(commits))

	report := &Report{
		Repository:   fmt.Sprintf("%s/%s", owner, repo),
		SinceDate:    since.UTC().Format(time.RFC3339),
		SinceCommit:  opts.SinceCommit,
		TotalCommits: len(commits),
		Commits:      commits,
		Pulls:        []PullRequest{},
	}

	// Nothing to associate: the pull request stage is skipped entirely.
	if !opts.IncludePulls || len(commits) == 0 {
		return report, nil
	}

	pulls, skipped, incomplete := c.PullRequestsWith(ctx, owner, repo, commits)
	report.Pulls = pulls
	report.TotalPulls = len(pulls)
	report.SkippedPulls = skipped
	report.PullsIncomplete = incomplete
	c.logger.InfoContext(ctx, "associated pull requests", "count", len(pulls))

	return report, nil
}
