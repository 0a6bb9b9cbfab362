package ghdigest

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// PullRequestsWith fetches all pull requests for the repository and returns
// the ones containing at least one of the given commits, each annotated with
// exactly the matching subset.
//
// A failure while paging through the pull request listing is not fatal: the
// PRs fetched so far are still processed and incomplete is returned true. A
// failure fetching a single PR's commit listing skips that PR only; its number
// is returned in skipped.
//
// The result is sorted by updated timestamp, newest first; pull requests
// without an updated timestamp sort last.
func (c *Client) PullRequestsWith(
	ctx context.Context,
	owner, repo string,
	commits []Commit,
) (pulls []PullRequest, skipped []int, incomplete bool) {
	bySHA := make(map[string]Commit, len(commits))
	for _, commit := range commits {
		bySHA[commit.SHA] = commit
	}

	listed, incomplete := c.listPullRequests(ctx, owner, repo)

	pulls = []PullRequest{}
	for _, pr := range listed {
		shas, err := c.pullRequestCommitSHAs(ctx, owner, repo, pr.Number)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping pull request, commit listing failed",
				"owner", owner, "repo", repo, "pr", pr.Number, "error", err)
			skipped = append(skipped, pr.Number)
			continue
		}

		matched := intersect(shas, bySHA)
		if len(matched) == 0 {
			continue
		}

		pulls = append(pulls, newPullRequest(pr, matched))
	}

	sortPullsByUpdated(pulls)

	c.logger.DebugContext(ctx, "associated pull requests",
		"matched", len(pulls), "skipped", len(skipped), "incomplete", incomplete)
	return pulls, skipped, incomplete
}

// listPullRequests pages through the repository's pull requests, all states,
// most recently updated first. An error partway returns whatever was fetched
// along with incomplete=true.
func (c *Client) listPullRequests(ctx context.Context, owner, repo string) (prs []*githubPullRequest, incomplete bool) {
	c.logger.DebugContext(ctx, "fetching pull requests", "owner", owner, "repo", repo)

	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/%s/pulls?state=all&sort=updated&direction=desc&page=%d&per_page=%d",
			owner, repo, page, maxPerPage)
		var items []*githubPullRequest
		if err := c.github.get(ctx, path, &items); err != nil {
			c.logger.WarnContext(ctx, "pull request listing aborted, continuing with partial set",
				"owner", owner, "repo", repo, "page", page, "error", err)
			return prs, true
		}

		prs = append(prs, items...)

		if len(items) < maxPerPage {
			break
		}
	}

	c.logger.DebugContext(ctx, "fetched pull requests", "count", len(prs))
	return prs, false
}

// pullRequestCommitSHAs fetches the full commit listing of one pull request.
func (c *Client) pullRequestCommitSHAs(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var shas []string
	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/%s/pulls/%d/commits?page=%d&per_page=%d",
			owner, repo, number, page, maxPerPage)
		var items []*githubCommit
		if err := c.github.get(ctx, path, &items); err != nil {
			return nil, fmt.Errorf("fetching commits for pull request %d: %w", number, err)
		}

		for _, item := range items {
			shas = append(shas, item.SHA)
		}

		if len(items) < maxPerPage {
			break
		}
	}
	return shas, nil
}

// intersect returns the input commits whose shas appear in the PR's listing,
// in listing order. A sha is matched at most once per pull request.
func intersect(shas []string, bySHA map[string]Commit) []Commit {
	var matched []Commit
	seen := make(map[string]bool, len(shas))
	for _, sha := range shas {
		if seen[sha] {
			continue
		}
		seen[sha] = true
		if commit, ok := bySHA[sha]; ok {
			matched = append(matched, commit)
		}
	}
	return matched
}

func newPullRequest(pr *githubPullRequest, matched []Commit) PullRequest {
	out := PullRequest{
		Number:       pr.Number,
		Title:        pr.Title,
		State:        pr.State,
		URL:          pr.HTMLURL,
		Body:         pr.Body,
		CreatedAt:    pr.CreatedAt,
		UpdatedAt:    pr.UpdatedAt,
		MergedAt:     pr.MergedAt,
		ClosedAt:     pr.ClosedAt,
		Commits:      matched,
		CommitsCount: len(matched),
	}
	if pr.User != nil {
		out.Author = pr.User.Login
	}
	return out
}

// sortPullsByUpdated orders pulls by updated timestamp descending. A missing
// timestamp is treated as the zero time, which places it at the end.
func sortPullsByUpdated(pulls []PullRequest) {
	sort.SliceStable(pulls, func(i, j int) bool {
		var ti, tj time.Time
		if pulls[i].UpdatedAt != nil {
			ti = *pulls[i].UpdatedAt
		}
		if pulls[j].UpdatedAt != nil {
			tj = *pulls[j].UpdatedAt
		}
		return ti.After(tj)
	})
}
