package ghdigest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const maxPerPage = 100

// Commits fetches all commits on the default branch with a commit date at or
// after since, oldest pages first as returned by the API. Pages are requested
// sequentially; the listing ends when a page comes back shorter than the page
// size.
func (c *Client) Commits(ctx context.Context, owner, repo string, since time.Time) ([]Commit, error) {
	c.logger.DebugContext(ctx, "fetching commits", "owner", owner, "repo", repo, "since", since)

	commits := []Commit{}
	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/%s/commits?since=%s&page=%d&per_page=%d",
			owner, repo, url.QueryEscape(since.UTC().Format(time.RFC3339)), page, maxPerPage)
		var items []*githubCommit
		if err := c.github.get(ctx, path, &items); err != nil {
			return nil, fmt.Errorf("fetching commits: %w", err)
		}

		for _, item := range items {
			commits = append(commits, newCommit(item))
		}

		if len(items) < maxPerPage {
			break
		}
	}

	c.logger.DebugContext(ctx, "fetched commits", "count", len(commits))
	return commits, nil
}

// CommitTime resolves a commit identifier to its committer timestamp with a
// single lookup.
func (c *Client) CommitTime(ctx context.Context, owner, repo, sha string) (time.Time, error) {
	c.logger.DebugContext(ctx, "resolving commit time", "owner", owner, "repo", repo, "sha", sha)

	var item githubCommit
	path := fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, url.PathEscape(sha))
	if err := c.github.get(ctx, path, &item); err != nil {
		return time.Time{}, fmt.Errorf("resolving commit %s: %w", sha, err)
	}

	return item.Commit.Committer.Date, nil
}

// newCommit maps a raw API commit to a Commit record. The authenticated user
// login is preferred for author and committer; the raw commit metadata name is
// the fallback when GitHub could not associate the commit with an account.
func newCommit(item *githubCommit) Commit {
	commit := Commit{
		SHA:         item.SHA,
		Message:     item.Commit.Message,
		Author:      item.Commit.Author.Name,
		AuthorEmail: item.Commit.Author.Email,
		AuthoredAt:  item.Commit.Author.Date,
		Committer:   item.Commit.Committer.Name,
		CommittedAt: item.Commit.Committer.Date,
		URL:         item.HTMLURL,
	}
	if item.Author != nil && item.Author.Login != "" {
		commit.Author = item.Author.Login
	}
	if item.Committer != nil && item.Committer.Login != "" {
		commit.Committer = item.Committer.Login
	}
	return commit
}
