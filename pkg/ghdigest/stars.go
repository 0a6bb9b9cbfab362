package ghdigest

import (
	"context"
	"fmt"
	"net/url"
)

// Starred fetches all repositories starred by the given user.
func (c *Client) Starred(ctx context.Context, username string) (*StarReport, error) {
	c.logger.DebugContext(ctx, "fetching starred repositories", "username", username)

	repos := []Repo{}
	for page := 1; ; page++ {
		path := fmt.Sprintf("/users/%s/starred?page=%d&per_page=%d",
			url.PathEscape(username), page, maxPerPage)
		var items []*githubRepo
		if err := c.github.get(ctx, path, &items); err != nil {
			return nil, fmt.Errorf("fetching starred repositories: %w", err)
		}

		for _, item := range items {
			repo := Repo{
				Name:        item.Name,
				FullName:    item.FullName,
				Description: item.Description,
				URL:         item.HTMLURL,
				Stars:       item.Stars,
				Language:    item.Language,
				CreatedAt:   item.CreatedAt,
				UpdatedAt:   item.UpdatedAt,
				PushedAt:    item.PushedAt,
			}
			if item.Owner != nil {
				repo.Owner = item.Owner.Login
			}
			repos = append(repos, repo)
		}

		if len(items) < maxPerPage {
			break
		}
	}

	c.logger.DebugContext(ctx, "fetched starred repositories", "count", len(repos))
	return &StarReport{
		Username:   username,
		TotalCount: len(repos),
		Repos:      repos,
	}, nil
}
