// Package ghdigest fetches commit and pull request activity from the GitHub
// REST API. It lists commits on the default branch since a point in time,
// associates them with the pull requests that contain them, and summarizes a
// user's starred repositories. All fetching is sequential, one request at a
// time, with a single attempt per request.
package ghdigest

import (
	"log/slog"
	"net/http"
	"time"
)

// defaultTimeout bounds every GitHub API request.
const defaultTimeout = 30 * time.Second

// Client provides methods to fetch GitHub commit and pull request activity.
type Client struct {
	github *githubClient
	logger *slog.Logger
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.github.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.github.client = httpClient
	}
}

// WithBaseURL overrides the GitHub API base URL. Useful for GitHub Enterprise
// hosts and for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.github.api = baseURL
	}
}

// NewClient creates a new Client. The token may be empty, in which case
// requests are unauthenticated and subject to much lower rate limits.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		logger: slog.Default(),
		github: &githubClient{
			client: &http.Client{Timeout: defaultTimeout},
			logger: slog.Default(),
			token:  token,
			api:    githubAPI,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
