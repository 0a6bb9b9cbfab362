package ghdigest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	githubAPI = "https://api.github.com"
	// userAgent identifies this tool on every outbound request.
	userAgent = "ghdigest/1.0"
	// maxResponseSize limits API response size to prevent memory exhaustion.
	maxResponseSize = 10 * 1024 * 1024 // 10MB
	// maxErrorBodySize limits error response body reading for debugging.
	maxErrorBodySize = 1024
	// tokenPreviewPrefixLen is the number of characters to show at the start of a masked token.
	tokenPreviewPrefixLen = 4
	// tokenPreviewSuffixLen is the number of characters to show at the end of a masked token.
	tokenPreviewSuffixLen = 4
	// tokenPreviewMinLen is the minimum token length to show a preview.
	tokenPreviewMinLen = 8
)

// APIError represents an error response from the GitHub API.
type APIError struct {
	Status     string
	Body       string
	URL        string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API error: %s", e.Status)
}

// IsNotFound reports whether err is a GitHub 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a GitHub 403 or 429 response.
// GitHub signals primary rate limit exhaustion with 403 rather than 429.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusTooManyRequests)
}

// githubClient is a client for interacting with the GitHub API.
type githubClient struct {
	client *http.Client
	logger *slog.Logger
	token  string
	api    string
}

// doRequest performs the common HTTP request logic for GitHub API calls.
// Each request is issued exactly once; failures surface to the caller.
func (c *githubClient) doRequest(ctx context.Context, path string) ([]byte, error) {
	apiURL := c.api + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	// Log request details (mask token for security)
	tokenPreview := ""
	if c.token != "" {
		if len(c.token) > tokenPreviewMinLen {
			tokenPreview = c.token[:tokenPreviewPrefixLen] + "..." + c.token[len(c.token)-tokenPreviewSuffixLen:]
		} else {
			tokenPreview = "***"
		}
	}

	c.logger.DebugContext(ctx, "GitHub API request starting",
		"method", "GET",
		"url", apiURL,
		"token", tokenPreview)

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.ErrorContext(ctx, "GitHub API request failed", "url", apiURL, "error", err, "elapsed", elapsed)
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.DebugContext(ctx, "failed to close response body", "error", closeErr, "url", apiURL)
		}
	}()

	c.logger.DebugContext(ctx, "GitHub API response received",
		"status", resp.Status,
		"url", apiURL,
		"elapsed", elapsed,
		"rate_limit_remaining", resp.Header.Get("X-Ratelimit-Remaining"))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if readErr != nil {
			body = []byte("failed to read response body")
		}

		c.logger.ErrorContext(ctx, "GitHub API error",
			"status", resp.Status,
			"status_code", resp.StatusCode,
			"url", apiURL,
			"body", string(body))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
			URL:        apiURL,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	return data, nil
}

// get makes a GET request to the GitHub API and decodes the response into v.
func (c *githubClient) get(ctx context.Context, path string, v any) error {
	data, err := c.doRequest(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	return nil
}

// githubUser represents a GitHub user.
type githubUser struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

// githubCommitDetail is the nested commit metadata carried by every listed commit.
type githubCommitDetail struct {
	Author struct {
		Name  string    `json:"name"`
		Email string    `json:"email"`
		Date  time.Time `json:"date"`
	} `json:"author"`
	Committer struct {
		Name string    `json:"name"`
		Date time.Time `json:"date"`
	} `json:"committer"`
	Message string `json:"message"`
}

// githubCommit represents an item from a commits listing.
type githubCommit struct {
	SHA       string             `json:"sha"`
	HTMLURL   string             `json:"html_url"`
	Commit    githubCommitDetail `json:"commit"`
	Author    *githubUser        `json:"author"`
	Committer *githubUser        `json:"committer"`
}

// githubPullRequest represents a GitHub pull request.
type githubPullRequest struct {
	CreatedAt *time.Time  `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at"`
	MergedAt  *time.Time  `json:"merged_at"`
	ClosedAt  *time.Time  `json:"closed_at"`
	User      *githubUser `json:"user"`
	Title     string      `json:"title"`
	State     string      `json:"state"`
	Body      string      `json:"body"`
	HTMLURL   string      `json:"html_url"`
	Number    int         `json:"number"`
}

// githubRepo represents a repository from a starred listing.
type githubRepo struct {
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	PushedAt    time.Time   `json:"pushed_at"`
	Owner       *githubUser `json:"owner"`
	Name        string      `json:"name"`
	FullName    string      `json:"full_name"`
	Description string      `json:"description"`
	HTMLURL     string      `json:"html_url"`
	Language    string      `json:"language"`
	Stars       int         `json:"stargazers_count"`
}
