// Package websearch queries the DuckDuckGo HTML endpoint and extracts search
// results. The endpoint needs no API key; results are scraped from a fixed
// CSS class structure on the returned page.
package websearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	searchURL = "https://html.duckduckgo.com/html/"
	// userAgent mimics a browser; the HTML endpoint rejects obvious bots.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) ghdigest/1.0"
	// defaultTimeout bounds the single search request.
	defaultTimeout = 10 * time.Second
	// maxResponseSize limits the page size read into memory.
	maxResponseSize = 5 * 1024 * 1024 // 5MB
)

// Result is one search hit parsed from the results page.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client performs DuckDuckGo HTML searches.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the search endpoint. Useful for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a search client with a 10 second request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
		baseURL:    searchURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries DuckDuckGo and returns up to max parsed results. The request
// is issued exactly once; any transport failure or non-2xx status is an error.
func (c *Client) Search(ctx context.Context, query string, max int) ([]Result, error) {
	reqURL := c.baseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.DebugContext(ctx, "search request starting", "url", reqURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.ErrorContext(ctx, "search request failed", "url", reqURL, "error", err, "elapsed", elapsed)
		return nil, fmt.Errorf("querying DuckDuckGo: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.DebugContext(ctx, "failed to close response body", "error", closeErr)
		}
	}()

	c.logger.DebugContext(ctx, "search response received", "status", resp.Status, "elapsed", elapsed)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("querying DuckDuckGo: unexpected status %s", resp.Status)
	}

	results, err := parseResults(io.LimitReader(resp.Body, maxResponseSize), max)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "parsed search results", "count", len(results))
	return results, nil
}

// parseResults extracts up to max (title, link, snippet) triples from the
// results page. Result blocks without a title anchor are skipped and do not
// count against max.
func parseResults(r io.Reader, max int) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var results []Result
	if max <= 0 {
		return results, nil
	}
	doc.Find("div.result__body").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		link := block.Find("a.result__a").First()
		if link.Length() == 0 {
			return true
		}

		href, _ := link.Attr("href")
		result := Result{
			Title:   strings.TrimSpace(link.Text()),
			Link:    href,
			Snippet: strings.TrimSpace(block.Find("a.result__snippet").First().Text()),
		}
		results = append(results, result)
		return len(results) < max
	})

	return results, nil
}
