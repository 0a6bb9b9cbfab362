package ghdigest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient wires a Client to a test server with logging discarded.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-token",
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return client, server
}

func TestGithubClient_DoRequest(t *testing.T) {
	tests := []struct {
		serverHandler  http.HandlerFunc
		name           string
		path           string
		token          string
		wantErr        bool
		wantStatusCode int
	}{
		{
			name:  "successful request",
			path:  "/test",
			token: "test-token",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
					t.Errorf("Authorization = %q, want bearer token", got)
				}
				if got := r.Header.Get("Accept"); got != "application/vnd.github.v3+json" {
					t.Errorf("Accept = %q", got)
				}
				if got := r.Header.Get("User-Agent"); got != userAgent {
					t.Errorf("User-Agent = %q, want %q", got, userAgent)
				}
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"test": "data"}`))
			},
		},
		{
			name:  "no authorization header without token",
			path:  "/test",
			token: "",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "" {
					t.Errorf("Authorization = %q, want empty", got)
				}
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{}`))
			},
		},
		{
			name:  "api error 404",
			path:  "/notfound",
			token: "test-token",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			},
			wantErr:        true,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:  "api error 403",
			path:  "/limited",
			token: "test-token",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message": "rate limit exceeded"}`))
			},
			wantErr:        true,
			wantStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.serverHandler)
			defer server.Close()

			client := &githubClient{
				client: server.Client(),
				logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
				token:  tt.token,
				api:    server.URL,
			}

			data, err := client.doRequest(context.Background(), tt.path)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected *APIError, got %T", err)
				}
				if apiErr.StatusCode != tt.wantStatusCode {
					t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantStatusCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(data) == 0 {
				t.Error("expected data but got none")
			}
		})
	}
}

func TestGithubClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"login": "testuser", "type": "User"}`))
	}))
	defer server.Close()

	client := &githubClient{
		client: server.Client(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		token:  "test-token",
		api:    server.URL,
	}

	var user githubUser
	if err := client.get(context.Background(), "/users/testuser", &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Login != "testuser" {
		t.Errorf("Login = %q, want %q", user.Login, "testuser")
	}
	if user.Type != "User" {
		t.Errorf("Type = %q, want %q", user.Type, "User")
	}
}

func TestErrorClassification(t *testing.T) {
	notFound := fmt.Errorf("fetching commits: %w", &APIError{StatusCode: http.StatusNotFound, Status: "404 Not Found"})
	forbidden := fmt.Errorf("fetching commits: %w", &APIError{StatusCode: http.StatusForbidden, Status: "403 Forbidden"})
	tooMany := &APIError{StatusCode: http.StatusTooManyRequests, Status: "429 Too Many Requests"}
	plain := errors.New("connection refused")

	if !IsNotFound(notFound) {
		t.Error("IsNotFound should match a wrapped 404")
	}
	if IsNotFound(forbidden) || IsNotFound(plain) {
		t.Error("IsNotFound matched a non-404 error")
	}
	if !IsRateLimited(forbidden) {
		t.Error("IsRateLimited should match a wrapped 403")
	}
	if !IsRateLimited(tooMany) {
		t.Error("IsRateLimited should match a 429")
	}
	if IsRateLimited(notFound) || IsRateLimited(plain) {
		t.Error("IsRateLimited matched a non-rate-limit error")
	}
}
