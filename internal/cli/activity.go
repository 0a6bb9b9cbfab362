package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ghdigest/internal/config"
	"ghdigest/pkg/ghdigest"
)

// newActivityCmd creates the activity command: commits since a point in time
// plus the pull requests containing them.
func newActivityCmd() *cobra.Command {
	var (
		sinceDate   string
		sinceCommit string
		token       string
		includePRs  bool
	)

	cmd := &cobra.Command{
		Use:   "activity <owner/repo>",
		Short: "Fetch commits since a date or commit and their pull requests",
		Long: `Fetch all commits on the default branch since a date or commit, match them
against the repository's pull requests, and print one JSON report to stdout.

One of --since-date or --since-commit is required. When only --since-commit is
given, the commit's committer timestamp becomes the since date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			owner, repo, err := splitRepo(args[0])
			if err != nil {
				return err
			}

			opts := ghdigest.ActivityOptions{
				SinceCommit:  sinceCommit,
				IncludePulls: includePRs,
			}
			if sinceDate == "" && sinceCommit == "" {
				return errors.New("one of --since-date or --since-commit is required")
			}
			if sinceDate != "" {
				since, err := parseSinceDate(sinceDate)
				if err != nil {
					return err
				}
				opts.Since = since
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := ghdigest.NewClient(resolveToken(token, cfg),
				ghdigest.WithLogger(slogFromContext(ctx)),
				ghdigest.WithHTTPClient(&http.Client{Timeout: cfg.GitHubTimeout}),
				apiBaseOption(cfg))

			logger.Info("fetching repository activity", "repo", args[0])
			start := time.Now()
			report, err := client.Activity(ctx, owner, repo, opts)
			if err != nil {
				return describeGitHubError(err, "repository", args[0])
			}
			logger.Info("done",
				"commits", report.TotalCommits,
				"prs", report.TotalPulls,
				"elapsed", time.Since(start).Round(time.Millisecond))

			return printJSON(report)
		},
	}

	cmd.Flags().StringVar(&sinceDate, "since-date", "", "fetch commits at or after this date (e.g. 2024-01-31)")
	cmd.Flags().StringVar(&sinceCommit, "since-commit", "", "fetch commits at or after this commit SHA")
	cmd.Flags().StringVar(&token, "token", "", "GitHub access token (defaults to GITHUB_TOKEN)")
	cmd.Flags().BoolVar(&includePRs, "include-prs", true, "associate commits with pull requests")

	return cmd
}

// splitRepo splits an "owner/name" argument.
func splitRepo(arg string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(arg, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q (expected owner/name)", arg)
	}
	return owner, repo, nil
}

// apiBaseOption returns a base URL override option when one is configured,
// and a no-op otherwise.
func apiBaseOption(cfg *config.Config) ghdigest.Option {
	if cfg.APIBaseURL != "" {
		return ghdigest.WithBaseURL(cfg.APIBaseURL)
	}
	return func(*ghdigest.Client) {}
}

// describeGitHubError maps classified API errors to the fixed user-facing
// messages; anything else passes through unchanged.
func describeGitHubError(err error, kind, name string) error {
	switch {
	case ghdigest.IsNotFound(err):
		return fmt.Errorf("%s not found: %s", kind, name)
	case ghdigest.IsRateLimited(err):
		return errors.New("GitHub rate limit exceeded; supply an access token via --token or GITHUB_TOKEN")
	default:
		return err
	}
}

// printJSON writes v to stdout with two-space indentation.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
