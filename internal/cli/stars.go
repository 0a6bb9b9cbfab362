package cli

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"ghdigest/internal/config"
	"ghdigest/pkg/ghdigest"
)

// newStarsCmd creates the stars command: repositories starred by a user.
func newStarsCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "stars <username>",
		Short: "Fetch repositories starred by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			username := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := ghdigest.NewClient(resolveToken(token, cfg),
				ghdigest.WithLogger(slogFromContext(ctx)),
				ghdigest.WithHTTPClient(&http.Client{Timeout: cfg.GitHubTimeout}),
				apiBaseOption(cfg))

			logger.Info("fetching starred repositories", "username", username)
			start := time.Now()
			report, err := client.Starred(ctx, username)
			if err != nil {
				return describeGitHubError(err, "user", username)
			}
			logger.Info("done", "count", report.TotalCount, "elapsed", time.Since(start).Round(time.Millisecond))

			return printJSON(report)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub access token (defaults to GITHUB_TOKEN)")

	return cmd
}
