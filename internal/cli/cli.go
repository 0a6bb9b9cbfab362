// Package cli implements the ghdigest command-line interface.
//
// Commands:
//   - activity: commits since a date or commit, with their pull requests
//   - stars: repositories starred by a user
//   - search: DuckDuckGo web search
//
// Progress and warnings go to stderr; only results are written to stdout.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the ghdigest CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:           "ghdigest",
		Short:         "ghdigest summarizes GitHub repository activity",
		Long:          `ghdigest fetches commits and pull requests from the GitHub REST API and prints JSON summaries, and can run quick DuckDuckGo web searches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newActivityCmd())
	root.AddCommand(newStarsCmd())
	root.AddCommand(newSearchCmd())

	return root.ExecuteContext(context.Background())
}
