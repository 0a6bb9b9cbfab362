package cli

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"ghdigest/internal/config"
	"ghdigest/pkg/websearch"
)

// newSearchCmd creates the search command: a quick DuckDuckGo web search.
func newSearchCmd() *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the web via DuckDuckGo and print the top results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := websearch.NewClient(
				websearch.WithLogger(slogFromContext(ctx)),
				websearch.WithHTTPClient(&http.Client{Timeout: cfg.SearchTimeout}))

			results, err := client.Search(ctx, query, number)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
				return nil
			}

			for i, result := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, result.Title)
				fmt.Fprintf(cmd.OutOrStdout(), "   Link: %s\n", result.Link)
				if result.Snippet != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", result.Snippet)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&number, "number", "n", 5, "number of results to display")

	return cmd
}
