package cli

import (
	"github.com/cli/go-gh/v2/pkg/auth"

	"ghdigest/internal/config"
)

// resolveToken picks the GitHub token in precedence order: the --token flag,
// the GITHUB_TOKEN environment variable, then whatever the gh CLI has stored.
// An empty result means unauthenticated requests.
func resolveToken(flagToken string, cfg *config.Config) string {
	if flagToken != "" {
		return flagToken
	}
	if cfg.GitHubToken != "" {
		return cfg.GitHubToken
	}
	token, _ := auth.TokenForHost("github.com")
	return token
}
