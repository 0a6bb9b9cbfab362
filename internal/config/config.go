// Package config loads ghdigest settings from the environment. A .env file in
// the working directory is honored when present.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all environment-derived settings.
type Config struct {
	// GitHubToken is the personal access token fallback for the --token flag.
	GitHubToken string `env:"GITHUB_TOKEN"`
	// APIBaseURL overrides the GitHub API endpoint, e.g. for GitHub Enterprise.
	APIBaseURL string `env:"GHDIGEST_API_URL"`
	// GitHubTimeout bounds each GitHub API request.
	GitHubTimeout time.Duration `env:"GHDIGEST_GITHUB_TIMEOUT" env-default:"30s"`
	// SearchTimeout bounds the web search request.
	SearchTimeout time.Duration `env:"GHDIGEST_SEARCH_TIMEOUT" env-default:"10s"`
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment config: %w", err)
	}
	return &cfg, nil
}
