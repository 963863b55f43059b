package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the process-wide settings provided by the CI environment.
// It is loaded once in main and passed down; the request core never reads the environment.
type Config struct {
	APIURL     string `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`
	Repository string `envconfig:"GITHUB_REPOSITORY" required:"true"`
	Token      string `envconfig:"GITHUB_TOKEN"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load environment configuration: %w", err)
	}
	return cfg, nil
}

// RepoURL is the REST root of the configured repository.
func (c Config) RepoURL() string {
	return fmt.Sprintf("%s/repos/%s", strings.TrimRight(c.APIURL, "/"), c.Repository)
}

func (c Config) ClosedPullsURL() string {
	return c.RepoURL() + "/pulls?state=closed"
}

// AuthHeaders returns the Authorization header for the token, empty when no token is set.
func (c Config) AuthHeaders() map[string]string {
	if c.Token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + c.Token}
}
