// Package config resolves versort's environment-driven settings and the
// location of its home directory.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tsukumogami/versort/internal/log"
)

const (
	// EnvVersortHome is the environment variable to override the default versort home directory
	EnvVersortHome = "VERSORT_HOME"

	// EnvAPITimeout is the environment variable to configure API request timeout
	EnvAPITimeout = "VERSORT_API_TIMEOUT"

	// EnvGitHubAPIURL is the environment variable to point the remote lister at another GitHub API
	EnvGitHubAPIURL = "VERSORT_GITHUB_API_URL"

	// EnvRemoteRefLimit is the environment variable to cap how many refs are fetched per kind
	EnvRemoteRefLimit = "VERSORT_REMOTE_REF_LIMIT"

	// DefaultAPITimeout is the default timeout for API requests (30 seconds)
	DefaultAPITimeout = 30 * time.Second

	// DefaultRemoteRefLimit is the default number of tags (and of branches) fetched
	DefaultRemoteRefLimit = 1000
)

// GetAPITimeout returns the configured API timeout from VERSORT_API_TIMEOUT environment variable.
// If not set or invalid, returns DefaultAPITimeout (30 seconds).
// Accepts duration strings like "30s", "1m", "2m30s".
func GetAPITimeout() time.Duration {
	envValue := os.Getenv(EnvAPITimeout)
	if envValue == "" {
		return DefaultAPITimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		log.Default().Warn("invalid environment value, using default",
			"variable", EnvAPITimeout, "value", envValue, "default", DefaultAPITimeout)
		return DefaultAPITimeout
	}

	// Validate reasonable range (1 second to 10 minutes)
	if duration < 1*time.Second {
		log.Default().Warn("timeout too low, using minimum",
			"variable", EnvAPITimeout, "value", duration, "minimum", time.Second)
		return 1 * time.Second
	}
	if duration > 10*time.Minute {
		log.Default().Warn("timeout too high, using maximum",
			"variable", EnvAPITimeout, "value", duration, "maximum", 10*time.Minute)
		return 10 * time.Minute
	}

	return duration
}

// GetRemoteRefLimit returns the configured per-kind ref limit from VERSORT_REMOTE_REF_LIMIT.
// If not set or invalid, returns DefaultRemoteRefLimit. Values are clamped to 1..10000.
func GetRemoteRefLimit() int {
	envValue := strings.TrimSpace(os.Getenv(EnvRemoteRefLimit))
	if envValue == "" {
		return DefaultRemoteRefLimit
	}

	n, err := strconv.Atoi(envValue)
	if err != nil {
		log.Default().Warn("invalid environment value, using default",
			"variable", EnvRemoteRefLimit, "value", envValue, "default", DefaultRemoteRefLimit)
		return DefaultRemoteRefLimit
	}
	if n < 1 {
		log.Default().Warn("ref limit too low, using minimum", "variable", EnvRemoteRefLimit, "value", n, "minimum", 1)
		return 1
	}
	if n > 10000 {
		log.Default().Warn("ref limit too high, using maximum", "variable", EnvRemoteRefLimit, "value", n, "maximum", 10000)
		return 10000
	}
	return n
}

// GetGitHubAPIURL returns the GitHub API base URL override from VERSORT_GITHUB_API_URL,
// or "" to use api.github.com. The value must be an absolute http(s) URL.
func GetGitHubAPIURL() (string, error) {
	envValue := strings.TrimSpace(os.Getenv(EnvGitHubAPIURL))
	if envValue == "" {
		return "", nil
	}

	u, err := url.Parse(envValue)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", EnvGitHubAPIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid %s %q: must be an absolute http or https URL", EnvGitHubAPIURL, envValue)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String(), nil
}

// DefaultHomeOverride can be set by the binary's main package to change the
// default home directory. VERSORT_HOME still takes precedence.
var DefaultHomeOverride string

// Config holds versort configuration
type Config struct {
	HomeDir    string // $VERSORT_HOME
	ConfigFile string // $VERSORT_HOME/config.toml
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	home := os.Getenv(EnvVersortHome)
	if home == "" {
		if DefaultHomeOverride != "" {
			home = DefaultHomeOverride
		} else {
			userHome, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get user home directory: %w", err)
			}
			home = filepath.Join(userHome, ".versort")
		}
	}

	return &Config{
		HomeDir:    home,
		ConfigFile: filepath.Join(home, "config.toml"),
	}, nil
}

// EnsureDirectories creates the home directory if it does not exist
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.HomeDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.HomeDir, err)
	}
	return nil
}
