// Package userconfig provides user configuration management for versort.
// Configuration is stored in ~/.versort/config.toml and can be modified
// via the `versort config` command.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tsukumogami/versort/internal/config"
	"github.com/tsukumogami/versort/internal/vcs"
	"github.com/tsukumogami/versort/internal/version"
)

const branchKeyPrefix = "default_branches."

// Config represents user-configurable settings.
type Config struct {
	// Strategy selects the ordering algorithm. Default is "semver".
	Strategy string `toml:"strategy"`

	// CustomPattern is required when Strategy is "custom-pattern".
	CustomPattern string `toml:"custom_pattern"`

	// LatestStableFirst pins "latest" and "stable" above everything else in
	// the generic strategies. Default is true.
	LatestStableFirst bool `toml:"latest_stable_first"`

	// RepoType is the repository type assumed for refs without a project.
	// Default is "git".
	RepoType string `toml:"repo_type"`

	// DefaultBranches overrides the built-in default branch per repository
	// type. An empty name removes the mapping.
	DefaultBranches map[string]string `toml:"default_branches,omitempty"`

	// Secrets holds API tokens such as github_token. Environment variables
	// take precedence; see package secrets. Not exposed through Get or Set.
	Secrets map[string]string `toml:"secrets,omitempty"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Strategy:          string(version.StrategySemver),
		LatestStableFirst: true,
		RepoType:          vcs.Git,
	}
}

// Load reads the config file and returns the configuration.
// Returns default values if the file doesn't exist.
// Returns an error only for file parsing issues, not missing files.
func Load() (*Config, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return DefaultConfig(), nil // Silently use defaults
	}

	return loadFromPath(cfg.ConfigFile)
}

// loadFromPath reads config from a specific file path (for testing).
func loadFromPath(path string) (*Config, error) {
	userCfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return userCfg, nil // File doesn't exist, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), userCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in config file", undecoded[0].String())
	}

	return userCfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.saveToPath(cfg.ConfigFile)
}

// saveToPath writes config to a specific file path (for testing).
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the value of a config key as a string.
// Returns empty string and false if the key doesn't exist.
func (c *Config) Get(key string) (string, bool) {
	key = strings.ToLower(key)
	if repoType, ok := strings.CutPrefix(key, branchKeyPrefix); ok {
		name, found := c.Branches().DefaultBranch(repoType)
		if !found {
			_, known := vcs.Defaults()[repoType]
			_, overridden := c.DefaultBranches[repoType]
			return "", known || overridden
		}
		return name, true
	}

	switch key {
	case "strategy":
		return c.Strategy, true
	case "custom_pattern":
		return c.CustomPattern, true
	case "latest_stable_first":
		return strconv.FormatBool(c.LatestStableFirst), true
	case "repo_type":
		return c.RepoType, true
	default:
		return "", false
	}
}

// Set updates a config value from a string.
// Returns an error if the key doesn't exist or the value is invalid.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(key)
	if repoType, ok := strings.CutPrefix(key, branchKeyPrefix); ok {
		if repoType == "" {
			return fmt.Errorf("missing repository type in key %q", key)
		}
		if c.DefaultBranches == nil {
			c.DefaultBranches = make(map[string]string)
		}
		c.DefaultBranches[repoType] = strings.TrimSpace(value)
		return nil
	}

	switch key {
	case "strategy":
		st, err := version.ParseStrategy(value)
		if err != nil {
			return fmt.Errorf("invalid value for strategy: %w", err)
		}
		c.Strategy = string(st)
		return nil
	case "custom_pattern":
		if value != "" {
			if _, err := version.CompilePattern(value); err != nil {
				return fmt.Errorf("invalid value for custom_pattern: %w", err)
			}
		}
		c.CustomPattern = value
		return nil
	case "latest_stable_first":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for latest_stable_first: must be true or false")
		}
		c.LatestStableFirst = b
		return nil
	case "repo_type":
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			return fmt.Errorf("invalid value for repo_type: must not be empty")
		}
		c.RepoType = value
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// AvailableKeys returns a list of all configurable keys with descriptions.
func AvailableKeys() map[string]string {
	keys := map[string]string{
		"strategy":            "Sorting strategy (" + strategyNames() + ")",
		"custom_pattern":      "Version pattern for the custom-pattern strategy (e.g. vMAJOR.MINOR[.PATCH])",
		"latest_stable_first": "List latest and stable first in pattern-based strategies (true/false)",
		"repo_type":           "Repository type used to find the default branch (git, hg, svn, bzr)",
	}
	for repoType := range vcs.Defaults() {
		keys[branchKeyPrefix+repoType] = "Default branch name for " + repoType + " repositories"
	}
	return keys
}

func strategyNames() string {
	var names []string
	for _, st := range version.Strategies() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

// Branches returns the built-in default branches with the file's overrides applied.
func (c *Config) Branches() vcs.Branches {
	return vcs.Defaults().With(c.DefaultBranches)
}

// SortOptions converts the configuration into sorting options.
func (c *Config) SortOptions() (version.Options, error) {
	st, err := version.ParseStrategy(c.Strategy)
	if err != nil {
		return version.Options{}, err
	}
	return version.Options{
		Strategy:        st,
		Pattern:         c.CustomPattern,
		PinLatestStable: c.LatestStableFirst,
		Branches:        c.Branches(),
	}, nil
}

// Validate reports configuration that would make sorting misbehave, such as
// selecting the custom-pattern strategy without a pattern.
func (c *Config) Validate() error {
	opts, err := c.SortOptions()
	if err != nil {
		return err
	}
	return opts.Validate()
}

// SortedKeys returns the names from AvailableKeys in alphabetical order.
func SortedKeys() []string {
	keys := AvailableKeys()
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
