// Package testutil holds test helpers shared across packages.
package testutil

import (
	"os"
	"testing"

	"github.com/tsukumogami/versort/internal/config"
)

// TokenEnvVars are the environment variables a GitHub token is read from.
var TokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// NewTestConfig points VERSORT_HOME at a fresh temporary directory for the
// rest of the test and returns the matching config. The directory exists
// but holds no config file.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.EnvVersortHome, t.TempDir())

	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("failed to create test home: %v", err)
	}
	return cfg
}

// WriteConfigFile writes contents to the config file of cfg.
func WriteConfigFile(t *testing.T, cfg *config.Config, contents string) {
	t.Helper()
	if err := os.WriteFile(cfg.ConfigFile, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

// ClearTokens unsets every GitHub token variable for the rest of the test.
func ClearTokens(t *testing.T) {
	t.Helper()
	for _, env := range TokenEnvVars {
		t.Setenv(env, "")
	}
}
