package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv(EnvVersortHome, "")

	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	expectedHome := filepath.Join(home, ".versort")

	if cfg.HomeDir != expectedHome {
		t.Errorf("HomeDir = %q, want %q", cfg.HomeDir, expectedHome)
	}
	if cfg.ConfigFile != filepath.Join(expectedHome, "config.toml") {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, filepath.Join(expectedHome, "config.toml"))
	}
}

func TestDefaultConfig_WithVersortHome(t *testing.T) {
	customHome := filepath.Join(t.TempDir(), "custom-versort")
	t.Setenv(EnvVersortHome, customHome)

	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() failed: %v", err)
	}
	if cfg.HomeDir != customHome {
		t.Errorf("HomeDir = %q, want %q", cfg.HomeDir, customHome)
	}
	if cfg.ConfigFile != filepath.Join(customHome, "config.toml") {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, filepath.Join(customHome, "config.toml"))
	}
}

func TestDefaultConfig_HomeOverride(t *testing.T) {
	t.Setenv(EnvVersortHome, "")
	original := DefaultHomeOverride
	defer func() { DefaultHomeOverride = original }()

	DefaultHomeOverride = "/opt/versort-dev"
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() failed: %v", err)
	}
	if cfg.HomeDir != "/opt/versort-dev" {
		t.Errorf("HomeDir = %q, want /opt/versort-dev", cfg.HomeDir)
	}

	// VERSORT_HOME wins over the override
	t.Setenv(EnvVersortHome, "/tmp/explicit")
	cfg, _ = DefaultConfig()
	if cfg.HomeDir != "/tmp/explicit" {
		t.Errorf("HomeDir = %q, want /tmp/explicit", cfg.HomeDir)
	}
}

func TestEnsureDirectories(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "versort")
	cfg := &Config{HomeDir: home, ConfigFile: filepath.Join(home, "config.toml")}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() failed: %v", err)
	}
	info, err := os.Stat(home)
	if err != nil {
		t.Fatalf("Directory %q does not exist: %v", home, err)
	}
	if !info.IsDir() {
		t.Errorf("%q is not a directory", home)
	}
}

func TestGetAPITimeout(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{"default", "", DefaultAPITimeout},
		{"custom value", "45s", 45 * time.Second},
		{"invalid value", "invalid", DefaultAPITimeout},
		{"too low", "100ms", 1 * time.Second},
		{"too high", "1h", 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPITimeout, tt.value)
			if got := GetAPITimeout(); got != tt.expected {
				t.Errorf("GetAPITimeout() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetRemoteRefLimit(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"default", "", DefaultRemoteRefLimit},
		{"custom value", "250", 250},
		{"whitespace", " 40 ", 40},
		{"invalid value", "lots", DefaultRemoteRefLimit},
		{"too low", "0", 1},
		{"too high", "50000", 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRemoteRefLimit, tt.value)
			if got := GetRemoteRefLimit(); got != tt.expected {
				t.Errorf("GetRemoteRefLimit() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetGitHubAPIURL(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		wantErr  bool
	}{
		{name: "unset", value: "", expected: ""},
		{name: "adds trailing slash", value: "http://127.0.0.1:8080", expected: "http://127.0.0.1:8080/"},
		{name: "keeps path", value: "https://ghe.example.com/api/v3/", expected: "https://ghe.example.com/api/v3/"},
		{name: "relative", value: "/api", wantErr: true},
		{name: "wrong scheme", value: "ftp://example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvGitHubAPIURL, tt.value)
			got, err := GetGitHubAPIURL()
			if tt.wantErr {
				if err == nil {
					t.Errorf("GetGitHubAPIURL() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetGitHubAPIURL() failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("GetGitHubAPIURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}
