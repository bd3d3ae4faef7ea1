package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/tsukumogami/versort/internal/version"
)

func TestDevVersion(t *testing.T) {
	tests := []struct {
		name     string
		settings []debug.BuildSetting
		expected string
	}{
		{
			name:     "no vcs info",
			expected: "0.0.0-dev",
		},
		{
			name:     "long revision truncated",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123def456789"}},
			expected: "0.0.0-dev+abc123def456",
		},
		{
			name:     "short revision",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			expected: "0.0.0-dev+abc123",
		},
		{
			name: "dirty tree",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123def456789"},
				{Key: "vcs.modified", Value: "true"},
			},
			expected: "0.0.0-dev+abc123def456.dirty",
		},
		{
			name: "clean tree",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123def456"},
				{Key: "vcs.modified", Value: "false"},
			},
			expected: "0.0.0-dev+abc123def456",
		},
		{
			name: "other settings ignored",
			settings: []debug.BuildSetting{
				{Key: "vcs", Value: "git"},
				{Key: "vcs.time", Value: "2025-01-15T12:00:00Z"},
				{Key: "vcs.revision", Value: "abc123def456"},
			},
			expected: "0.0.0-dev+abc123def456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := devVersion(&debug.BuildInfo{Settings: tt.settings})
			if got != tt.expected {
				t.Errorf("devVersion() = %q, want %q", got, tt.expected)
			}
			if _, ok := version.ParseFailsafe(got); !ok {
				t.Errorf("devVersion() = %q is not a comparable version", got)
			}
		})
	}
}

func TestVersionOverride(t *testing.T) {
	orig := Override
	defer func() { Override = orig }()

	Override = "v1.4.0"
	if Version() != "v1.4.0" {
		t.Errorf("Version() = %q, want v1.4.0", Version())
	}
	if UserAgent() != "versort/v1.4.0" {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}

func TestVersion_Integration(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("Version() returned empty string")
	}
	if !strings.HasPrefix(v, "v") && !strings.HasPrefix(v, "0.0.0-") {
		t.Errorf("Version() = %q, expected a tag or a 0.0.0 pre-release", v)
	}
}
