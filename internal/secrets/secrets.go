// Package secrets resolves API tokens.
//
// Secrets are resolved by checking environment variables first, then
// the [secrets] section in $VERSORT_HOME/config.toml. Requesting an
// unknown key returns an error.
package secrets

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tsukumogami/versort/internal/userconfig"
)

// KeyInfo describes a registered secret for external consumers.
type KeyInfo struct {
	Name    string   // Canonical key name, e.g. "github_token"
	EnvVars []string // Environment variables checked, in priority order
	Desc    string
}

var (
	configOnce  sync.Once
	cachedCfg   *userconfig.Config
	configError error
)

func getConfig() (*userconfig.Config, error) {
	configOnce.Do(func() {
		cachedCfg, configError = userconfig.Load()
	})
	return cachedCfg, configError
}

// ResetConfig makes the next Get or IsSet reload the config file.
// This is intended for testing only.
func ResetConfig() {
	configOnce = sync.Once{}
	cachedCfg = nil
	configError = nil
}

func lookup(name string, spec KeySpec) (string, bool) {
	for _, env := range spec.EnvVars {
		if val := os.Getenv(env); val != "" {
			return val, true
		}
	}

	cfg, err := getConfig()
	if err == nil && cfg != nil {
		if val := cfg.Secrets[name]; val != "" {
			return val, true
		}
	}
	return "", false
}

// Get resolves a secret by name. It returns an error if the key is unknown
// or no source has a value set.
func Get(name string) (string, error) {
	spec, ok := knownKeys[name]
	if !ok {
		return "", fmt.Errorf("unknown secret key: %q", name)
	}
	if val, ok := lookup(name, spec); ok {
		return val, nil
	}

	envList := strings.Join(spec.EnvVars, " or ")
	return "", fmt.Errorf(
		"%s not configured. Set the %s environment variable, or add %s to [secrets] in $VERSORT_HOME/config.toml",
		name, envList, name,
	)
}

// IsSet checks whether a secret is available without returning its value.
// Returns false for unknown keys.
func IsSet(name string) bool {
	spec, ok := knownKeys[name]
	if !ok {
		return false
	}
	_, found := lookup(name, spec)
	return found
}

// KnownKeys returns metadata for all registered secrets, sorted by name.
func KnownKeys() []KeyInfo {
	keys := make([]KeyInfo, 0, len(knownKeys))
	for name, spec := range knownKeys {
		keys = append(keys, KeyInfo{Name: name, EnvVars: spec.EnvVars, Desc: spec.Desc})
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Name < keys[j].Name
	})
	return keys
}
