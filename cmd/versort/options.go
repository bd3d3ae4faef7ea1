package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/versort/internal/config"
	"github.com/tsukumogami/versort/internal/errmsg"
	"github.com/tsukumogami/versort/internal/userconfig"
	"github.com/tsukumogami/versort/internal/version"
)

// sortFlags holds the ordering flags shared by sort and remote. Flags left
// unset fall back to the config file.
type sortFlags struct {
	strategy    string
	pattern     string
	pin         bool
	repoType    string
	defaultType string
	jsonOutput  bool
}

func (f *sortFlags) register(cmd *cobra.Command, withInput bool) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "Sorting strategy (semver, calver, custom-pattern, python-packaging, alphabetical)")
	cmd.Flags().StringVarP(&f.pattern, "pattern", "p", "", "Version pattern for the custom-pattern strategy, e.g. vMAJOR.MINOR[.PATCH]")
	cmd.Flags().BoolVar(&f.pin, "pin", true, "List latest and stable first in pattern-based strategies")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output in JSON format")
	if withInput {
		cmd.Flags().StringVar(&f.repoType, "repo-type", "", "Repository type used to find the default branch (git, hg, svn, bzr)")
		cmd.Flags().StringVar(&f.defaultType, "default-type", string(version.Tag), "Type of input lines without a tag/branch prefix")
	}
}

// apply overlays the flags that were set on cmd onto cfg, validating each
// value the same way `versort config set` does.
func (f *sortFlags) apply(cmd *cobra.Command, cfg *userconfig.Config) error {
	overrides := []struct {
		flag, key, value string
	}{
		{"strategy", "strategy", f.strategy},
		{"pattern", "custom_pattern", f.pattern},
		{"pin", "latest_stable_first", strconv.FormatBool(f.pin)},
		{"repo-type", "repo_type", f.repoType},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.value); err != nil {
			return fmt.Errorf("--%s: %w", o.flag, err)
		}
	}
	return nil
}

// resolveOptions combines the config file with flags into validated options.
func (f *sortFlags) resolveOptions(cmd *cobra.Command, cfg *userconfig.Config) (version.Options, error) {
	if err := f.apply(cmd, cfg); err != nil {
		return version.Options{}, err
	}
	opts, err := cfg.SortOptions()
	if err != nil {
		return version.Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return version.Options{}, err
	}
	return opts, nil
}

// configPath returns the config file location for error messages.
func configPath() string {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return ""
	}
	return cfg.ConfigFile
}

// loadConfig loads the user config, exiting with ExitConfig on failure.
func loadConfig() *userconfig.Config {
	cfg, err := userconfig.Load()
	if err != nil {
		printError(err, &errmsg.ErrorContext{ConfigFile: configPath()})
		exitWithCode(ExitConfig)
	}
	return cfg
}

// mustOptions resolves the sort options, exiting with ExitConfig on failure.
func mustOptions(cmd *cobra.Command, f *sortFlags, cfg *userconfig.Config) version.Options {
	opts, err := f.resolveOptions(cmd, cfg)
	if err != nil {
		printError(err, &errmsg.ErrorContext{ConfigFile: configPath()})
		exitWithCode(ExitConfig)
	}
	return opts
}

// mustRefType parses --default-type, exiting with ExitUsage on failure.
func mustRefType(s string) version.RefType {
	t, err := version.ParseRefType(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: --default-type: %v\n", err)
		exitWithCode(ExitUsage)
	}
	return t
}
