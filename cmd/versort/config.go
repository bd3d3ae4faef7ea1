package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/versort/internal/errmsg"
	"github.com/tsukumogami/versort/internal/secrets"
	"github.com/tsukumogami/versort/internal/userconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage versort configuration",
	Long: `Manage versort configuration settings.

Configuration is stored in ~/.versort/config.toml ($VERSORT_HOME/config.toml).

Available settings:
  strategy               Sorting strategy
  custom_pattern         Version pattern for the custom-pattern strategy
  latest_stable_first    List latest and stable first (true/false)
  repo_type              Repository type used to find the default branch
  default_branches.<vcs> Default branch name for a repository type

Examples:
  versort config get strategy
  versort config set strategy calver
  versort config set default_branches.git main`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		cfg := loadConfig()
		value, ok := cfg.Get(key)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
			fmt.Fprintf(os.Stderr, "\nAvailable keys:\n")
			printAvailableKeys(os.Stderr)
			exitWithCode(ExitUsage)
			return
		}

		fmt.Println(value)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Values are validated before saving.

Examples:
  versort config set strategy custom-pattern
  versort config set custom_pattern 'vMAJOR.MINOR[.PATCH]'
  versort config set latest_stable_first false`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		cfg := loadConfig()
		if err := cfg.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", errmsg.Format(err, nil))
			fmt.Fprintf(os.Stderr, "\nAvailable keys:\n")
			printAvailableKeys(os.Stderr)
			exitWithCode(ExitUsage)
			return
		}

		if err := cfg.Save(); err != nil {
			printError(err, &errmsg.ErrorContext{ConfigFile: configPath()})
			exitWithCode(ExitGeneral)
			return
		}

		fmt.Printf("%s = %s\n", key, value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		printConfig(os.Stdout, cfg)
		printSecrets(os.Stdout)

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "\nWarning: %v\n", err)
		}
	},
}

func printAvailableKeys(w io.Writer) {
	keys := userconfig.AvailableKeys()
	for _, k := range userconfig.SortedKeys() {
		fmt.Fprintf(w, "  %s - %s\n", k, keys[k])
	}
}

func printConfig(w io.Writer, cfg *userconfig.Config) {
	for _, k := range userconfig.SortedKeys() {
		value, _ := cfg.Get(k)
		fmt.Fprintf(w, "%s = %s\n", k, value)
	}
}

// printSecrets reports which secrets resolve, never their values.
func printSecrets(w io.Writer) {
	for _, k := range secrets.KnownKeys() {
		status := "(not set)"
		if secrets.IsSet(k.Name) {
			status = "(set)"
		}
		fmt.Fprintf(w, "secrets.%s = %s\n", k.Name, status)
	}
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}
