package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/versort/internal/buildinfo"
	"github.com/tsukumogami/versort/internal/log"
)

var (
	quietFlag   bool
	verboseFlag bool
	debugFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "versort",
	Short: "Order VCS branches and tags the way documentation menus list them",
	Long: `versort classifies, parses and orders version names from a repository's
branches and tags.

It understands semantic versions, calendar versions, custom patterns and
PEP 440, ranks the default branch, "latest" and "stable" above real
versions, and picks the ref that "stable" should point to.`,
	Version:       buildinfo.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefault(log.NewText(os.Stderr, determineLogLevel()))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log which strategy and inputs were used")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log every demoted or dropped version")

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(stableCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(configCmd)
}

// determineLogLevel picks the log level from flags, then VERSORT_* environment
// variables. The most verbose setting of a source wins; the default is WARN.
func determineLogLevel() slog.Level {
	switch {
	case debugFlag:
		return slog.LevelDebug
	case verboseFlag:
		return slog.LevelInfo
	case quietFlag:
		return slog.LevelError
	case isTruthy(os.Getenv("VERSORT_DEBUG")):
		return slog.LevelDebug
	case isTruthy(os.Getenv("VERSORT_VERBOSE")):
		return slog.LevelInfo
	case isTruthy(os.Getenv("VERSORT_QUIET")):
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// isTruthy reports whether an environment value means "enabled".
func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// quiet reports whether informational output on stderr should be suppressed.
func quiet() bool {
	return determineLogLevel() >= slog.LevelError
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitWithCode(ExitUsage)
	}
}
