package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/versort/internal/errmsg"
	"github.com/tsukumogami/versort/internal/remote"
	"github.com/tsukumogami/versort/internal/tty"
	"github.com/tsukumogami/versort/internal/vcs"
	"github.com/tsukumogami/versort/internal/version"
)

var remoteFlagValues sortFlags

var remoteCmd = &cobra.Command{
	Use:   "remote <owner/repo>",
	Short: "Order the tags and branches of a GitHub repository",
	Long: `List the tags and branches of a GitHub repository and order them.

The repository's default branch is ranked first, followed by every version
in the configured ordering. The ref that "stable" should point to is
reported after the list.

Set GITHUB_TOKEN to raise the API rate limit. VERSORT_GITHUB_API_URL points
at a GitHub Enterprise API.

Examples:
  versort remote spf13/cobra
  versort remote --strategy calver --json owner/repo`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := args[0]
		if _, _, err := remote.ParseRepo(repo); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitWithCode(ExitUsage)
			return
		}

		cfg := loadConfig()
		opts := mustOptions(cmd, &remoteFlagValues, cfg)
		errCtx := &errmsg.ErrorContext{Repo: repo, ConfigFile: configPath()}

		lister, err := remote.NewFromEnv()
		if err != nil {
			printError(err, errCtx)
			exitWithCode(ExitConfig)
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		spinner := tty.NewSpinner(os.Stderr, quiet())
		spinner.Start("Listing refs for " + repo)
		result, err := listRemote(ctx, lister, repo, opts, cfg.Branches())
		if err != nil {
			spinner.Stop()
			printError(err, errCtx)
			exitWithCode(remoteExitCode(err))
			return
		}
		spinner.StopWithMessage(fmt.Sprintf("Listed %d refs for %s", len(result.Refs), repo))

		if remoteFlagValues.jsonOutput {
			printJSON(os.Stdout, result)
			return
		}
		writeRefs(os.Stdout, result.sorted, false)
		if result.stable != nil {
			fmt.Fprintf(os.Stderr, "Stable: %s\n", result.stable.VerboseName)
		} else {
			fmt.Fprintln(os.Stderr, "Stable: none")
		}
	},
}

func init() {
	remoteFlagValues.register(remoteCmd, false)
}

// refLister is satisfied by *remote.Lister.
type refLister interface {
	ListRefs(ctx context.Context, repo string) (*remote.Listing, error)
}

type remoteResult struct {
	Repo          string      `json:"repo"`
	DefaultBranch string      `json:"default_branch"`
	Stable        *refOutput  `json:"stable"`
	Refs          []refOutput `json:"refs"`

	sorted []*version.Ref
	stable *version.Ref
}

// listRemote fetches repo's refs, orders them with opts and resolves the
// stable version. The repository's own default branch replaces the git
// entry of base.
func listRemote(ctx context.Context, l refLister, repo string, opts version.Options, base vcs.Branches) (*remoteResult, error) {
	listing, err := l.ListRefs(ctx, repo)
	if err != nil {
		return nil, err
	}

	opts.Branches = listing.Branches(base)

	sorted := version.Sort(slices.Values(listing.Refs), opts)
	stable := version.DetermineStableVersion(slices.Values(listing.Refs))

	result := &remoteResult{
		Repo:          listing.Owner + "/" + listing.Repo,
		DefaultBranch: listing.DefaultBranch,
		Refs:          toOutput(sorted),
		sorted:        sorted,
		stable:        stable,
	}
	if stable != nil {
		out := toOutput([]*version.Ref{stable})[0]
		result.Stable = &out
	}
	return result, nil
}

// remoteExitCode maps a listing failure to an exit code.
func remoteExitCode(err error) int {
	var notFound *remote.RepoNotFoundError
	if errors.As(err, &notFound) {
		return ExitGeneral
	}
	return ExitNetwork
}
