package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/versort/internal/log"
	"github.com/tsukumogami/versort/internal/version"
)

var (
	sortFlagValues   sortFlags
	sortVersionsOnly bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [file]",
	Short: "Order refs read from a file or standard input",
	Long: `Order refs newest first.

Each input line is a ref name, optionally prefixed with its type:

  tag v2.0.0
  branch 2.x
  main

Blank lines and lines starting with '#' are ignored. Lines without a prefix
use --default-type. With no file, or "-", refs are read from standard input.

Flags that are not set fall back to ~/.versort/config.toml.

Examples:
  git tag | versort sort
  versort sort --strategy calver releases.txt
  versort sort --strategy custom-pattern --pattern 'vMAJOR.MINOR[.PATCH]' refs.txt
  versort sort --versions-only --json refs.txt`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		opts := mustOptions(cmd, &sortFlagValues, cfg)
		defaultType := mustRefType(sortFlagValues.defaultType)

		in, err := openInput(args)
		if err != nil {
			printError(err, nil)
			exitWithCode(ExitGeneral)
			return
		}
		defer in.Close()

		project := &version.Project{RepoType: cfg.RepoType}
		sorted, err := sortRefs(in, defaultType, project, opts, sortVersionsOnly)
		if err != nil {
			printError(err, nil)
			exitWithCode(ExitGeneral)
			return
		}
		writeRefs(os.Stdout, sorted, sortFlagValues.jsonOutput)
	},
}

func init() {
	sortFlagValues.register(sortCmd, true)
	sortCmd.Flags().BoolVar(&sortVersionsOnly, "versions-only", false, "Only list refs with a semantic version number, ignoring --strategy")
}

// sortRefs reads refs from r and orders them. With versionsOnly, refs
// without a semantic version are dropped instead of ranked.
func sortRefs(r io.Reader, defaultType version.RefType, project *version.Project, opts version.Options, versionsOnly bool) ([]*version.Ref, error) {
	rr := newRefReader(r, defaultType, project)

	var sorted []*version.Ref
	if versionsOnly {
		log.Default().Info("sorting versions", "repo_type", project.RepoType)
		sorted = version.Refs(version.SortVersions(rr.All()))
	} else {
		log.Default().Info("sorting refs", "strategy", opts.Strategy, "repo_type", project.RepoType)
		sorted = version.Sort(rr.All(), opts)
	}
	if err := rr.Err(); err != nil {
		return nil, err
	}
	log.Default().Debug("sorted refs", "count", len(sorted))
	return sorted, nil
}
