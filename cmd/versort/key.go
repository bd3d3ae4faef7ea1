package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/versort/internal/version"
)

var (
	keyRepoType string
	keyJSON     bool
)

var keyCmd = &cobra.Command{
	Use:   "key <name>...",
	Short: "Show the comparison key for version names",
	Long: `Show the key each name is ranked by in the semantic ordering.

The repository's default branch sorts above "latest", which sorts above
"stable". Names that are not versions get the lowest key, shown as
<unparseable>.

Examples:
  versort key v1.2 2.x main latest
  versort key --repo-type hg default 1.0`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		repoType := cfg.RepoType
		if cmd.Flags().Changed("repo-type") {
			if err := cfg.Set("repo_type", keyRepoType); err != nil {
				fmt.Fprintf(os.Stderr, "Error: --repo-type: %v\n", err)
				exitWithCode(ExitUsage)
				return
			}
			repoType = cfg.RepoType
		}

		keys := computeKeys(args, repoType, cfg.Branches())
		if keyJSON {
			printJSON(os.Stdout, keys)
			return
		}
		writeKeys(os.Stdout, keys)
	},
}

func init() {
	keyCmd.Flags().StringVar(&keyRepoType, "repo-type", "", "Repository type used to find the default branch (git, hg, svn, bzr)")
	keyCmd.Flags().BoolVar(&keyJSON, "json", false, "Output in JSON format")
}

type keyOutput struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Valid bool   `json:"valid"`
}

func computeKeys(names []string, repoType string, branches version.BranchLookup) []keyOutput {
	out := make([]keyOutput, len(names))
	for i, name := range names {
		c := version.ComparableVersion(name, repoType, branches)
		out[i] = keyOutput{Name: name, Key: c.String(), Valid: c.Valid()}
	}
	return out
}

func writeKeys(w io.Writer, keys []keyOutput) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k.Name, k.Key)
	}
	tw.Flush()
}
