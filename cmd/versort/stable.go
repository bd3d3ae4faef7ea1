package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/versort/internal/version"
)

var (
	stableDefaultType string
	stableJSON        bool
)

var stableCmd = &cobra.Command{
	Use:   "stable [file]",
	Short: "Print the ref that \"stable\" should point to",
	Long: `Print the ref that "stable" should point to.

The highest tag that is not a pre-release wins, even if a branch has a
higher version. Branches are only chosen when no tag qualifies.

Input uses the same format as 'versort sort'. Exits with code 4 when no
ref qualifies.

Examples:
  git tag | versort stable
  versort stable --json refs.txt`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultType := mustRefType(stableDefaultType)

		in, err := openInput(args)
		if err != nil {
			printError(err, nil)
			exitWithCode(ExitGeneral)
			return
		}
		defer in.Close()

		ref, err := findStable(in, defaultType)
		if err != nil {
			printError(err, nil)
			exitWithCode(ExitGeneral)
			return
		}
		if ref == nil {
			fmt.Fprintln(os.Stderr, "No stable version found")
			exitWithCode(ExitNoStable)
			return
		}

		if stableJSON {
			printJSON(os.Stdout, toOutput([]*version.Ref{ref})[0])
			return
		}
		fmt.Println(ref.VerboseName)
	},
}

func init() {
	stableCmd.Flags().StringVar(&stableDefaultType, "default-type", string(version.Tag), "Type of input lines without a tag/branch prefix")
	stableCmd.Flags().BoolVar(&stableJSON, "json", false, "Output in JSON format")
}

// findStable reads refs from r and returns the stable candidate, or nil.
func findStable(r io.Reader, defaultType version.RefType) (*version.Ref, error) {
	rr := newRefReader(r, defaultType, nil)
	ref := version.DetermineStableVersion(rr.All())
	if err := rr.Err(); err != nil {
		return nil, err
	}
	return ref, nil
}
