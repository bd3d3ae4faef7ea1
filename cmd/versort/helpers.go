package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tsukumogami/versort/internal/errmsg"
	"github.com/tsukumogami/versort/internal/tty"
	"github.com/tsukumogami/versort/internal/version"
)

// printJSON marshals the given value to JSON and prints it to w
func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		exitWithCode(ExitGeneral)
	}
}

// printError prints an error to stderr with suggestions if available.
func printError(err error, ctx *errmsg.ErrorContext) {
	errmsg.Fprint(os.Stderr, err, ctx)
}

// refReader streams refs from a line-oriented source. Each non-blank line is
// "[tag|branch] <name>"; lines starting with '#' are comments.
type refReader struct {
	r           io.Reader
	defaultType version.RefType
	project     *version.Project
	line        int
	err         error
}

func newRefReader(r io.Reader, defaultType version.RefType, project *version.Project) *refReader {
	return &refReader{r: r, defaultType: defaultType, project: project}
}

// All yields refs one at a time as they are read. Check Err after the
// sequence is consumed.
func (rr *refReader) All() iter.Seq[*version.Ref] {
	return func(yield func(*version.Ref) bool) {
		sc := bufio.NewScanner(rr.r)
		for sc.Scan() {
			rr.line++
			ref, ok := parseRefLine(sc.Text(), rr.defaultType)
			if !ok {
				continue
			}
			ref.Project = rr.project
			if !yield(ref) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			rr.err = fmt.Errorf("reading refs at line %d: %w", rr.line, err)
		}
	}
}

// Err returns the read error that stopped All, if any.
func (rr *refReader) Err() error {
	return rr.err
}

// parseRefLine parses one input line. It returns false for blank lines and
// comments.
func parseRefLine(line string, defaultType version.RefType) (*version.Ref, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}

	typ := defaultType
	if kind, name, found := strings.Cut(line, " "); found {
		if t, err := version.ParseRefType(kind); err == nil {
			typ = t
			line = strings.TrimSpace(name)
		}
	}
	return version.NewRef(line, typ), true
}

// openInput returns the reader for a command's optional file argument.
// No argument or "-" means standard input.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	return f, nil
}

type refOutput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Type string `json:"type"`
}

func toOutput(refs []*version.Ref) []refOutput {
	out := make([]refOutput, len(refs))
	for i, r := range refs {
		out[i] = refOutput{Name: r.VerboseName, Slug: r.Slug, Type: string(r.Type)}
	}
	return out
}

// writeRefs prints refs as JSON, an aligned table on a terminal, or one
// name per line otherwise.
func writeRefs(w io.Writer, refs []*version.Ref, jsonOutput bool) {
	if jsonOutput {
		printJSON(w, toOutput(refs))
		return
	}
	if !tty.IsTerminal(w) {
		for _, r := range refs {
			fmt.Fprintln(w, r.VerboseName)
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tNAME")
	for i, r := range refs {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, r.Type, r.VerboseName)
	}
	tw.Flush()
}
