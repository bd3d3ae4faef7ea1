package version

import (
	"iter"
	"slices"
)

// tags builds tag refs whose slug and verbose name are the given names.
func tags(names ...string) []*Ref {
	out := make([]*Ref, len(names))
	for i, n := range names {
		out[i] = NewRef(n, Tag)
	}
	return out
}

// names returns the verbose names of refs, in order.
func names(refs []*Ref) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.VerboseName
	}
	return out
}

func seq(refs []*Ref) iter.Seq[*Ref] {
	return slices.Values(refs)
}

// countingSeq yields refs and records how many times it was iterated and
// how many refs it handed out.
type countingSeq struct {
	refs    []*Ref
	passes  int
	yielded int
}

func (c *countingSeq) All() iter.Seq[*Ref] {
	return func(yield func(*Ref) bool) {
		c.passes++
		for _, r := range c.refs {
			c.yielded++
			if !yield(r) {
				return
			}
		}
	}
}

// isSortedDescending reports whether ranked is ordered newest first.
func isSortedDescending(ranked []Ranked) bool {
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Version.Compare(ranked[i].Version) < 0 {
			return false
		}
	}
	return true
}
