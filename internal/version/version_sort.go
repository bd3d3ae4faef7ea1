package version

import (
	"iter"
	"slices"
)

// Ranked pairs a ref with the key it was ranked by.
type Ranked struct {
	Ref     *Ref
	Version Comparable
}

// SortVersions returns the refs with a comparable version number, newest
// first. Refs whose verbose name does not parse (including "latest" and
// "stable") are left out of the result, not ranked.
//
// refs is consumed once, one ref at a time, and nil refs are skipped. Refs
// with equal versions keep their input order.
func SortVersions(refs iter.Seq[*Ref]) []Ranked {
	var ranked []Ranked
	for ref := range refs {
		if ref == nil {
			continue
		}
		if c, ok := ParseFailsafe(ref.VerboseName); ok {
			ranked = append(ranked, Ranked{Ref: ref, Version: c})
		}
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Version.Compare(a.Version)
	})
	return ranked
}

// Refs extracts the refs from ranked, preserving order.
func Refs(ranked []Ranked) []*Ref {
	out := make([]*Ref, len(ranked))
	for i, r := range ranked {
		out[i] = r.Ref
	}
	return out
}
