package version

import (
	"iter"
	"slices"
)

// SortForDisplay orders refs the way version menus list them, newest first:
// the VCS default branch, "latest", "stable", then every parseable version,
// then everything else in input order.
//
// The repository type is taken from the first ref's project. No ref is
// dropped.
func SortForDisplay(refs iter.Seq[*Ref], branches BranchLookup) []*Ref {
	var ranked []Ranked
	repoType := ""
	for ref := range refs {
		if ref == nil {
			continue
		}
		if len(ranked) == 0 {
			repoType = ref.repoType()
		}
		ranked = append(ranked, Ranked{Ref: ref})
	}

	for i := range ranked {
		ranked[i].Version = ComparableVersion(ranked[i].Ref.VerboseName, repoType, branches)
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Version.Compare(a.Version)
	})
	return Refs(ranked)
}
