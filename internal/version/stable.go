package version

import "iter"

// DetermineStableVersion picks the ref that "stable" should point to.
//
// Candidates are the semantically sorted refs without pre-releases. The
// first tag among them wins, even when a branch ranks higher; with no tags,
// the highest-ranked branch wins. It returns nil when there is no candidate.
func DetermineStableVersion(refs iter.Seq[*Ref]) *Ref {
	var candidates []Ranked
	for _, r := range SortVersions(refs) {
		if !r.Version.IsPrerelease() {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	for _, r := range candidates {
		if r.Ref.Type == Tag {
			return r.Ref
		}
	}
	return candidates[0].Ref
}
