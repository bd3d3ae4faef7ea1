package version

import (
	"github.com/Masterminds/semver/v3"
)

// syntheticCeiling is the major version assigned to the highest-priority
// synthetic name. Lower priorities count down from it.
const syntheticCeiling = 999999

// BranchLookup resolves the default branch name of a repository type
// (e.g. "git" -> "master"). An empty name or false means no mapping.
type BranchLookup interface {
	DefaultBranch(repoType string) (string, bool)
}

// Comparable is a totally ordered version key.
//
// The zero value is the "unparseable" sentinel: it compares equal to other
// zero values and below every parsed version.
type Comparable struct {
	v *semver.Version
}

// Valid reports whether c holds a parsed version rather than the sentinel.
func (c Comparable) Valid() bool {
	return c.v != nil
}

// Compare returns -1, 0 or 1. Build metadata is ignored.
func (c Comparable) Compare(o Comparable) int {
	switch {
	case c.v == nil && o.v == nil:
		return 0
	case c.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return c.v.Compare(o.v)
}

// Equal reports whether c and o rank identically.
func (c Comparable) Equal(o Comparable) bool {
	return c.Compare(o) == 0
}

// IsPrerelease reports whether c carries a pre-release suffix (alpha, rc1, ...).
func (c Comparable) IsPrerelease() bool {
	return c.v != nil && c.v.Prerelease() != ""
}

func (c Comparable) String() string {
	if c.v == nil {
		return "<unparseable>"
	}
	return c.v.String()
}

// priorityNames returns the synthetic names from highest to lowest priority.
func priorityNames(repoType string, branches BranchLookup) []string {
	names := make([]string, 0, 3)
	if repoType != "" && branches != nil {
		if name, ok := branches.DefaultBranch(repoType); ok && name != "" {
			names = append(names, name)
		}
	}
	return append(names, Latest, Stable)
}

// ComparableVersion returns the sort key for a version name. It never fails.
//
// Parseable names rank by their version number. Otherwise the VCS default
// branch (when repoType maps to one), "latest" and "stable" rank above every
// real version in that order, and anything else gets the zero sentinel.
func ComparableVersion(raw, repoType string, branches BranchLookup) Comparable {
	if c, ok := ParseFailsafe(raw); ok {
		return c
	}

	for i, name := range priorityNames(repoType, branches) {
		if raw == name {
			return Comparable{v: semver.New(uint64(syntheticCeiling-i), 0, 0, "", "")}
		}
	}
	return Comparable{}
}
