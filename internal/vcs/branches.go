// Package vcs maps repository types to the name of their default branch.
//
// The default branch is the synthetic top-priority entry when ordering a
// project's versions, ranked above "latest" and "stable".
package vcs

import "strings"

// Repository types known to the hosting platform.
const (
	Git        = "git"
	Mercurial  = "hg"
	Subversion = "svn"
	Bazaar     = "bzr"
)

// Branches maps a repository type to its default branch name. An empty
// name means the type has no default branch.
type Branches map[string]string

// Defaults returns the built-in table. Each call returns a fresh map.
func Defaults() Branches {
	return Branches{
		Git:        "master",
		Mercurial:  "default",
		Subversion: "trunk",
		Bazaar:     "",
	}
}

// DefaultBranch returns the default branch for repoType. Lookups are
// case-insensitive on the repository type.
func (b Branches) DefaultBranch(repoType string) (string, bool) {
	name, ok := b[strings.ToLower(repoType)]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// With returns a copy of b with overrides applied. An override with an
// empty name removes the mapping.
func (b Branches) With(overrides map[string]string) Branches {
	out := make(Branches, len(b)+len(overrides))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range overrides {
		out[strings.ToLower(k)] = v
	}
	return out
}
