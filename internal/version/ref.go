package version

import "fmt"

// RefType distinguishes the two kinds of VCS references a version can come from.
type RefType string

const (
	// Branch is a VCS branch (e.g. "main", "2.x").
	Branch RefType = "branch"
	// Tag is a VCS tag (e.g. "v2.0.0").
	Tag RefType = "tag"
)

// Synthetic version names. They do not correspond to branches or tags in a
// project's repository and are ranked above every real version.
const (
	Latest = "latest"
	Stable = "stable"
)

// ParseRefType converts a user-supplied string into a RefType.
func ParseRefType(s string) (RefType, error) {
	switch RefType(s) {
	case Branch, Tag:
		return RefType(s), nil
	default:
		return "", fmt.Errorf("unknown reference type %q (expected %q or %q)", s, Branch, Tag)
	}
}

// Project is the owner of a set of refs. Only RepoType is consulted, to look
// up the VCS default branch name.
type Project struct {
	Slug     string
	RepoType string // e.g. "git", "hg"
}

// Ref is a version record as stored by the hosting platform.
// Sorting functions return the same *Ref values they were given.
type Ref struct {
	Slug        string  // Machine identifier, used by the generic strategies
	VerboseName string  // Human-facing name, used by the semantic strategies
	Type        RefType // Branch or Tag
	Project     *Project
}

// NewRef creates a Ref whose slug and verbose name are both name.
func NewRef(name string, typ RefType) *Ref {
	return &Ref{Slug: name, VerboseName: name, Type: typ}
}

// String returns "type:verbose_name".
func (r *Ref) String() string {
	return fmt.Sprintf("%s:%s", r.Type, r.VerboseName)
}

// repoType returns the repository type of the ref's project, if any.
func (r *Ref) repoType() string {
	if r == nil || r.Project == nil {
		return ""
	}
	return r.Project.RepoType
}
