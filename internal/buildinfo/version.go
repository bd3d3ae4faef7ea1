// Package buildinfo reports the version of the running versort binary.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Override, when set at link time with
// -ldflags "-X github.com/tsukumogami/versort/internal/buildinfo.Override=v1.2.0",
// takes precedence over module and VCS metadata.
var Override string

// Version returns the version of the current build, always a valid
// semantic version: the release tag for tagged installs, otherwise
// "0.0.0-dev" with the VCS revision as build metadata.
func Version() string {
	if Override != "" {
		return Override
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "0.0.0-unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion(info)
}

// UserAgent returns the User-Agent sent to the GitHub API.
func UserAgent() string {
	return "versort/" + Version()
}

// devVersion builds "0.0.0-dev[+<hash>[.dirty]]" from VCS settings.
func devVersion(info *debug.BuildInfo) string {
	var (
		revision string
		modified bool
	)
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "0.0.0-dev"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}

	meta := []string{revision}
	if modified {
		meta = append(meta, "dirty")
	}
	return "0.0.0-dev+" + strings.Join(meta, ".")
}
