package version

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// wildcardComponent marks "any version in this series" (1.x, 1.0.x).
	wildcardComponent = ".x"

	// wildcardFill replaces a wildcard component so the series sorts after
	// every concrete version in it.
	wildcardFill = ".999999"
)

// nonASCII matches every rune outside the ASCII range, including the
// replacement rune produced for invalid UTF-8 input.
var nonASCII = runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })

// toASCII applies compatibility decomposition and discards whatever is left
// outside ASCII, so "１.２.３" becomes "1.2.3" and "2.0.0é" becomes "2.0.0e".
func toASCII(raw string) (string, error) {
	// Transformers carry state; build one per call.
	t := transform.Chain(norm.NFKD, runes.Remove(nonASCII))
	s, _, err := transform.String(t, raw)
	return s, err
}

// ParseFailsafe parses a version string into a Comparable.
//
// It returns false when the string has no comparable version number; it
// never panics. A trailing ".x" series marker is accepted by substituting a
// large component, so "2.x" ranks after every concrete 2.* release.
func ParseFailsafe(raw string) (Comparable, bool) {
	ascii, err := toASCII(raw)
	if err != nil || ascii == "" {
		return Comparable{}, false
	}

	if v, err := semver.NewVersion(ascii); err == nil {
		return Comparable{v: v}, true
	}

	if strings.Contains(ascii, wildcardComponent) {
		filled := strings.ReplaceAll(ascii, wildcardComponent, wildcardFill)
		if v, err := semver.NewVersion(filled); err == nil {
			return Comparable{v: v}, true
		}
	}

	return Comparable{}, false
}
