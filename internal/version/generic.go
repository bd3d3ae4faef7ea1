package version

import (
	"iter"
	"slices"
	"strings"

	depsemver "deps.dev/util/semver"

	"github.com/tsukumogami/versort/internal/log"
)

// Parser is the grammar plugged into SortGeneric. Parse must report
// rejected slugs with a *ParseError.
type Parser[V any] struct {
	Strategy Strategy
	Parse    func(slug string) (V, error)
	Compare  func(a, b V) int
}

// pinPriority orders the pinned synthetic names. Lower sorts first.
var pinPriority = map[string]int{
	Latest: 0,
	Stable: 1,
}

// SortGeneric orders refs by slug with the given parser, newest first.
//
// When pinLatestStable is set, "latest" then "stable" come first. Refs that
// parse follow in descending order. Refs that fail to parse come last in
// reverse alphabetical order; they are never dropped. Equal values keep
// reverse alphabetical order too.
func SortGeneric[V any](refs iter.Seq[*Ref], p Parser[V], pinLatestStable bool) []*Ref {
	var all []*Ref
	for ref := range refs {
		if ref != nil {
			all = append(all, ref)
		}
	}
	slices.SortStableFunc(all, func(a, b *Ref) int {
		return strings.Compare(b.Slug, a.Slug)
	})

	type parsed struct {
		ref   *Ref
		value V
	}
	var (
		pinned  []*Ref
		valid   []parsed
		invalid []*Ref
	)
	logger := log.Default().With("strategy", p.Strategy)
	for _, ref := range all {
		if pinLatestStable {
			if _, ok := pinPriority[ref.Slug]; ok {
				pinned = append(pinned, ref)
				continue
			}
		}

		v, err := p.Parse(ref.Slug)
		if err != nil {
			if !IsParseError(err) {
				logger.Warn("unexpected parse failure", "slug", ref.Slug, "error", err)
			}
			logger.Debug("listing unparseable version last", "slug", ref.Slug, "error", err)
			invalid = append(invalid, ref)
			continue
		}
		valid = append(valid, parsed{ref: ref, value: v})
	}

	slices.SortStableFunc(pinned, func(a, b *Ref) int {
		return pinPriority[a.Slug] - pinPriority[b.Slug]
	})
	slices.SortStableFunc(valid, func(a, b parsed) int {
		return p.Compare(b.value, a.value)
	})

	out := make([]*Ref, 0, len(all))
	out = append(out, pinned...)
	for _, v := range valid {
		out = append(out, v.ref)
	}
	return append(out, invalid...)
}

// SortCalendar orders refs as YYYY.0M.0D dates, newest first.
func SortCalendar(refs iter.Seq[*Ref], pinLatestStable bool) []*Ref {
	return sortPattern(refs, CalendarPattern, StrategyCalendar, pinLatestStable)
}

// SortCustomPattern orders refs by a pattern such as "vMAJOR.MINOR[.PATCH]".
// A malformed pattern lists every unpinned ref last instead of failing;
// use CompilePattern to validate patterns up front.
func SortCustomPattern(refs iter.Seq[*Ref], pattern string, pinLatestStable bool) []*Ref {
	return sortPattern(refs, pattern, StrategyCustomPattern, pinLatestStable)
}

func sortPattern(refs iter.Seq[*Ref], raw string, st Strategy, pinLatestStable bool) []*Ref {
	parser := Parser[PatternVersion]{
		Strategy: st,
		Compare:  PatternVersion.Compare,
	}

	pattern, err := compilePattern(raw, st)
	if err != nil {
		log.Default().Warn("invalid version pattern", "strategy", st, "pattern", raw, "error", err)
		parser.Parse = func(string) (PatternVersion, error) { return PatternVersion{}, err }
	} else {
		parser.Parse = pattern.Parse
	}
	return SortGeneric(refs, parser, pinLatestStable)
}

// SortPythonPackaging orders refs as PEP 440 versions, newest first.
func SortPythonPackaging(refs iter.Seq[*Ref], pinLatestStable bool) []*Ref {
	return SortGeneric(refs, Parser[*depsemver.Version]{
		Strategy: StrategyPythonPackaging,
		Parse:    parsePEP440,
		Compare:  (*depsemver.Version).Compare,
	}, pinLatestStable)
}

func parsePEP440(slug string) (*depsemver.Version, error) {
	v, err := depsemver.PyPI.Parse(slug)
	if err != nil {
		return nil, &ParseError{
			Type:     ErrTypeInvalidVersion,
			Strategy: StrategyPythonPackaging,
			Input:    slug,
			Message:  "not a PEP 440 version",
			Err:      err,
		}
	}
	if v.IsWildcard() {
		return nil, &ParseError{
			Type:     ErrTypeInvalidVersion,
			Strategy: StrategyPythonPackaging,
			Input:    slug,
			Message:  "wildcards are not concrete versions",
		}
	}
	return v, nil
}

// SortAlphabetical orders refs by slug in reverse byte order.
func SortAlphabetical(refs iter.Seq[*Ref], pinLatestStable bool) []*Ref {
	return SortGeneric(refs, Parser[string]{
		Strategy: StrategyAlphabetical,
		Parse:    func(slug string) (string, error) { return slug, nil },
		Compare:  strings.Compare,
	}, pinLatestStable)
}
