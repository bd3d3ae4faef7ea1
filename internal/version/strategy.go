package version

import (
	"fmt"
	"iter"
	"strings"

	"github.com/tsukumogami/versort/internal/log"
)

// Strategy names a version ordering algorithm.
type Strategy string

// Supported strategies.
const (
	// StrategySemver ranks verbose names semantically, synthetic names first.
	StrategySemver Strategy = "semver"
	// StrategyCalendar ranks slugs as YYYY.0M.0D dates.
	StrategyCalendar Strategy = "calver"
	// StrategyCustomPattern ranks slugs by a user-supplied pattern.
	StrategyCustomPattern Strategy = "custom-pattern"
	// StrategyPythonPackaging ranks slugs as PEP 440 versions.
	StrategyPythonPackaging Strategy = "python-packaging"
	// StrategyAlphabetical ranks slugs by their raw bytes.
	StrategyAlphabetical Strategy = "alphabetical"
)

// CalendarPattern is the pattern used by StrategyCalendar.
const CalendarPattern = "YYYY.0M.0D"

// Options selects and parameterizes a strategy for Sort.
type Options struct {
	Strategy Strategy
	// Pattern is required by StrategyCustomPattern and ignored otherwise.
	Pattern string
	// PinLatestStable puts "latest" and "stable" first in the generic
	// strategies. StrategySemver always ranks them first.
	PinLatestStable bool
	// Branches resolves the VCS default branch for StrategySemver; may be nil.
	Branches BranchLookup
}

type sorter func(refs iter.Seq[*Ref], opts Options) []*Ref

var sorters = map[Strategy]sorter{
	StrategySemver: func(refs iter.Seq[*Ref], opts Options) []*Ref {
		return SortForDisplay(refs, opts.Branches)
	},
	StrategyCalendar: func(refs iter.Seq[*Ref], opts Options) []*Ref {
		return SortCalendar(refs, opts.PinLatestStable)
	},
	StrategyCustomPattern: func(refs iter.Seq[*Ref], opts Options) []*Ref {
		return SortCustomPattern(refs, opts.Pattern, opts.PinLatestStable)
	},
	StrategyPythonPackaging: func(refs iter.Seq[*Ref], opts Options) []*Ref {
		return SortPythonPackaging(refs, opts.PinLatestStable)
	},
	StrategyAlphabetical: func(refs iter.Seq[*Ref], opts Options) []*Ref {
		return SortAlphabetical(refs, opts.PinLatestStable)
	},
}

// Strategies returns all supported strategies, default first.
func Strategies() []Strategy {
	return []Strategy{
		StrategySemver,
		StrategyCalendar,
		StrategyCustomPattern,
		StrategyPythonPackaging,
		StrategyAlphabetical,
	}
}

// ParseStrategy converts a configuration value into a Strategy.
// The empty string selects StrategySemver.
func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StrategySemver, nil
	}
	if _, ok := sorters[Strategy(s)]; ok {
		return Strategy(s), nil
	}
	names := make([]string, 0, len(sorters))
	for _, st := range Strategies() {
		names = append(names, string(st))
	}
	return "", fmt.Errorf("unknown sorting strategy %q (expected one of: %s)", s, strings.Join(names, ", "))
}

// Validate checks that opts can be used for sorting without every ref being
// demoted because of a configuration mistake.
func (o Options) Validate() error {
	if _, err := ParseStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if o.Strategy != StrategyCustomPattern {
		return nil
	}
	if strings.TrimSpace(o.Pattern) == "" {
		return fmt.Errorf("a custom pattern is required when selecting the %s strategy", StrategyCustomPattern)
	}
	if _, err := CompilePattern(o.Pattern); err != nil {
		return fmt.Errorf("invalid custom pattern: %w", err)
	}
	return nil
}

// Sort orders refs with the strategy selected by opts, newest first.
// It never fails: an unknown strategy falls back to StrategySemver.
func Sort(refs iter.Seq[*Ref], opts Options) []*Ref {
	st := opts.Strategy
	if st == "" {
		st = StrategySemver
	}
	sort, ok := sorters[st]
	if !ok {
		log.Default().Warn("unknown sorting strategy, using default", "strategy", st, "default", StrategySemver)
		sort = sorters[StrategySemver]
	}
	return sort(refs, opts)
}
