package version

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// field is a component of a pattern-based version, in comparison order.
type field int

const (
	fieldYear field = iota
	fieldISOYear
	fieldQuarter
	fieldMonth
	fieldDay
	fieldDayOfYear
	fieldWeekMonday
	fieldWeekSunday
	fieldISOWeek
	fieldMajor
	fieldMinor
	fieldPatch
	fieldTag // before the counters, so 1.0.0-rc2 < 1.0.0
	fieldNum
	fieldBuild
	fieldInc0
	fieldInc1
	numFields
)

// Release tag ranks. A pattern version without a tag is final.
var tagRanks = map[string]int{
	"dev":     0,
	"alpha":   1,
	"a":       1,
	"beta":    2,
	"b":       2,
	"preview": 3,
	"rc":      3,
	"final":   4,
	"post":    5,
}

const finalTagRank = 4

type token struct {
	name  string
	field field
	re    string
	conv  func(string) (int, error)
}

func shortYear(s string) (int, error) {
	n, err := strconv.Atoi(s)
	return 2000 + n, err
}

func tagRank(s string) (int, error) {
	r, ok := tagRanks[s]
	if !ok {
		return 0, fmt.Errorf("unknown release tag %q", s)
	}
	return r, nil
}

// tokens is ordered so that longer names are tried first.
var tokens = []token{
	{"MAJOR", fieldMajor, `[0-9]+`, strconv.Atoi},
	{"MINOR", fieldMinor, `[0-9]+`, strconv.Atoi},
	{"PATCH", fieldPatch, `[0-9]+`, strconv.Atoi},
	{"PYTAG", fieldTag, `post|dev|rc|a|b`, tagRank},
	{"BUILD", fieldBuild, `[0-9]+`, strconv.Atoi},
	{"YYYY", fieldYear, `[1-9][0-9]{3}`, strconv.Atoi},
	{"GGGG", fieldISOYear, `[1-9][0-9]{3}`, strconv.Atoi},
	{"INC0", fieldInc0, `[0-9]+`, strconv.Atoi},
	{"INC1", fieldInc1, `[1-9][0-9]*`, strconv.Atoi},
	{"00J", fieldDayOfYear, `36[0-6]|3[0-5][0-9]|[12][0-9]{2}|0[1-9][0-9]|00[1-9]`, strconv.Atoi},
	{"JJJ", fieldDayOfYear, `36[0-6]|3[0-5][0-9]|[12][0-9]{2}|[1-9][0-9]|[1-9]`, strconv.Atoi},
	{"NUM", fieldNum, `[0-9]+`, strconv.Atoi},
	{"TAG", fieldTag, `preview|final|alpha|beta|post|dev|rc`, tagRank},
	{"YY", fieldYear, `[1-9][0-9]?`, shortYear},
	{"0Y", fieldYear, `[0-9]{2}`, shortYear},
	{"GG", fieldISOYear, `[1-9][0-9]?`, shortYear},
	{"0G", fieldISOYear, `[0-9]{2}`, shortYear},
	{"MM", fieldMonth, `1[0-2]|[1-9]`, strconv.Atoi},
	{"0M", fieldMonth, `1[0-2]|0[1-9]`, strconv.Atoi},
	{"DD", fieldDay, `3[01]|[12][0-9]|[1-9]`, strconv.Atoi},
	{"0D", fieldDay, `3[01]|[12][0-9]|0[1-9]`, strconv.Atoi},
	{"WW", fieldWeekMonday, `5[0-2]|[1-4][0-9]|[0-9]`, strconv.Atoi},
	{"0W", fieldWeekMonday, `5[0-2]|[0-4][0-9]`, strconv.Atoi},
	{"UU", fieldWeekSunday, `5[0-2]|[1-4][0-9]|[0-9]`, strconv.Atoi},
	{"0U", fieldWeekSunday, `5[0-2]|[0-4][0-9]`, strconv.Atoi},
	{"VV", fieldISOWeek, `5[0-3]|[1-4][0-9]|[1-9]`, strconv.Atoi},
	{"0V", fieldISOWeek, `5[0-3]|[1-4][0-9]|0[1-9]`, strconv.Atoi},
	{"Q", fieldQuarter, `[1-4]`, strconv.Atoi},
}

func matchToken(s string) (token, bool) {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.name) {
			return t, true
		}
	}
	return token{}, false
}

// Pattern is a compiled version pattern such as "YYYY.0M.0D" or
// "vMAJOR.MINOR[.PATCH][-TAG]". Square brackets mark optional segments and
// a backslash makes the next character literal.
type Pattern struct {
	raw      string
	strategy Strategy
	re       *regexp.Regexp
	groups   []token // token for each capture group, in order
}

// PatternVersion is a version parsed by a Pattern. Fields missing from the
// pattern or from an optional segment compare as zero; a missing release
// tag compares as final.
type PatternVersion struct {
	values [numFields]int
}

// Compare returns -1, 0 or 1, comparing fields from most significant
// (year) to least significant (INC1).
func (v PatternVersion) Compare(o PatternVersion) int {
	for f := range numFields {
		if c := cmp.Compare(v.values[f], o.values[f]); c != 0 {
			return c
		}
	}
	return 0
}

// CompilePattern compiles a custom version pattern.
func CompilePattern(raw string) (*Pattern, error) {
	return compilePattern(raw, StrategyCustomPattern)
}

func compilePattern(raw string, st Strategy) (*Pattern, error) {
	invalid := func(msg string) error {
		return &ParseError{Type: ErrTypeInvalidPattern, Strategy: st, Input: raw, Message: msg}
	}

	var (
		b      strings.Builder
		groups []token
		seen   [numFields]bool
		depth  int
	)
	b.WriteString("^")
	for i := 0; i < len(raw); {
		switch raw[i] {
		case '\\':
			if i+1 >= len(raw) {
				return nil, invalid("dangling escape at end of pattern")
			}
			_, size := utf8.DecodeRuneInString(raw[i+1:])
			b.WriteString(regexp.QuoteMeta(raw[i+1 : i+1+size]))
			i += 1 + size
			continue
		case '[':
			depth++
			b.WriteString("(?:")
			i++
			continue
		case ']':
			if depth == 0 {
				return nil, invalid(fmt.Sprintf("unbalanced ']' at offset %d", i))
			}
			depth--
			b.WriteString(")?")
			i++
			continue
		}

		if t, ok := matchToken(raw[i:]); ok {
			if seen[t.field] {
				return nil, invalid(fmt.Sprintf("%s repeats a field already in the pattern", t.name))
			}
			seen[t.field] = true
			groups = append(groups, t)
			b.WriteString("(" + t.re + ")")
			i += len(t.name)
			continue
		}

		_, size := utf8.DecodeRuneInString(raw[i:])
		b.WriteString(regexp.QuoteMeta(raw[i : i+size]))
		i += size
	}
	if depth != 0 {
		return nil, invalid("unclosed '['")
	}
	if len(groups) == 0 {
		return nil, invalid("pattern contains no version fields")
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &ParseError{Type: ErrTypeInvalidPattern, Strategy: st, Input: raw, Message: "cannot compile pattern", Err: err}
	}
	return &Pattern{raw: raw, strategy: st, re: re, groups: groups}, nil
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// Parse parses s according to the pattern.
func (p *Pattern) Parse(s string) (PatternVersion, error) {
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return PatternVersion{}, &ParseError{
			Type:     ErrTypePatternMismatch,
			Strategy: p.strategy,
			Input:    s,
			Message:  fmt.Sprintf("does not match pattern %q", p.raw),
		}
	}

	var (
		v   PatternVersion
		set [numFields]bool
	)
	v.values[fieldTag] = finalTagRank
	for i, t := range p.groups {
		text := m[i+1]
		if text == "" {
			continue
		}
		n, err := t.conv(text)
		if err != nil {
			return PatternVersion{}, &ParseError{
				Type:     ErrTypePatternMismatch,
				Strategy: p.strategy,
				Input:    s,
				Message:  fmt.Sprintf("invalid %s value %q", t.name, text),
				Err:      err,
			}
		}
		v.values[t.field] = n
		set[t.field] = true
	}

	if err := validateDate(v, set); err != nil {
		return PatternVersion{}, &ParseError{
			Type:     ErrTypeInvalidDate,
			Strategy: p.strategy,
			Input:    s,
			Message:  err.Error(),
		}
	}
	return v, nil
}

// validateDate rejects impossible calendar dates such as 2023.02.29.
func validateDate(v PatternVersion, set [numFields]bool) error {
	if !set[fieldYear] {
		return nil
	}
	year := v.values[fieldYear]

	if set[fieldMonth] && set[fieldDay] {
		month, day := v.values[fieldMonth], v.values[fieldDay]
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Year() != year || int(t.Month()) != month || t.Day() != day {
			return fmt.Errorf("%04d-%02d-%02d is not a valid date", year, month, day)
		}
	}

	if set[fieldDayOfYear] {
		last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
		if v.values[fieldDayOfYear] > last {
			return fmt.Errorf("year %d has no day %d", year, v.values[fieldDayOfYear])
		}
	}
	return nil
}
