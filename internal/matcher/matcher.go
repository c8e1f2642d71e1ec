// Package matcher provides pattern matchers that locate occurrences of one
// or more patterns within a single line of text.
package matcher

import (
	"fmt"
	"strings"
)

// Span is a half-open [start, end) byte range within a line.
type Span = [2]int

// Matcher locates pattern occurrences in a single line.
// Lines never contain line terminators.
type Matcher interface {
	// FindSpans returns every occurrence of the pattern in line as
	// non-overlapping spans ordered by ascending start offset.
	// A nil result means no match.
	FindSpans(line []byte) []Span

	// Match reports whether line contains at least one occurrence.
	// Faster than FindSpans when only the decision is needed.
	Match(line []byte) bool
}

// InvalidPatternError reports a pattern that failed to compile.
// It is surfaced once, at construction time, before any scanning begins.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// Options selects the matcher backend and case behavior.
// For the fixed-string backends IgnoreCase folds ASCII letters only,
// keeping span offsets byte-accurate; the regex backends fold full
// Unicode via (?i).
type Options struct {
	Fixed      bool // treat patterns as literal strings
	PCRE       bool // use the PCRE2 engine instead of RE2
	IgnoreCase bool
}

// New creates the appropriate Matcher for the given patterns.
// Selection logic:
//   - PCRE flag -> PCREMatcher (PCRE2 via pure Go port)
//   - Fixed or all-literal + 1 pattern -> LiteralMatcher
//   - Fixed or all-literal + N patterns -> AhoCorasickMatcher
//   - Otherwise -> RegexMatcher (RE2)
func New(patterns []string, opts Options) (Matcher, error) {
	if len(patterns) == 0 {
		return nil, &InvalidPatternError{Err: fmt.Errorf("no patterns provided")}
	}

	if opts.PCRE {
		return NewPCREMatcher(combine(patterns), opts.IgnoreCase)
	}

	if opts.Fixed || allLiteral(patterns) {
		if len(patterns) == 1 {
			return NewLiteralMatcher(patterns[0], opts.IgnoreCase), nil
		}
		return NewAhoCorasickMatcher(patterns, opts.IgnoreCase), nil
	}

	return NewRegexMatcher(combine(patterns), opts.IgnoreCase)
}

// combine joins multiple patterns into a single alternation.
func combine(patterns []string) string {
	if len(patterns) == 1 {
		return patterns[0]
	}
	var sb strings.Builder
	for i, p := range patterns {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString("(?:")
		sb.WriteString(p)
		sb.WriteByte(')')
	}
	return sb.String()
}

// allLiteral reports whether every pattern is free of regex metacharacters.
// Literal patterns bypass the regex engine, same optimization ripgrep does.
func allLiteral(patterns []string) bool {
	for _, p := range patterns {
		if strings.ContainsAny(p, `\.+*?()|[]{}^$`) {
			return false
		}
	}
	return true
}
