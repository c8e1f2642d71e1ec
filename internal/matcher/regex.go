package matcher

import "regexp"

// RegexMatcher uses Go's RE2 regexp engine.
type RegexMatcher struct {
	re *regexp.Regexp
}

// NewRegexMatcher compiles pattern with the RE2 engine.
func NewRegexMatcher(pattern string, ignoreCase bool) (*RegexMatcher, error) {
	src := pattern
	if ignoreCase {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return &RegexMatcher{re: re}, nil
}

func (m *RegexMatcher) FindSpans(line []byte) []Span {
	locs := m.re.FindAllIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]Span, len(locs))
	for i, loc := range locs {
		spans[i] = Span{loc[0], loc[1]}
	}
	return spans
}

func (m *RegexMatcher) Match(line []byte) bool {
	return m.re.Match(line)
}
