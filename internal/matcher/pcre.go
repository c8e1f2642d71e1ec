package matcher

import "go.elara.ws/pcre"

// PCREMatcher matches PCRE2-compatible regexes via the pure Go pcre package.
// Supports lookahead, lookbehind, backreferences, and atomic groups.
type PCREMatcher struct {
	re *pcre.Regexp
}

// NewPCREMatcher compiles pattern with the PCRE2 engine.
func NewPCREMatcher(pattern string, ignoreCase bool) (*PCREMatcher, error) {
	var opts pcre.CompileOption
	if ignoreCase {
		opts |= pcre.Caseless
	}
	re, err := pcre.CompileOpts(pattern, opts)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return &PCREMatcher{re: re}, nil
}

func (m *PCREMatcher) FindSpans(line []byte) []Span {
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

func (m *PCREMatcher) Match(line []byte) bool {
	return m.re.Match(line)
}

// Close releases the compiled PCRE regex resources.
func (m *PCREMatcher) Close() {
	if m.re != nil {
		m.re.Close()
	}
}
