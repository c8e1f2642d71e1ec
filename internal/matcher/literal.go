package matcher

import "bytes"

// LiteralMatcher does fixed string matching using bytes.Index.
type LiteralMatcher struct {
	pattern    []byte
	patternLow []byte // lowercased pattern for case-insensitive search
	ignoreCase bool
}

// NewLiteralMatcher creates a LiteralMatcher for a single fixed pattern.
// Case folding is ASCII-only so that span offsets into the folded line
// stay valid for the original bytes.
func NewLiteralMatcher(pattern string, ignoreCase bool) *LiteralMatcher {
	p := []byte(pattern)
	var pLow []byte
	if ignoreCase {
		pLow = foldASCII(p)
	}
	return &LiteralMatcher{
		pattern:    p,
		patternLow: pLow,
		ignoreCase: ignoreCase,
	}
}

func (m *LiteralMatcher) FindSpans(line []byte) []Span {
	haystack := line
	needle := m.pattern
	if m.ignoreCase {
		haystack = foldASCII(line)
		needle = m.patternLow
	}

	var spans []Span
	start := 0
	for start <= len(haystack) {
		idx := bytes.Index(haystack[start:], needle)
		if idx < 0 {
			break
		}
		pos := start + idx
		spans = append(spans, Span{pos, pos + len(needle)})
		start = pos + len(needle)
		if len(needle) == 0 {
			start++ // avoid infinite loop on empty pattern
		}
	}
	return spans
}

func (m *LiteralMatcher) Match(line []byte) bool {
	if m.ignoreCase {
		return bytes.Contains(foldASCII(line), m.patternLow)
	}
	return bytes.Contains(line, m.pattern)
}
