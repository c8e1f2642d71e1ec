package matcher

import "sort"

// acNode is a node in the Aho-Corasick automaton.
type acNode struct {
	children [256]*acNode
	fail     *acNode
	output   []int // lengths of patterns that end at this node
}

// AhoCorasickMatcher matches multiple fixed patterns simultaneously
// using the Aho-Corasick algorithm.
type AhoCorasickMatcher struct {
	root       *acNode
	ignoreCase bool
}

// NewAhoCorasickMatcher builds an automaton over multiple fixed patterns.
func NewAhoCorasickMatcher(patterns []string, ignoreCase bool) *AhoCorasickMatcher {
	m := &AhoCorasickMatcher{
		root:       &acNode{},
		ignoreCase: ignoreCase,
	}

	for _, p := range patterns {
		pat := []byte(p)
		if ignoreCase {
			pat = foldASCII(pat)
		}
		m.addPattern(pat)
	}
	m.buildFailureLinks()

	return m
}

func (m *AhoCorasickMatcher) addPattern(pattern []byte) {
	node := m.root
	for _, b := range pattern {
		if node.children[b] == nil {
			node.children[b] = &acNode{}
		}
		node = node.children[b]
	}
	node.output = append(node.output, len(pattern))
}

// buildFailureLinks wires the failure function via BFS from the root.
func (m *AhoCorasickMatcher) buildFailureLinks() {
	var queue []*acNode
	for _, child := range m.root.children {
		if child != nil {
			child.fail = m.root
			queue = append(queue, child)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for b, child := range node.children {
			if child == nil {
				continue
			}
			fail := node.fail
			for fail != nil && fail.children[b] == nil {
				fail = fail.fail
			}
			if fail == nil {
				child.fail = m.root
			} else {
				child.fail = fail.children[b]
			}
			child.output = append(child.output, child.fail.output...)
			queue = append(queue, child)
		}
	}
}

func (m *AhoCorasickMatcher) FindSpans(line []byte) []Span {
	haystack := line
	if m.ignoreCase {
		haystack = foldASCII(line)
	}

	var raw []Span
	node := m.root
	for i, b := range haystack {
		for node != m.root && node.children[b] == nil {
			node = node.fail
		}
		if node.children[b] != nil {
			node = node.children[b]
		}
		for _, plen := range node.output {
			raw = append(raw, Span{i + 1 - plen, i + 1})
		}
	}
	if len(raw) == 0 {
		return nil
	}

	// Different patterns can produce overlapping occurrences. Normalize to
	// the ordered non-overlapping set, preferring the leftmost-longest span.
	sort.Slice(raw, func(i, j int) bool {
		if raw[i][0] != raw[j][0] {
			return raw[i][0] < raw[j][0]
		}
		return raw[i][1] > raw[j][1]
	})

	spans := raw[:1]
	for _, s := range raw[1:] {
		if s[0] >= spans[len(spans)-1][1] {
			spans = append(spans, s)
		}
	}
	return spans
}

func (m *AhoCorasickMatcher) Match(line []byte) bool {
	haystack := line
	if m.ignoreCase {
		haystack = foldASCII(line)
	}

	node := m.root
	for _, b := range haystack {
		for node != m.root && node.children[b] == nil {
			node = node.fail
		}
		if node.children[b] != nil {
			node = node.children[b]
		}
		if len(node.output) > 0 {
			return true
		}
	}
	return false
}
