// Package scan implements the line-scanning search engine: it streams input
// line by line, applies a pattern matcher, and produces ordered match and
// context records.
package scan

import (
	"fmt"

	"github.com/dl/linegrep/internal/matcher"
)

// Role classifies why a line is part of the output.
type Role int

const (
	RoleMatch Role = iota
	RoleContextBefore
	RoleContextAfter
)

func (r Role) String() string {
	switch r {
	case RoleMatch:
		return "match"
	case RoleContextBefore:
		return "context-before"
	case RoleContextAfter:
		return "context-after"
	}
	return "unknown"
}

// Line is a single input line.
type Line struct {
	Num  int    // 1-based position in the source
	Text []byte // content without line terminator
}

// Record is one reportable line: a match or a context line.
// Spans is nil for context lines and for inverted matches.
type Record struct {
	Line  Line
	Spans []matcher.Span
	Role  Role
}

// Config holds the per-search parameters. Immutable for the duration of
// one search.
type Config struct {
	Matcher matcher.Matcher
	Before  int // context lines before each match
	After   int // context lines after each match
	Invert  bool
}

// IOError reports a read failure on an input source. It terminates the
// record sequence for that source but is recoverable at the multi-source
// level.
type IOError struct {
	Source string
	Err    error
}

func (e *IOError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("read: %v", e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
