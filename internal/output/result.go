// Package output formats search results for display. The engine emits
// structured records; everything about presentation lives here.
package output

import "github.com/dl/linegrep/internal/scan"

// Result aggregates the records produced for a single source.
type Result struct {
	Source  string
	SeqNum  int
	Records []scan.Record
	Err     error
}

// MatchCount returns the number of match records, excluding context.
func (r *Result) MatchCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Role == scan.RoleMatch {
			n++
		}
	}
	return n
}

// HasMatch reports whether this result contains at least one match.
func (r *Result) HasMatch() bool {
	for _, rec := range r.Records {
		if rec.Role == scan.RoleMatch {
			return true
		}
	}
	return false
}
