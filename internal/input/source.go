// Package input provides input sources and file readers for the search.
package input

import (
	"io"
	"os"
)

// StdinName is the display name for the standard input source.
const StdinName = "(standard input)"

// Source identifies one input to search: a named file, or standard input
// when Path is "-" or empty.
type Source struct {
	Path string
}

// IsStdin reports whether the source is standard input.
func (s Source) IsStdin() bool {
	return s.Path == "" || s.Path == "-"
}

// Name returns the identifier used in reports and error messages.
func (s Source) Name() string {
	if s.IsStdin() {
		return StdinName
	}
	return s.Path
}

// Open returns a streaming handle for the source. The caller owns the
// handle and must close it whether the scan is exhausted, abandoned, or
// failed. Closing the stdin source is a no-op.
func (s Source) Open() (io.ReadCloser, error) {
	if s.IsStdin() {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(s.Path)
}

// Sources builds the source list from CLI path arguments. No paths means
// a single stdin source.
func Sources(paths []string) []Source {
	if len(paths) == 0 {
		return []Source{{}}
	}
	srcs := make([]Source, len(paths))
	for i, p := range paths {
		srcs[i] = Source{Path: p}
	}
	return srcs
}
