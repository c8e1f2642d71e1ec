// Package walker discovers files for recursive search, honoring
// .gitignore rules and hidden-file conventions.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileEntry is a file discovered during traversal.
type FileEntry struct {
	Path string
}

// WalkError wraps a traversal failure with the path it occurred on.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string { return fmt.Sprintf("walk %s: %v", e.Path, e.Err) }
func (e *WalkError) Unwrap() error { return e.Err }

// Options configures directory traversal.
type Options struct {
	NoIgnore bool // skip .gitignore processing
	Hidden   bool // include hidden files and directories
}

// Walk traverses roots depth-first in sorted order and sends discovered
// regular files on the returned channel. Traversal order is deterministic
// so downstream sequence numbers follow source order. Errors are reported
// on the second channel; both channels close when the walk finishes.
func Walk(roots []string, opts Options) (<-chan FileEntry, <-chan error) {
	fileCh := make(chan FileEntry, 256)
	errCh := make(chan error, 16)

	go func() {
		defer close(fileCh)
		defer close(errCh)

		for _, root := range roots {
			info, err := os.Stat(root)
			if err != nil {
				errCh <- &WalkError{Path: root, Err: err}
				continue
			}
			if !info.IsDir() {
				// Explicit file arguments bypass ignore and binary filters.
				fileCh <- FileEntry{Path: root}
				continue
			}

			stack := newIgnoreStack()
			if !opts.NoIgnore {
				stack.push(root)
			}
			walkDir(root, opts, stack, fileCh, errCh)
		}
	}()

	return fileCh, errCh
}

func walkDir(dir string, opts Options, stack *ignoreStack, fileCh chan<- FileEntry, errCh chan<- error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		errCh <- &WalkError{Path: dir, Err: err}
		return
	}
	// os.ReadDir returns entries sorted by filename, so traversal order
	// is already deterministic.
	for _, entry := range entries {
		name := entry.Name()
		if !opts.Hidden && isHidden(name) {
			continue
		}
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if name == ".git" {
				continue
			}
			if !opts.NoIgnore && stack.isIgnored(path, true) {
				continue
			}
			if !opts.NoIgnore {
				stack.push(path)
				walkDir(path, opts, stack, fileCh, errCh)
				stack.pop()
			} else {
				walkDir(path, opts, stack, fileCh, errCh)
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if IsBinaryExtension(name) {
			continue
		}
		if !opts.NoIgnore && stack.isIgnored(path, false) {
			continue
		}
		fileCh <- FileEntry{Path: path}
	}
}

// isHidden reports whether a file or directory name is hidden by Unix
// convention. "." and ".." never reach here via os.ReadDir.
func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
