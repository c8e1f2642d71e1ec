package scan

import (
	"errors"
	"io"
)

// Engine drives a single pass over one input source, pairing each line
// with the match decision and releasing records through the context
// window. Records come back in strictly increasing line order. The caller
// pulls records with Next and may abandon the engine at any point; the
// engine holds no resources of its own beyond the reader it was given.
type Engine struct {
	name     string
	cfg      Config
	lines    *LineReader
	window   *contextWindow
	pending  []Record
	err      error
	hadMatch bool
}

// New creates an Engine reading from r. name identifies the source in
// errors and reports.
func New(name string, r io.Reader, cfg Config) *Engine {
	return &Engine{
		name:   name,
		cfg:    cfg,
		lines:  NewLineReader(r),
		window: newContextWindow(cfg.Before, cfg.After),
	}
}

// Name returns the source identifier.
func (e *Engine) Name() string { return e.name }

// HadMatch reports whether any matching line has been seen so far.
func (e *Engine) HadMatch() bool { return e.hadMatch }

// Next returns the next record. It returns io.EOF when the source is
// exhausted and an *IOError if reading fails; either way the sequence is
// over. Zero input lines is a valid, empty result.
func (e *Engine) Next() (Record, error) {
	for {
		if len(e.pending) > 0 {
			rec := e.pending[0]
			e.pending = e.pending[1:]
			return rec, nil
		}
		if e.err != nil {
			return Record{}, e.err
		}

		ln, err := e.lines.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				e.err = io.EOF
			} else {
				e.err = &IOError{Source: e.name, Err: err}
			}
			continue
		}

		spans := e.cfg.Matcher.FindSpans(ln.Text)
		matched := len(spans) > 0
		if e.cfg.Invert {
			matched = !matched
			spans = nil
		}
		if matched {
			e.hadMatch = true
		}
		e.pending = e.window.observe(ln, matched, spans)
	}
}

// Collect drains the engine into a slice. On an *IOError the records
// produced before the failure are returned alongside it.
func (e *Engine) Collect() ([]Record, error) {
	var recs []Record
	for {
		rec, err := e.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return recs, nil
			}
			return recs, err
		}
		recs = append(recs, rec)
	}
}
