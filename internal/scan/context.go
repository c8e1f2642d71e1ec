package scan

import (
	"github.com/dl/linegrep/internal/interval"
	"github.com/dl/linegrep/internal/matcher"
)

// contextWindow decides, per line, which lines to emit: on a match it
// releases the buffered before-context, the match itself, and schedules
// after-context. A fixed-capacity ring holds the last `before` non-match
// lines; each line is emitted at most once, and windows of nearby matches
// merge into one contiguous block.
type contextWindow struct {
	before int
	after  int

	ring  []Line // ring buffer of candidate before-context lines
	head  int    // index of oldest buffered line
	count int

	afterLeft   int // after-context lines still owed
	lastEmitted int // highest line number emitted so far
	block       interval.Interval[int]
	haveBlock   bool
}

func newContextWindow(before, after int) *contextWindow {
	w := &contextWindow{before: before, after: after}
	if before > 0 {
		w.ring = make([]Line, before)
	}
	return w
}

// observe feeds one line and its match decision into the window and
// returns the records to emit for this step, oldest first.
func (w *contextWindow) observe(ln Line, matched bool, spans []matcher.Span) []Record {
	if !matched {
		if w.afterLeft > 0 {
			w.afterLeft--
			w.lastEmitted = ln.Num
			return []Record{{Line: ln, Role: RoleContextAfter}}
		}
		if w.before > 0 {
			w.push(ln)
		}
		return nil
	}

	// This match's window. End extends one past the last after-context
	// line so that touching windows merge without a gap.
	start := ln.Num - w.before
	if start < 1 {
		start = 1
	}
	win, _ := interval.New(start, ln.Num+w.after+1)
	if w.haveBlock && w.block.Overlaps(win) {
		w.block, _ = w.block.Merge(win)
	} else {
		w.block = win
		w.haveBlock = true
	}

	var recs []Record
	for _, buffered := range w.drain() {
		if buffered.Num <= w.lastEmitted || !w.block.Contains(buffered.Num) {
			continue
		}
		recs = append(recs, Record{Line: buffered, Role: RoleContextBefore})
	}
	recs = append(recs, Record{Line: ln, Spans: spans, Role: RoleMatch})
	w.lastEmitted = ln.Num
	w.afterLeft = w.after
	return recs
}

// push appends a line to the ring, dropping the oldest when full.
func (w *contextWindow) push(ln Line) {
	w.ring[(w.head+w.count)%w.before] = ln
	if w.count < w.before {
		w.count++
	} else {
		w.head = (w.head + 1) % w.before
	}
}

// drain returns the buffered lines oldest first and empties the ring.
func (w *contextWindow) drain() []Line {
	if w.count == 0 {
		return nil
	}
	out := make([]Line, 0, w.count)
	for i := 0; i < w.count; i++ {
		out = append(out, w.ring[(w.head+i)%w.before])
	}
	w.head, w.count = 0, 0
	return out
}
