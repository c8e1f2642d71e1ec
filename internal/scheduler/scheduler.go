// Package scheduler runs searches over many files on a worker pool.
// Each file gets its own engine pass, so a failure in one source never
// corrupts another; results carry sequence numbers so output follows
// discovery order rather than completion order.
package scheduler

import (
	"bytes"
	"errors"
	"io"
	"runtime"
	"sync"

	"github.com/dl/linegrep/internal/input"
	"github.com/dl/linegrep/internal/output"
	"github.com/dl/linegrep/internal/scan"
	"github.com/dl/linegrep/internal/walker"
)

// Scheduler manages a pool of workers that search files concurrently.
type Scheduler struct {
	workers   int
	cfg       scan.Config
	reader    input.Reader
	firstOnly bool // stop each file at its first match (-l mode)
}

// New creates a Scheduler. workers <= 0 defaults to NumCPU * 2.
// firstOnly stops scanning a file at its first match, for
// files-with-matches mode.
func New(workers int, cfg scan.Config, r input.Reader, firstOnly bool) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	return &Scheduler{
		workers:   workers,
		cfg:       cfg,
		reader:    r,
		firstOnly: firstOnly,
	}
}

// task pairs a file with its intake sequence number.
type task struct {
	entry walker.FileEntry
	seq   int
}

// Run processes files from the channel and returns sequence-numbered
// results. The result channel closes when all workers finish.
func (s *Scheduler) Run(files <-chan walker.FileEntry) <-chan output.Result {
	resultCh := make(chan output.Result, s.workers*2)

	// Sequence numbers are stamped here, in a single goroutine, before
	// fan-out. Stamping inside the workers would race: a worker can
	// receive an earlier file yet claim its number after a later one.
	taskCh := make(chan task, s.workers*2)
	go func() {
		defer close(taskCh)
		seq := 0
		for entry := range files {
			seq++
			taskCh <- task{entry: entry, seq: seq}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskCh {
				result := s.processFile(t.entry)
				result.SeqNum = t.seq
				resultCh <- result
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	return resultCh
}

func (s *Scheduler) processFile(entry walker.FileEntry) output.Result {
	result := output.Result{Source: entry.Path}

	readResult, err := s.reader.Read(entry.Path)
	if err != nil {
		result.Err = &scan.IOError{Source: entry.Path, Err: err}
		return result
	}
	defer func() {
		if readResult.Closer != nil {
			readResult.Closer()
		}
	}()

	if readResult.Data == nil {
		return result
	}
	if walker.IsBinary(readResult.Data) {
		return result
	}

	// Records copy their line bytes out of the read buffer, so the
	// Closer may release it as soon as the pass finishes.
	engine := scan.New(entry.Path, bytes.NewReader(readResult.Data), s.cfg)

	if s.firstOnly {
		for {
			rec, err := engine.Next()
			if err != nil {
				break
			}
			if rec.Role == scan.RoleMatch {
				result.Records = []scan.Record{rec}
				break
			}
		}
		return result
	}

	records, err := engine.Collect()
	result.Records = records
	if err != nil && !errors.Is(err, io.EOF) {
		result.Err = err
	}
	return result
}
