package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/dl/linegrep/internal/input"
	"github.com/dl/linegrep/internal/matcher"
	"github.com/dl/linegrep/internal/output"
	"github.com/dl/linegrep/internal/scan"
	"github.com/dl/linegrep/internal/scheduler"
	"github.com/dl/linegrep/internal/walker"
	"github.com/dl/linegrep/internal/watch"
)

// Run executes the search with the given config.
// Exit code: 0 = match found, 1 = no match, 2 = error.
func Run(cfg Config) int {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: log.WarnLevel,
	})

	m, err := matcher.New(cfg.Patterns, matcher.Options{
		Fixed:      cfg.Fixed,
		PCRE:       cfg.PCRE,
		IgnoreCase: cfg.resolveCase(),
	})
	if err != nil {
		logger.Error("invalid pattern", "err", err)
		return 2
	}

	scanCfg := scan.Config{
		Matcher: m,
		Before:  cfg.ContextBefore,
		After:   cfg.ContextAfter,
		Invert:  cfg.Invert,
	}

	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = output.StdoutIsTerminal()
	}

	w := output.NewWriter()
	var formatter output.Formatter
	if cfg.JSONOutput {
		formatter = output.NewJSONFormatter()
	} else {
		styles := output.DefaultStyles(useColor)
		formatter = output.NewTextFormatter(styles, cfg.LineNumbers, cfg.CountOnly, cfg.FilesOnly, useColor)
	}

	if cfg.WatchMode {
		return runWatch(cfg.Paths, scanCfg, formatter, w, logger)
	}
	if cfg.Recursive {
		return runParallel(cfg, scanCfg, formatter, w, logger)
	}
	return runSources(input.Sources(cfg.Paths), cfg, scanCfg, formatter, w, logger)
}

// runSources scans sources strictly in the order supplied, one at a
// time. A failing source is reported and skipped; the remaining sources
// still run.
func runSources(sources []input.Source, cfg Config, scanCfg scan.Config, formatter output.Formatter, w *output.Writer, logger *log.Logger) int {
	multiFile := len(sources) > 1
	hadMatch := false
	hadErr := false
	var buf []byte

	for _, src := range sources {
		result, err := searchSource(src, scanCfg, cfg.FilesOnly)
		if err != nil {
			// Fatal for this source only; records produced before the
			// failure are still reported.
			logger.Warn("error", "source", src.Name(), "err", err)
			hadErr = true
		}
		if result.HasMatch() {
			hadMatch = true
		}
		if len(result.Records) > 0 || err == nil {
			buf = formatter.Format(buf[:0], result, multiFile)
			w.Write(buf)
		}
	}

	return exitCode(hadMatch, hadErr)
}

// searchSource runs one engine pass over a single source. The stream is
// released whether the pass is exhausted, cut short, or failed.
func searchSource(src input.Source, scanCfg scan.Config, firstOnly bool) (output.Result, error) {
	rc, err := src.Open()
	if err != nil {
		return output.Result{}, err
	}
	defer rc.Close()

	engine := scan.New(src.Name(), rc, scanCfg)
	result := output.Result{Source: src.Name()}

	if firstOnly {
		for {
			rec, err := engine.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return result, nil
				}
				return result, err
			}
			if rec.Role == scan.RoleMatch {
				result.Records = []scan.Record{rec}
				return result, nil
			}
		}
	}

	records, err := engine.Collect()
	result.Records = records
	return result, err
}

// runParallel searches directory trees on a worker pool, writing results
// in discovery order.
func runParallel(cfg Config, scanCfg scan.Config, formatter output.Formatter, w *output.Writer, logger *log.Logger) int {
	roots := cfg.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}

	fileCh, errCh := walker.Walk(roots, walker.Options{
		NoIgnore: cfg.NoIgnore,
		Hidden:   cfg.Hidden,
	})

	var hadMatch, hadErr atomic.Bool
	// The exit code must see every walk error, so the drain signals
	// completion instead of being fire-and-forget.
	walkDone := make(chan struct{})
	go func() {
		defer close(walkDone)
		for err := range errCh {
			logger.Warn("walk error", "err", err)
			hadErr.Store(true)
		}
	}()

	sched := scheduler.New(cfg.Workers, scanCfg, input.NewAdaptiveReader(cfg.MmapThreshold), cfg.FilesOnly)
	resultCh := sched.Run(fileCh)

	ow := output.NewOrderedWriter(w, formatter, true)
	ow.WriteOrdered(resultCh,
		func() { hadMatch.Store(true) },
		func(r output.Result) {
			logger.Warn("error", "source", r.Source, "err", r.Err)
			hadErr.Store(true)
		})

	<-walkDone
	return exitCode(hadMatch.Load(), hadErr.Load())
}

// runWatch tails the given paths and searches content as it is appended.
// Runs until the watcher is closed or a watch setup error occurs.
func runWatch(paths []string, scanCfg scan.Config, formatter output.Formatter, w *output.Writer, logger *log.Logger) int {
	watcher, err := watch.New()
	if err != nil {
		logger.Error("failed to create watcher", "err", err)
		return 2
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			logger.Error("failed to watch", "path", path, "err", err)
			return 2
		}
	}

	hadMatch, hadErr := watchEvents(watcher.Events(), watcher.ReadAppended, watcher.Add, scanCfg, formatter, w, logger)
	return exitCode(hadMatch, hadErr)
}

// watchEvents consumes file events until the channel closes, scanning
// appended content through a fresh engine pass per event. Errors are
// logged and counted toward the exit code but never stop the loop.
func watchEvents(
	events <-chan watch.Event,
	readAppended func(path string) ([]byte, int, error),
	add func(path string) error,
	scanCfg scan.Config,
	formatter output.Formatter,
	w *output.Writer,
	logger *log.Logger,
) (hadMatch, hadErr bool) {
	var buf []byte

	for evt := range events {
		if evt.Err != nil {
			logger.Warn("watch error", "err", evt.Err)
			hadErr = true
			continue
		}

		switch evt.Type {
		case watch.EventModified:
			data, startLine, err := readAppended(evt.Path)
			if err != nil {
				logger.Warn("read error", "path", evt.Path, "err", err)
				hadErr = true
				continue
			}
			if len(data) == 0 {
				continue
			}

			engine := scan.New(evt.Path, bytes.NewReader(data), scanCfg)
			records, err := engine.Collect()
			if err != nil {
				logger.Warn("scan error", "path", evt.Path, "err", err)
				hadErr = true
				continue
			}
			if len(records) == 0 {
				continue
			}

			// Rebase line numbers onto the file's absolute numbering.
			for i := range records {
				records[i].Line.Num += startLine - 1
			}

			result := output.Result{Source: evt.Path, Records: records}
			if result.HasMatch() {
				hadMatch = true
			}
			buf = formatter.Format(buf[:0], result, true)
			w.Write(buf)

		case watch.EventCreated:
			if err := add(evt.Path); err != nil {
				logger.Warn("failed to watch new file", "path", evt.Path, "err", err)
				hadErr = true
			}

		case watch.EventDeleted:
			logger.Warn("watched file removed", "path", evt.Path)
		}
	}

	return hadMatch, hadErr
}

// exitCode maps the run outcome to the conventional grep exit codes.
func exitCode(hadMatch, hadErr bool) int {
	switch {
	case hadMatch:
		return 0
	case hadErr:
		return 2
	default:
		return 1
	}
}
