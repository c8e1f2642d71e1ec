package output

import (
	"os"

	"golang.org/x/sys/unix"
)

// Writer writes formatted output to stdout using raw write syscalls,
// bypassing stdio buffering the formatters already provide.
type Writer struct {
	fd int
}

// NewWriter creates a Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{fd: int(os.Stdout.Fd())}
}

// Write writes the given bytes to stdout, retrying short writes.
func (w *Writer) Write(data []byte) error {
	for len(data) > 0 {
		n, err := unix.Write(w.fd, data)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		data = data[n:]
	}
	return nil
}

// OrderedWriter receives results from a channel and writes them in
// sequence order, keeping output deterministic with parallel workers.
type OrderedWriter struct {
	writer    *Writer
	formatter Formatter
	multiFile bool
}

// NewOrderedWriter creates an OrderedWriter.
func NewOrderedWriter(w *Writer, f Formatter, multiFile bool) *OrderedWriter {
	return &OrderedWriter{
		writer:    w,
		formatter: f,
		multiFile: multiFile,
	}
}

// WriteOrdered consumes results, buffering out-of-order arrivals and
// writing them in sequence-number order. onMatch fires for each result
// with at least one match; onErr fires for each failed result.
func (ow *OrderedWriter) WriteOrdered(results <-chan Result, onMatch func(), onErr func(Result)) {
	nextSeq := 1
	pending := make(map[int]Result)
	var buf []byte

	handle := func(r Result) {
		if r.Err != nil {
			if onErr != nil {
				onErr(r)
			}
			return
		}
		if r.HasMatch() && onMatch != nil {
			onMatch()
		}
		buf = ow.formatter.Format(buf[:0], r, ow.multiFile)
		ow.writer.Write(buf)
	}

	for r := range results {
		if r.SeqNum != nextSeq {
			pending[r.SeqNum] = r
			continue
		}
		handle(r)
		nextSeq++
		for {
			p, ok := pending[nextSeq]
			if !ok {
				break
			}
			handle(p)
			delete(pending, nextSeq)
			nextSeq++
		}
	}
}
