package scan

import (
	"bufio"
	"io"
)

// LineReader turns a byte stream into a lazy, forward-only sequence of
// lines. Single pass, not restartable. Both "\n" and "\r\n" terminate a
// line; a final line with no terminator is still emitted.
type LineReader struct {
	br   *bufio.Reader
	num  int
	done bool
}

// NewLineReader wraps r for line-by-line reading.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line. It returns io.EOF when the stream is
// exhausted; any other error is the underlying read failure.
func (lr *LineReader) Next() (Line, error) {
	if lr.done {
		return Line{}, io.EOF
	}

	data, err := lr.br.ReadBytes('\n')
	if err == io.EOF {
		lr.done = true
		if len(data) == 0 {
			return Line{}, io.EOF
		}
	} else if err != nil {
		lr.done = true
		return Line{}, err
	}

	if n := len(data); n > 0 && data[n-1] == '\n' {
		data = data[:n-1]
		if n := len(data); n > 0 && data[n-1] == '\r' {
			data = data[:n-1]
		}
	}

	lr.num++
	return Line{Num: lr.num, Text: data}, nil
}
