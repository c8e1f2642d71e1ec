package input

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// bufPool pools read buffers to reduce per-file heap allocations.
// Buffers are stored as *[]byte so the pool can reuse the backing array
// even when the slice grows beyond its original capacity.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64*1024)
		return &b
	},
}

// BufferedReader reads whole files with unix.Pread into pooled buffers.
type BufferedReader struct{}

// NewBufferedReader creates a new BufferedReader.
func NewBufferedReader() *BufferedReader {
	return &BufferedReader{}
}

func (r *BufferedReader) Read(path string) (ReadResult, error) {
	fd, size, err := openSized(path)
	if err != nil {
		return ReadResult{}, err
	}
	if size == 0 {
		unix.Close(fd)
		return ReadResult{Data: nil, Closer: noopCloser}, nil
	}
	return readBuffered(fd, size)
}

// readBuffered reads an already-open fd into a pooled buffer.
// Takes ownership of fd.
func readBuffered(fd int, size int64) (ReadResult, error) {
	bp := bufPool.Get().(*[]byte)
	buf := *bp
	if cap(buf) < int(size) {
		buf = make([]byte, size)
	} else {
		buf = buf[:size]
	}

	var total int
	for total < int(size) {
		n, err := unix.Pread(fd, buf[total:], int64(total))
		if err != nil {
			unix.Close(fd)
			*bp = buf
			bufPool.Put(bp)
			return ReadResult{}, err
		}
		if n == 0 {
			break // EOF
		}
		total += n
	}

	unix.Close(fd)

	return ReadResult{
		Data: buf[:total],
		Closer: func() error {
			*bp = buf
			bufPool.Put(bp)
			return nil
		},
	}, nil
}

// openSized opens path read-only and returns its fd and size from a
// single fstat. O_NOATIME is attempted first to avoid atime updates.
func openSized(path string) (int, int64, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOATIME, 0)
	if err != nil {
		fd, err = unix.Open(path, unix.O_RDONLY, 0)
	}
	if err != nil {
		return -1, 0, fmt.Errorf("open %s: %w", path, err)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return fd, stat.Size, nil
}
