package input

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// DefaultMmapThreshold is the file size above which the adaptive reader
// switches from buffered reads to mmap.
const DefaultMmapThreshold = 1 << 20 // 1MB

// readMmap memory-maps an already-open fd of known size.
// Takes ownership of fd.
func readMmap(fd int, size int64) (ReadResult, error) {
	unix.Fadvise(fd, 0, size, unix.FADV_SEQUENTIAL)

	data, err := syscall.Mmap(fd, 0, int(size), syscall.PROT_READ, syscall.MAP_PRIVATE|syscall.MAP_POPULATE)
	if err != nil {
		// Fall back to a buffered read from the already-open fd.
		return readBuffered(fd, size)
	}
	unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return ReadResult{
		Data: data,
		Closer: func() error {
			unix.Madvise(data, unix.MADV_DONTNEED)
			syscall.Munmap(data)
			unix.Close(fd)
			return nil
		},
	}, nil
}

// NewAdaptiveReader returns a Reader that picks buffered reads for small
// files and mmap for files at or above threshold. threshold <= 0 selects
// DefaultMmapThreshold.
func NewAdaptiveReader(threshold int64) Reader {
	if threshold <= 0 {
		threshold = DefaultMmapThreshold
	}
	return &adaptiveReader{threshold: threshold}
}

type adaptiveReader struct {
	threshold int64
}

func (r *adaptiveReader) Read(path string) (ReadResult, error) {
	fd, size, err := openSized(path)
	if err != nil {
		return ReadResult{}, err
	}
	if size == 0 {
		unix.Close(fd)
		return ReadResult{Data: nil, Closer: noopCloser}, nil
	}
	if size >= r.threshold {
		return readMmap(fd, size)
	}
	return readBuffered(fd, size)
}
