package input

// ReadResult holds the data read from a file and a cleanup function.
// Closer releases the backing buffer or mapping and must be called once
// the data has been fully consumed.
type ReadResult struct {
	Data   []byte
	Closer func() error
}

// noopCloser is a package-level no-op closer to avoid allocating a func
// literal per file.
func noopCloser() error { return nil }

// Reader reads a whole file into a byte slice. Used by the parallel
// search path where whole-file buffers amortize better than per-line
// streaming.
type Reader interface {
	Read(path string) (ReadResult, error)
}
