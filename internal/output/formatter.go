package output

// Formatter formats a Result into bytes for output.
// Implementations append to buf and return it; callers can pass buf[:0]
// to reuse the underlying array.
type Formatter interface {
	Format(buf []byte, result Result, multiFile bool) []byte
}
