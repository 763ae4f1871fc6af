//go:build !unix

package brk

// New returns the platform default break. Without mmap the portable slice
// implementation is used.
func New(limit uint64) (Break, error) {
	return NewSlice(limit), nil
}
