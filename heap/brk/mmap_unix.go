//go:build unix

package brk

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/brkalloc/internal/format"
)

// Mmap is a Break over an anonymous private mapping. The whole limit is
// reserved with PROT_NONE at construction; Sbrk commits whole pages with
// mprotect as the break advances, so the base address never moves.
type Mmap struct {
	region    []byte
	top       uint64
	committed uint64
}

// NewMmap reserves limit bytes (rounded up to a page) of address space.
func NewMmap(limit uint64) (*Mmap, error) {
	limit = format.AlignPage(limit)
	if limit == 0 || limit > uint64(^uint(0)>>1) {
		return nil, fmt.Errorf("brk: invalid reservation size %d", limit)
	}
	region, err := unix.Mmap(-1, 0, int(limit), unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("brk: reserve %d bytes: %w", limit, err)
	}
	return &Mmap{region: region}, nil
}

// Sbrk implements Break.
func (m *Mmap) Sbrk(n int) (uint64, error) {
	if m.region == nil {
		return 0, ErrClosed
	}
	if n < 0 {
		return 0, ErrNegative
	}
	prev := m.top
	limit := uint64(len(m.region))
	if uint64(n) > limit-m.top {
		return 0, fmt.Errorf("%w: top=%d, increment=%d, limit=%d", ErrExhausted, m.top, n, limit)
	}
	end := m.top + uint64(n)
	if end > m.committed {
		commit := min(format.AlignPage(end), limit)
		if err := unix.Mprotect(m.region[m.committed:commit], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("%w: commit [%d,%d): %w", ErrExhausted, m.committed, commit, err)
		}
		m.committed = commit
	}
	m.top = end
	return prev, nil
}

// Bytes implements Break.
func (m *Mmap) Bytes() []byte { return m.region[:m.top] }

// Top implements Break.
func (m *Mmap) Top() uint64 { return m.top }

// Limit implements Break.
func (m *Mmap) Limit() uint64 { return uint64(len(m.region)) }

// Committed returns the number of bytes currently readable and writable.
func (m *Mmap) Committed() uint64 { return m.committed }

// Close unmaps the region. Every slice previously obtained from Bytes
// becomes invalid.
func (m *Mmap) Close() error {
	if m.region == nil {
		return nil
	}
	err := unix.Munmap(m.region)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		err = nil
	}
	m.region = nil
	m.top = 0
	m.committed = 0
	return err
}

// New returns the platform default break: an mmap reservation on unix.
func New(limit uint64) (Break, error) {
	return NewMmap(limit)
}

// Compile-time interface check
var _ Break = (*Mmap)(nil)
