package brk

import "fmt"

// Slice is a Break backed by a Go byte slice reserved up front.
type Slice struct {
	mem []byte
	top uint64
}

// NewSlice reserves limit bytes and returns a break positioned at offset 0.
func NewSlice(limit uint64) *Slice {
	return &Slice{mem: make([]byte, limit)}
}

// Sbrk implements Break.
func (s *Slice) Sbrk(n int) (uint64, error) {
	if s.mem == nil {
		return 0, ErrClosed
	}
	if n < 0 {
		return 0, ErrNegative
	}
	prev := s.top
	if uint64(n) > uint64(len(s.mem))-s.top {
		return 0, fmt.Errorf("%w: top=%d, increment=%d, limit=%d", ErrExhausted, s.top, n, len(s.mem))
	}
	s.top += uint64(n)
	return prev, nil
}

// Bytes implements Break.
func (s *Slice) Bytes() []byte { return s.mem[:s.top] }

// Top implements Break.
func (s *Slice) Top() uint64 { return s.top }

// Limit implements Break.
func (s *Slice) Limit() uint64 { return uint64(len(s.mem)) }

// Close drops the backing slice.
func (s *Slice) Close() error {
	s.mem = nil
	s.top = 0
	return nil
}

// Compile-time interface check
var _ Break = (*Slice)(nil)
