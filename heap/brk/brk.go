package brk

import "errors"

// DefaultLimit is the reservation used by New when callers have no better
// figure. Address space is cheap; only touched pages cost memory.
const DefaultLimit = 1 << 30

var (
	// ErrExhausted indicates the break cannot be extended by the requested amount.
	ErrExhausted = errors.New("brk: heap exhausted")

	// ErrNegative indicates an attempt to move the break downwards. Memory is never returned.
	ErrNegative = errors.New("brk: negative increment")

	// ErrClosed indicates use of a break after Close.
	ErrClosed = errors.New("brk: closed")
)

// Break is the raw heap-extension primitive.
type Break interface {
	// Sbrk extends the break by n bytes and returns the previous top as an
	// offset into Bytes(). Sbrk(0) returns the current top. There is no
	// partial success: on error the top is unchanged.
	Sbrk(n int) (uint64, error)

	// Bytes returns the usable region [0, Top()).
	Bytes() []byte

	// Top returns the current break offset.
	Top() uint64

	// Limit returns the maximum offset the break can ever reach.
	Limit() uint64
}
