// Package brk provides the heap-growth primitive the allocator is built on.
//
// # Overview
//
// A Break models the classic program break: a single contiguous region whose
// top can only move upwards. Sbrk(n) extends the region by exactly n bytes
// and returns the previous top, or fails without changing anything.
//
//	b, err := brk.New(brk.DefaultLimit)
//	if err != nil {
//	    return err
//	}
//	base, err := b.Sbrk(1 << 20)
//	if err != nil {
//	    return err // brk.ErrExhausted
//	}
//	mem := b.Bytes()[base : base+1<<20]
//
// # Implementations
//
// Mmap (unix): reserves limit bytes of address space with PROT_NONE and
// commits pages with mprotect as the break advances. Addresses never move.
//
// Slice: portable fallback over a byte slice allocated up front. Bytes()
// never reallocates, so slices taken from it stay valid across growth.
//
// # Addresses
//
// Offsets returned by Sbrk are relative to Bytes(). The region base is page
// aligned (mmap) or allocated by the Go runtime (slice), so any 8-byte
// aligned offset is also an 8-byte aligned address.
//
// # Thread Safety
//
// A Break is not safe for concurrent use. There is a single growth cursor
// per Break; interleaved Sbrk calls from different goroutines corrupt it.
// Callers must serialize externally.
package brk
