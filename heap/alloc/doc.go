// Package alloc implements a user-space dynamic memory allocator on top of a
// program-break style growth primitive (see package brk).
//
// # Overview
//
// A Heap hands out blocks carved from a single growing region. Every block
// carries a 16-byte header stored in the region itself, followed by the
// payload returned to the caller:
//
//	0x00  size word: total block size including header, bit 0 = free tag
//	0x08  link word: next free block (free-list variant only)
//	0x10  payload...
//
// Pointers (Ptr) are payload offsets into the region, so recovering a header
// from a pointer is O(1) arithmetic on the arena and never touches Go
// pointers. Nil (zero) is the "no value" sentinel.
//
// # Heap Interface
//
//   - Alloc(n): Allocate n payload bytes
//   - Free(p): Return a block to the free-block registry
//   - Realloc(p, n): Resize in place when the block is large enough, otherwise relocate-copy-free
//   - Calloc(count, size): Overflow-checked, zeroed allocation
//   - Bytes(p): The usable payload of a live block
//
// # Policies
//
// PolicyLowestFit (default): free blocks sit in a min-heap keyed on size.
// Alloc extracts the smallest free block that satisfies the request and
// splits off the tail when the remainder can hold a header plus one
// alignment unit. Carved payloads are not zeroed.
//
// PolicyFirstFit: free blocks sit in a LIFO singly-linked list threaded
// through the headers. Alloc takes the first block that is large enough and
// never splits it. Carved payloads are zeroed.
//
// # Growth
//
// When the registry has no fit, the heap carves from its frontier. If the
// frontier is short, it calls Sbrk in Config.GrowIncrement steps (1 MiB by
// default) until the request fits. A failing Sbrk surfaces as ErrOutOfMemory.
// Memory is never returned to the break and free blocks are never coalesced.
//
// # Usage Example
//
//	b, err := brk.New(brk.DefaultLimit)
//	if err != nil {
//	    return err
//	}
//	h := alloc.New(b, nil)
//
//	p, err := h.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(h.Bytes(p), "hello")
//
//	p, err = h.Realloc(p, 200) // "hello" preserved
//	...
//	_ = h.Free(p)
//
// # Caller Obligations
//
// Freeing a pointer twice, freeing a pointer that did not come from Alloc,
// or using a pointer after Free is undefined behaviour. A double free puts
// the same block in the registry twice. Config.Strict enables tag checks
// that report ErrDoubleFree and ErrBadPointer instead.
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must synchronize access
// externally.
package alloc
